package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/usecase"
	"github.com/iho/homebudget/internal/usecase/mocks"
)

type savingsFixture struct {
	accounts  *mocks.MockSavingsAccountRepository
	snapshots *mocks.MockSnapshotRepository
	txRepo    *mocks.MockTransactionRepository
	outbox    *mocks.MockOutboxRepository
	uc        *usecase.SavingsUseCase
}

func newSavingsFixture() *savingsFixture {
	f := &savingsFixture{
		accounts:  mocks.NewMockSavingsAccountRepository(),
		snapshots: mocks.NewMockSnapshotRepository(),
		txRepo:    mocks.NewMockTransactionRepository(),
		outbox:    mocks.NewMockOutboxRepository(),
	}
	f.uc = usecase.NewSavingsUseCase(
		mocks.NewMockTxManager(),
		f.accounts,
		f.snapshots,
		f.txRepo,
		f.outbox,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		nil,
	)
	return f
}

func (f *savingsFixture) seedAccount(t *testing.T, id, householdID string, starting int64) *domain.SavingsAccount {
	t.Helper()
	account := &domain.SavingsAccount{
		ID:             id,
		HouseholdID:    householdID,
		Name:           "Pension",
		StartingAmount: decimal.NewFromInt(starting),
		CurrentValue:   decimal.NewNullDecimal(decimal.NewFromInt(starting)),
	}
	if err := f.accounts.Create(context.Background(), nil, account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func (f *savingsFixture) seedDeposit(t *testing.T, id, householdID, accountID string, amount int64) {
	t.Helper()
	err := f.txRepo.Create(context.Background(), nil, &domain.Transaction{
		ID:               id,
		HouseholdID:      householdID,
		Type:             domain.TypeSavingDeposit,
		Amount:           decimal.NewFromInt(amount),
		SavingsAccountID: accountID,
	})
	if err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
}

func TestSavingsUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		expectError error
	}{
		{
			name: "successful creation",
			input: usecase.CreateAccountInput{
				HouseholdID:    "hh-1",
				Name:           "Index fund",
				StartingAmount: decimal.NewFromInt(1000),
			},
		},
		{
			name: "missing household",
			input: usecase.CreateAccountInput{
				Name:           "Index fund",
				StartingAmount: decimal.NewFromInt(1000),
			},
			expectError: domain.ErrMissingHousehold,
		},
		{
			name: "empty name",
			input: usecase.CreateAccountInput{
				HouseholdID:    "hh-1",
				StartingAmount: decimal.NewFromInt(1000),
			},
			expectError: domain.ErrInvalidName,
		},
		{
			name: "negative starting amount",
			input: usecase.CreateAccountInput{
				HouseholdID:    "hh-1",
				Name:           "Index fund",
				StartingAmount: decimal.NewFromInt(-1),
			},
			expectError: domain.ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSavingsFixture()
			account, err := f.uc.CreateAccount(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !account.CurrentValue.Valid || !account.CurrentValue.Decimal.Equal(tt.input.StartingAmount) {
				t.Errorf("expected current value seeded with starting amount, got %+v", account.CurrentValue)
			}

			snaps := f.snapshots.All()
			if len(snaps) != 1 {
				t.Fatalf("expected 1 initial snapshot, got %d", len(snaps))
			}
			if !snaps[0].Capital.Equal(tt.input.StartingAmount) || !snaps[0].Value.Equal(tt.input.StartingAmount) {
				t.Errorf("initial snapshot should record the starting amount twice, got capital=%s value=%s", snaps[0].Capital, snaps[0].Value)
			}

			// created event plus snapshot event
			if len(f.outbox.Events()) != 2 {
				t.Fatalf("expected 2 outbox events, got %d", len(f.outbox.Events()))
			}
			if _, ok := f.outbox.Events()[0].Payload.(domain.SavingsAccountChangedEvent); !ok {
				t.Errorf("expected SavingsAccountChangedEvent payload, got %T", f.outbox.Events()[0].Payload)
			}
			snapPayload, ok := f.outbox.Events()[1].Payload.(domain.SnapshotAppendedEvent)
			if !ok {
				t.Fatalf("expected SnapshotAppendedEvent payload, got %T", f.outbox.Events()[1].Payload)
			}
			if snapPayload.AccountID != account.ID || snapPayload.Capital != tt.input.StartingAmount.String() {
				t.Errorf("snapshot payload does not match account: %+v", snapPayload)
			}
		})
	}
}

func TestSavingsUseCase_UpdateAccount(t *testing.T) {
	f := newSavingsFixture()
	f.seedAccount(t, "acc-1", "hh-1", 1000)
	f.seedDeposit(t, "tx-1", "hh-1", "acc-1", 200)
	f.seedDeposit(t, "tx-2", "hh-1", "acc-1", 300)

	account, err := f.uc.UpdateAccount(context.Background(), usecase.UpdateAccountInput{
		ID:             "acc-1",
		HouseholdID:    "hh-1",
		Name:           "Pension fund",
		StartingAmount: decimal.NewFromInt(1000),
		CurrentValue:   decimal.NewFromInt(1800),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Name != "Pension fund" {
		t.Errorf("expected renamed account, got %q", account.Name)
	}
	if !account.CurrentValue.Decimal.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("expected current value 1800, got %s", account.CurrentValue.Decimal)
	}

	snaps := f.snapshots.All()
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	// capital = starting 1000 + deposits 500
	if !snaps[0].Capital.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected snapshot capital 1500, got %s", snaps[0].Capital)
	}
	if !snaps[0].Value.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("expected snapshot value 1800, got %s", snaps[0].Value)
	}
}

func TestSavingsUseCase_UpdateAccount_OtherHousehold(t *testing.T) {
	f := newSavingsFixture()
	f.seedAccount(t, "acc-1", "hh-1", 1000)

	_, err := f.uc.UpdateAccount(context.Background(), usecase.UpdateAccountInput{
		ID:             "acc-1",
		HouseholdID:    "hh-2",
		Name:           "Pension",
		StartingAmount: decimal.NewFromInt(1000),
		CurrentValue:   decimal.NewFromInt(1000),
	})
	if !errors.Is(err, domain.ErrSavingsAccountNotFound) {
		t.Fatalf("expected %v, got %v", domain.ErrSavingsAccountNotFound, err)
	}
}

func TestSavingsUseCase_UpdateValue(t *testing.T) {
	f := newSavingsFixture()
	f.seedAccount(t, "acc-1", "hh-1", 1000)
	f.seedDeposit(t, "tx-1", "hh-1", "acc-1", 500)

	account, err := f.uc.UpdateValue(context.Background(), usecase.UpdateValueInput{
		ID:          "acc-1",
		HouseholdID: "hh-1",
		Value:       decimal.NewFromInt(1700),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !account.CurrentValue.Decimal.Equal(decimal.NewFromInt(1700)) {
		t.Errorf("expected current value 1700, got %s", account.CurrentValue.Decimal)
	}

	snaps := f.snapshots.All()
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	// capital unchanged by a pure value update
	if !snaps[0].Capital.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected snapshot capital 1500, got %s", snaps[0].Capital)
	}
	if !snaps[0].Value.Equal(decimal.NewFromInt(1700)) {
		t.Errorf("expected snapshot value 1700, got %s", snaps[0].Value)
	}
}

func TestSavingsUseCase_ListWithStats(t *testing.T) {
	f := newSavingsFixture()
	account := f.seedAccount(t, "acc-1", "hh-1", 1000)
	f.seedDeposit(t, "tx-1", "hh-1", "acc-1", 200)
	f.seedDeposit(t, "tx-2", "hh-1", "acc-1", 300)

	account.CurrentValue = decimal.NewNullDecimal(decimal.NewFromInt(1800))
	if err := f.accounts.Update(context.Background(), nil, account); err != nil {
		t.Fatalf("update seed: %v", err)
	}

	stats, err := f.uc.ListWithStats(context.Background(), "hh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected stats for 1 account, got %d", len(stats))
	}

	got := stats[0]
	if !got.Deposits.Equal(decimal.NewFromInt(500)) {
		t.Errorf("deposits: expected 500, got %s", got.Deposits)
	}
	if !got.Capital.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("capital: expected 1500, got %s", got.Capital)
	}
	if !got.Profit.Equal(decimal.NewFromInt(300)) {
		t.Errorf("profit: expected 300, got %s", got.Profit)
	}
}

func TestSavingsUseCase_Snapshots(t *testing.T) {
	f := newSavingsFixture()
	f.seedAccount(t, "acc-1", "hh-1", 1000)

	if _, err := f.uc.UpdateValue(context.Background(), usecase.UpdateValueInput{
		ID:          "acc-1",
		HouseholdID: "hh-1",
		Value:       decimal.NewFromInt(1100),
	}); err != nil {
		t.Fatalf("update value: %v", err)
	}

	snaps, err := f.uc.Snapshots(context.Background(), "hh-1", "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snaps) != 1 {
		t.Errorf("expected 1 snapshot, got %d", len(snaps))
	}

	if _, err := f.uc.Snapshots(context.Background(), "hh-2", "acc-1"); !errors.Is(err, domain.ErrSavingsAccountNotFound) {
		t.Errorf("expected %v, got %v", domain.ErrSavingsAccountNotFound, err)
	}
}
