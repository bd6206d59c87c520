package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/usecase"
	"github.com/iho/homebudget/internal/usecase/mocks"
)

func newTransactionUseCase(txRepo *mocks.MockTransactionRepository, outbox *mocks.MockOutboxRepository, cache *mocks.MockCache) *usecase.TransactionUseCase {
	return usecase.NewTransactionUseCase(
		mocks.NewMockTxManager(),
		txRepo,
		outbox,
		cache,
		mocks.NewMockIDGenerator(),
		nil,
	)
}

func TestTransactionUseCase_CreateTransaction(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateTransactionInput
		setupMocks  func(*mocks.MockTransactionRepository)
		expectError error
	}{
		{
			name: "successful expense creation",
			input: usecase.CreateTransactionInput{
				HouseholdID: "hh-1",
				Type:        domain.TypeExpense,
				Amount:      decimal.NewFromInt(42),
				Category:    "Groceries",
				Description: "weekly shop",
				Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "saving deposit with linked account",
			input: usecase.CreateTransactionInput{
				HouseholdID:      "hh-1",
				Type:             domain.TypeSavingDeposit,
				Amount:           decimal.NewFromInt(200),
				SavingsAccountID: "acc-1",
			},
		},
		{
			name: "saving deposit without account",
			input: usecase.CreateTransactionInput{
				HouseholdID: "hh-1",
				Type:        domain.TypeSavingDeposit,
				Amount:      decimal.NewFromInt(200),
			},
			expectError: domain.ErrMissingSavingsAccount,
		},
		{
			name: "invalid type",
			input: usecase.CreateTransactionInput{
				HouseholdID: "hh-1",
				Type:        "withdrawal",
				Amount:      decimal.NewFromInt(10),
			},
			expectError: domain.ErrInvalidTransactionType,
		},
		{
			name: "negative amount",
			input: usecase.CreateTransactionInput{
				HouseholdID: "hh-1",
				Type:        domain.TypeIncome,
				Amount:      decimal.NewFromInt(-5),
			},
			expectError: domain.ErrNegativeAmount,
		},
		{
			name: "missing household",
			input: usecase.CreateTransactionInput{
				Type:   domain.TypeIncome,
				Amount: decimal.NewFromInt(5),
			},
			expectError: domain.ErrMissingHousehold,
		},
		{
			name: "repository error rolls up",
			input: usecase.CreateTransactionInput{
				HouseholdID: "hh-1",
				Type:        domain.TypeIncome,
				Amount:      decimal.NewFromInt(10),
			},
			setupMocks: func(repo *mocks.MockTransactionRepository) {
				repo.CreateFunc = func(ctx context.Context, tx usecase.Tx, tr *domain.Transaction) error {
					return errors.New("storage down")
				}
			},
			expectError: errors.New("storage down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockTransactionRepository()
			outbox := mocks.NewMockOutboxRepository()
			cache := mocks.NewMockCache()
			if tt.setupMocks != nil {
				tt.setupMocks(repo)
			}

			uc := newTransactionUseCase(repo, outbox, cache)
			transaction, err := uc.CreateTransaction(context.Background(), tt.input)

			if tt.expectError != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if errors.Is(tt.expectError, domain.ErrMissingSavingsAccount) ||
					errors.Is(tt.expectError, domain.ErrInvalidTransactionType) ||
					errors.Is(tt.expectError, domain.ErrNegativeAmount) ||
					errors.Is(tt.expectError, domain.ErrMissingHousehold) {
					if !errors.Is(err, tt.expectError) {
						t.Errorf("expected %v, got %v", tt.expectError, err)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if transaction == nil {
				t.Fatal("expected transaction, got nil")
			}
			if transaction.ID == "" {
				t.Error("expected generated ID")
			}
			if transaction.Date.IsZero() {
				t.Error("expected date to default to now")
			}
			if len(outbox.Events()) != 1 {
				t.Errorf("expected 1 outbox event, got %d", len(outbox.Events()))
			}
			if got := outbox.Events()[0].EventType; got != domain.EventTypeTransactionCreated {
				t.Errorf("expected event type %q, got %q", domain.EventTypeTransactionCreated, got)
			}
			payload, ok := outbox.Events()[0].Payload.(domain.TransactionChangedEvent)
			if !ok {
				t.Fatalf("expected TransactionChangedEvent payload, got %T", outbox.Events()[0].Payload)
			}
			if payload.TransactionID != transaction.ID || payload.Amount != transaction.Amount.String() {
				t.Errorf("payload does not match transaction: %+v", payload)
			}
		})
	}
}

func TestTransactionUseCase_CreateTransaction_ClearsAccountForNonDeposits(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	uc := newTransactionUseCase(repo, mocks.NewMockOutboxRepository(), mocks.NewMockCache())

	transaction, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		HouseholdID:      "hh-1",
		Type:             domain.TypeExpense,
		Amount:           decimal.NewFromInt(10),
		SavingsAccountID: "acc-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transaction.SavingsAccountID != "" {
		t.Errorf("expected savings account link cleared, got %q", transaction.SavingsAccountID)
	}
}

func TestTransactionUseCase_CreateTransaction_InvalidatesReportCache(t *testing.T) {
	cache := mocks.NewMockCache()
	for _, key := range usecase.ReportCacheKeys("hh-1") {
		if err := cache.Set(context.Background(), key, []byte("stale"), time.Minute); err != nil {
			t.Fatalf("seed cache: %v", err)
		}
	}

	uc := newTransactionUseCase(mocks.NewMockTransactionRepository(), mocks.NewMockOutboxRepository(), cache)

	_, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		HouseholdID: "hh-1",
		Type:        domain.TypeIncome,
		Amount:      decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range usecase.ReportCacheKeys("hh-1") {
		if cache.Contains(key) {
			t.Errorf("expected key %q invalidated", key)
		}
	}
}

func TestTransactionUseCase_UpdateTransaction(t *testing.T) {
	existing := &domain.Transaction{
		ID:          "tx-1",
		HouseholdID: "hh-1",
		Type:        domain.TypeExpense,
		Amount:      decimal.NewFromInt(10),
		Category:    "Groceries",
		Date:        time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name        string
		input       usecase.UpdateTransactionInput
		expectError error
	}{
		{
			name: "successful update",
			input: usecase.UpdateTransactionInput{
				ID:          "tx-1",
				HouseholdID: "hh-1",
				Type:        domain.TypeExpense,
				Amount:      decimal.NewFromInt(25),
				Category:    "Travel",
			},
		},
		{
			name: "unknown transaction",
			input: usecase.UpdateTransactionInput{
				ID:          "tx-missing",
				HouseholdID: "hh-1",
				Type:        domain.TypeExpense,
				Amount:      decimal.NewFromInt(25),
			},
			expectError: domain.ErrTransactionNotFound,
		},
		{
			name: "other household cannot touch it",
			input: usecase.UpdateTransactionInput{
				ID:          "tx-1",
				HouseholdID: "hh-2",
				Type:        domain.TypeExpense,
				Amount:      decimal.NewFromInt(25),
			},
			expectError: domain.ErrTransactionNotFound,
		},
		{
			name: "invalid amount",
			input: usecase.UpdateTransactionInput{
				ID:          "tx-1",
				HouseholdID: "hh-1",
				Type:        domain.TypeExpense,
				Amount:      decimal.NewFromInt(-1),
			},
			expectError: domain.ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockTransactionRepository()
			if err := repo.Create(context.Background(), nil, existing); err != nil {
				t.Fatalf("seed: %v", err)
			}

			uc := newTransactionUseCase(repo, mocks.NewMockOutboxRepository(), mocks.NewMockCache())
			updated, err := uc.UpdateTransaction(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !updated.Amount.Equal(tt.input.Amount) {
				t.Errorf("expected amount %s, got %s", tt.input.Amount, updated.Amount)
			}
			if updated.Category != tt.input.Category {
				t.Errorf("expected category %q, got %q", tt.input.Category, updated.Category)
			}
			if !updated.Date.Equal(existing.Date) {
				t.Errorf("expected date kept when input date is zero, got %v", updated.Date)
			}
		})
	}
}

func TestTransactionUseCase_DeleteTransaction(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.DeleteTransactionInput
		expectError error
	}{
		{
			name:  "confirmed delete succeeds",
			input: usecase.DeleteTransactionInput{ID: "tx-1", HouseholdID: "hh-1", Confirmed: true},
		},
		{
			name:        "unconfirmed delete refused",
			input:       usecase.DeleteTransactionInput{ID: "tx-1", HouseholdID: "hh-1"},
			expectError: domain.ErrDeleteNotConfirmed,
		},
		{
			name:        "unknown transaction",
			input:       usecase.DeleteTransactionInput{ID: "tx-missing", HouseholdID: "hh-1", Confirmed: true},
			expectError: domain.ErrTransactionNotFound,
		},
		{
			name:        "other household refused",
			input:       usecase.DeleteTransactionInput{ID: "tx-1", HouseholdID: "hh-2", Confirmed: true},
			expectError: domain.ErrTransactionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockTransactionRepository()
			seed := &domain.Transaction{
				ID:          "tx-1",
				HouseholdID: "hh-1",
				Type:        domain.TypeIncome,
				Amount:      decimal.NewFromInt(10),
				Date:        time.Now(),
			}
			if err := repo.Create(context.Background(), nil, seed); err != nil {
				t.Fatalf("seed: %v", err)
			}

			outbox := mocks.NewMockOutboxRepository()
			uc := newTransactionUseCase(repo, outbox, mocks.NewMockCache())
			err := uc.DeleteTransaction(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				if _, getErr := repo.GetByID(context.Background(), "tx-1"); getErr != nil {
					t.Error("expected transaction untouched after refused delete")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, getErr := repo.GetByID(context.Background(), "tx-1"); !errors.Is(getErr, domain.ErrTransactionNotFound) {
				t.Error("expected transaction gone")
			}
			if len(outbox.Events()) != 1 || outbox.Events()[0].EventType != domain.EventTypeTransactionDeleted {
				t.Error("expected a deleted event in the outbox")
			}
		})
	}
}

func TestTransactionUseCase_ListTransactions(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	for _, seed := range []*domain.Transaction{
		{ID: "tx-1", HouseholdID: "hh-1", Type: domain.TypeIncome, Amount: decimal.NewFromInt(1), Date: time.Now()},
		{ID: "tx-2", HouseholdID: "hh-1", Type: domain.TypeExpense, Amount: decimal.NewFromInt(2), Date: time.Now()},
		{ID: "tx-3", HouseholdID: "hh-2", Type: domain.TypeExpense, Amount: decimal.NewFromInt(3), Date: time.Now()},
	} {
		if err := repo.Create(context.Background(), nil, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	uc := newTransactionUseCase(repo, mocks.NewMockOutboxRepository(), mocks.NewMockCache())

	txs, err := uc.ListTransactions(context.Background(), "hh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Errorf("expected 2 transactions, got %d", len(txs))
	}

	if _, err := uc.ListTransactions(context.Background(), ""); !errors.Is(err, domain.ErrMissingHousehold) {
		t.Errorf("expected %v, got %v", domain.ErrMissingHousehold, err)
	}
}
