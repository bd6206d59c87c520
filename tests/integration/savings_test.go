package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/adapter/repository/postgres"
	"github.com/iho/homebudget/internal/usecase"
	"github.com/iho/homebudget/tests/testutil"
)

func newSavingsUseCase(testDB *testutil.TestDB) (*usecase.SavingsUseCase, *usecase.TransactionUseCase) {
	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	// Savings assertions never read the outbox.
	outboxRepo := postgres.NewNullOutboxRepository()
	idGen := postgres.NewULIDGenerator()

	savingsUC := usecase.NewSavingsUseCase(
		txManager,
		postgres.NewSavingsAccountRepository(pool),
		postgres.NewSnapshotRepository(pool),
		transactionRepo,
		outboxRepo,
		idGen,
		postgres.NewRetrier(),
		nil,
	)
	transactionUC := usecase.NewTransactionUseCase(txManager, transactionRepo, outboxRepo, noopCache{}, idGen, nil)

	return savingsUC, transactionUC
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }
func (noopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, keys ...string) error { return nil }

func TestSavingsAccountLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	savingsUC, transactionUC := newSavingsUseCase(testDB)

	account, err := savingsUC.CreateAccount(ctx, usecase.CreateAccountInput{
		HouseholdID:    "hh-sav",
		Name:           "Index fund",
		StartingAmount: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	// Link a deposit to it
	_, err = transactionUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
		HouseholdID:      "hh-sav",
		Type:             "saving_deposit",
		Amount:           decimal.NewFromInt(500),
		SavingsAccountID: account.ID,
	})
	if err != nil {
		t.Fatalf("failed to create deposit: %v", err)
	}

	// Assert a new market value
	updated, err := savingsUC.UpdateValue(ctx, usecase.UpdateValueInput{
		ID:          account.ID,
		HouseholdID: "hh-sav",
		Value:       decimal.NewFromInt(1700),
	})
	if err != nil {
		t.Fatalf("failed to update value: %v", err)
	}
	if !updated.CurrentValue.Decimal.Equal(decimal.NewFromInt(1700)) {
		t.Fatalf("expected current value 1700, got %s", updated.CurrentValue.Decimal)
	}

	// Stats derive capital and profit from the deposit sum
	stats, err := savingsUC.ListWithStats(ctx, "hh-sav")
	if err != nil {
		t.Fatalf("failed to list stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected one account, got %d", len(stats))
	}
	if !stats[0].Capital.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected capital 1500, got %s", stats[0].Capital)
	}
	if !stats[0].Profit.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected profit 200, got %s", stats[0].Profit)
	}

	// The snapshot log records creation and the value update, oldest first
	snapshots, err := savingsUC.Snapshots(ctx, "hh-sav", account.ID)
	if err != nil {
		t.Fatalf("failed to list snapshots: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected two snapshots, got %d", len(snapshots))
	}
	if !snapshots[0].Value.Equal(decimal.NewFromInt(1000)) || !snapshots[1].Value.Equal(decimal.NewFromInt(1700)) {
		t.Fatalf("unexpected snapshot values: %s, %s", snapshots[0].Value, snapshots[1].Value)
	}
	if !snapshots[1].Capital.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected second snapshot capital 1500, got %s", snapshots[1].Capital)
	}
}
