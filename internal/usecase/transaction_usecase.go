package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/infrastructure/metrics"
)

// TransactionUseCase handles transaction business logic.
type TransactionUseCase struct {
	txManager  TxManager
	txRepo     TransactionRepository
	outboxRepo OutboxRepository
	cache      Cache
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TxManager,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	cache Cache,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:  txManager,
		txRepo:     txRepo,
		outboxRepo: outboxRepo,
		cache:      cache,
		idGen:      idGen,
		metrics:    metrics,
	}
}

// CreateTransactionInput represents input for recording a transaction.
type CreateTransactionInput struct {
	HouseholdID      string
	Type             domain.TransactionType
	Amount           decimal.Decimal
	Category         string
	Description      string
	Date             time.Time
	SavingsAccountID string
}

// CreateTransaction records a new transaction for a household.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	savingsAccountID := input.SavingsAccountID
	if input.Type != domain.TypeSavingDeposit {
		savingsAccountID = ""
	}

	transaction := &domain.Transaction{
		ID:               uc.idGen.Generate(),
		HouseholdID:      input.HouseholdID,
		Type:             input.Type,
		Amount:           input.Amount,
		Category:         input.Category,
		Description:      input.Description,
		Date:             date,
		SavingsAccountID: savingsAccountID,
		CreatedAt:        now,
	}

	if err := domain.ValidateTransaction(transaction); err != nil {
		return nil, err
	}

	err := uc.inTx(ctx, func(tx Tx) error {
		if err := uc.txRepo.Create(ctx, tx, transaction); err != nil {
			return err
		}

		return uc.outboxRepo.Create(ctx, tx, transactionEvent(uc.idGen.Generate(), domain.EventTypeTransactionCreated, transaction, now))
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsRecorded.WithLabelValues(string(transaction.Type)).Inc()
		uc.metrics.TransactionAmount.Observe(transaction.Amount.InexactFloat64())
	}

	uc.invalidateReports(ctx, input.HouseholdID)

	return transaction, nil
}

// UpdateTransactionInput represents input for editing a transaction.
type UpdateTransactionInput struct {
	ID               string
	HouseholdID      string
	Type             domain.TransactionType
	Amount           decimal.Decimal
	Category         string
	Description      string
	Date             time.Time
	SavingsAccountID string
}

// UpdateTransaction edits an existing transaction in place.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.Transaction, error) {
	transaction, err := uc.getOwned(ctx, input.ID, input.HouseholdID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	transaction.Type = input.Type
	transaction.Amount = input.Amount
	transaction.Category = input.Category
	transaction.Description = input.Description
	transaction.SavingsAccountID = input.SavingsAccountID

	if input.Type != domain.TypeSavingDeposit {
		transaction.SavingsAccountID = ""
	}

	if !input.Date.IsZero() {
		transaction.Date = input.Date
	}

	if err := domain.ValidateTransaction(transaction); err != nil {
		return nil, err
	}

	err = uc.inTx(ctx, func(tx Tx) error {
		if err := uc.txRepo.Update(ctx, tx, transaction); err != nil {
			return err
		}

		return uc.outboxRepo.Create(ctx, tx, transactionEvent(uc.idGen.Generate(), domain.EventTypeTransactionUpdated, transaction, now))
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateReports(ctx, input.HouseholdID)

	return transaction, nil
}

// DeleteTransactionInput represents input for deleting a transaction.
// Confirmed must be set explicitly; deletion is destructive and not gated
// by anything else.
type DeleteTransactionInput struct {
	ID          string
	HouseholdID string
	Confirmed   bool
}

// DeleteTransaction removes a transaction outright.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, input DeleteTransactionInput) error {
	if !input.Confirmed {
		return domain.ErrDeleteNotConfirmed
	}

	transaction, err := uc.getOwned(ctx, input.ID, input.HouseholdID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	err = uc.inTx(ctx, func(tx Tx) error {
		if err := uc.txRepo.Delete(ctx, tx, transaction.ID); err != nil {
			return err
		}

		return uc.outboxRepo.Create(ctx, tx, transactionEvent(uc.idGen.Generate(), domain.EventTypeTransactionDeleted, transaction, now))
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	uc.invalidateReports(ctx, input.HouseholdID)

	return nil
}

// ListTransactions lists a household's full transaction history.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, householdID string) ([]domain.Transaction, error) {
	if err := domain.ValidateHouseholdID(householdID); err != nil {
		return nil, err
	}

	return uc.txRepo.ListByHousehold(ctx, householdID)
}

func (uc *TransactionUseCase) getOwned(ctx context.Context, id, householdID string) (*domain.Transaction, error) {
	transaction, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if transaction.HouseholdID != householdID {
		return nil, domain.ErrTransactionNotFound
	}

	return transaction, nil
}

func (uc *TransactionUseCase) inTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

// invalidateReports drops the household's cached report payloads.
// Best effort: a failed invalidation only extends staleness up to the TTL.
func (uc *TransactionUseCase) invalidateReports(ctx context.Context, householdID string) {
	_ = uc.cache.Delete(ctx, ReportCacheKeys(householdID)...)
}

func transactionEvent(id, eventType string, t *domain.Transaction, now time.Time) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            id,
		HouseholdID:   t.HouseholdID,
		AggregateID:   t.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     eventType,
		Payload: domain.TransactionChangedEvent{
			TransactionID: t.ID,
			HouseholdID:   t.HouseholdID,
			Type:          string(t.Type),
			Amount:        t.Amount.String(),
		},
		CreatedAt: now,
	}
}
