package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/infrastructure/metrics"
	"github.com/iho/homebudget/internal/report"
)

// SavingsUseCase handles savings account business logic. Every mutation of
// an account appends a snapshot of the resulting capital/value pair; the
// snapshot log is append-only.
type SavingsUseCase struct {
	txManager    TxManager
	accountRepo  SavingsAccountRepository
	snapshotRepo SnapshotRepository
	txRepo       TransactionRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
}

// NewSavingsUseCase creates a new SavingsUseCase.
func NewSavingsUseCase(
	txManager TxManager,
	accountRepo SavingsAccountRepository,
	snapshotRepo SnapshotRepository,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *SavingsUseCase {
	return &SavingsUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		txRepo:       txRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		retrier:      retrier,
		metrics:      metrics,
	}
}

// CreateAccountInput represents input for creating a savings account.
type CreateAccountInput struct {
	HouseholdID    string
	Name           string
	StartingAmount decimal.Decimal
}

// CreateAccount creates a savings account and its initial snapshot, both in
// one transaction. The initial snapshot records the starting amount as both
// capital and value.
func (uc *SavingsUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.SavingsAccount, error) {
	if err := domain.ValidateHouseholdID(input.HouseholdID); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.StartingAmount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.SavingsAccount{
		ID:             uc.idGen.Generate(),
		HouseholdID:    input.HouseholdID,
		Name:           input.Name,
		StartingAmount: input.StartingAmount,
		CurrentValue:   decimal.NewNullDecimal(input.StartingAmount),
		CreatedAt:      now,
	}

	err := uc.retryTx(ctx, func(tx Tx) error {
		if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
			return err
		}

		if err := uc.appendSnapshot(ctx, tx, account, input.StartingAmount, input.StartingAmount, now); err != nil {
			return err
		}

		return uc.outboxRepo.Create(ctx, tx, accountEvent(uc.idGen.Generate(), domain.EventTypeSavingsAccountCreated, account, now))
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SavingsAccountsCreated.Inc()
		uc.metrics.SnapshotsAppended.Inc()
	}

	return account, nil
}

// UpdateAccountInput represents input for a full savings account edit.
type UpdateAccountInput struct {
	ID             string
	HouseholdID    string
	Name           string
	StartingAmount decimal.Decimal
	CurrentValue   decimal.Decimal
}

// UpdateAccount edits name, starting amount and current value. Capital is
// re-derived from the current deposit sum and recorded in a new snapshot
// together with the asserted value.
func (uc *SavingsUseCase) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.SavingsAccount, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.StartingAmount); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.CurrentValue); err != nil {
		return nil, err
	}

	account, err := uc.getOwned(ctx, input.ID, input.HouseholdID)
	if err != nil {
		return nil, err
	}

	deposits, err := uc.txRepo.SumDepositsByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	capital := input.StartingAmount.Add(deposits)

	account.Name = input.Name
	account.StartingAmount = input.StartingAmount
	account.CurrentValue = decimal.NewNullDecimal(input.CurrentValue)

	err = uc.retryTx(ctx, func(tx Tx) error {
		if err := uc.accountRepo.Update(ctx, tx, account); err != nil {
			return err
		}

		if err := uc.appendSnapshot(ctx, tx, account, capital, input.CurrentValue, now); err != nil {
			return err
		}

		return uc.outboxRepo.Create(ctx, tx, accountEvent(uc.idGen.Generate(), domain.EventTypeSavingsAccountUpdated, account, now))
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SnapshotsAppended.Inc()
	}

	return account, nil
}

// UpdateValueInput represents input for a quick current-value update.
type UpdateValueInput struct {
	ID          string
	HouseholdID string
	Value       decimal.Decimal
}

// UpdateValue asserts a new market value without touching anything else.
// The appended snapshot carries the unchanged capital and the new value.
func (uc *SavingsUseCase) UpdateValue(ctx context.Context, input UpdateValueInput) (*domain.SavingsAccount, error) {
	if err := domain.ValidateAmount(input.Value); err != nil {
		return nil, err
	}

	account, err := uc.getOwned(ctx, input.ID, input.HouseholdID)
	if err != nil {
		return nil, err
	}

	deposits, err := uc.txRepo.SumDepositsByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	capital := account.StartingAmount.Add(deposits)

	account.CurrentValue = decimal.NewNullDecimal(input.Value)

	err = uc.retryTx(ctx, func(tx Tx) error {
		if err := uc.accountRepo.UpdateValue(ctx, tx, account.ID, input.Value); err != nil {
			return err
		}

		return uc.appendSnapshot(ctx, tx, account, capital, input.Value, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SavingsValueUpdates.Inc()
		uc.metrics.SnapshotsAppended.Inc()
	}

	return account, nil
}

// ListWithStats returns the household's accounts enriched with deposit,
// capital and profit figures derived from linked saving deposits.
func (uc *SavingsUseCase) ListWithStats(ctx context.Context, householdID string) ([]report.SavingsStats, error) {
	if err := domain.ValidateHouseholdID(householdID); err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	deposits, err := uc.txRepo.ListDepositsByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	return report.BuildSavingsStats(accounts, deposits), nil
}

// Snapshots returns an account's value history, oldest first.
func (uc *SavingsUseCase) Snapshots(ctx context.Context, householdID, accountID string) ([]domain.SavingsSnapshot, error) {
	if _, err := uc.getOwned(ctx, accountID, householdID); err != nil {
		return nil, err
	}

	return uc.snapshotRepo.ListByAccount(ctx, accountID)
}

func (uc *SavingsUseCase) getOwned(ctx context.Context, id, householdID string) (*domain.SavingsAccount, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.HouseholdID != householdID {
		return nil, domain.ErrSavingsAccountNotFound
	}

	return account, nil
}

func (uc *SavingsUseCase) appendSnapshot(ctx context.Context, tx Tx, account *domain.SavingsAccount, capital, value decimal.Decimal, now time.Time) error {
	snapshot := &domain.SavingsSnapshot{
		ID:          uc.idGen.Generate(),
		HouseholdID: account.HouseholdID,
		AccountID:   account.ID,
		Capital:     capital,
		Value:       value,
		CreatedAt:   now,
	}

	if err := uc.snapshotRepo.Create(ctx, tx, snapshot); err != nil {
		return err
	}

	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		HouseholdID:   account.HouseholdID,
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeSavingsAccount,
		EventType:     domain.EventTypeSnapshotAppended,
		Payload: domain.SnapshotAppendedEvent{
			SnapshotID: snapshot.ID,
			AccountID:  account.ID,
			Capital:    capital.String(),
			Value:      value.String(),
		},
		CreatedAt: now,
	})
}

func (uc *SavingsUseCase) retryTx(ctx context.Context, fn func(tx Tx) error) error {
	return uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}

		if err := fn(tx); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}

		return tx.Commit(ctx)
	})
}

func accountEvent(id, eventType string, account *domain.SavingsAccount, now time.Time) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            id,
		HouseholdID:   account.HouseholdID,
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeSavingsAccount,
		EventType:     eventType,
		Payload: domain.SavingsAccountChangedEvent{
			AccountID:   account.ID,
			HouseholdID: account.HouseholdID,
			Name:        account.Name,
		},
		CreatedAt: now,
	}
}
