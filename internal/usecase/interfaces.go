package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
)

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, t *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Tx, t *domain.Transaction) error
	Delete(ctx context.Context, tx Tx, id string) error
	ListByHousehold(ctx context.Context, householdID string) ([]domain.Transaction, error)
	ListDepositsByHousehold(ctx context.Context, householdID string) ([]domain.Transaction, error)
	SumDepositsByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// SavingsAccountRepository defines data access for savings accounts.
type SavingsAccountRepository interface {
	Create(ctx context.Context, tx Tx, account *domain.SavingsAccount) error
	GetByID(ctx context.Context, id string) (*domain.SavingsAccount, error)
	Update(ctx context.Context, tx Tx, account *domain.SavingsAccount) error
	UpdateValue(ctx context.Context, tx Tx, id string, value decimal.Decimal) error
	ListByHousehold(ctx context.Context, householdID string) ([]domain.SavingsAccount, error)
}

// SnapshotRepository defines data access for savings snapshots.
// Snapshots are append-only: there is no update or delete.
type SnapshotRepository interface {
	Create(ctx context.Context, tx Tx, snapshot *domain.SavingsSnapshot) error
	ListByAccount(ctx context.Context, accountID string) ([]domain.SavingsSnapshot, error)
}

// CategoryRepository defines data access for household categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	ListByHousehold(ctx context.Context, householdID string) ([]domain.Category, error)
}

// OutboxRepository defines data access for data-change events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Tx, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Tx represents a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
