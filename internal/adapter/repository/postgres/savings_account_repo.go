package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/usecase"
)

// SavingsAccountRepository implements usecase.SavingsAccountRepository.
type SavingsAccountRepository struct {
	pool *pgxpool.Pool
}

// NewSavingsAccountRepository creates a new SavingsAccountRepository.
func NewSavingsAccountRepository(pool *pgxpool.Pool) *SavingsAccountRepository {
	return &SavingsAccountRepository{pool: pool}
}

const savingsAccountColumns = `id, household_id, name, starting_amount, current_value, created_at`

// Create inserts a new savings account within a database transaction.
func (r *SavingsAccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.SavingsAccount) error {
	query := `
		INSERT INTO savings_accounts (` + savingsAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		account.ID,
		account.HouseholdID,
		account.Name,
		decimalToNumeric(account.StartingAmount),
		nullDecimalToNumeric(account.CurrentValue),
		timeToPgTimestamptz(account.CreatedAt),
	)

	return err
}

// GetByID retrieves a savings account by ID.
func (r *SavingsAccountRepository) GetByID(ctx context.Context, id string) (*domain.SavingsAccount, error) {
	query := `
		SELECT ` + savingsAccountColumns + `
		FROM savings_accounts
		WHERE id = $1
	`

	account, err := scanSavingsAccount(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSavingsAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Update updates a savings account within a database transaction.
func (r *SavingsAccountRepository) Update(ctx context.Context, tx usecase.Tx, account *domain.SavingsAccount) error {
	query := `
		UPDATE savings_accounts
		SET name = $2, starting_amount = $3, current_value = $4
		WHERE id = $1
	`

	tag, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		account.ID,
		account.Name,
		decimalToNumeric(account.StartingAmount),
		nullDecimalToNumeric(account.CurrentValue),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSavingsAccountNotFound
	}

	return nil
}

// UpdateValue updates only the asserted current value.
func (r *SavingsAccountRepository) UpdateValue(ctx context.Context, tx usecase.Tx, id string, value decimal.Decimal) error {
	query := `
		UPDATE savings_accounts
		SET current_value = $2
		WHERE id = $1
	`

	tag, err := tx.(*Tx).PgxTx().Exec(ctx, query, id, decimalToNumeric(value))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSavingsAccountNotFound
	}

	return nil
}

// ListByHousehold retrieves a household's savings accounts, oldest first.
func (r *SavingsAccountRepository) ListByHousehold(ctx context.Context, householdID string) ([]domain.SavingsAccount, error) {
	query := `
		SELECT ` + savingsAccountColumns + `
		FROM savings_accounts
		WHERE household_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.SavingsAccount
	for rows.Next() {
		account, err := scanSavingsAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}

	return accounts, rows.Err()
}

func scanSavingsAccount(row pgx.Row) (*domain.SavingsAccount, error) {
	var (
		account        domain.SavingsAccount
		startingAmount pgtype.Numeric
		currentValue   pgtype.Numeric
		createdAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.HouseholdID,
		&account.Name,
		&startingAmount,
		&currentValue,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	account.StartingAmount = numericToDecimal(startingAmount)
	account.CurrentValue = numericToNullDecimal(currentValue)
	account.CreatedAt = createdAt.Time

	return &account, nil
}
