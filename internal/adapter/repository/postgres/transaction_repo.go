package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, household_id, type, amount, category, description, date, savings_account_id, created_at`

// Create inserts a new transaction within a database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		t.ID,
		t.HouseholdID,
		string(t.Type),
		decimalToNumeric(t.Amount),
		t.Category,
		t.Description,
		timeToPgTimestamptz(t.Date),
		t.SavingsAccountID,
		timeToPgTimestamptz(t.CreatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
	`

	t, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Update updates a transaction within a database transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $2, amount = $3, category = $4, description = $5, date = $6, savings_account_id = $7
		WHERE id = $1
	`

	tag, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		t.ID,
		string(t.Type),
		decimalToNumeric(t.Amount),
		t.Category,
		t.Description,
		timeToPgTimestamptz(t.Date),
		t.SavingsAccountID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction within a database transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Tx, id string) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// ListByHousehold retrieves a household's transactions, newest first.
func (r *TransactionRepository) ListByHousehold(ctx context.Context, householdID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE household_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListDepositsByHousehold retrieves a household's saving deposits, newest first.
func (r *TransactionRepository) ListDepositsByHousehold(ctx context.Context, householdID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE household_id = $1 AND type = $2
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, householdID, string(domain.TypeSavingDeposit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// SumDepositsByAccount sums the saving deposits linked to an account.
func (r *TransactionRepository) SumDepositsByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE savings_account_id = $1 AND type = $2
	`

	var sum pgtype.Numeric
	err := r.pool.QueryRow(ctx, query, accountID, string(domain.TypeSavingDeposit)).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *t)
	}

	return txs, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t         domain.Transaction
		typ       string
		amount    pgtype.Numeric
		date      pgtype.Timestamptz
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&t.ID,
		&t.HouseholdID,
		&typ,
		&amount,
		&t.Category,
		&t.Description,
		&date,
		&t.SavingsAccountID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.Type = domain.TransactionType(typ)
	t.Amount = numericToDecimal(amount)
	t.Date = date.Time
	t.CreatedAt = createdAt.Time

	return &t, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func nullDecimalToNumeric(d decimal.NullDecimal) pgtype.Numeric {
	if !d.Valid {
		return pgtype.Numeric{}
	}

	return decimalToNumeric(d.Decimal)
}

func numericToNullDecimal(n pgtype.Numeric) decimal.NullDecimal {
	if !n.Valid {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(numericToDecimal(n))
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
