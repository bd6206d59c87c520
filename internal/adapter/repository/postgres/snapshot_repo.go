package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/usecase"
)

// SnapshotRepository implements usecase.SnapshotRepository. The snapshot
// table is append-only; there is no update or delete statement.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Create appends a snapshot within a database transaction.
func (r *SnapshotRepository) Create(ctx context.Context, tx usecase.Tx, snapshot *domain.SavingsSnapshot) error {
	query := `
		INSERT INTO savings_snapshots (id, household_id, account_id, capital, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		snapshot.ID,
		snapshot.HouseholdID,
		snapshot.AccountID,
		decimalToNumeric(snapshot.Capital),
		decimalToNumeric(snapshot.Value),
		timeToPgTimestamptz(snapshot.CreatedAt),
	)

	return err
}

// ListByAccount retrieves an account's snapshots, oldest first.
func (r *SnapshotRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.SavingsSnapshot, error) {
	query := `
		SELECT id, household_id, account_id, capital, value, created_at
		FROM savings_snapshots
		WHERE account_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []domain.SavingsSnapshot
	for rows.Next() {
		var (
			snapshot  domain.SavingsSnapshot
			capital   pgtype.Numeric
			value     pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&snapshot.ID,
			&snapshot.HouseholdID,
			&snapshot.AccountID,
			&capital,
			&value,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		snapshot.Capital = numericToDecimal(capital)
		snapshot.Value = numericToDecimal(value)
		snapshot.CreatedAt = createdAt.Time

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}
