package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/settleline/broker-settlements/internal/domain/loan"
)

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

const insertLoanSQL = `
	INSERT INTO loan_settlements (
		xref, app_id, settlement_date, broker, sub_broker,
		borrower_name, description, total_loan_amount,
		commission_rate, upfront, upfront_incl_gst, tier
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// DB is the subset of pgxpool.Pool the loan repository needs.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresRepository implements LoanRepository against Postgres.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository creates a loan repository.
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// BulkInsert writes all records inside one transaction. Amounts are bound as
// decimal strings so the numeric columns keep full precision. The first xref
// collision aborts the transaction and surfaces as a DuplicateKeyError.
func (r *PostgresRepository) BulkInsert(ctx context.Context, records []loan.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		_, err := tx.Exec(ctx, insertLoanSQL,
			rec.Xref,
			rec.AppID,
			rec.SettlementDate,
			rec.Broker,
			rec.SubBroker,
			rec.BorrowerName,
			rec.Description,
			rec.TotalLoanAmount.String(),
			rec.CommissionRate.String(),
			rec.Upfront.String(),
			rec.UpfrontInclGST.String(),
			string(rec.Tier),
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return &DuplicateKeyError{Xref: rec.Xref}
			}
			return fmt.Errorf("insert loan %d: %w", rec.Xref, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bulk insert: %w", err)
	}
	return nil
}
