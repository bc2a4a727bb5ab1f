package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/settleline/broker-settlements/internal/domain/loan"
)

// DB is the subset of pgxpool.Pool the reporting repository needs. Narrow on
// purpose so tests can substitute pgxmock.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements Repository against Postgres. Every query is
// parameterized; broker names and dates never reach the SQL text.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository creates a reporting repository.
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// DailyTotals returns a broker's summed loan amount per settlement date, in
// arbitrary order. Amounts travel as text so no precision is lost between
// numeric and decimal.
func (r *PostgresRepository) DailyTotals(ctx context.Context, broker string) ([]loan.DailyTotal, error) {
	query := `
		SELECT settlement_date, SUM(total_loan_amount)::text
		FROM loan_settlements
		WHERE broker = $1
		GROUP BY settlement_date
	`
	rows, err := r.db.Query(ctx, query, broker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []loan.DailyTotal
	for rows.Next() {
		var (
			date   time.Time
			amount string
		)
		if err := rows.Scan(&date, &amount); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse daily total %q: %w", amount, err)
		}
		totals = append(totals, loan.DailyTotal{Date: date, Amount: d})
	}
	return totals, rows.Err()
}

// TotalsByDate returns the summed loan amount per settlement date across all
// brokers.
func (r *PostgresRepository) TotalsByDate(ctx context.Context) ([]DateTotal, error) {
	query := `
		SELECT settlement_date, SUM(total_loan_amount)::text
		FROM loan_settlements
		GROUP BY settlement_date
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []DateTotal
	for rows.Next() {
		var (
			date   time.Time
			amount string
		)
		if err := rows.Scan(&date, &amount); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse date total %q: %w", amount, err)
		}
		totals = append(totals, DateTotal{Date: date, Total: d})
	}
	return totals, rows.Err()
}

// LoanCountsByTier returns loan counts grouped by settlement date and tier.
func (r *PostgresRepository) LoanCountsByTier(ctx context.Context) ([]TierCount, error) {
	query := `
		SELECT settlement_date, tier, COUNT(*)
		FROM loan_settlements
		GROUP BY settlement_date, tier
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []TierCount
	for rows.Next() {
		var c TierCount
		if err := rows.Scan(&c.Date, &c.Tier, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// HighestLoanAmount returns a broker's largest single loan amount.
func (r *PostgresRepository) HighestLoanAmount(ctx context.Context, broker string) (decimal.Decimal, bool, error) {
	query := `
		SELECT MAX(total_loan_amount)::text
		FROM loan_settlements
		WHERE broker = $1
	`
	var amount *string
	if err := r.db.QueryRow(ctx, query, broker).Scan(&amount); err != nil {
		return decimal.Decimal{}, false, err
	}
	if amount == nil {
		return decimal.Decimal{}, false, nil
	}
	d, err := decimal.NewFromString(*amount)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("parse highest amount %q: %w", *amount, err)
	}
	return d, true, nil
}

// TotalsInRange sums loan amounts over an inclusive settlement-date range.
func (r *PostgresRepository) TotalsInRange(ctx context.Context, start, end time.Time) (decimal.Decimal, bool, error) {
	query := `
		SELECT SUM(total_loan_amount)::text
		FROM loan_settlements
		WHERE settlement_date BETWEEN $1 AND $2
	`
	var amount *string
	if err := r.db.QueryRow(ctx, query, start, end).Scan(&amount); err != nil {
		return decimal.Decimal{}, false, err
	}
	if amount == nil {
		return decimal.Decimal{}, false, nil
	}
	d, err := decimal.NewFromString(*amount)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("parse range total %q: %w", *amount, err)
	}
	return d, true, nil
}

// ListBrokers returns the distinct broker names.
func (r *PostgresRepository) ListBrokers(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT broker FROM loan_settlements`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brokers []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		brokers = append(brokers, b)
	}
	return brokers, rows.Err()
}
