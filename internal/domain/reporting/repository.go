package reporting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/settleline/broker-settlements/internal/domain/loan"
)

// DateTotal is the summed loan amount for one settlement date, across all
// brokers.
type DateTotal struct {
	Date  time.Time
	Total decimal.Decimal
}

// TierCount is the number of loans settled on one date in one tier.
type TierCount struct {
	Date  time.Time
	Tier  loan.Tier
	Count int64
}

// Repository is the persistence collaborator for report queries. Result
// ordering is not part of the contract; callers sort where ordering matters.
type Repository interface {
	// DailyTotals returns a broker's summed TotalLoanAmount per settlement
	// date, in arbitrary order.
	DailyTotals(ctx context.Context, broker string) ([]loan.DailyTotal, error)

	// TotalsByDate returns the summed TotalLoanAmount per settlement date
	// across all brokers.
	TotalsByDate(ctx context.Context) ([]DateTotal, error)

	// LoanCountsByTier returns loan counts grouped by settlement date and tier.
	LoanCountsByTier(ctx context.Context) ([]TierCount, error)

	// HighestLoanAmount returns a broker's largest TotalLoanAmount. ok is
	// false when the broker has no loans.
	HighestLoanAmount(ctx context.Context, broker string) (amount decimal.Decimal, ok bool, err error)

	// TotalsInRange sums TotalLoanAmount over settlement dates between start
	// and end inclusive. ok is false when no loans fall in the range.
	TotalsInRange(ctx context.Context, start, end time.Time) (total decimal.Decimal, ok bool, err error)

	// ListBrokers returns the distinct broker names.
	ListBrokers(ctx context.Context) ([]string, error)
}
