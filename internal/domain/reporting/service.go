package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"

	"github.com/settleline/broker-settlements/internal/domain/loan"
	"github.com/settleline/broker-settlements/pkg/metrics"
	"github.com/settleline/broker-settlements/pkg/money"
)

// rangeDateLayout is the wire format for report date-range parameters.
const rangeDateLayout = "2006-01-02"

// ReportRow is one row of the flat broker report. JSON keys match the
// reporting surface's historical shape.
type ReportRow struct {
	Broker          string          `json:"Broker"`
	Date            string          `json:"Date"`
	TotalLoanAmount decimal.Decimal `json:"Total Loan Amount"`
	Period          Period          `json:"Period"`
}

// RangeTotal is the response row for a date-range total.
type RangeTotal struct {
	StartDate       string          `json:"Start Date"`
	EndDate         string          `json:"End Date"`
	TotalLoanAmount decimal.Decimal `json:"Total Loan Amount"`
}

// Service computes report responses from the persistence collaborator.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a reporting service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// BrokerReport returns the three-part flat result list for one broker: all
// daily rows first, then every weekly bucket entry, then every monthly
// bucket entry.
func (s *Service) BrokerReport(ctx context.Context, broker string) ([]ReportRow, error) {
	if broker == "" {
		return nil, &InputValidationError{Field: "broker", Reason: "broker name is required"}
	}

	daily, err := s.repo.DailyTotals(ctx, broker)
	if err != nil {
		return nil, fmt.Errorf("query daily totals for %s: %w", broker, err)
	}

	rows := BuildBrokerReport(broker, daily)
	metrics.ReportsServed.WithLabelValues("broker_report").Inc()
	s.logger.Info("broker report built",
		slog.String("broker", broker),
		slog.Int("rows", len(rows)),
	)
	return rows, nil
}

// BuildBrokerReport assembles the report rows from a broker's daily totals.
// The input may arrive in arbitrary order; it is sorted ascending by date
// before bucketizing.
// Empty input yields an empty (non-nil) result, not an error. Amounts are
// rounded to the reporting scale here and nowhere earlier.
func BuildBrokerReport(broker string, daily []loan.DailyTotal) []ReportRow {
	SortDailyTotals(daily)

	rows := make([]ReportRow, 0, len(daily)*2)
	for _, d := range daily {
		rows = append(rows, ReportRow{
			Broker:          broker,
			Date:            dateLabel(d.Date),
			TotalLoanAmount: money.RoundReport(d.Amount),
			Period:          PeriodDaily,
		})
	}
	for _, e := range WeeklyBuckets(daily).Entries() {
		rows = append(rows, ReportRow{
			Broker:          broker,
			Date:            e.Label,
			TotalLoanAmount: money.RoundReport(e.Amount),
			Period:          PeriodWeekly,
		})
	}
	for _, e := range MonthlyBuckets(daily).Entries() {
		rows = append(rows, ReportRow{
			Broker:          broker,
			Date:            e.Label,
			TotalLoanAmount: money.RoundReport(e.Amount),
			Period:          PeriodMonth,
		})
	}
	return rows
}

// TotalsByDate returns the summed loan amount per settlement date across all
// brokers, ascending by date, rounded at the boundary.
func (s *Service) TotalsByDate(ctx context.Context) ([]DateTotal, error) {
	totals, err := s.repo.TotalsByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("query totals by date: %w", err)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date.Before(totals[j].Date) })
	for i := range totals {
		totals[i].Total = money.RoundReport(totals[i].Total)
	}
	metrics.ReportsServed.WithLabelValues("totals_by_date").Inc()
	return totals, nil
}

// LoanCountsByTier returns loan counts grouped by settlement date and tier.
func (s *Service) LoanCountsByTier(ctx context.Context) ([]TierCount, error) {
	counts, err := s.repo.LoanCountsByTier(ctx)
	if err != nil {
		return nil, fmt.Errorf("query loan counts by tier: %w", err)
	}
	metrics.ReportsServed.WithLabelValues("loan_counts").Inc()
	return counts, nil
}

// HighestLoanAmount returns a broker's largest single loan amount. ok is
// false when the broker has no loans.
func (s *Service) HighestLoanAmount(ctx context.Context, broker string) (decimal.Decimal, bool, error) {
	if broker == "" {
		return decimal.Decimal{}, false, &InputValidationError{Field: "broker", Reason: "broker name is required"}
	}
	amount, ok, err := s.repo.HighestLoanAmount(ctx, broker)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("query highest loan amount for %s: %w", broker, err)
	}
	metrics.ReportsServed.WithLabelValues("highest_loan").Inc()
	return amount, ok, nil
}

// TotalsInRange sums loan amounts over an inclusive settlement-date range
// given as YYYY-MM-DD strings. Unparsable dates reject the request.
func (s *Service) TotalsInRange(ctx context.Context, startStr, endStr string) (*RangeTotal, error) {
	start, err := time.Parse(rangeDateLayout, startStr)
	if err != nil {
		return nil, &InputValidationError{Field: "start_date", Reason: "enter a valid start and end date"}
	}
	end, err := time.Parse(rangeDateLayout, endStr)
	if err != nil {
		return nil, &InputValidationError{Field: "end_date", Reason: "enter a valid start and end date"}
	}

	total, ok, err := s.repo.TotalsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("query totals in range: %w", err)
	}
	if !ok {
		total = decimal.Zero
	}
	metrics.ReportsServed.WithLabelValues("totals_in_range").Inc()
	return &RangeTotal{
		StartDate:       startStr,
		EndDate:         endStr,
		TotalLoanAmount: money.RoundReport(total),
	}, nil
}

// SearchBrokers returns the distinct broker names, optionally narrowed by a
// fuzzy query and ranked by closeness.
func (s *Service) SearchBrokers(ctx context.Context, query string) ([]string, error) {
	brokers, err := s.repo.ListBrokers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brokers: %w", err)
	}
	if query == "" {
		sort.Strings(brokers)
		return brokers, nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, brokers)
	sort.Sort(ranks)
	matched := make([]string, 0, len(ranks))
	for _, r := range ranks {
		matched = append(matched, r.Target)
	}
	return matched, nil
}
