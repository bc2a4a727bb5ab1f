package reporting

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settleline/broker-settlements/internal/domain/loan"
)

type fakeRepo struct {
	daily   []loan.DailyTotal
	brokers []string
	highest *decimal.Decimal
	err     error
}

func (f *fakeRepo) DailyTotals(ctx context.Context, broker string) ([]loan.DailyTotal, error) {
	return f.daily, f.err
}

func (f *fakeRepo) TotalsByDate(ctx context.Context) ([]DateTotal, error) {
	out := make([]DateTotal, 0, len(f.daily))
	for _, d := range f.daily {
		out = append(out, DateTotal{Date: d.Date, Total: d.Amount})
	}
	return out, f.err
}

func (f *fakeRepo) LoanCountsByTier(ctx context.Context) ([]TierCount, error) {
	return nil, f.err
}

func (f *fakeRepo) HighestLoanAmount(ctx context.Context, broker string) (decimal.Decimal, bool, error) {
	if f.highest == nil {
		return decimal.Decimal{}, false, f.err
	}
	return *f.highest, true, f.err
}

func (f *fakeRepo) TotalsInRange(ctx context.Context, start, end time.Time) (decimal.Decimal, bool, error) {
	if f.highest == nil {
		return decimal.Decimal{}, false, f.err
	}
	return *f.highest, true, f.err
}

func (f *fakeRepo) ListBrokers(ctx context.Context) ([]string, error) {
	return f.brokers, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildBrokerReport_ThreePartOrder(t *testing.T) {
	daily := []loan.DailyTotal{
		// Deliberately unordered: the service must sort before bucketizing.
		dt(day(10), "30"),
		dt(day(0), "100"),
		dt(day(7), "50"),
	}

	rows := BuildBrokerReport("Acme Broking", daily)

	// Daily rows first (sorted), then weekly buckets, then monthly.
	require.Len(t, rows, 3+3+1)
	assert.Equal(t, PeriodDaily, rows[0].Period)
	assert.Equal(t, "2024-03-01", rows[0].Date)
	assert.Equal(t, "2024-03-08", rows[1].Date)
	assert.Equal(t, "2024-03-11", rows[2].Date)

	assert.Equal(t, PeriodWeekly, rows[3].Period)
	assert.Equal(t, "2024-03-01", rows[3].Date)
	assert.Equal(t, "2024-03-01-2024-03-08", rows[4].Date)
	assert.Equal(t, "2024-03-11", rows[5].Date)

	// All three dates fall inside one month bucket.
	assert.Equal(t, PeriodMonth, rows[6].Period)
	assert.Equal(t, "2024-03-01", rows[6].Date)
	assert.Equal(t, "180", rows[6].TotalLoanAmount.String())

	for _, row := range rows {
		assert.Equal(t, "Acme Broking", row.Broker)
	}
}

func TestBuildBrokerReport_Empty(t *testing.T) {
	rows := BuildBrokerReport("Acme Broking", nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestBrokerReport_RequiresBrokerName(t *testing.T) {
	svc := NewService(&fakeRepo{}, testLogger())

	_, err := svc.BrokerReport(context.Background(), "")
	var invalid *InputValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "broker", invalid.Field)
}

func TestBrokerReport_RepositoryErrorPropagates(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("connection reset")}, testLogger())

	_, err := svc.BrokerReport(context.Background(), "Acme Broking")
	require.Error(t, err)
	assert.NotErrorAs(t, err, new(*InputValidationError))
}

func TestTotalsInRange_InvalidDates(t *testing.T) {
	svc := NewService(&fakeRepo{}, testLogger())

	for _, dates := range [][2]string{
		{"not-a-date", "2024-03-31"},
		{"2024-03-01", "31/03/2024"},
		{"", ""},
	} {
		_, err := svc.TotalsInRange(context.Background(), dates[0], dates[1])
		var invalid *InputValidationError
		require.ErrorAs(t, err, &invalid)
	}
}

func TestTotalsInRange_EmptyRangeIsZero(t *testing.T) {
	svc := NewService(&fakeRepo{}, testLogger())

	total, err := svc.TotalsInRange(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "0", total.TotalLoanAmount.String())
	assert.Equal(t, "2024-03-01", total.StartDate)
}

func TestHighestLoanAmount_RequiresBrokerName(t *testing.T) {
	svc := NewService(&fakeRepo{}, testLogger())

	_, _, err := svc.HighestLoanAmount(context.Background(), "")
	var invalid *InputValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestSearchBrokers_FuzzyRanking(t *testing.T) {
	svc := NewService(&fakeRepo{brokers: []string{"Acme Broking", "Beta Finance", "Acute Lending"}}, testLogger())

	all, err := svc.SearchBrokers(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Broking", "Acute Lending", "Beta Finance"}, all)

	matched, err := svc.SearchBrokers(context.Background(), "acme")
	require.NoError(t, err)
	require.NotEmpty(t, matched)
	assert.Equal(t, "Acme Broking", matched[0])
}

func TestTotalsByDate_RoundsAtBoundary(t *testing.T) {
	amount := decimal.RequireFromString("1234.56789")
	svc := NewService(&fakeRepo{daily: []loan.DailyTotal{{Date: day(0), Amount: amount}}}, testLogger())

	totals, err := svc.TotalsByDate(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "1234.5679", totals[0].Total.String())
}
