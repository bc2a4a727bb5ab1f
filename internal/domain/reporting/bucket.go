// Package reporting computes broker-level time-bucketed financial summaries
// from per-date settlement totals: a daily pass-through plus weekly and
// monthly rollups produced by a single-pass forward scan.
package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/settleline/broker-settlements/internal/domain/loan"
)

// Period tags one report row with the granularity it belongs to.
type Period string

const (
	PeriodDaily  Period = "Daily"
	PeriodWeekly Period = "Weekly"
	PeriodMonth  Period = "Month"
)

const dateLabelLayout = "2006-01-02"

// BucketEntry is one labelled aggregate in a bucket series. The label is
// either a bare start date or a "start-end" range for a closed bucket.
type BucketEntry struct {
	Label  string
	Amount decimal.Decimal
}

// BucketSeries is an insertion-ordered mapping from bucket label to summed
// amount. It grows monotonically as the daily series is consumed in date
// order; labels are never removed, so a closed bucket's range key coexists
// with its bare-date running-total key.
type BucketSeries struct {
	order  []string
	totals map[string]decimal.Decimal
}

// NewBucketSeries returns an empty series.
func NewBucketSeries() *BucketSeries {
	return &BucketSeries{totals: make(map[string]decimal.Decimal)}
}

func (s *BucketSeries) put(label string, amount decimal.Decimal) {
	if _, ok := s.totals[label]; !ok {
		s.order = append(s.order, label)
	}
	s.totals[label] = amount
}

func (s *BucketSeries) accumulate(label string, amount decimal.Decimal) {
	s.put(label, s.totals[label].Add(amount))
}

// Get returns the amount for a label.
func (s *BucketSeries) Get(label string) (decimal.Decimal, bool) {
	d, ok := s.totals[label]
	return d, ok
}

// Len returns the number of entries.
func (s *BucketSeries) Len() int { return len(s.order) }

// Entries returns the series in insertion order.
func (s *BucketSeries) Entries() []BucketEntry {
	out := make([]BucketEntry, 0, len(s.order))
	for _, label := range s.order {
		out = append(out, BucketEntry{Label: label, Amount: s.totals[label]})
	}
	return out
}

// SortDailyTotals orders a broker's daily totals ascending by date. The
// bucketizers require this ordering; the persistence collaborator makes no
// ordering promise.
func SortDailyTotals(daily []loan.DailyTotal) {
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date)
	})
}

// bucketize is the shared single-pass accumulator. width is the bucket size
// in gap units; gap measures elapsed units between the current bucket start
// and a day. Three cases per day:
//
//	gap == width: the bucket closes. A "start-end" range key snapshots the
//	  running total as it stood before this day; the day's own amount is not
//	  added anywhere and the bucket start does not move. Both the range key
//	  and the bare start-date key remain in the series.
//	gap <  width: the day falls inside the bucket; its amount is added to
//	  the running total under the bare start-date key.
//	gap >  width: the day jumped past the boundary; a fresh bucket starts
//	  at this day with its amount.
//
// Empty input yields an empty series, not an error.
func bucketize(daily []loan.DailyTotal, width int, gap func(start, day time.Time) int) *BucketSeries {
	series := NewBucketSeries()
	if len(daily) == 0 {
		return series
	}

	start := daily[0].Date
	series.put(dateLabel(start), daily[0].Amount)

	for _, day := range daily[1:] {
		switch g := gap(start, day.Date); {
		case g == width:
			running, _ := series.Get(dateLabel(start))
			series.put(dateLabel(start)+"-"+dateLabel(day.Date), running)
		case g < width:
			series.accumulate(dateLabel(start), day.Amount)
		default:
			start = day.Date
			series.put(dateLabel(start), day.Amount)
		}
	}
	return series
}

// WeeklyBuckets rolls an ordered daily series into week buckets. The gap
// unit is elapsed calendar days; a bucket is exactly 7 days wide.
func WeeklyBuckets(daily []loan.DailyTotal) *BucketSeries {
	return bucketize(daily, 7, daysBetween)
}

// MonthlyBuckets rolls an ordered daily series into month buckets. The gap
// unit is elapsed whole calendar months; a bucket is exactly 1 month wide.
func MonthlyBuckets(daily []loan.DailyTotal) *BucketSeries {
	return bucketize(daily, 1, monthsBetween)
}

func dateLabel(d time.Time) string {
	return d.Format(dateLabelLayout)
}

// daysBetween returns elapsed calendar days from a to b, ignoring any
// time-of-day component.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// monthsBetween returns elapsed whole calendar months from a to b: the month
// count only ticks once b's day-of-month reaches a's.
func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}
