// Package loan defines the canonical settlement record shared by the
// ingest pipeline and the reporting layer.
package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier is the coarse size classification of a loan by total amount.
type Tier string

const (
	Tier1 Tier = "Tier 1" // total > 100,000
	Tier2 Tier = "Tier 2" // 50,000 < total <= 100,000
	Tier3 Tier = "Tier 3" // total <= 50,000
)

var (
	tier1Floor = decimal.NewFromInt(100_000)
	tier2Floor = decimal.NewFromInt(50_000)
)

// ClassifyTier derives the tier from the total loan amount. Boundary values
// fall into the lower tier (strict > comparison), so exactly 100,000 is
// Tier 2 and exactly 50,000 is Tier 3. Zero and negative amounts are Tier 3.
func ClassifyTier(total decimal.Decimal) Tier {
	switch {
	case total.GreaterThan(tier1Floor):
		return Tier1
	case total.GreaterThan(tier2Floor):
		return Tier2
	default:
		return Tier3
	}
}

// Record is one settled loan, reconstructed from a tabular PDF report.
// Xref is the primary key. Records are immutable once constructed.
type Record struct {
	Xref            int64
	AppID           int64
	SettlementDate  time.Time
	Broker          string
	SubBroker       string
	BorrowerName    string
	Description     string
	TotalLoanAmount decimal.Decimal
	CommissionRate  decimal.Decimal
	Upfront         decimal.Decimal
	UpfrontInclGST  decimal.Decimal
	Tier            Tier
}

// DailyTotal is a broker's summed TotalLoanAmount for one settlement date.
type DailyTotal struct {
	Date   time.Time
	Amount decimal.Decimal
}
