package tabular

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/settleline/broker-settlements/internal/domain/loan"
	"github.com/settleline/broker-settlements/pkg/money"
)

// settlementDateLayout is the report's date format, day first.
const settlementDateLayout = "02/01/2006"

// StagedRecord is the fully disambiguated row: the split fields plus the
// borrower name pulled out of the free text. Still untyped; Coerce is the
// only place text becomes values.
type StagedRecord struct {
	SplitRow
	BorrowerName string
}

// Coerce converts a staged record into the canonical typed form. Any parse
// failure is fatal for the document and surfaces as a ParseError.
func Coerce(rowIdx int, rec StagedRecord) (loan.Record, error) {
	date, err := time.Parse(settlementDateLayout, rec.SettlementDate)
	if err != nil {
		return loan.Record{}, &ParseError{Row: rowIdx, Column: "settlement_date", Value: rec.SettlementDate, Err: err}
	}

	appID, err := coerceInt(rowIdx, "app_id", rec.AppID)
	if err != nil {
		return loan.Record{}, err
	}
	xref, err := coerceInt(rowIdx, "xref", rec.Xref)
	if err != nil {
		return loan.Record{}, err
	}

	total, err := coerceAmount(rowIdx, "total_loan_amount", rec.TotalLoanAmount)
	if err != nil {
		return loan.Record{}, err
	}
	rate, err := coerceAmount(rowIdx, "commission_rate", rec.CommissionRate)
	if err != nil {
		return loan.Record{}, err
	}
	upfront, err := coerceAmount(rowIdx, "upfront", rec.Upfront)
	if err != nil {
		return loan.Record{}, err
	}
	upfrontGST, err := coerceAmount(rowIdx, "upfront_incl_gst", rec.UpfrontInclGST)
	if err != nil {
		return loan.Record{}, err
	}

	return loan.Record{
		Xref:            xref,
		AppID:           appID,
		SettlementDate:  date,
		Broker:          rec.Broker,
		SubBroker:       rec.SubBroker,
		BorrowerName:    rec.BorrowerName,
		Description:     rec.Description,
		TotalLoanAmount: total,
		CommissionRate:  rate,
		Upfront:         upfront,
		UpfrontInclGST:  upfrontGST,
		Tier:            loan.ClassifyTier(total),
	}, nil
}

func coerceInt(rowIdx int, column, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &ParseError{Row: rowIdx, Column: column, Value: value, Err: err}
	}
	return n, nil
}

func coerceAmount(rowIdx int, column, value string) (decimal.Decimal, error) {
	d, err := money.ParseAmount(value)
	if err != nil {
		return decimal.Decimal{}, &ParseError{Row: rowIdx, Column: column, Value: value, Err: err}
	}
	return d, nil
}
