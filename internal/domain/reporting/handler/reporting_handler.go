// Package handler exposes the report endpoints. Handlers decode the request,
// delegate to the reporting service and render the Django-era response
// envelope: {"status": "Pass", "details": ...}.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "github.com/settleline/broker-settlements/internal/errors"

	"github.com/settleline/broker-settlements/internal/domain/reporting"
	"github.com/settleline/broker-settlements/pkg/money"
)

// ReportingHandler handles report RPCs.
type ReportingHandler struct {
	reportSvc *reporting.Service
	logger    *slog.Logger
}

// NewReportingHandler creates a reporting handler.
func NewReportingHandler(reportSvc *reporting.Service, logger *slog.Logger) *ReportingHandler {
	return &ReportingHandler{reportSvc: reportSvc, logger: logger}
}

type brokerRequest struct {
	Broker string `json:"broker"`
}

type rangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ListBrokers returns the distinct broker names, optionally fuzzy-filtered
// by the q query parameter.
func (h *ReportingHandler) ListBrokers(w http.ResponseWriter, r *http.Request) {
	brokers, err := h.reportSvc.SearchBrokers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.pass(w, r, brokers)
}

// TotalsByDate reports the summed loan amount per settlement date.
func (h *ReportingHandler) TotalsByDate(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reportSvc.TotalsByDate(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	details := make([]map[string]any, 0, len(totals))
	for _, t := range totals {
		details = append(details, map[string]any{
			"Settlement Date":   t.Date.Format("2006-01-02"),
			"Total Loan Amount": t.Total,
		})
	}
	h.pass(w, r, details)
}

// LoanCountsByTier reports loan counts per settlement date and tier.
func (h *ReportingHandler) LoanCountsByTier(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reportSvc.LoanCountsByTier(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	details := make([]map[string]any, 0, len(counts))
	for _, c := range counts {
		details = append(details, map[string]any{
			"Settlement Date": c.Date.Format("2006-01-02"),
			"Tier":            c.Tier,
			"Number of Loans": c.Count,
		})
	}
	h.pass(w, r, details)
}

// HighestLoanAmount reports a broker's largest single loan.
func (h *ReportingHandler) HighestLoanAmount(w http.ResponseWriter, r *http.Request) {
	var req brokerRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	amount, ok, err := h.reportSvc.HighestLoanAmount(r.Context(), req.Broker)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	details := []map[string]any{}
	if ok {
		details = append(details, map[string]any{
			"Broker":              req.Broker,
			"Highest Loan Amount": money.RoundReport(amount),
		})
	}
	h.pass(w, r, details)
}

// BrokerReport returns the daily/weekly/monthly flat result list.
func (h *ReportingHandler) BrokerReport(w http.ResponseWriter, r *http.Request) {
	rows, failed := h.brokerReportRows(w, r)
	if failed {
		return
	}
	h.pass(w, r, rows)
}

// ExportBrokerReport streams the broker report as an XLSX workbook.
func (h *ReportingHandler) ExportBrokerReport(w http.ResponseWriter, r *http.Request) {
	rows, failed := h.brokerReportRows(w, r)
	if failed {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="broker-report.xlsx"`)
	if err := reporting.WriteBrokerReportXLSX(rows, w); err != nil {
		h.logger.Error("broker report export failed", slog.Any("error", err))
	}
}

// TotalsInRange reports the summed loan amount for an inclusive date range.
func (h *ReportingHandler) TotalsInRange(w http.ResponseWriter, r *http.Request) {
	var req rangeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	total, err := h.reportSvc.TotalsInRange(r.Context(), req.StartDate, req.EndDate)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.pass(w, r, []any{total})
}

// brokerReportRows decodes the broker request and builds the report rows.
// On failure the error response has already been rendered.
func (h *ReportingHandler) brokerReportRows(w http.ResponseWriter, r *http.Request) ([]reporting.ReportRow, bool) {
	var req brokerRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return nil, true
	}

	rows, err := h.reportSvc.BrokerReport(r.Context(), req.Broker)
	if err != nil {
		h.renderError(w, r, err)
		return nil, true
	}
	return rows, false
}

func (h *ReportingHandler) pass(w http.ResponseWriter, r *http.Request, details any) {
	render.JSON(w, r, map[string]any{
		"status":  "Pass",
		"details": details,
	})
}

func (h *ReportingHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *reporting.InputValidationError
	if errors.As(err, &invalid) {
		render.Render(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "INVALID_PARAMETER", invalid.Reason, invalid.Field))
		return
	}
	h.logger.Error("report request failed", slog.Any("error", err))
	render.Render(w, r, apierrors.ErrInternalServer)
}
