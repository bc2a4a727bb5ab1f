// Package metrics exposes the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsIngested counts settlement documents processed, by outcome.
	DocumentsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlements_documents_ingested_total",
		Help: "Settlement documents processed, labelled by outcome.",
	}, []string{"outcome"})

	// RecordsReconstructed counts loan records emitted by the
	// reconstruction pipeline.
	RecordsReconstructed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlements_records_reconstructed_total",
		Help: "Loan records reconstructed from settlement documents.",
	})

	// ReportsServed counts report computations, by report kind.
	ReportsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlements_reports_served_total",
		Help: "Report computations served, labelled by report kind.",
	}, []string{"report"})
)
