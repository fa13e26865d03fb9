// Package metrics exposes Prometheus counters for report parsing. The
// parser itself stays dependency-free; callers record outcomes here
// after each parse.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lavadash/internal/parser"
	"lavadash/pkg/contracts/domain"
)

var (
	reportsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lavadash_reports_parsed_total",
		Help: "Reports parsed, labeled by detected report type.",
	}, []string{"report_type"})

	rowsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lavadash_rows_accepted_total",
		Help: "Data rows accepted as transactions.",
	})

	rowsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lavadash_rows_skipped_total",
		Help: "Data rows filtered out, labeled by skip reason.",
	}, []string{"reason"})
)

// RecordParse updates the counters for one completed parse.
func RecordParse(result domain.ParseResult, outcomes []parser.RowOutcome) {
	reportsParsed.WithLabelValues(string(result.Metadata.ReportType)).Inc()
	for _, o := range outcomes {
		if o.Accepted {
			rowsAccepted.Inc()
			continue
		}
		rowsSkipped.WithLabelValues(string(o.Reason)).Inc()
	}
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
