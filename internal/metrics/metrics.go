// Package metrics records run statistics and writes them in the Prometheus
// text format for the node exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sot/schedule-view/internal/report"
)

const namespace = "schedule_view"

// Run holds the metrics of one page update
type Run struct {
	registry *prometheus.Registry

	entries       *prometheus.GaugeVec
	loads         *prometheus.GaugeVec
	sourceRecords *prometheus.GaugeVec
	pageBytes     prometheus.Gauge
	duration      prometheus.Gauge
	lastSuccess   prometheus.Gauge
}

// NewRun creates the metrics on a private registry
func NewRun() *Run {
	r := &Run{registry: prometheus.NewRegistry()}

	r.entries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "entries",
		Help:      "Entries on the page by kind",
	}, []string{"kind"})
	r.loads = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "loads",
		Help:      "Load entries by run status",
	}, []string{"status"})
	r.sourceRecords = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "source_records",
		Help:      "Records read from each input source",
	}, []string{"source"})
	r.pageBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "page_bytes",
		Help:      "Size of the written page",
	})
	r.duration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Time spent on the last page update",
	})
	r.lastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful page update",
	})

	r.registry.MustRegister(
		r.entries, r.loads, r.sourceRecords,
		r.pageBytes, r.duration, r.lastSuccess,
	)
	return r
}

// ObserveSource records how many records a source provided
func (r *Run) ObserveSource(source string, n int) {
	r.sourceRecords.WithLabelValues(source).Set(float64(n))
}

// ObserveSummary records the entry counts of the page
func (r *Run) ObserveSummary(s report.Summary) {
	r.entries.WithLabelValues(report.KindLoad.String()).Set(float64(s.Loads))
	r.entries.WithLabelValues(report.KindNotRun.String()).Set(float64(s.NotRun))
	r.entries.WithLabelValues(report.KindCmdEvent.String()).Set(float64(s.CmdEvents))

	r.loads.WithLabelValues("nominal").Set(float64(s.Nominal))
	r.loads.WithLabelValues("interrupted").Set(float64(s.Interrupted))
	r.loads.WithLabelValues("unknown").Set(float64(s.Unclassified))
}

// ObserveSuccess records the page size and timing of a completed update
func (r *Run) ObserveSuccess(pageBytes int64, started, finished time.Time) {
	r.pageBytes.Set(float64(pageBytes))
	r.duration.Set(finished.Sub(started).Seconds())
	r.lastSuccess.Set(float64(finished.Unix()))
}

// Gatherer exposes the registry
func (r *Run) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the metrics to path atomically
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
