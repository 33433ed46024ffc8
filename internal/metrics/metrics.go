package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sanitizeCallsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "installscripts_sanitize_calls_total",
		Help: "Total number of transcript sanitizer invocations",
	})
	sanitizeBytesRemovedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "installscripts_sanitize_bytes_removed_total",
		Help: "Total number of escape/control bytes removed from transcripts",
	})
	catalogLoadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "installscripts_catalog_loads_total",
		Help: "Total number of catalog data file loads",
	})
	catalogErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "installscripts_catalog_errors_total",
		Help: "Total number of failed catalog data file loads",
	})
	runsRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "installscripts_runs_recorded_total",
		Help: "Total number of script runs recorded",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(
		sanitizeCallsTotal,
		sanitizeBytesRemovedTotal,
		catalogLoadsTotal,
		catalogErrorsTotal,
		runsRecordedTotal,
	)
}

// ObserveSanitize records one sanitizer invocation and how many bytes it removed.
func ObserveSanitize(bytesRemoved int) {
	sanitizeCallsTotal.Inc()
	if bytesRemoved > 0 {
		sanitizeBytesRemovedTotal.Add(float64(bytesRemoved))
	}
}

// IncCatalogLoad increments the catalog load counter.
func IncCatalogLoad() { catalogLoadsTotal.Inc() }

// IncCatalogError increments the failed catalog load counter.
func IncCatalogError() { catalogErrorsTotal.Inc() }

// IncRunRecorded increments the recorded runs counter.
func IncRunRecorded() { runsRecordedTotal.Inc() }
