package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestsTotal tracks successful playlist ingestions by origin kind
	IngestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_catalog_ingests_total",
		Help: "Total number of successful playlist ingestions",
	}, []string{"origin"})

	// IngestFailures tracks failed ingestions by reason
	IngestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_catalog_ingest_failures_total",
		Help: "Total number of failed playlist ingestions",
	}, []string{"reason"})

	// EntriesIngested tracks classified entries by content type
	EntriesIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_catalog_entries_ingested_total",
		Help: "Total number of catalog entries produced by ingestion",
	}, []string{"content_type"})

	// SourcesStored tracks the number of playlist sources in the store
	SourcesStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "iptv_catalog_sources_stored",
		Help: "Number of playlist sources currently stored",
	})

	// Exports tracks playlist export downloads
	Exports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iptv_catalog_exports_total",
		Help: "Total number of playlist exports",
	})
)

// RecordIngest increments the ingest counter for an origin kind
func RecordIngest(origin string) {
	IngestsTotal.WithLabelValues(origin).Inc()
}

// RecordIngestFailure increments the failure counter for a reason
func RecordIngestFailure(reason string) {
	IngestFailures.WithLabelValues(reason).Inc()
}

// RecordEntries adds to the entry counter for a content type
func RecordEntries(contentType string, count int) {
	EntriesIngested.WithLabelValues(contentType).Add(float64(count))
}

// RecordExport increments the export counter
func RecordExport() {
	Exports.Inc()
}

// SetSourcesStored sets the stored source count
func SetSourcesStored(count int) {
	SourcesStored.Set(float64(count))
}
