// Package metrics exposes Prometheus collectors for the HTTP surface and the
// query engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "hireboard"

// Engine Prometheus metrics.
var (
	RecordsScannedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_scanned_total",
			Help:      "Records loaded from the store for filtering or aggregation",
		},
		[]string{"collection"},
	)

	RecordsMatchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_matched_total",
			Help:      "Records that survived filtering, before limits",
		},
		[]string{"collection"},
	)

	RecordsInsertedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_inserted_total",
			Help:      "Records accepted by the insert path",
		},
		[]string{"collection"},
	)

	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Store failures by operation",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestDuration,
		httpRequestsTotal,
		RecordsScannedTotal,
		RecordsMatchedTotal,
		RecordsInsertedTotal,
		StoreErrorsTotal,
	)
}

// ObserveQuery records one filter pass over a collection.
func ObserveQuery(collection string, scanned, matched int) {
	RecordsScannedTotal.WithLabelValues(collection).Add(float64(scanned))
	RecordsMatchedTotal.WithLabelValues(collection).Add(float64(matched))
}

// ObserveStoreError counts a failed store call. An empty op is reported as
// "unknown".
func ObserveStoreError(op string) {
	if op == "" {
		op = "unknown"
	}
	StoreErrorsTotal.WithLabelValues(op).Inc()
}
