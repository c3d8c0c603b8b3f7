package scan

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	scansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricelens_scans_total",
			Help: "Completed scan cycles partitioned by terminal status.",
		},
		[]string{"status"},
	)

	scansInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pricelens_scans_in_flight",
		Help: "Number of scan cycles currently executing (0 or 1).",
	})

	// scanDuration uses buckets sized for interactive OCR: sub-second for
	// small frames up to tens of seconds for large ones on slow hardware.
	scanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricelens_scan_duration_seconds",
		Help:    "A histogram of end-to-end scan cycle latencies.",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	})

	pricesFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricelens_prices_found_total",
		Help: "Total price candidates extracted, converted and rendered.",
	})
)

var registerMetricsOnce sync.Once

// RegisterMetrics registers the scan pipeline's collectors with r. It is safe
// to call more than once; registration happens only on the first call.
func RegisterMetrics(r prometheus.Registerer) {
	registerMetricsOnce.Do(func() {
		r.MustRegister(scansTotal, scansInFlight, scanDuration, pricesFound)
	})
}
