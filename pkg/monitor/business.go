package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics tracks the import pipeline. Labels carry format names and
// stable error codes only, never input.
type BusinessMetrics struct {
	DetectTotal        *prometheus.CounterVec
	ImportTotal        *prometheus.CounterVec
	ImportErrorTotal   *prometheus.CounterVec
	TestnetRejectTotal prometheus.Counter
}

// Global Metrics Instance
var Business *BusinessMetrics

// InitBusinessMetrics initializes the import pipeline metrics.
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		DetectTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keyimport_detect_total",
			Help: "Detection attempts by detected format",
		}, []string{"format"}),
		ImportTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keyimport_import_total",
			Help: "Successful imports by source format and result type",
		}, []string{"format", "result_type"}),
		ImportErrorTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keyimport_import_error_total",
			Help: "Failed imports by stable error code",
		}, []string{"code"}),
		TestnetRejectTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keyimport_testnet_reject_total",
			Help: "Inputs rejected for carrying testnet key material",
		}),
	}
}
