package chaincfg

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusGenesisSearchIterations prometheus.Counter
	prometheusGenesisBuild            prometheus.Histogram
	prometheusActiveNetwork           *prometheus.GaugeVec
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusGenesisSearchIterations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chaincfg",
			Name:      "genesis_search_iterations_total",
			Help:      "Number of headers hashed while searching for a genesis nonce",
		},
	)

	prometheusGenesisBuild = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "chaincfg",
			Name:      "genesis_build_seconds",
			Help:      "Histogram of genesis block construction and verification",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		},
	)

	prometheusActiveNetwork = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "chaincfg",
			Name:      "active_network",
			Help:      "Set to 1 for the network whose parameters are selected",
		},
		[]string{"network"},
	)
}
