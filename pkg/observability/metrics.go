package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics the benchmark harness emits around
// a build/search run. The core hnsw package itself records nothing (per
// its no-logging, no-metrics contract); every field here is driven from
// cmd/annbench.
type Metrics struct {
	BuildDuration    prometheus.Histogram
	NodesPerLayer    *prometheus.GaugeVec
	QuantizationUsed prometheus.Gauge

	QueryLatency      prometheus.Histogram
	QueryRecallAt10   prometheus.Gauge
	CandidateSetSize  prometheus.Histogram
}

// NewMetrics creates the harness metrics and registers them on a fresh
// registry of their own, so it may be called more than once per process.
func NewMetrics() *Metrics {
	factory := promauto.With(prometheus.NewRegistry())
	return &Metrics{
		BuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hnswann_build_duration_seconds",
				Help:    "Wall-clock time to build the index.",
				Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
		),
		NodesPerLayer: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hnswann_nodes_per_layer",
				Help: "Number of nodes with topLayer >= layer, after build.",
			},
			[]string{"layer"},
		),
		QuantizationUsed: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hnswann_quantization_enabled",
				Help: "1 if scalar quantization is active for this build, 0 if disabled (near-constant base set).",
			},
		),
		QueryLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hnswann_query_latency_seconds",
				Help:    "Per-query search() latency.",
				Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05},
			},
		),
		QueryRecallAt10: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hnswann_query_recall_at_10",
				Help: "Mean recall over the benchmark query set, against the supplied ground-truth file or else the brute-force oracle.",
			},
		),
		CandidateSetSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hnswann_candidate_set_size",
				Help:    "Size of the layer-0 candidate set returned before re-ranking.",
				Buckets: []float64{10, 25, 50, 100, 150, 200},
			},
		),
	}
}

// RecordBuild records one completed build.
func (m *Metrics) RecordBuild(duration time.Duration, quantizationEnabled bool) {
	m.BuildDuration.Observe(duration.Seconds())
	if quantizationEnabled {
		m.QuantizationUsed.Set(1)
	} else {
		m.QuantizationUsed.Set(0)
	}
}

// RecordNodesAtLayer records the population of one graph layer.
func (m *Metrics) RecordNodesAtLayer(layer, count int) {
	m.NodesPerLayer.WithLabelValues(strconv.Itoa(layer)).Set(float64(count))
}

// RecordQuery records one completed search() call.
func (m *Metrics) RecordQuery(duration time.Duration, candidateSetSize int) {
	m.QueryLatency.Observe(duration.Seconds())
	m.CandidateSetSize.Observe(float64(candidateSetSize))
}

// RecordRecall records the recall@10 measured over a benchmark query batch.
func (m *Metrics) RecordRecall(recallAt10 float64) {
	m.QueryRecallAt10.Set(recallAt10)
}

