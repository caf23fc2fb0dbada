package materialize

import (
	"github.com/brimdata/colmat/colerr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	batches   prometheus.Counter
	rows      prometheus.Counter
	failures  *prometheus.CounterVec
	batchRows prometheus.Histogram
}

// NewMetrics registers the materializer's collectors with registerer, or
// with a private registry if registerer is nil.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	factory := promauto.With(registerer)
	return &Metrics{
		batches: factory.NewCounter(prometheus.CounterOpts{
			Name: "colmat_batches_total",
			Help: "Number of row batches appended.",
		}),
		rows: factory.NewCounter(prometheus.CounterOpts{
			Name: "colmat_rows_total",
			Help: "Number of rows materialized.",
		}),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "colmat_failures_total",
				Help: "Number of failed materializations.",
			},
			[]string{"kind"},
		),
		batchRows: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "colmat_batch_rows",
			Help:    "Rows per batch as chosen by the source.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}

func (m *Metrics) batch(rows int) {
	m.batches.Inc()
	m.rows.Add(float64(rows))
	m.batchRows.Observe(float64(rows))
}

func (m *Metrics) failure(err error) {
	m.failures.WithLabelValues(colerr.KindOf(err).String()).Inc()
}
