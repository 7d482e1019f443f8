package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ltz"

// Result label values.
const (
	ResultValid    = "valid"
	ResultInvalid  = "invalid"
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultOK       = "ok"
	ResultMismatch = "mismatch"
)

// Metrics holds all Prometheus collectors of the node. It is passed to the
// components that record metrics instead of being reached through globals.
type Metrics struct {
	// Validation metrics
	transactionsValidatedTotal *prometheus.CounterVec

	// Mempool metrics
	mempoolTransactionsTotal *prometheus.CounterVec
	mempoolSize              prometheus.Gauge

	// Mining metrics
	blocksMinedTotal prometheus.Counter
	miningTries      prometheus.Histogram

	// Parameter fetch metrics
	paramsBytesFetched  *prometheus.CounterVec
	paramsVerifiedTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		transactionsValidatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_validated_total",
				Help:      "Total number of transactions checked in isolation by result and reject reason",
			},
			[]string{"result", "reason"},
		),

		mempoolTransactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mempool_transactions_total",
				Help:      "Total number of transactions offered to the mempool by result and reject code",
			},
			[]string{"result", "code"},
		),
		mempoolSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "mempool_size",
				Help:      "Number of transactions in the mempool",
			},
		),

		blocksMinedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "blocks_mined_total",
				Help:      "Total number of blocks whose proof of work was found",
			},
		),
		miningTries: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "mining_tries",
				Help:      "Number of nonces tried per mined block",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
			},
		),

		paramsBytesFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "zkparams_bytes_fetched_total",
				Help:      "Total number of zk-SNARK parameter bytes downloaded",
			},
			[]string{"file"},
		),
		paramsVerifiedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "zkparams_verified_total",
				Help:      "Total number of zk-SNARK parameter checksum verifications by result",
			},
			[]string{"file", "result"},
		),
	}
}

// Validation metric helpers

// RecordTransactionValidated records the outcome of a transaction check. An
// empty reason means the transaction passed.
func (m *Metrics) RecordTransactionValidated(reason string) {
	result := ResultValid
	if reason != "" {
		result = ResultInvalid
	}
	m.transactionsValidatedTotal.WithLabelValues(result, reason).Inc()
}

// Mempool metric helpers

// RecordMempoolTransaction records a transaction offered to the mempool. An
// empty code means it was accepted.
func (m *Metrics) RecordMempoolTransaction(code string) {
	result := ResultAccepted
	if code != "" {
		result = ResultRejected
	}
	m.mempoolTransactionsTotal.WithLabelValues(result, code).Inc()
}

// SetMempoolSize sets the current number of transactions in the mempool.
func (m *Metrics) SetMempoolSize(size int) {
	m.mempoolSize.Set(float64(size))
}

// Mining metric helpers

// RecordBlockMined records a mined block and the number of nonces it took.
func (m *Metrics) RecordBlockMined(tries uint64) {
	m.blocksMinedTotal.Inc()
	m.miningTries.Observe(float64(tries))
}

// Parameter fetch metric helpers

// AddParamsBytesFetched records downloaded bytes of a parameters file.
func (m *Metrics) AddParamsBytesFetched(file string, count int) {
	m.paramsBytesFetched.WithLabelValues(file).Add(float64(count))
}

// RecordParamsVerified records a checksum verification of a parameters file.
func (m *Metrics) RecordParamsVerified(file string, ok bool) {
	result := ResultOK
	if !ok {
		result = ResultMismatch
	}
	m.paramsVerifiedTotal.WithLabelValues(file, result).Inc()
}
