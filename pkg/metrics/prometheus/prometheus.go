package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements OperationsCollector for Prometheus.
type PrometheusCollector struct {
	namespace string

	// Counters
	holdersRegistered *prometheus.CounterVec
	accountsOpened    *prometheus.CounterVec
	deposits          *prometheus.CounterVec
	withdrawals       *prometheus.CounterVec
	statements        prometheus.Counter

	// Histograms
	depositAmounts    *prometheus.HistogramVec
	withdrawalAmounts *prometheus.HistogramVec
	depositLatency    prometheus.Histogram
	withdrawalLatency prometheus.Histogram
	statementLatency  prometheus.Histogram
}

// NewPrometheusCollector creates a new Prometheus metrics collector.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	amountBuckets := prometheus.ExponentialBuckets(1, 10, 7) // 1 to 1M currency units
	latencyBuckets := prometheus.ExponentialBuckets(0.000001, 10, 7)

	return &PrometheusCollector{
		namespace: namespace,
		holdersRegistered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "holders_registered_total",
				Help:      "Total number of holder registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		accountsOpened: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "accounts_opened_total",
				Help:      "Total number of account-open attempts by outcome",
			},
			[]string{"outcome"},
		),
		deposits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deposits_total",
				Help:      "Total number of deposit attempts by outcome",
			},
			[]string{"outcome"},
		),
		withdrawals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "withdrawals_total",
				Help:      "Total number of withdrawal attempts by outcome",
			},
			[]string{"outcome"},
		),
		statements: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "statements_total",
				Help:      "Total number of statements rendered",
			},
		),
		depositAmounts: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "deposit_amount",
				Help:      "Requested deposit amounts in currency units",
				Buckets:   amountBuckets,
			},
			[]string{"outcome"},
		),
		withdrawalAmounts: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "withdrawal_amount",
				Help:      "Requested withdrawal amounts in currency units",
				Buckets:   amountBuckets,
			},
			[]string{"outcome"},
		),
		depositLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "deposit_duration_seconds",
				Help:      "Deposit operation latency",
				Buckets:   latencyBuckets,
			},
		),
		withdrawalLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "withdrawal_duration_seconds",
				Help:      "Withdrawal operation latency",
				Buckets:   latencyBuckets,
			},
		),
		statementLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "statement_duration_seconds",
				Help:      "Statement render latency",
				Buckets:   latencyBuckets,
			},
		),
	}
}

// Register registers all metrics with the given Prometheus registry.
func (pc *PrometheusCollector) Register(registry *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		pc.holdersRegistered,
		pc.accountsOpened,
		pc.deposits,
		pc.withdrawals,
		pc.statements,
		pc.depositAmounts,
		pc.withdrawalAmounts,
		pc.depositLatency,
		pc.withdrawalLatency,
		pc.statementLatency,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordHolderRegistered records a holder registration attempt by outcome.
func (pc *PrometheusCollector) RecordHolderRegistered(outcome string) {
	pc.holdersRegistered.WithLabelValues(outcome).Inc()
}

// RecordAccountOpened records an account-open attempt by outcome.
func (pc *PrometheusCollector) RecordAccountOpened(outcome string) {
	pc.accountsOpened.WithLabelValues(outcome).Inc()
}

// RecordDeposit records a deposit attempt.
func (pc *PrometheusCollector) RecordDeposit(outcome string, amount float64, duration time.Duration) {
	pc.deposits.WithLabelValues(outcome).Inc()
	pc.depositAmounts.WithLabelValues(outcome).Observe(amount)
	pc.depositLatency.Observe(duration.Seconds())
}

// RecordWithdrawal records a withdrawal attempt.
func (pc *PrometheusCollector) RecordWithdrawal(outcome string, amount float64, duration time.Duration) {
	pc.withdrawals.WithLabelValues(outcome).Inc()
	pc.withdrawalAmounts.WithLabelValues(outcome).Observe(amount)
	pc.withdrawalLatency.Observe(duration.Seconds())
}

// RecordStatement records a statement render.
func (pc *PrometheusCollector) RecordStatement(duration time.Duration) {
	pc.statements.Inc()
	pc.statementLatency.Observe(duration.Seconds())
}
