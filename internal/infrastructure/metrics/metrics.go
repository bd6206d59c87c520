package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsRecorded *prometheus.CounterVec
	TransactionsDeleted  prometheus.Counter
	TransactionAmount    prometheus.Histogram

	// Savings metrics
	SavingsAccountsCreated prometheus.Counter
	SavingsValueUpdates    prometheus.Counter
	SnapshotsAppended      prometheus.Counter

	// Category metrics
	CategoriesCreated prometheus.Counter
	CategoriesDeleted prometheus.Counter

	// Report cache metrics
	ReportCacheHits   *prometheus.CounterVec
	ReportCacheMisses *prometheus.CounterVec

	// Outbox metrics
	OutboxEventsPublished prometheus.Counter
	OutboxPublishErrors   prometheus.Counter

	// Database metrics
	DBConnections prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homebudget_transactions_recorded_total",
				Help: "Total number of transactions recorded by type",
			},
			[]string{"type"},
		),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homebudget_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "homebudget_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),

		// Savings metrics
		SavingsAccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homebudget_savings_accounts_created_total",
			Help: "Total number of savings accounts created",
		}),
		SavingsValueUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homebudget_savings_value_updates_total",
			Help: "Total number of savings account value updates",
		}),
		SnapshotsAppended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homebudget_snapshots_appended_total",
			Help: "Total number of savings snapshots appended",
		}),

		// Category metrics
		CategoriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homebudget_categories_created_total",
			Help: "Total number of custom categories created",
		}),
		CategoriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homebudget_categories_deleted_total",
			Help: "Total number of custom categories deleted",
		}),

		// Report cache metrics
		ReportCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homebudget_report_cache_hits_total",
				Help: "Total report cache hits by report",
			},
			[]string{"report"},
		),
		ReportCacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homebudget_report_cache_misses_total",
				Help: "Total report cache misses by report",
			},
			[]string{"report"},
		),

		// Outbox metrics
		OutboxEventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homebudget_outbox_events_published_total",
			Help: "Total number of outbox events published",
		}),
		OutboxPublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homebudget_outbox_publish_errors_total",
			Help: "Total number of outbox publish errors",
		}),

		// Database metrics
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "homebudget_db_connections",
			Help: "Current number of database connections",
		}),
	}
}
