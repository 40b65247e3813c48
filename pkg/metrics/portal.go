package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Rows attached to a user by link-user-orders, per table
	OrdersLinked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portal_orders_linked_total",
		Help: "Orders attached to a user account by email",
	})

	TransactionsLinked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portal_transactions_linked_total",
		Help: "Transactions attached to a user account by email",
	})

	LinkLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "portal_link_user_orders_latency_seconds",
		Help:    "Latency of a link-user-orders run",
		Buckets: prometheus.DefBuckets,
	})

	TransactionsIngested = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_transactions_ingested_total",
		Help: "Transactions received from the legacy payment platform by normalized status",
	}, []string{"status"})

	// result: created, updated, unmapped, failed
	AutoCreatedOrders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_auto_create_order_total",
		Help: "Outcome of creating orders from incoming transactions",
	}, []string{"result"})

	MagicLinksSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portal_magic_links_sent_total",
		Help: "Magic link emails handed to the mailer",
	})

	// method: password, magic_link
	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_logins_total",
		Help: "Successful logins by method",
	}, []string{"method"})
)

func Init() {
	prometheus.MustRegister(
		OrdersLinked,
		TransactionsLinked,
		LinkLatency,
		TransactionsIngested,
		AutoCreatedOrders,
		MagicLinksSent,
		Logins,
	)
}
