// Package metrics declares the Prometheus collectors of the order tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scantrack_scans_total",
		Help: "Scans processed, by resolved decision or failure outcome.",
	},
		[]string{"outcome"},
	)

	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scantrack_order_transitions_total",
		Help: "Order lifecycle transitions applied, by target status.",
	},
		[]string{"status"},
	)

	VisionErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scantrack_vision_errors_total",
		Help: "Vision extraction failures, by kind.",
	},
		[]string{"kind"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scantrack_operation_errors_total",
		Help: "Errors returned by command handlers, by operation.",
	},
		[]string{"operation"},
	)

	OverdueOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scantrack_overdue_orders",
		Help: "Pre-start orders waiting longer than the overdue threshold.",
	})

	OrdersInProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scantrack_orders_in_progress",
		Help: "Orders currently being prepared.",
	})

	SnapshotRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scantrack_snapshot_refreshes_total",
		Help: "Snapshot reloads, by collection.",
	},
		[]string{"collection"},
	)

	FeedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scantrack_feed_clients",
		Help: "Connected live feed websocket clients.",
	})
)
