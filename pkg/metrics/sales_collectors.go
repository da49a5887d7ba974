package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters fed by the sales event handlers. Registered on the default
// registry so promhttp picks them up without extra wiring.
var (
	OrdersSynced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oms",
		Subsystem: "sales",
		Name:      "orders_synced_total",
		Help:      "Orders reconciled against the external order system.",
	})

	LinesSplit = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oms",
		Subsystem: "sales",
		Name:      "lines_split_total",
		Help:      "New order lines created by split operations.",
	})

	ConfirmationMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oms",
		Subsystem: "sales",
		Name:      "confirmation_mismatches_total",
		Help:      "Planning reconciliations where confirmed date differed from requested date.",
	})
)
