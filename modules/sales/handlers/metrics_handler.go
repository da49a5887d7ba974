package handlers

import (
	"github.com/kraftedge/oms/modules/sales/services"
	"github.com/kraftedge/oms/pkg/eventbus"
	"github.com/kraftedge/oms/pkg/metrics"
)

// RegisterMetricsHandlers feeds the prometheus counters from sales events.
func RegisterMetricsHandlers(bus eventbus.EventBus) {
	bus.Subscribe(func(e *services.OrderSyncedEvent) {
		metrics.OrdersSynced.Inc()
	})
	bus.Subscribe(func(e *services.LinesSplitEvent) {
		metrics.LinesSplit.Add(float64(e.NewLines))
	})
	bus.Subscribe(func(e *services.ConfirmationMismatchEvent) {
		metrics.ConfirmationMismatches.Inc()
	})
}
