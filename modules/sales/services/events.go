package services

import (
	"github.com/google/uuid"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
)

type OrderSyncedEvent struct {
	OrderID uuid.UUID
	OrderNo string
	Status  order.Status
}

type LinesSplitEvent struct {
	OrderID  uuid.UUID
	ItemNo   string
	NewLines int
}

type ConfirmationMismatchEvent struct {
	OrderID uuid.UUID
	Items   int
}
