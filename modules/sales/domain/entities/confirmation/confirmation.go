package confirmation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is the plant/confirm-date/BOM-material tuple tracked per order
// item, separate from the line's own editable fields. Re-reads of an order
// always see the latest confirmation regardless of later line edits.
type Record struct {
	OrderID        uuid.UUID
	ItemNo         string
	Plant          string
	ConfirmDate    time.Time
	BOMMaterialRef string
	UpdatedAt      time.Time
}

type Repository interface {
	FindByOrder(ctx context.Context, orderID uuid.UUID) (map[string]Record, error)
	UpsertMany(ctx context.Context, records []Record) error
}
