package order

import (
	"context"

	"github.com/google/uuid"
)

// LineField names a mutable column for partial bulk updates.
type LineField string

const (
	QuantityField      LineField = "quantity"
	AssignedField      LineField = "assigned_quantity"
	ConfirmQtyField    LineField = "confirm_quantity"
	StatusField        LineField = "status"
	RejectReasonField  LineField = "reject_reason"
	ConfirmedDateField LineField = "confirmed_date"
	PlantField         LineField = "plant"
	ParentField        LineField = "parent_item_no"
	PriceField         LineField = "net_price"
	WeightField        LineField = "net_weight"
	UnitPriceField     LineField = "unit_price"
	TextsField         LineField = "texts"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	Create(ctx context.Context, o *Order) (*Order, error)
	Update(ctx context.Context, o *Order) error
}

// LineRepository is the Line Store the engine mutates in bulk. Every method
// participates in the transaction carried by ctx.
type LineRepository interface {
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*OrderLine, error)
	// FindDistinctByItemNo returns the order's lines keyed by item number;
	// item numbers are unique within an order.
	FindDistinctByItemNo(ctx context.Context, orderID uuid.UUID) (map[string]*OrderLine, error)
	CreateMany(ctx context.Context, lines []*OrderLine) ([]*OrderLine, error)
	// UpdateMany writes the named fields; nil means every mutable field.
	UpdateMany(ctx context.Context, lines []*OrderLine, fields []LineField) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error)
	LatestItemNo(ctx context.Context, orderID uuid.UUID) (int, error)
}
