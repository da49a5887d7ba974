package order_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
)

func TestTexts_Merge(t *testing.T) {
	t.Parallel()

	target := order.Texts{Comment: "rush"}
	fallback := order.Texts{Comment: "ignored", SaleText: "pallet wrap", LotNo: "L-7"}

	merged := target.Merge(fallback)
	assert.Equal(t, "rush", merged.Comment)
	assert.Equal(t, "pallet wrap", merged.SaleText)
	assert.Equal(t, "L-7", merged.LotNo)
}

func TestOrderLine_SplitCopy(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()
	reqDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	original := order.NewLine(
		orderID, "10",
		order.Material{Code: "KRAFT-80", Production: order.Produced},
		decimal.NewFromInt(100), "EA",
		order.WithTexts(order.Texts{Comment: "original comment", LotNo: "L-1"}),
		order.WithShipTo("W-9"),
		order.WithRequestDate(reqDate),
	)

	child := original.SplitCopy("20", decimal.NewFromInt(60), order.Texts{Comment: "child comment"})

	assert.Equal(t, uuid.Nil, child.ID(), "split candidates are unpersisted")
	assert.Equal(t, "20", child.ItemNo())
	assert.Equal(t, orderID, child.OrderID())
	assert.True(t, child.Quantity().Equal(decimal.NewFromInt(60)))
	assert.True(t, child.OriginalQuantity().Equal(decimal.NewFromInt(60)))
	assert.Equal(t, order.ItemStatusCreated, child.Status())
	assert.Equal(t, "KRAFT-80", child.Material().Code)
	assert.Equal(t, "W-9", child.ShipTo())
	assert.Equal(t, reqDate, child.RequestDate())
	assert.True(t, child.IsDraft())
	// Target text wins, missing fields inherited.
	assert.Equal(t, "child comment", child.Texts().Comment)
	assert.Equal(t, "L-1", child.Texts().LotNo)
	// Confirmation left for planning reconciliation.
	assert.True(t, child.ConfirmedDate().IsZero())
	assert.Empty(t, child.Plant())
}

func TestOrderLine_BOMRoles(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()
	kit := order.NewLine(orderID, "10", order.Material{Code: "KIT"}, decimal.NewFromInt(1), "EA", order.WithBOMFlag())
	comp := order.NewLine(orderID, "11", order.Material{Code: "COMP"}, decimal.NewFromInt(2), "EA", order.WithParent("10"))
	flat := order.NewLine(orderID, "20", order.Material{Code: "FLAT"}, decimal.NewFromInt(3), "EA")

	assert.True(t, kit.IsBOMParent())
	assert.False(t, kit.IsBOMComponent())
	assert.True(t, comp.IsBOMComponent())
	assert.False(t, comp.IsBOMParent())
	assert.False(t, flat.IsBOMParent())
	assert.False(t, flat.IsBOMComponent())
}

func TestOrderLine_ApplySnapshotKeepsLocalFields(t *testing.T) {
	t.Parallel()

	l := order.NewLine(uuid.New(), "10", order.Material{Code: "M"}, decimal.NewFromInt(5), "EA",
		order.WithTexts(order.Texts{Comment: "keep me"}),
		order.WithDraft(),
	)
	l.SetPlant("P1")

	l.ApplySnapshot(order.LineSnapshot{
		Quantity:        decimal.NewFromInt(4),
		ConfirmQuantity: decimal.NewFromInt(4),
		Unit:            "EA",
	})

	assert.True(t, l.Quantity().Equal(decimal.NewFromInt(4)))
	assert.True(t, l.AssignedQuantity().Equal(decimal.NewFromInt(4)))
	assert.Equal(t, "keep me", l.Texts().Comment)
	assert.True(t, l.IsDraft())
	// Empty snapshot plant does not wipe a previously confirmed plant.
	assert.Equal(t, "P1", l.Plant())
}
