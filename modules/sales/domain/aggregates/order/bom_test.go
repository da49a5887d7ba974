package order_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
)

func TestBuildBOMTree(t *testing.T) {
	t.Parallel()

	tree := order.BuildBOMTree([]order.BOMSource{
		{ItemNo: "10", BOMFlag: true},
		{ItemNo: "11", BOMFlag: true, ParentItemNo: "10"},
		{ItemNo: "12", BOMFlag: true, ParentItemNo: "10"},
		{ItemNo: "20"},
	})

	assert.Equal(t, []string{"11", "12"}, tree.Children("10"))
	assert.Empty(t, tree.Children("20"))
	assert.Empty(t, tree.Children("11"))

	parent, ok := tree.Parent("11")
	require.True(t, ok)
	assert.Equal(t, "10", parent)

	_, ok = tree.Parent("10")
	assert.False(t, ok)
	assert.True(t, tree.IsComponent("12"))
	assert.False(t, tree.IsComponent("20"))
}

func TestBuildBOMTree_PaddedAndNumericOrdering(t *testing.T) {
	t.Parallel()

	// Children declared out of order and zero-padded come back normalized
	// and numerically sorted ("9" before "11").
	tree := order.BuildBOMTree(order.SnapshotBOMSources([]order.LineSnapshot{
		{ItemNo: "000011", BOMFlag: true, ParentItemNo: "000010"},
		{ItemNo: "000009", BOMFlag: true, ParentItemNo: "000010"},
		{ItemNo: "000010", BOMFlag: true},
	}))

	assert.Equal(t, []string{"9", "11"}, tree.Children("10"))
	assert.Equal(t, []string{"9", "11"}, tree.Children("000010"))
}

func TestBOMTree_AggregateParents(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()
	mat := func(code string) order.Material { return order.Material{Code: code, Production: order.Produced} }

	parent := order.NewLine(orderID, "10", mat("KIT-1"), decimal.NewFromInt(2), "EA", order.WithBOMFlag())
	compA := order.NewLine(orderID, "11", mat("SHEET"), decimal.NewFromInt(4), "EA", order.WithParent("10"))
	compB := order.NewLine(orderID, "12", mat("GLUE"), decimal.NewFromInt(2), "KG", order.WithParent("10"))

	snapshotPrices := func(l *order.OrderLine, price, weight int64) {
		l.ApplySnapshot(order.LineSnapshot{
			Quantity:  l.Quantity(),
			Unit:      l.Unit(),
			BOMFlag:   l.BOMFlag(),
			ParentItemNo: l.ParentItemNo(),
			NetPrice:  decimal.NewFromInt(price),
			NetWeight: decimal.NewFromInt(weight),
		})
	}
	snapshotPrices(parent, 0, 0)
	snapshotPrices(compA, 100, 8)
	snapshotPrices(compB, 50, 2)

	// A cancelled component contributes nothing.
	compC := order.NewLine(orderID, "13", mat("INK"), decimal.NewFromInt(1), "KG", order.WithParent("10"))
	snapshotPrices(compC, 999, 99)
	compC.SetStatus(order.ItemStatusCancelled)

	lines := []*order.OrderLine{parent, compA, compB, compC}
	tree := order.BuildBOMTree(order.LineBOMSources(lines))
	tree.AggregateParents(lines)

	assert.True(t, parent.NetPrice().Equal(decimal.NewFromInt(150)), "net price %s", parent.NetPrice())
	assert.True(t, parent.NetWeight().Equal(decimal.NewFromInt(10)))
	assert.True(t, parent.UnitPrice().Equal(decimal.NewFromInt(75)), "unit price %s", parent.UnitPrice())
}

func TestBOMTree_AggregateParents_Stable(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()
	mat := func(code string) order.Material { return order.Material{Code: code, Production: order.Produced} }

	parent := order.NewLine(orderID, "10", mat("KIT-1"), decimal.NewFromInt(1), "EA", order.WithBOMFlag())
	compA := order.NewLine(orderID, "11", mat("SHEET"), decimal.NewFromInt(4), "EA", order.WithParent("10"))
	compB := order.NewLine(orderID, "12", mat("GLUE"), decimal.NewFromInt(2), "KG", order.WithParent("10"))
	compA.ApplySnapshot(order.LineSnapshot{
		Quantity: compA.Quantity(), Unit: compA.Unit(),
		BOMFlag: true, ParentItemNo: "10",
		NetPrice: decimal.NewFromInt(10), NetWeight: decimal.NewFromInt(1),
	})
	compB.ApplySnapshot(order.LineSnapshot{
		Quantity: compB.Quantity(), Unit: compB.Unit(),
		BOMFlag: true, ParentItemNo: "10",
		NetPrice: decimal.NewFromInt(5), NetWeight: decimal.NewFromInt(2),
	})

	lines := []*order.OrderLine{parent, compA, compB}
	tree := order.BuildBOMTree(order.LineBOMSources(lines))

	// The parent's own stored values never enter the sum, so a second
	// aggregation over already aggregated lines keeps the totals.
	tree.AggregateParents(lines)
	tree.AggregateParents(lines)

	assert.True(t, parent.NetPrice().Equal(decimal.NewFromInt(15)), "net price %s", parent.NetPrice())
	assert.True(t, parent.NetWeight().Equal(decimal.NewFromInt(3)))
	assert.True(t, parent.UnitPrice().Equal(decimal.NewFromInt(15)))
}
