package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/domain/entities/confirmation"
	"github.com/kraftedge/oms/modules/sales/services"
)

type fakeGateway struct {
	snapshot order.OrderSnapshot
	err      error
}

func (g *fakeGateway) FetchSnapshot(ctx context.Context, orderNo string) (order.OrderSnapshot, error) {
	if g.err != nil {
		return order.OrderSnapshot{}, g.err
	}
	return g.snapshot, nil
}

func newOrderService(orders *memOrderRepo, lines *memLineRepo, confirmations *memConfirmationRepo, gateway services.OrderGateway) (*services.OrderService, *services.SyncService) {
	syncSvc := services.NewSyncService(&passthroughTx{}, orders, lines, quietBus())
	return services.NewOrderService(orders, lines, confirmations, gateway, syncSvc), syncSvc
}

func TestOrderService_GetByID_KitTotalsStableAcrossReads(t *testing.T) {
	orders := newMemOrderRepo()
	lines := newMemLineRepo()
	svc, syncSvc := newOrderService(orders, lines, newMemConfirmationRepo(), &fakeGateway{})

	kit := openLine("000010", "KIT-A", 2)
	kit.BOMFlag = true

	sheet := openLine("000020", "SHEET-80", 4)
	sheet.BOMFlag = true
	sheet.ParentItemNo = "000010"
	sheet.NetPrice = decimal.NewFromInt(10)

	glue := openLine("000030", "GLUE-2", 2)
	glue.BOMFlag = true
	glue.ParentItemNo = "000010"
	glue.NetPrice = decimal.NewFromInt(5)

	synced, err := syncSvc.Sync(context.Background(), nil, order.OrderSnapshot{
		OrderNo: "4715",
		Lines:   []order.LineSnapshot{kit, sheet, glue},
	})
	require.NoError(t, err)

	// The stored parent totals already carry the component roll-up; the
	// read path recomputes them and must land on the same sum.
	for range 2 {
		view, err := svc.GetByID(context.Background(), synced.ID())
		require.NoError(t, err)
		require.Len(t, view.Lines, 3)

		parent := view.Lines[0]
		require.Equal(t, "10", parent.ItemNo())
		assert.True(t, parent.NetPrice().Equal(decimal.NewFromInt(15)),
			"net price %s", parent.NetPrice())
		assert.True(t, parent.UnitPrice().Equal(decimal.NewFromFloat(7.5)),
			"unit price %s", parent.UnitPrice())
	}
}

func TestOrderService_GetByID_OverlaysLatestConfirmation(t *testing.T) {
	o := hydrateOrder("NET30")
	orders := newMemOrderRepo(o)
	lines := newMemLineRepo(
		order.NewLine(o.ID(), "10", producedMaterial("KRAFT-80"), decimal.NewFromInt(5), "EA",
			order.WithRequestDate(reqDate)),
	)
	confirmations := newMemConfirmationRepo()
	require.NoError(t, confirmations.UpsertMany(context.Background(), []confirmation.Record{
		{OrderID: o.ID(), ItemNo: "10", Plant: "P2", ConfirmDate: confirmDate},
	}))
	svc, _ := newOrderService(orders, lines, confirmations, &fakeGateway{})

	view, err := svc.GetByID(context.Background(), o.ID())
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, confirmDate, view.Lines[0].ConfirmedDate())
	assert.Equal(t, "P2", view.Lines[0].Plant())
}

func TestOrderService_RefreshFromRemote(t *testing.T) {
	orders := newMemOrderRepo()
	lines := newMemLineRepo()
	gateway := &fakeGateway{snapshot: order.OrderSnapshot{
		OrderNo: "4716",
		Lines:   []order.LineSnapshot{openLine("000010", "KRAFT-80", 1)},
	}}
	svc, _ := newOrderService(orders, lines, newMemConfirmationRepo(), gateway)

	synced, err := svc.RefreshFromRemote(context.Background(), "4716")
	require.NoError(t, err)
	assert.Equal(t, "4716", synced.OrderNo())
	assert.NotNil(t, lines.byItemNo("10"))
}
