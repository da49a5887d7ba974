package mappers

import (
	"time"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/presentation/viewmodels"
	"github.com/kraftedge/oms/modules/sales/services"
)

const dateFormat = "2006-01-02"

func OrderToViewModel(view *services.OrderView) *viewmodels.Order {
	lines := make([]viewmodels.OrderLine, 0, len(view.Lines))
	for _, l := range view.Lines {
		lines = append(lines, LineToViewModel(l))
	}
	o := view.Order
	return &viewmodels.Order{
		ID:           o.ID().String(),
		OrderNo:      o.OrderNo(),
		SoldTo:       o.SoldTo(),
		SalesOrg:     o.SalesOrg(),
		PaymentTerm:  o.PaymentTerm(),
		Status:       string(o.Status()),
		LatestItemNo: o.LatestItemNo(),
		Lines:        lines,
	}
}

func LineToViewModel(l *order.OrderLine) viewmodels.OrderLine {
	return viewmodels.OrderLine{
		ID:              l.ID().String(),
		ItemNo:          order.PadItemNo(l.ItemNo()),
		Material:        l.Material().Code,
		ServiceMaterial: l.Material().IsService,
		Unit:            l.Unit(),
		Quantity:        l.Quantity().String(),
		AssignedQty:     l.AssignedQuantity().String(),
		ConfirmQty:      l.ConfirmQuantity().String(),
		BOMFlag:         l.BOMFlag(),
		ParentItemNo:    padIfSet(l.ParentItemNo()),
		Status:          string(l.Status()),
		RejectReason:    l.RejectReason(),
		RequestDate:     formatDate(l.RequestDate()),
		ConfirmedDate:   formatDate(l.ConfirmedDate()),
		Plant:           l.Plant(),
		ShipTo:          l.ShipTo(),
		PurchaseOrderNo: l.PurchaseOrderNo(),
		NetPrice:        l.NetPrice().String(),
		NetWeight:       l.NetWeight().String(),
		UnitPrice:       l.UnitPrice().String(),
		Comment:         l.Texts().Comment,
		SaleText:        l.Texts().SaleText,
		LotNo:           l.Texts().LotNo,
		ProductionMemo:  l.Texts().ProductionMemo,
		Draft:           l.IsDraft(),
	}
}

func padIfSet(itemNo string) string {
	if itemNo == "" {
		return ""
	}
	return order.PadItemNo(itemNo)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}
