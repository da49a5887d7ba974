package persistence

import (
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/domain/entities/confirmation"
	"github.com/kraftedge/oms/modules/sales/infrastructure/persistence/models"
)

func toDBOrder(o *order.Order) *models.Order {
	return &models.Order{
		ID:           o.ID().String(),
		OrderNo:      o.OrderNo(),
		SoldTo:       o.SoldTo(),
		SalesOrg:     o.SalesOrg(),
		PaymentTerm:  o.PaymentTerm(),
		Status:       string(o.Status()),
		LatestItemNo: o.LatestItemNo(),
		IsNew:        o.IsNew(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func toDomainOrder(row *models.Order) (*order.Order, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order id")
	}
	return order.Hydrate(
		id,
		row.OrderNo,
		row.SoldTo,
		row.SalesOrg,
		row.PaymentTerm,
		order.Status(row.Status),
		row.LatestItemNo,
		row.IsNew,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func toDBOrderLine(l *order.OrderLine) (*models.OrderLine, error) {
	texts, err := json.Marshal(textsRow{
		Comment:        l.Texts().Comment,
		SaleText:       l.Texts().SaleText,
		LotNo:          l.Texts().LotNo,
		ProductionMemo: l.Texts().ProductionMemo,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling line texts")
	}
	return &models.OrderLine{
		ID:                 l.ID().String(),
		OrderID:            l.OrderID().String(),
		ItemNo:             l.ItemNo(),
		MaterialCode:       l.Material().Code,
		MaterialService:    l.Material().IsService,
		MaterialProduction: string(l.Material().Production),
		Unit:               l.Unit(),
		Quantity:           l.Quantity(),
		OriginalQuantity:   l.OriginalQuantity(),
		AssignedQuantity:   l.AssignedQuantity(),
		ConfirmQuantity:    l.ConfirmQuantity(),
		BOMFlag:            l.BOMFlag(),
		ParentItemNo:       l.ParentItemNo(),
		Status:             string(l.Status()),
		RejectReason:       l.RejectReason(),
		RequestDate:        nullableTime(l.RequestDate()),
		ConfirmedDate:      nullableTime(l.ConfirmedDate()),
		Plant:              l.Plant(),
		ShipTo:             l.ShipTo(),
		PurchaseOrderNo:    l.PurchaseOrderNo(),
		NetPrice:           l.NetPrice(),
		NetWeight:          l.NetWeight(),
		UnitPrice:          l.UnitPrice(),
		Texts:              texts,
		Draft:              l.IsDraft(),
		CreatedAt:          l.CreatedAt(),
		UpdatedAt:          l.UpdatedAt(),
	}, nil
}

func toDomainOrderLine(row *models.OrderLine) (*order.OrderLine, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid line id")
	}
	orderID, err := uuid.Parse(row.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid line order id")
	}
	var texts textsRow
	if len(row.Texts) > 0 {
		if err := json.Unmarshal(row.Texts, &texts); err != nil {
			return nil, errors.Wrap(err, "unmarshaling line texts")
		}
	}
	return order.HydrateLine(
		id,
		orderID,
		row.ItemNo,
		order.Material{
			Code:       row.MaterialCode,
			IsService:  row.MaterialService,
			Production: order.ProductionFlag(row.MaterialProduction),
		},
		row.Unit,
		row.Quantity,
		row.OriginalQuantity,
		row.AssignedQuantity,
		row.ConfirmQuantity,
		row.BOMFlag,
		row.ParentItemNo,
		order.ItemStatus(row.Status),
		row.RejectReason,
		timeValue(row.RequestDate),
		timeValue(row.ConfirmedDate),
		row.Plant,
		row.ShipTo,
		row.PurchaseOrderNo,
		row.NetPrice,
		row.NetWeight,
		row.UnitPrice,
		order.Texts{
			Comment:        texts.Comment,
			SaleText:       texts.SaleText,
			LotNo:          texts.LotNo,
			ProductionMemo: texts.ProductionMemo,
		},
		row.Draft,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func toDBConfirmation(rec confirmation.Record) *models.Confirmation {
	return &models.Confirmation{
		OrderID:        rec.OrderID.String(),
		ItemNo:         rec.ItemNo,
		Plant:          rec.Plant,
		ConfirmDate:    rec.ConfirmDate,
		BOMMaterialRef: rec.BOMMaterialRef,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func toDomainConfirmation(row *models.Confirmation) (confirmation.Record, error) {
	orderID, err := uuid.Parse(row.OrderID)
	if err != nil {
		return confirmation.Record{}, errors.Wrap(err, "invalid confirmation order id")
	}
	return confirmation.Record{
		OrderID:        orderID,
		ItemNo:         row.ItemNo,
		Plant:          row.Plant,
		ConfirmDate:    row.ConfirmDate,
		BOMMaterialRef: row.BOMMaterialRef,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

// textsRow is the JSONB shape of the free-text fields.
type textsRow struct {
	Comment        string `json:"comment,omitempty"`
	SaleText       string `json:"saleText,omitempty"`
	LotNo          string `json:"lotNo,omitempty"`
	ProductionMemo string `json:"productionMemo,omitempty"`
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
