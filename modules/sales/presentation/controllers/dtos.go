package controllers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/services"
)

type SplitTargetDTO struct {
	ItemNo         string          `json:"itemNo"`
	Material       string          `json:"material"`
	Quantity       decimal.Decimal `json:"quantity" validate:"required"`
	Comment        string          `json:"comment"`
	SaleText       string          `json:"saleText"`
	LotNo          string          `json:"lotNo"`
	ProductionMemo string          `json:"productionMemo"`
	ConfirmedDate  string          `json:"confirmedDate" validate:"omitempty,datetime=2006-01-02"`
	Plant          string          `json:"plant"`
}

type SplitRequestDTO struct {
	ItemNo  string           `json:"itemNo" validate:"required"`
	Targets []SplitTargetDTO `json:"targets" validate:"required,min=1,dive"`
}

type RefreshRequestDTO struct {
	OrderNo string `json:"orderNo" validate:"required"`
}

func (d *SplitRequestDTO) ToTargets() []services.SplitTarget {
	targets := make([]services.SplitTarget, 0, len(d.Targets))
	for _, t := range d.Targets {
		var confirmedDate time.Time
		if t.ConfirmedDate != "" {
			confirmedDate, _ = time.Parse("2006-01-02", t.ConfirmedDate)
		}
		targets = append(targets, services.SplitTarget{
			ItemNo:   t.ItemNo,
			Material: t.Material,
			Quantity: t.Quantity,
			Texts: order.Texts{
				Comment:        t.Comment,
				SaleText:       t.SaleText,
				LotNo:          t.LotNo,
				ProductionMemo: t.ProductionMemo,
			},
			ConfirmedDate: confirmedDate,
			Plant:         t.Plant,
		})
	}
	return targets
}
