package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           string
	OrderNo      string
	SoldTo       string
	SalesOrg     string
	PaymentTerm  string
	Status       string
	LatestItemNo int
	IsNew        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OrderLine struct {
	ID                 string
	OrderID            string
	ItemNo             string
	MaterialCode       string
	MaterialService    bool
	MaterialProduction string
	Unit               string
	Quantity           decimal.Decimal
	OriginalQuantity   decimal.Decimal
	AssignedQuantity   decimal.Decimal
	ConfirmQuantity    decimal.Decimal
	BOMFlag            bool
	ParentItemNo       string
	Status             string
	RejectReason       string
	RequestDate        *time.Time
	ConfirmedDate      *time.Time
	Plant              string
	ShipTo             string
	PurchaseOrderNo    string
	NetPrice           decimal.Decimal
	NetWeight          decimal.Decimal
	UnitPrice          decimal.Decimal
	Texts              []byte
	Draft              bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Confirmation struct {
	OrderID        string
	ItemNo         string
	Plant          string
	ConfirmDate    time.Time
	BOMMaterialRef string
	UpdatedAt      time.Time
}
