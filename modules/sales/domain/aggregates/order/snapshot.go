package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSnapshot is the authoritative order state as reported by the
// external order system. Only the fields the engine reads are carried;
// the wire format stays in the sap client.
type OrderSnapshot struct {
	OrderNo     string
	SoldTo      string
	SalesOrg    string
	PaymentTerm string
	Lines       []LineSnapshot
}

type LineSnapshot struct {
	ItemNo          string
	Material        string
	ServiceMaterial bool
	Production      ProductionFlag
	BOMFlag         bool
	ParentItemNo    string

	// OverallStatus and DeliveryStatus carry the order system's processing
	// codes (A open, B partial, C complete). RejectReason is set on
	// cancelled items.
	OverallStatus  string
	DeliveryStatus string
	RejectReason   string

	Quantity        decimal.Decimal
	ConfirmQuantity decimal.Decimal
	Unit            string
	Plant           string
	RequestDate     time.Time
	ConfirmDate     time.Time
	ShipTo          string
	PurchaseOrderNo string
	NetPrice        decimal.Decimal
	NetWeight       decimal.Decimal
}
