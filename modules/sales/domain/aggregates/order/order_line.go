package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus is the per-line lifecycle derived from the order-system
// snapshot.
type ItemStatus string

const (
	ItemStatusReceived         ItemStatus = "RECEIVED"
	ItemStatusCreated          ItemStatus = "ITEM_CREATED"
	ItemStatusPartialDelivery  ItemStatus = "PARTIAL_DELIVERY"
	ItemStatusCompleteDelivery ItemStatus = "COMPLETE_DELIVERY"
	ItemStatusCancelled        ItemStatus = "CANCELLED"
)

// ProductionFlag tells whether a line carries its own production. Kit
// parents whose components carry the production are NotProduced and are
// skipped by planning.
type ProductionFlag string

const (
	Produced    ProductionFlag = "PRODUCED"
	NotProduced ProductionFlag = "NOT_PRODUCED"
)

// Material is the catalog reference carried by a line. Service materials
// (freight, fees) never reach the planning system and block splits.
type Material struct {
	Code       string
	IsService  bool
	Production ProductionFlag
}

// Texts are the free-text fields carried through split and sync. A split
// target inherits them from the BOM parent, else from the original line,
// when it does not supply its own.
type Texts struct {
	Comment        string
	SaleText       string
	LotNo          string
	ProductionMemo string
}

func (t Texts) IsZero() bool {
	return t == Texts{}
}

// Merge fills empty fields from fallback.
func (t Texts) Merge(fallback Texts) Texts {
	out := t
	if out.Comment == "" {
		out.Comment = fallback.Comment
	}
	if out.SaleText == "" {
		out.SaleText = fallback.SaleText
	}
	if out.LotNo == "" {
		out.LotNo = fallback.LotNo
	}
	if out.ProductionMemo == "" {
		out.ProductionMemo = fallback.ProductionMemo
	}
	return out
}

// OrderLine is the core entity. itemNo is held unpadded; padding happens at
// the wire boundary. parentItemNo is a back-reference only; ownership
// edges live in BOMTree, built per operation.
type OrderLine struct {
	id      uuid.UUID
	orderID uuid.UUID
	itemNo  string

	material Material
	unit     string

	quantity         decimal.Decimal
	originalQuantity decimal.Decimal
	assignedQuantity decimal.Decimal
	confirmQuantity  decimal.Decimal

	bomFlag      bool
	parentItemNo string

	status        ItemStatus
	rejectReason  string
	requestDate   time.Time
	confirmedDate time.Time
	plant         string
	shipTo        string

	purchaseOrderNo string
	netPrice        decimal.Decimal
	netWeight       decimal.Decimal
	unitPrice       decimal.Decimal
	texts           Texts

	draft     bool
	createdAt time.Time
	updatedAt time.Time
}

type LineOption func(*OrderLine)

func WithParent(parentItemNo string) LineOption {
	return func(l *OrderLine) {
		l.bomFlag = true
		l.parentItemNo = parentItemNo
	}
}

func WithBOMFlag() LineOption {
	return func(l *OrderLine) { l.bomFlag = true }
}

func WithTexts(texts Texts) LineOption {
	return func(l *OrderLine) { l.texts = texts }
}

func WithShipTo(shipTo string) LineOption {
	return func(l *OrderLine) { l.shipTo = shipTo }
}

func WithRequestDate(d time.Time) LineOption {
	return func(l *OrderLine) { l.requestDate = d }
}

func WithDraft() LineOption {
	return func(l *OrderLine) { l.draft = true }
}

func NewLine(orderID uuid.UUID, itemNo string, material Material, quantity decimal.Decimal, unit string, opts ...LineOption) *OrderLine {
	l := &OrderLine{
		orderID:          orderID,
		itemNo:           NormalizeItemNo(itemNo),
		material:         material,
		unit:             unit,
		quantity:         quantity,
		originalQuantity: quantity,
		status:           ItemStatusReceived,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func HydrateLine(
	id uuid.UUID,
	orderID uuid.UUID,
	itemNo string,
	material Material,
	unit string,
	quantity decimal.Decimal,
	originalQuantity decimal.Decimal,
	assignedQuantity decimal.Decimal,
	confirmQuantity decimal.Decimal,
	bomFlag bool,
	parentItemNo string,
	status ItemStatus,
	rejectReason string,
	requestDate time.Time,
	confirmedDate time.Time,
	plant string,
	shipTo string,
	purchaseOrderNo string,
	netPrice decimal.Decimal,
	netWeight decimal.Decimal,
	unitPrice decimal.Decimal,
	texts Texts,
	draft bool,
	createdAt time.Time,
	updatedAt time.Time,
) *OrderLine {
	return &OrderLine{
		id:               id,
		orderID:          orderID,
		itemNo:           NormalizeItemNo(itemNo),
		material:         material,
		unit:             unit,
		quantity:         quantity,
		originalQuantity: originalQuantity,
		assignedQuantity: assignedQuantity,
		confirmQuantity:  confirmQuantity,
		bomFlag:          bomFlag,
		parentItemNo:     NormalizeItemNo(parentItemNo),
		status:           status,
		rejectReason:     rejectReason,
		requestDate:      requestDate,
		confirmedDate:    confirmedDate,
		plant:            plant,
		shipTo:           shipTo,
		purchaseOrderNo:  purchaseOrderNo,
		netPrice:         netPrice,
		netWeight:        netWeight,
		unitPrice:        unitPrice,
		texts:            texts,
		draft:            draft,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (l *OrderLine) ID() uuid.UUID                     { return l.id }
func (l *OrderLine) OrderID() uuid.UUID                { return l.orderID }
func (l *OrderLine) ItemNo() string                    { return l.itemNo }
func (l *OrderLine) Material() Material                { return l.material }
func (l *OrderLine) Unit() string                      { return l.unit }
func (l *OrderLine) Quantity() decimal.Decimal         { return l.quantity }
func (l *OrderLine) OriginalQuantity() decimal.Decimal { return l.originalQuantity }
func (l *OrderLine) AssignedQuantity() decimal.Decimal { return l.assignedQuantity }
func (l *OrderLine) ConfirmQuantity() decimal.Decimal  { return l.confirmQuantity }
func (l *OrderLine) BOMFlag() bool                     { return l.bomFlag }
func (l *OrderLine) ParentItemNo() string              { return l.parentItemNo }
func (l *OrderLine) Status() ItemStatus                { return l.status }
func (l *OrderLine) RejectReason() string              { return l.rejectReason }
func (l *OrderLine) RequestDate() time.Time            { return l.requestDate }
func (l *OrderLine) ConfirmedDate() time.Time          { return l.confirmedDate }
func (l *OrderLine) Plant() string                     { return l.plant }
func (l *OrderLine) ShipTo() string                    { return l.shipTo }
func (l *OrderLine) PurchaseOrderNo() string           { return l.purchaseOrderNo }
func (l *OrderLine) NetPrice() decimal.Decimal         { return l.netPrice }
func (l *OrderLine) NetWeight() decimal.Decimal        { return l.netWeight }
func (l *OrderLine) UnitPrice() decimal.Decimal        { return l.unitPrice }
func (l *OrderLine) Texts() Texts                      { return l.texts }
func (l *OrderLine) IsDraft() bool                     { return l.draft }
func (l *OrderLine) CreatedAt() time.Time              { return l.createdAt }
func (l *OrderLine) UpdatedAt() time.Time              { return l.updatedAt }

// IsBOMParent reports whether the line is a kit line: BOM-flagged with no
// parent of its own. Tree depth is 1; parents never have parents.
func (l *OrderLine) IsBOMParent() bool { return l.bomFlag && l.parentItemNo == "" }

// IsBOMComponent reports whether the line is owned by a kit line.
func (l *OrderLine) IsBOMComponent() bool { return l.bomFlag && l.parentItemNo != "" }

func (l *OrderLine) SetStatus(s ItemStatus)            { l.status = s }
func (l *OrderLine) SetRejectReason(code string)       { l.rejectReason = code }
func (l *OrderLine) SetQuantity(q decimal.Decimal)     { l.quantity = q }
func (l *OrderLine) SetConfirmedDate(d time.Time)      { l.confirmedDate = d }
func (l *OrderLine) SetPlant(plant string)             { l.plant = plant }
func (l *OrderLine) SetParentItemNo(itemNo string)     { l.parentItemNo = NormalizeItemNo(itemNo) }
func (l *OrderLine) SetPurchaseOrderNo(poNo string)    { l.purchaseOrderNo = poNo }
func (l *OrderLine) SetTexts(texts Texts)              { l.texts = texts }
func (l *OrderLine) MarkSubmitted()                    { l.draft = false }

// ApplySnapshot folds the authoritative order-system state onto the line's
// mutable fields. Local-only fields (texts, draft flag) are untouched.
func (l *OrderLine) ApplySnapshot(snap LineSnapshot) {
	l.quantity = snap.Quantity
	l.assignedQuantity = snap.ConfirmQuantity
	l.confirmQuantity = snap.ConfirmQuantity
	l.unit = snap.Unit
	l.rejectReason = snap.RejectReason
	l.bomFlag = snap.BOMFlag
	l.parentItemNo = NormalizeItemNo(snap.ParentItemNo)
	l.netPrice = snap.NetPrice
	l.netWeight = snap.NetWeight
	if !snap.RequestDate.IsZero() {
		l.requestDate = snap.RequestDate
	}
	if !snap.ConfirmDate.IsZero() {
		l.confirmedDate = snap.ConfirmDate
	}
	if snap.Plant != "" {
		l.plant = snap.Plant
	}
}

// SplitCopy builds a not-yet-persisted child line for a split target. The
// copy keeps material, unit, ship-to and request date; quantity and item
// number come from the target; confirmation fields are left for the
// planning reconciliation to fill.
func (l *OrderLine) SplitCopy(itemNo string, quantity decimal.Decimal, texts Texts) *OrderLine {
	c := &OrderLine{
		orderID:          l.orderID,
		itemNo:           NormalizeItemNo(itemNo),
		material:         l.material,
		unit:             l.unit,
		quantity:         quantity,
		originalQuantity: quantity,
		bomFlag:          l.bomFlag,
		parentItemNo:     l.parentItemNo,
		status:           ItemStatusCreated,
		requestDate:      l.requestDate,
		shipTo:           l.shipTo,
		unitPrice:        l.unitPrice,
		texts:            texts.Merge(l.texts),
		draft:            true,
	}
	return c
}

// SetAggregates overrides the priced fields with BOM-aggregated values.
func (l *OrderLine) SetAggregates(netPrice, netWeight, unitPrice decimal.Decimal) {
	l.netPrice = netPrice
	l.netWeight = netWeight
	l.unitPrice = unitPrice
}
