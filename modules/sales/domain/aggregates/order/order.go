package order

import (
	"time"

	"github.com/google/uuid"
)

// Status is the order-level lifecycle, recomputed from the line tally on
// every sync. CANCELLED is reachable only when every line is cancelled.
type Status string

const (
	StatusReceived         Status = "RECEIVED_ORDER"
	StatusPartialDelivery  Status = "PARTIAL_DELIVERY"
	StatusCompleteDelivery Status = "COMPLETE_DELIVERY"
	StatusCancelled        Status = "CANCELLED"
)

// PaymentTermCash marks cash/prepaid orders. Cash orders cannot be split.
const PaymentTermCash = "CASH"

// ItemNoStep is the spacing between allocated item numbers.
const ItemNoStep = 10

type Order struct {
	id           uuid.UUID
	orderNo      string
	soldTo       string
	salesOrg     string
	paymentTerm  string
	status       Status
	latestItemNo int
	isNew        bool
	createdAt    time.Time
	updatedAt    time.Time
}

func New(orderNo, soldTo, salesOrg, paymentTerm string) *Order {
	return &Order{
		id:          uuid.New(),
		orderNo:     orderNo,
		soldTo:      soldTo,
		salesOrg:    salesOrg,
		paymentTerm: paymentTerm,
		status:      StatusReceived,
		isNew:       true,
	}
}

func Hydrate(
	id uuid.UUID,
	orderNo string,
	soldTo string,
	salesOrg string,
	paymentTerm string,
	status Status,
	latestItemNo int,
	isNew bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Order {
	return &Order{
		id:           id,
		orderNo:      orderNo,
		soldTo:       soldTo,
		salesOrg:     salesOrg,
		paymentTerm:  paymentTerm,
		status:       status,
		latestItemNo: latestItemNo,
		isNew:        isNew,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (o *Order) ID() uuid.UUID       { return o.id }
func (o *Order) OrderNo() string     { return o.orderNo }
func (o *Order) SoldTo() string      { return o.soldTo }
func (o *Order) SalesOrg() string    { return o.salesOrg }
func (o *Order) PaymentTerm() string { return o.paymentTerm }
func (o *Order) Status() Status      { return o.status }
func (o *Order) LatestItemNo() int   { return o.latestItemNo }
func (o *Order) IsNew() bool         { return o.isNew }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

func (o *Order) IsCashPayment() bool { return o.paymentTerm == PaymentTermCash }

func (o *Order) SetStatus(s Status) { o.status = s }

// MarkSynced clears the new-order flag once the first snapshot has been
// folded in.
func (o *Order) MarkSynced() { o.isNew = false }

// NextItemNo allocates the next free item number and advances the counter.
func (o *Order) NextItemNo() string {
	o.latestItemNo += ItemNoStep
	return FormatItemNo(o.latestItemNo)
}

// AdvanceLatestItemNo raises the counter to n. The counter never regresses,
// so replaying an older snapshot cannot reallocate a used number.
func (o *Order) AdvanceLatestItemNo(n int) {
	if n > o.latestItemNo {
		o.latestItemNo = n
	}
}
