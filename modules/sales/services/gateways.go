package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
)

// Planner is the capacity-planning collaborator ("CP"). One request batches
// every line that needs confirmation; the response carries confirmed dates
// and plants per item.
type Planner interface {
	Confirm(ctx context.Context, req PlanningRequest) (PlanningResponse, error)
}

const (
	PlanningRequestNew    = "NEW"
	PlanningRequestChange = "CHANGE"

	// PlanningSuccess is the only response message that carries items to
	// reconcile. Anything else means "nothing to reconcile".
	PlanningSuccess = "Success"
)

type PlanningHeader struct {
	RequestType string
	SalesOrg    string
	SoldTo      string
	TempOrSONo  string
}

type PlanningRequestItem struct {
	ItemNo       string
	MaterialCode string
	Quantity     decimal.Decimal
	Unit         string
	ShipTo       string
	RequestDate  time.Time
	IsNew        bool
	ForceFlag    bool
	Plant        string
	BOMParentRef string
}

type PlanningRequest struct {
	Sender string
	Header PlanningHeader
	Items  []PlanningRequestItem
}

type PlanningResponseItem struct {
	ItemNo         string
	ConfirmDate    time.Time
	Plant          string
	BOMMaterialRef string
}

type PlanningResponse struct {
	Message    string
	OrderItems []PlanningResponseItem
}

// OrderGateway is the external order-management collaborator ("SAP"), the
// source of truth for item statuses and confirmed quantities.
type OrderGateway interface {
	FetchSnapshot(ctx context.Context, orderNo string) (order.OrderSnapshot, error)
}

// ConfirmationMessage is returned to the caller for every reconciled line.
// ShowInPopup flags a date mismatch worth interrupting the user for.
type ConfirmationMessage struct {
	ItemNo       string          `json:"itemNo"`
	ParentItemNo string          `json:"parentItemNo,omitempty"`
	ParentBOM    string          `json:"parentBom,omitempty"`
	Material     string          `json:"material"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	RequestDate  time.Time       `json:"requestDate"`
	ConfirmDate  time.Time       `json:"confirmDate"`
	Plant        string          `json:"plant"`
	ShowInPopup  bool            `json:"showInPopup"`
}
