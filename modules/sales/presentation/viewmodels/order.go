package viewmodels

// Order is the API shape of one order with its lines in item-number order.
type Order struct {
	ID           string      `json:"id"`
	OrderNo      string      `json:"orderNo"`
	SoldTo       string      `json:"soldTo"`
	SalesOrg     string      `json:"salesOrg"`
	PaymentTerm  string      `json:"paymentTerm"`
	Status       string      `json:"status"`
	LatestItemNo int         `json:"latestItemNo"`
	Lines        []OrderLine `json:"lines"`
}

type OrderLine struct {
	ID              string `json:"id"`
	ItemNo          string `json:"itemNo"`
	Material        string `json:"material"`
	ServiceMaterial bool   `json:"serviceMaterial,omitempty"`
	Unit            string `json:"unit"`
	Quantity        string `json:"quantity"`
	AssignedQty     string `json:"assignedQuantity"`
	ConfirmQty      string `json:"confirmQuantity"`
	BOMFlag         bool   `json:"bomFlag,omitempty"`
	ParentItemNo    string `json:"parentItemNo,omitempty"`
	Status          string `json:"status"`
	RejectReason    string `json:"rejectReason,omitempty"`
	RequestDate     string `json:"requestDate,omitempty"`
	ConfirmedDate   string `json:"confirmedDate,omitempty"`
	Plant           string `json:"plant,omitempty"`
	ShipTo          string `json:"shipTo,omitempty"`
	PurchaseOrderNo string `json:"purchaseOrderNo,omitempty"`
	NetPrice        string `json:"netPrice"`
	NetWeight       string `json:"netWeight"`
	UnitPrice       string `json:"unitPrice"`
	Comment         string `json:"comment,omitempty"`
	SaleText        string `json:"saleText,omitempty"`
	LotNo           string `json:"lotNo,omitempty"`
	ProductionMemo  string `json:"productionMemo,omitempty"`
	Draft           bool   `json:"draft,omitempty"`
}
