// Package sap reads order snapshots from the external order-management
// system, the source of truth for item statuses and confirmed quantities.
package sap

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
)

const dateFormat = "2006-01-02"

type Options struct {
	BaseURL   string
	OrderType string
	SalesOrg  string
	Timeout   time.Duration
}

type Client struct {
	opts Options
	http *http.Client
}

func NewClient(opts Options) *Client {
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}
}

type wireHeader struct {
	OrderNo     string `json:"order_no"`
	SoldTo      string `json:"sold_to"`
	SalesOrg    string `json:"sales_org"`
	PaymentTerm string `json:"payment_term"`
}

type wireItem struct {
	ItemNo          string          `json:"item_no"`
	Material        string          `json:"material"`
	ServiceMaterial bool            `json:"srv_mat"`
	Production      string          `json:"production"`
	BOMFlag         bool            `json:"bom_flag"`
	ParentItemNo    string          `json:"parent_item_no"`
	OverallStatus   string          `json:"overall_status"`
	DeliveryStatus  string          `json:"delivery_status"`
	RejectReason    string          `json:"reject_reason"`
	Quantity        decimal.Decimal `json:"quantity"`
	ConfirmQty      decimal.Decimal `json:"confirm_qty"`
	Unit            string          `json:"unit"`
	Plant           string          `json:"plant"`
	RequestDate     string          `json:"request_date"`
	ConfirmDate     string          `json:"confirm_date"`
	ShipTo          string          `json:"ship_to"`
	PurchaseOrderNo string          `json:"po_no"`
	NetPrice        decimal.Decimal `json:"net_price"`
	NetWeight       decimal.Decimal `json:"net_weight"`
}

type wireOrder struct {
	Header wireHeader `json:"header"`
	Items  []wireItem `json:"items"`
}

// FetchSnapshot reads the authoritative state of one order. Item numbers
// arrive zero-padded and are normalized for internal use.
func (c *Client) FetchSnapshot(ctx context.Context, orderNo string) (order.OrderSnapshot, error) {
	endpoint := c.opts.BaseURL + "/api/orders/" + url.PathEscape(orderNo) +
		"?order_type=" + url.QueryEscape(c.opts.OrderType) +
		"&sales_org=" + url.QueryEscape(c.opts.SalesOrg)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return order.OrderSnapshot{}, errors.Wrap(err, "failed to build order request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return order.OrderSnapshot{}, errors.Wrap(err, "order request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return order.OrderSnapshot{}, order.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		limited, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return order.OrderSnapshot{}, errors.Errorf(
			"order system returned %d: %s", resp.StatusCode, string(limited),
		)
	}

	var wire wireOrder
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return order.OrderSnapshot{}, errors.Wrap(err, "failed to decode order response")
	}
	return toSnapshot(wire)
}

func toSnapshot(wire wireOrder) (order.OrderSnapshot, error) {
	snap := order.OrderSnapshot{
		OrderNo:     wire.Header.OrderNo,
		SoldTo:      wire.Header.SoldTo,
		SalesOrg:    wire.Header.SalesOrg,
		PaymentTerm: wire.Header.PaymentTerm,
		Lines:       make([]order.LineSnapshot, 0, len(wire.Items)),
	}
	for _, item := range wire.Items {
		requestDate, err := parseWireDate(item.RequestDate)
		if err != nil {
			return order.OrderSnapshot{}, errors.Wrapf(err, "item %s: bad request date", item.ItemNo)
		}
		confirmDate, err := parseWireDate(item.ConfirmDate)
		if err != nil {
			return order.OrderSnapshot{}, errors.Wrapf(err, "item %s: bad confirm date", item.ItemNo)
		}
		snap.Lines = append(snap.Lines, order.LineSnapshot{
			ItemNo:          order.NormalizeItemNo(item.ItemNo),
			Material:        item.Material,
			ServiceMaterial: item.ServiceMaterial,
			Production:      order.ProductionFlag(item.Production),
			BOMFlag:         item.BOMFlag,
			ParentItemNo:    order.NormalizeItemNo(item.ParentItemNo),
			OverallStatus:   item.OverallStatus,
			DeliveryStatus:  item.DeliveryStatus,
			RejectReason:    item.RejectReason,
			Quantity:        item.Quantity,
			ConfirmQuantity: item.ConfirmQty,
			Unit:            item.Unit,
			Plant:           item.Plant,
			RequestDate:     requestDate,
			ConfirmDate:     confirmDate,
			ShipTo:          item.ShipTo,
			PurchaseOrderNo: item.PurchaseOrderNo,
			NetPrice:        item.NetPrice,
			NetWeight:       item.NetWeight,
		})
	}
	return snap, nil
}

func parseWireDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateFormat, s)
}
