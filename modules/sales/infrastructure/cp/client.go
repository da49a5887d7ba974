// Package cp talks to the external capacity-planning system. One request
// batches every line needing confirmation; the response carries confirmed
// dates and plants per item.
package cp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/kraftedge/oms/modules/sales/services"
)

const dateFormat = "2006-01-02"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type requestHeader struct {
	RequestType string `json:"request_type"`
	SalesOrg    string `json:"sales_org"`
	SoldTo      string `json:"sold_to"`
	TempOrSONo  string `json:"temp_or_so_no"`
}

type requestItem struct {
	ItemNo       string          `json:"item_no"`
	MaterialCode string          `json:"material_code"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	ShipTo       string          `json:"ship_to"`
	RequestDate  string          `json:"request_date"`
	IsNew        bool            `json:"is_new"`
	ForceFlag    bool            `json:"force_flag"`
	Plant        string          `json:"plant,omitempty"`
	BOMParentRef string          `json:"bom_parent_ref,omitempty"`
}

type confirmRequest struct {
	Sender string        `json:"sender"`
	Header requestHeader `json:"header"`
	Items  []requestItem `json:"items"`
}

type responseItem struct {
	ItemNo      string `json:"item_no"`
	ConfirmDate string `json:"confirm_date"`
	Plant       string `json:"plant"`
	MatBOM      string `json:"mat_bom"`
}

type confirmResponse struct {
	Message   string         `json:"message"`
	OrderItem []responseItem `json:"order_item"`
}

func (c *Client) Confirm(ctx context.Context, req services.PlanningRequest) (services.PlanningResponse, error) {
	payload := confirmRequest{
		Sender: req.Sender,
		Header: requestHeader{
			RequestType: req.Header.RequestType,
			SalesOrg:    req.Header.SalesOrg,
			SoldTo:      req.Header.SoldTo,
			TempOrSONo:  req.Header.TempOrSONo,
		},
		Items: make([]requestItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		payload.Items = append(payload.Items, requestItem{
			ItemNo:       item.ItemNo,
			MaterialCode: item.MaterialCode,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			ShipTo:       item.ShipTo,
			RequestDate:  item.RequestDate.Format(dateFormat),
			IsNew:        item.IsNew,
			ForceFlag:    item.ForceFlag,
			Plant:        item.Plant,
			BOMParentRef: item.BOMParentRef,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return services.PlanningResponse{}, errors.Wrap(err, "failed to encode planning request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/planning/confirm", bytes.NewReader(body))
	if err != nil {
		return services.PlanningResponse{}, errors.Wrap(err, "failed to build planning request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return services.PlanningResponse{}, errors.Wrap(err, "planning request failed")
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		limited, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return services.PlanningResponse{}, errors.Errorf(
			"planning system returned %d: %s", httpResp.StatusCode, string(limited),
		)
	}

	var wire confirmResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&wire); err != nil {
		return services.PlanningResponse{}, errors.Wrap(err, "failed to decode planning response")
	}

	resp := services.PlanningResponse{Message: wire.Message}
	for _, item := range wire.OrderItem {
		confirmDate, err := parseWireDate(item.ConfirmDate)
		if err != nil {
			return services.PlanningResponse{}, errors.Wrapf(err, "item %s: bad confirm date", item.ItemNo)
		}
		resp.OrderItems = append(resp.OrderItems, services.PlanningResponseItem{
			ItemNo:         item.ItemNo,
			ConfirmDate:    confirmDate,
			Plant:          item.Plant,
			BOMMaterialRef: item.MatBOM,
		})
	}
	return resp, nil
}

func parseWireDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return t, nil
}
