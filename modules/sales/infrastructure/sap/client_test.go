package sap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/infrastructure/sap"
)

func newClient(baseURL string) *sap.Client {
	return sap.NewClient(sap.Options{
		BaseURL:   baseURL,
		OrderType: "ZOR",
		SalesOrg:  "1000",
		Timeout:   5 * time.Second,
	})
}

func TestClient_FetchSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/4711", r.URL.Path)
		require.Equal(t, "ZOR", r.URL.Query().Get("order_type"))
		require.Equal(t, "1000", r.URL.Query().Get("sales_org"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"header": {"order_no": "4711", "sold_to": "C100", "sales_org": "1000", "payment_term": "NET30"},
			"items": [
				{
					"item_no": "000010", "material": "KIT-A", "bom_flag": true,
					"overall_status": "A", "quantity": 2, "confirm_qty": 2, "unit": "EA",
					"request_date": "2024-01-01"
				},
				{
					"item_no": "000020", "material": "SHEET-80", "production": "PRODUCED",
					"bom_flag": true, "parent_item_no": "000010",
					"overall_status": "C", "delivery_status": "C",
					"quantity": 4, "confirm_qty": 4, "unit": "EA",
					"request_date": "2024-01-01", "confirm_date": "2024-01-05",
					"plant": "P2", "net_price": 10.5
				}
			]
		}`))
	}))
	defer srv.Close()

	snap, err := newClient(srv.URL).FetchSnapshot(context.Background(), "4711")
	require.NoError(t, err)

	assert.Equal(t, "4711", snap.OrderNo)
	assert.Equal(t, "NET30", snap.PaymentTerm)
	require.Len(t, snap.Lines, 2)

	// Item numbers are unpadded once inside the engine.
	kit := snap.Lines[0]
	assert.Equal(t, "10", kit.ItemNo)
	assert.True(t, kit.BOMFlag)
	assert.Empty(t, kit.ParentItemNo)
	assert.Equal(t, order.ProcessingOpen, kit.OverallStatus)

	comp := snap.Lines[1]
	assert.Equal(t, "20", comp.ItemNo)
	assert.Equal(t, "10", comp.ParentItemNo)
	assert.Equal(t, order.Produced, comp.Production)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), comp.ConfirmDate)
	assert.True(t, comp.NetPrice.Equal(decimal.NewFromFloat(10.5)))
	assert.True(t, kit.ConfirmDate.IsZero())
}

func TestClient_FetchSnapshotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FetchSnapshot(context.Background(), "9999")
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestClient_FetchSnapshotServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "dump", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FetchSnapshot(context.Background(), "4711")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
