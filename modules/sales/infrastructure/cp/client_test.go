package cp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftedge/oms/modules/sales/infrastructure/cp"
	"github.com/kraftedge/oms/modules/sales/services"
)

func TestClient_Confirm(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/planning/confirm", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"message": "Success",
			"order_item": [
				{"item_no": "000010", "confirm_date": "2024-01-05", "plant": "P2", "mat_bom": "000010/KIT-A"}
			]
		}`))
	}))
	defer srv.Close()

	client := cp.NewClient(srv.URL, 5*time.Second)
	resp, err := client.Confirm(context.Background(), services.PlanningRequest{
		Sender: "OMS",
		Header: services.PlanningHeader{
			RequestType: services.PlanningRequestChange,
			SalesOrg:    "1000",
			SoldTo:      "C100",
			TempOrSONo:  "4711",
		},
		Items: []services.PlanningRequestItem{{
			ItemNo:       "000010",
			MaterialCode: "KRAFT-80",
			Quantity:     decimal.NewFromInt(100),
			Unit:         "EA",
			RequestDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			ForceFlag:    true,
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "OMS", captured["sender"])
	header := captured["header"].(map[string]any)
	assert.Equal(t, "CHANGE", header["request_type"])
	assert.Equal(t, "4711", header["temp_or_so_no"])
	items := captured["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "000010", item["item_no"])
	assert.Equal(t, "2024-01-01", item["request_date"])
	assert.Equal(t, true, item["force_flag"])

	assert.Equal(t, services.PlanningSuccess, resp.Message)
	require.Len(t, resp.OrderItems, 1)
	assert.Equal(t, "000010", resp.OrderItems[0].ItemNo)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), resp.OrderItems[0].ConfirmDate)
	assert.Equal(t, "P2", resp.OrderItems[0].Plant)
	assert.Equal(t, "000010/KIT-A", resp.OrderItems[0].BOMMaterialRef)
}

func TestClient_ConfirmNonSuccessPassedThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": "No capacity data", "order_item": []}`))
	}))
	defer srv.Close()

	client := cp.NewClient(srv.URL, 5*time.Second)
	resp, err := client.Confirm(context.Background(), services.PlanningRequest{})
	require.NoError(t, err)
	assert.Equal(t, "No capacity data", resp.Message)
	assert.Empty(t, resp.OrderItems)
}

func TestClient_ConfirmServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := cp.NewClient(srv.URL, 5*time.Second)
	_, err := client.Confirm(context.Background(), services.PlanningRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
