package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
)

func TestOrderMapperKeepsPendingFlag(t *testing.T) {
	pending := order.New("TMP-9", "C100", "1000", "NET30")
	row := toDBOrder(pending)
	require.True(t, row.IsNew)

	restored, err := toDomainOrder(row)
	require.NoError(t, err)
	assert.True(t, restored.IsNew())
	assert.Equal(t, pending.ID(), restored.ID())
	assert.Equal(t, order.StatusReceived, restored.Status())
}

func TestOrderLineMapperRoundTrip(t *testing.T) {
	requestDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	l := order.HydrateLine(
		uuid.New(), uuid.New(), "20",
		order.Material{Code: "KRAFT-80", Production: order.Produced},
		"EA",
		decimal.NewFromInt(60), decimal.NewFromInt(60),
		decimal.NewFromInt(60), decimal.NewFromInt(60),
		true, "10", order.ItemStatusCreated, "",
		requestDate, time.Time{}, "", "WH-1",
		"", decimal.NewFromFloat(120.5), decimal.NewFromInt(12), decimal.NewFromFloat(2.01),
		order.Texts{Comment: "rush", LotNo: "L-77"},
		true, time.Now(), time.Now(),
	)

	row, err := toDBOrderLine(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"comment":"rush","lotNo":"L-77"}`, string(row.Texts))
	require.NotNil(t, row.RequestDate)
	// An unset confirmed date maps to NULL, not to the zero timestamp.
	assert.Nil(t, row.ConfirmedDate)

	restored, err := toDomainOrderLine(row)
	require.NoError(t, err)
	assert.Equal(t, l.ID(), restored.ID())
	assert.Equal(t, "20", restored.ItemNo())
	assert.Equal(t, "10", restored.ParentItemNo())
	assert.True(t, restored.IsBOMComponent())
	assert.True(t, restored.IsDraft())
	assert.Equal(t, requestDate, restored.RequestDate())
	assert.True(t, restored.ConfirmedDate().IsZero())
	assert.True(t, restored.NetPrice().Equal(decimal.NewFromFloat(120.5)))
	assert.Equal(t, order.Texts{Comment: "rush", LotNo: "L-77"}, restored.Texts())
}

func TestOrderLineMapperEmptyTexts(t *testing.T) {
	l := order.NewLine(uuid.New(), "10", order.Material{Code: "KRAFT-80"}, decimal.NewFromInt(1), "EA")
	row, err := toDBOrderLine(l)
	require.NoError(t, err)

	restored, err := toDomainOrderLine(row)
	require.NoError(t, err)
	assert.Equal(t, order.Texts{}, restored.Texts())
}
