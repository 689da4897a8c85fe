package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-trade-dashboard/internal/model"
)

func openTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(":memory:"))
	t.Cleanup(func() { Close() })
}

func TestStoreIsNoopWithoutInit(t *testing.T) {
	require.NoError(t, Close())
	assert.NoError(t, SaveLoadEvent(model.LoadReport{ID: "x"}))
	events, err := ListLoadEvents(10)
	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestLoadEventsRoundTrip(t *testing.T) {
	openTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, SaveLoadEvent(model.LoadReport{
		ID: "a", Path: "trade.csv", RowsRead: 10, RowsRetained: 8, DroppedYear: 1, DroppedValue: 1,
		Status: "loaded", Duration: 15 * time.Millisecond, CreatedAt: now.Add(-time.Minute),
	}))
	require.NoError(t, SaveLoadEvent(model.LoadReport{
		ID: "b", Path: "trade.csv", CacheHit: true, Status: "loaded", CreatedAt: now,
	}))

	events, err := ListLoadEvents(0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].ID)
	assert.True(t, events[0].CacheHit)
	assert.Equal(t, 8, events[1].RowsRetained)
	assert.Equal(t, 15*time.Millisecond, events[1].Duration)
}

func TestExportsRoundTrip(t *testing.T) {
	openTestDB(t)

	require.NoError(t, SaveExport(model.ExportResult{
		ID: "e1", Indicator: "Merchandise trade (% of GDP)", Format: "csv",
		FileName: "Merchandise_trade____of_GDP__data.csv", RecordCount: 3, Bytes: 120, Timestamp: time.Now(),
	}))

	exports, err := ListExports(5)
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, "Merchandise_trade____of_GDP__data.csv", exports[0].FileName)
	assert.Equal(t, 3, exports[0].RecordCount)
}
