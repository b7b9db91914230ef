package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-chart-station/pkg/idgen"
	"ev-chart-station/pkg/station"
	"ev-chart-station/pkg/types"
)

func newTestStore(t *testing.T) *StationStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ids, err := idgen.NewSnowflake(0, 1)
	require.NoError(t, err)
	return NewStationStore(db, ids)
}

func testRecord(stationID string) *station.Record {
	funded := true
	afc := 1
	return &station.Record{
		StationID:         stationID,
		Address:           "1437 Bannock St",
		City:              "Denver",
		State:             "CO",
		Zip:               "80202",
		ZipExtended:       "1234",
		Latitude:          "39.739236",
		Longitude:         "-104.990251",
		NetworkProvider:   "ChargePoint",
		ProjectType:       "New Station",
		OperationalDate:   "2023-06-01",
		FederallyFunded:   &funded,
		NEVI:              1,
		CMAQ:              1,
		NumFedFundedPorts: station.NewPortCount(2),
		FedFundedPorts: []station.PortEntry{
			{PortID: "P1", PortType: station.PortTypeCCS},
			{PortID: "P2"},
		},
		AuthorizedSubrecipients: []string{"ORG1"},
		DRID:                    "org-1",
		AFC:                     &afc,
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "", nil)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestStationStore_CreateGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "org-1", testRecord("ABC123"))
	require.NoError(t, err)
	assert.True(t, created.ID.IsValid())
	assert.True(t, created.Funding.Contain(types.FundingNEVI|types.FundingCMAQ))

	assert.Equal(t, created.ID.Time(), created.CreatedAt)

	got, err := store.Get(ctx, "org-1", created.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, created.ID.Time(), got.CreatedAt, time.Millisecond)

	r := got.ToRecord()
	assert.Equal(t, "ABC123", r.StationID)
	assert.Equal(t, 1, r.NEVI)
	assert.Equal(t, 1, r.CMAQ)
	assert.Equal(t, 0, r.CFI)
	n, ok := r.NumFedFundedPorts.Int()
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	assert.False(t, r.NumNonFedFundedPorts.Provided())
	assert.Equal(t, []station.PortEntry{{PortID: "P1", PortType: station.PortTypeCCS}, {PortID: "P2"}}, r.FedFundedPorts)
	assert.Equal(t, []string{"ORG1"}, r.AuthorizedSubrecipients)

	// 其他机构看不到
	_, err = store.Get(ctx, "org-2", created.ID)
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestStationStore_Duplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "org-1", testRecord("ABC123"))
	require.NoError(t, err)

	_, err = store.Create(ctx, "org-2", testRecord("ABC123"))
	assert.ErrorIs(t, err, ErrDuplicateStation)

	// 不同网络运营商不冲突
	other := testRecord("ABC123")
	other.NetworkProvider = "EVgo"
	_, err = store.Create(ctx, "org-1", other)
	assert.NoError(t, err)
}

func TestStationStore_Update(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a, err := store.Create(ctx, "org-1", testRecord("A1"))
	require.NoError(t, err)
	_, err = store.Create(ctx, "org-1", testRecord("B1"))
	require.NoError(t, err)

	r := testRecord("A1")
	r.City = "Boulder"
	updated, err := store.Update(ctx, "org-1", a.ID, r)
	require.NoError(t, err)
	assert.Equal(t, "Boulder", updated.City)

	// 改成已被占用的唯一键
	_, err = store.Update(ctx, "org-1", a.ID, testRecord("B1"))
	assert.ErrorIs(t, err, ErrDuplicateStation)

	_, err = store.Update(ctx, "org-1", 42, r)
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestStationStore_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"A1", "A2"} {
		_, err := store.Create(ctx, "org-1", testRecord(id))
		require.NoError(t, err)
	}
	_, err := store.Create(ctx, "org-2", testRecord("B1"))
	require.NoError(t, err)

	list, err := store.List(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A1", list[0].StationID)
	assert.Equal(t, "A2", list[1].StationID)

	list, err = store.List(ctx, "org-3")
	require.NoError(t, err)
	assert.Empty(t, list)
}
