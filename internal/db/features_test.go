package db

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-mine/internal/kml"
	"github.com/joeblew999/plat-mine/internal/overlay"
)

func openStore(t *testing.T) *FeatureStore {
	t.Helper()
	conn, err := Open(Config{})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	store, err := NewFeatureStore(context.Background(), conn)
	require.NoError(t, err)
	return store
}

func TestFeatureStoreSync(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	o := overlay.Classify([]kml.Feature{
		{Name: "12A", Kind: kml.GeometryPoint, Geometry: orb.Point{85.38, 21.94}},
		{Name: "MAIN PIT", Kind: kml.GeometryPoint, Geometry: orb.Point{85.385, 21.945}},
		{Name: "Haul road", Kind: kml.GeometryLine, Geometry: orb.LineString{{85.30, 21.90}, {85.50, 22.00}}},
		{Name: "orphan"},
	}, nil)
	require.NoError(t, store.Sync(ctx, o.All()))

	counts, err := store.CountByGroup(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[overlay.Group]int{
		overlay.GroupLeasePillars:   1,
		overlay.GroupInfrastructure: 1,
		overlay.GroupBoundaries:     2,
	}, counts)

	var name, featureType string
	var lon, lat float64
	err = store.db.QueryRowContext(ctx,
		"SELECT name, feature_type, lon, lat FROM features WHERE feature_index = 2").
		Scan(&name, &featureType, &lon, &lat)
	require.NoError(t, err)
	assert.Equal(t, "Haul road", name)
	assert.Equal(t, "", featureType)
	assert.InDelta(t, 85.40, lon, 1e-9)
	assert.InDelta(t, 21.95, lat, 1e-9)

	// A second sync replaces the previous contents.
	require.NoError(t, store.Sync(ctx, o[overlay.GroupLeasePillars]))
	counts, err = store.CountByGroup(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[overlay.Group]int{overlay.GroupLeasePillars: 1}, counts)
}
