package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-mine/internal/kml"
	"github.com/joeblew999/plat-mine/internal/overlay"
)

const testKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
  <Style id="area1"><PolyStyle><color>7f00ff00</color><fill>1</fill></PolyStyle></Style>
  <Style id="line1"><LineStyle><color>ff0000ff</color><width>4</width></LineStyle></Style>
  <Placemark>
    <name>12A</name>
    <Point><coordinates>85.380,21.940</coordinates></Point>
  </Placemark>
  <Placemark>
    <name>MAIN PIT</name>
    <Point><coordinates>85.385,21.945</coordinates></Point>
  </Placemark>
  <Placemark>
    <name>Zone A</name>
    <styleUrl>#area1</styleUrl>
    <Polygon><outerBoundaryIs><LinearRing><coordinates>
      85.37,21.93 85.375,21.93 85.375,21.935 85.37,21.93
    </coordinates></LinearRing></outerBoundaryIs></Polygon>
  </Placemark>
  <Placemark>
    <name>Lease boundary</name>
    <styleUrl>#line1</styleUrl>
    <LineString><coordinates>85.36,21.92 85.39,21.95</coordinates></LineString>
  </Placemark>
</Document>
</kml>`

func writeKML(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "doc.kml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestMapServiceReload(t *testing.T) {
	dir := t.TempDir()
	bus := NewEventBus()
	events := bus.Subscribe()
	defer bus.Unsubscribe(events)

	svc := NewMapService(writeKML(t, dir, testKML), bus, nil)

	_, err := svc.Snapshot()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	var hooked *MapSnapshot
	svc.OnLoad(func(s *MapSnapshot) { hooked = s })

	snap, err := svc.Reload()
	require.NoError(t, err)
	assert.Same(t, snap, hooked)
	assert.Len(t, snap.Styles, 2)
	assert.Equal(t, map[overlay.Group]int{
		overlay.GroupLeasePillars:   1,
		overlay.GroupInfrastructure: 1,
		overlay.GroupAreas:          1,
		overlay.GroupBoundaries:     1,
	}, snap.Counts())
	assert.Equal(t, orb.Point{85.36, 21.92}, snap.Bounds.Min)
	assert.Equal(t, 4, snap.Index.Size())

	ev := <-events
	assert.Equal(t, Event{Resource: ResourceOverlays, Action: ActionReloaded}, ev)

	current, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Same(t, snap, current)
}

func TestMapServiceFailedReloadKeepsSnapshot(t *testing.T) {
	dir := t.TempDir()
	bus := NewEventBus()
	path := writeKML(t, dir, testKML)
	svc := NewMapService(path, bus, nil)

	first, err := svc.Reload()
	require.NoError(t, err)

	events := bus.Subscribe()
	defer bus.Unsubscribe(events)

	writeKML(t, dir, "<kml><Document>")
	_, err = svc.Reload()
	assert.ErrorIs(t, err, kml.ErrMalformedDocument)
	assert.ErrorIs(t, svc.LastError(), kml.ErrMalformedDocument)

	current, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Same(t, first, current)

	ev := <-events
	assert.Equal(t, ActionFailed, ev.Action)
	assert.NotEmpty(t, ev.Detail)
}

func TestMapServiceMissingFile(t *testing.T) {
	svc := NewMapService(filepath.Join(t.TempDir(), "missing.kml"), nil, nil)

	_, err := svc.Reload()
	require.Error(t, err)

	_, err = svc.Snapshot()
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.Contains(t, err.Error(), "missing.kml")
}

func TestMapServiceLoadBytes(t *testing.T) {
	svc := NewMapService("unused.kml", nil, nil)

	snap, err := svc.Load([]byte(testKML), "inline")
	require.NoError(t, err)
	assert.Equal(t, "inline", snap.Source)
	assert.Equal(t, 4, snap.Overlays.Count())
	assert.NoError(t, svc.LastError())
}
