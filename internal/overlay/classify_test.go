package overlay

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-mine/internal/kml"
)

func point(name, desc, style string) kml.Feature {
	return kml.Feature{Name: name, Description: desc, StyleRef: style, Kind: kml.GeometryPoint, Geometry: orb.Point{85.38, 21.94}}
}

func line(name, style string) kml.Feature {
	return kml.Feature{Name: name, StyleRef: style, Kind: kml.GeometryLine, Geometry: orb.LineString{{85, 21}, {85.1, 21.1}}}
}

func polygon(name, style string) kml.Feature {
	return kml.Feature{Name: name, StyleRef: style, Kind: kml.GeometryPolygon,
		Geometry: orb.Polygon{{{85, 21}, {85.2, 21}, {85.2, 21.2}, {85, 21}}}}
}

func TestClassifyPillarLabels(t *testing.T) {
	tests := []struct {
		name string
		want Group
	}{
		{"12", GroupLeasePillars},
		{"12A", GroupLeasePillars},
		{"12/", GroupLeasePillars},
		{"12/3", GroupLeasePillars},
		{"  7B ", GroupLeasePillars},
		{"12AB", GroupBoundaries},
		{"12a", GroupBoundaries},
		{"A12", GroupBoundaries},
		{"12/34", GroupBoundaries},
		{"12-3", GroupBoundaries},
		{"Pillar 12", GroupBoundaries},
		{"PIT-12", GroupInfrastructure},
		{"", GroupBoundaries},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify([]kml.Feature{point(tt.name, "", "")}, nil)
			require.Len(t, got[tt.want], 1)
			assert.Equal(t, tt.want, got[tt.want][0].Group)
		})
	}
}

func TestClassifyInfrastructureKeywords(t *testing.T) {
	for _, name := range []string{
		"MAIN PIT", "GATE 2", "CW PLANT", "ADMIN BLOCK", "TLS", "WTP-1",
		"HAUL ROAD", "Twin Chowk", "G.E.M COMPLEX",
	} {
		got := Classify([]kml.Feature{line(name, "")}, nil)
		assert.Len(t, got[GroupInfrastructure], 1, name)
	}
	got := Classify([]kml.Feature{line("twin chowk", ""), line("Pit road", "")}, nil)
	assert.Len(t, got[GroupBoundaries], 2, "keywords are case-sensitive")
}

func TestClassifyPriority(t *testing.T) {
	styles := kml.Styles{"myarea2": {ID: "myarea2", Kind: kml.KindUnknown}}
	features := []kml.Feature{
		point("GATE 1", "Lease pillar no. 4", ""),
		polygon("PIT-3 boundary", ""),
		polygon("Dump yard", ""),
		line("Fence", "#myarea2"),
		line("Track", "#area9"),
		point("Office", "", ""),
	}

	got := Classify(features, styles)

	require.Len(t, got[GroupLeasePillars], 1)
	assert.Equal(t, "GATE 1", got[GroupLeasePillars][0].Feature.Name, "rule 1 wins over rule 2")

	require.Len(t, got[GroupInfrastructure], 1)
	assert.Equal(t, "PIT-3 boundary", got[GroupInfrastructure][0].Feature.Name, "rule 2 wins over polygon")

	require.Len(t, got[GroupAreas], 2)
	assert.Equal(t, "Dump yard", got[GroupAreas][0].Feature.Name)
	assert.Equal(t, "Fence", got[GroupAreas][1].Feature.Name, "style id containing area")

	require.Len(t, got[GroupBoundaries], 2)
	assert.Equal(t, "Track", got[GroupBoundaries][0].Feature.Name, "unresolved style reference is ignored")
	assert.Equal(t, "Office", got[GroupBoundaries][1].Feature.Name)
}

func TestClassifyTotalAndExclusive(t *testing.T) {
	features := []kml.Feature{
		point("1", "", ""), point("1", "", ""), line("ROAD", ""), polygon("Zone", ""),
		line("x", ""), point("GATE", "", ""), point("", "Lease pillar", ""), line("y", "#areaZ"),
	}
	got := Classify(features, kml.Styles{"areaZ": {ID: "areaZ"}})

	assert.Equal(t, len(features), got.Count())
	total := 0
	for _, g := range Groups {
		total += len(got[g])
	}
	assert.Equal(t, len(features), total)

	seen := map[int]Group{}
	for g, fs := range got {
		for _, f := range fs {
			prev, dup := seen[f.Index]
			assert.False(t, dup, "index %d in %s and %s", f.Index, prev, g)
			seen[f.Index] = g
		}
	}
	assert.Len(t, seen, len(features))

	pillars := got[GroupLeasePillars]
	require.Len(t, pillars, 3, "duplicates are kept")
	assert.Equal(t, []int{0, 1, 6}, []int{pillars[0].Index, pillars[1].Index, pillars[2].Index})
}

func TestClassifyEmpty(t *testing.T) {
	got := Classify(nil, nil)
	assert.Len(t, got, len(Groups))
	for _, g := range Groups {
		assert.NotNil(t, got[g])
		assert.Empty(t, got[g])
	}
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	features := []kml.Feature{point("12", "", "#p"), line("HAUL ROAD", "#l")}
	styles := kml.Styles{"p": {ID: "p", LabelColor: "#123456"}, "l": {ID: "l", LineWidth: 4}}
	before := append([]kml.Feature(nil), features...)

	Classify(features, styles)

	assert.Equal(t, before, features)
	assert.Len(t, styles, 2)
}

func TestClassifyTags(t *testing.T) {
	styles := kml.Styles{"pt": {ID: "pt", LabelColor: "#abcdef"}}
	features := []kml.Feature{
		point("MAIN PIT", "", "pt"),
		point("GATE 1", "Lease pillar", ""),
		point("12A", "", "pt"),
		line("HAUL ROAD", ""),
		point("Office", "", "#pt"),
		point("PIT GATE", "", ""),
	}
	got := Classify(features, styles)
	byIndex := map[int]StyledFeature{}
	for _, sf := range got.All() {
		byIndex[sf.Index] = sf
	}

	assert.Equal(t, TypePit, byIndex[0].FeatureType)
	assert.Equal(t, "#FF0000", byIndex[0].LabelColor)

	assert.Equal(t, GroupLeasePillars, byIndex[1].Group)
	assert.Equal(t, TypeGate, byIndex[1].FeatureType)
	assert.Equal(t, "#00FF00", byIndex[1].LabelColor)

	assert.Equal(t, TypeLeasePillar, byIndex[2].FeatureType)
	assert.Equal(t, "#ffffffff", byIndex[2].LabelColor)

	assert.Equal(t, TypeRoad, byIndex[3].FeatureType)
	assert.Equal(t, DefaultLabelColor, byIndex[3].LabelColor)

	assert.Equal(t, FeatureType(""), byIndex[4].FeatureType)
	assert.Equal(t, "#abcdef", byIndex[4].LabelColor)

	assert.Equal(t, TypePit, byIndex[5].FeatureType)
}

func TestClassifyEndToEnd(t *testing.T) {
	doc := `<kml xmlns="http://www.opengis.net/kml/2.2"><Document>
  <Style id="area1"><PolyStyle><color>7f00ff00</color><fill>1</fill></PolyStyle></Style>
  <Placemark>
    <name>Zone A</name>
    <styleUrl>#area1</styleUrl>
    <Polygon><outerBoundaryIs><LinearRing><coordinates>
      85.0,21.0 85.1,21.0 85.1,21.1 85.0,21.0
    </coordinates></LinearRing></outerBoundaryIs></Polygon>
  </Placemark>
</Document></kml>`

	parsed, err := kml.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	got := Classify(parsed.Features, parsed.Styles)
	require.Len(t, got[GroupAreas], 1)
	assert.Empty(t, got[GroupLeasePillars])
	assert.Empty(t, got[GroupInfrastructure])
	assert.Empty(t, got[GroupBoundaries])

	zone := got[GroupAreas][0]
	assert.Equal(t, "Zone A", zone.Feature.Name)
	assert.Equal(t, "#00ff00", zone.Style.FillColor)
	assert.True(t, zone.Style.FillEnabled)
	assert.Equal(t, 0.3, zone.Style.FillOpacity)
}

func TestGroupSlug(t *testing.T) {
	assert.Equal(t, "lease-pillars", GroupLeasePillars.Slug())
	assert.Equal(t, "boundaries", GroupBoundaries.Slug())

	g, ok := GroupFromSlug("infrastructure")
	assert.True(t, ok)
	assert.Equal(t, GroupInfrastructure, g)

	g, ok = GroupFromSlug("Lease Pillars")
	assert.True(t, ok)
	assert.Equal(t, GroupLeasePillars, g)

	_, ok = GroupFromSlug("roads")
	assert.False(t, ok)
}

func TestOverlaysFind(t *testing.T) {
	got := Classify([]kml.Feature{point("a", "", ""), point("b", "", "")}, nil)
	sf, ok := got.Find(1)
	require.True(t, ok)
	assert.Equal(t, "b", sf.Feature.Name)

	_, ok = got.Find(5)
	assert.False(t, ok)
}
