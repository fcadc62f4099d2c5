package overlay

import (
	"fmt"
	"io"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	gokml "github.com/twpayne/go-kml"

	"github.com/joeblew999/plat-mine/internal/kml"
)

// ExportGeoJSON converts classified features into a GeoJSON collection.
// Presentation is carried in the feature properties.
func ExportGeoJSON(features []StyledFeature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, sf := range features {
		if sf.Feature.Geometry == nil {
			continue
		}
		f := geojson.NewFeature(sf.Feature.Geometry)
		f.Properties["index"] = sf.Index
		f.Properties["name"] = sf.Feature.Name
		f.Properties["description"] = sf.Feature.Description
		f.Properties["group"] = string(sf.Group)
		f.Properties["geometryKind"] = string(sf.Feature.Kind)
		if sf.FeatureType != "" {
			f.Properties["featureType"] = string(sf.FeatureType)
		}
		if sf.Feature.StyleRef != "" {
			f.Properties["styleUrl"] = sf.Feature.StyleRef
		}
		f.Properties["style"] = sf.Style
		f.Properties["labelColor"] = sf.LabelColor
		fc.Append(f)
	}
	return fc
}

// ExportKML writes one overlay group as a standalone KML document. Only the
// styles referenced by the group's features are included.
func ExportKML(w io.Writer, group Group, features []StyledFeature, styles kml.Styles) error {
	children := []gokml.Element{gokml.Name(string(group))}

	used := map[string]bool{}
	for _, sf := range features {
		if _, ok := styles.Lookup(sf.Feature.StyleRef); ok {
			used[sf.Feature.StyleID()] = true
		}
	}
	ids := make([]string, 0, len(used))
	for id := range used {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		el, err := sharedStyle(styles[id])
		if err != nil {
			return fmt.Errorf("style %q: %w", id, err)
		}
		children = append(children, el)
	}

	for _, sf := range features {
		if pm := placemark(sf, used); pm != nil {
			children = append(children, pm)
		}
	}

	return gokml.KML(gokml.Document(children...)).WriteIndent(w, "", "  ")
}

func sharedStyle(rec kml.StyleRecord) (gokml.Element, error) {
	var parts []gokml.Element

	line := []gokml.Element{gokml.Width(float64(rec.LineWidth))}
	if rec.LineColor != "" {
		c, err := kml.HexToColor(rec.LineColor)
		if err != nil {
			return nil, err
		}
		line = append(line, gokml.Color(c))
	}
	parts = append(parts, gokml.LineStyle(line...))

	poly := []gokml.Element{gokml.Fill(rec.FillEnabled), gokml.Outline(rec.OutlineEnabled)}
	if rec.PolyColor != "" {
		c, err := kml.HexToColor(rec.PolyColor)
		if err != nil {
			return nil, err
		}
		poly = append(poly, gokml.Color(c))
	}
	parts = append(parts, gokml.PolyStyle(poly...))

	if rec.LabelColor != "" {
		c, err := kml.HexToColor(rec.LabelColor)
		if err != nil {
			return nil, err
		}
		parts = append(parts, gokml.LabelStyle(gokml.Color(c)))
	}
	if rec.IconColor != "" {
		c, err := kml.HexToColor(rec.IconColor)
		if err != nil {
			return nil, err
		}
		parts = append(parts, gokml.IconStyle(gokml.Color(c)))
	}
	return gokml.SharedStyle(rec.ID, parts...), nil
}

func placemark(sf StyledFeature, usedStyles map[string]bool) gokml.Element {
	geom := geometryElement(sf.Feature.Geometry)
	if geom == nil {
		return nil
	}
	children := []gokml.Element{gokml.Name(sf.Feature.Name)}
	if sf.Feature.Description != "" {
		children = append(children, gokml.Description(sf.Feature.Description))
	}
	if usedStyles[sf.Feature.StyleID()] {
		children = append(children, gokml.StyleURL("#"+sf.Feature.StyleID()))
	}
	children = append(children, geom)
	return gokml.Placemark(children...)
}

func geometryElement(g orb.Geometry) gokml.Element {
	switch g := g.(type) {
	case orb.Point:
		return gokml.Point(gokml.Coordinates(coordinate(g)))
	case orb.LineString:
		return gokml.LineString(gokml.Coordinates(coordinates(g)...))
	case orb.Polygon:
		if len(g) == 0 {
			return nil
		}
		children := []gokml.Element{
			gokml.OuterBoundaryIs(gokml.LinearRing(gokml.Coordinates(coordinates(g[0])...))),
		}
		for _, ring := range g[1:] {
			children = append(children,
				gokml.InnerBoundaryIs(gokml.LinearRing(gokml.Coordinates(coordinates(ring)...))))
		}
		return gokml.Polygon(children...)
	}
	return nil
}

func coordinate(p orb.Point) gokml.Coordinate {
	return gokml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
}

func coordinates[T ~[]orb.Point](pts T) []gokml.Coordinate {
	out := make([]gokml.Coordinate, len(pts))
	for i, p := range pts {
		out[i] = coordinate(p)
	}
	return out
}
