package kml

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// GeometryKind is the closed set of geometries a Feature can carry.
type GeometryKind string

const (
	GeometryPoint   GeometryKind = "point"
	GeometryLine    GeometryKind = "line"
	GeometryPolygon GeometryKind = "polygon"
)

// Feature is one geographic element taken from a Placemark.
type Feature struct {
	Name        string
	Description string
	StyleRef    string
	Kind        GeometryKind
	Geometry    orb.Geometry
}

// StyleID returns the style reference without its leading '#'.
func (f Feature) StyleID() string {
	return strings.TrimPrefix(f.StyleRef, "#")
}

type xmlPlacemark struct {
	Name          string            `xml:"name"`
	Description   string            `xml:"description"`
	StyleURL      string            `xml:"styleUrl"`
	Styles        []xmlStyle        `xml:"Style"`
	Point         *xmlCoords        `xml:"Point"`
	LineString    *xmlCoords        `xml:"LineString"`
	Polygon       *xmlPolygon       `xml:"Polygon"`
	MultiGeometry *xmlMultiGeometry `xml:"MultiGeometry"`
}

type xmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type xmlPolygon struct {
	Outer *xmlCoords  `xml:"outerBoundaryIs>LinearRing"`
	Inner []xmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type xmlMultiGeometry struct {
	Points      []xmlCoords        `xml:"Point"`
	LineStrings []xmlCoords        `xml:"LineString"`
	Polygons    []xmlPolygon       `xml:"Polygon"`
	Nested      []xmlMultiGeometry `xml:"MultiGeometry"`
}

// features expands a placemark into zero or more Features.
func (p xmlPlacemark) features() []Feature {
	base := Feature{
		Name:        p.Name,
		Description: p.Description,
		StyleRef:    strings.TrimSpace(p.StyleURL),
	}
	var out []Feature
	add := func(kind GeometryKind, g orb.Geometry) {
		if g == nil {
			return
		}
		f := base
		f.Kind = kind
		f.Geometry = g
		out = append(out, f)
	}

	if p.Point != nil {
		add(GeometryPoint, toPoint(*p.Point))
	}
	if p.LineString != nil {
		add(GeometryLine, toLineString(*p.LineString))
	}
	if p.Polygon != nil {
		add(GeometryPolygon, toPolygon(*p.Polygon))
	}
	if p.MultiGeometry != nil {
		p.MultiGeometry.each(add)
	}
	return out
}

func (m xmlMultiGeometry) each(add func(GeometryKind, orb.Geometry)) {
	for _, c := range m.Points {
		add(GeometryPoint, toPoint(c))
	}
	for _, c := range m.LineStrings {
		add(GeometryLine, toLineString(c))
	}
	for _, p := range m.Polygons {
		add(GeometryPolygon, toPolygon(p))
	}
	for _, n := range m.Nested {
		n.each(add)
	}
}

func toPoint(c xmlCoords) orb.Geometry {
	pts := parseCoordinates(c.Coordinates)
	if len(pts) == 0 {
		return nil
	}
	return pts[0]
}

func toLineString(c xmlCoords) orb.Geometry {
	pts := parseCoordinates(c.Coordinates)
	if len(pts) == 0 {
		return nil
	}
	return orb.LineString(pts)
}

func toPolygon(p xmlPolygon) orb.Geometry {
	if p.Outer == nil {
		return nil
	}
	outer := parseCoordinates(p.Outer.Coordinates)
	if len(outer) == 0 {
		return nil
	}
	poly := orb.Polygon{orb.Ring(outer)}
	for _, in := range p.Inner {
		if ring := parseCoordinates(in.Coordinates); len(ring) > 0 {
			poly = append(poly, orb.Ring(ring))
		}
	}
	return poly
}

// parseCoordinates reads whitespace separated "lon,lat[,alt]" tuples.
// Tuples that do not parse are skipped.
func parseCoordinates(s string) []orb.Point {
	var pts []orb.Point
	for _, tuple := range strings.Fields(s) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(parts[0], 64)
		lat, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, orb.Point{lon, lat})
	}
	return pts
}
