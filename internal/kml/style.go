package kml

import (
	"strconv"
	"strings"
)

// StyleKind is the coarse kind of a style, inferred from its id prefix.
type StyleKind string

const (
	KindArea    StyleKind = "area"
	KindPoint   StyleKind = "point"
	KindLine    StyleKind = "line"
	KindUnknown StyleKind = "unknown"
)

// DefaultLineWidth is used when a style carries no usable width.
const DefaultLineWidth = 2

// StyleRecord is the resolved visual style for one KML Style id.
// Color fields hold #rrggbb strings; an empty string means the source did
// not set the color.
type StyleRecord struct {
	ID             string    `json:"id" yaml:"id" doc:"Style identifier" example:"area1"`
	LineColor      string    `json:"lineColor,omitempty" yaml:"lineColor,omitempty" doc:"Line color (CSS)" example:"#ff0000"`
	LineWidth      int       `json:"lineWidth" yaml:"lineWidth" doc:"Line width in pixels" example:"2"`
	PolyColor      string    `json:"polyColor,omitempty" yaml:"polyColor,omitempty" doc:"Polygon fill color (CSS)" example:"#00ff00"`
	FillEnabled    bool      `json:"fillEnabled" yaml:"fillEnabled" doc:"Whether polygons are filled"`
	OutlineEnabled bool      `json:"outlineEnabled" yaml:"outlineEnabled" doc:"Whether polygons are outlined"`
	LabelColor     string    `json:"labelColor,omitempty" yaml:"labelColor,omitempty" doc:"Label color (CSS)"`
	IconColor      string    `json:"iconColor,omitempty" yaml:"iconColor,omitempty" doc:"Icon color (CSS)"`
	Kind           StyleKind `json:"kind" yaml:"kind" enum:"area,point,line,unknown" doc:"Kind inferred from the id prefix"`
}

// Styles maps style ids to their records.
type Styles map[string]StyleRecord

// Lookup resolves a style reference such as "#area1". The leading '#' is
// optional.
func (s Styles) Lookup(ref string) (StyleRecord, bool) {
	id := strings.TrimPrefix(ref, "#")
	if id == "" {
		return StyleRecord{}, false
	}
	rec, ok := s[id]
	return rec, ok
}

// KindFromID infers a StyleKind from a case-sensitive id prefix.
func KindFromID(id string) StyleKind {
	switch {
	case strings.HasPrefix(id, "area"):
		return KindArea
	case strings.HasPrefix(id, "point"):
		return KindPoint
	case strings.HasPrefix(id, "line"):
		return KindLine
	default:
		return KindUnknown
	}
}

type xmlStyle struct {
	ID         string         `xml:"id,attr"`
	LineStyle  *xmlLineStyle  `xml:"LineStyle"`
	PolyStyle  *xmlPolyStyle  `xml:"PolyStyle"`
	LabelStyle *xmlColorStyle `xml:"LabelStyle"`
	IconStyle  *xmlColorStyle `xml:"IconStyle"`
}

type xmlLineStyle struct {
	Color *string `xml:"color"`
	Width *string `xml:"width"`
}

type xmlPolyStyle struct {
	Color   *string `xml:"color"`
	Fill    *string `xml:"fill"`
	Outline *string `xml:"outline"`
}

type xmlColorStyle struct {
	Color *string `xml:"color"`
}

// record converts a decoded Style element. Defaults are applied per field.
func (s xmlStyle) record() StyleRecord {
	rec := StyleRecord{
		ID:          s.ID,
		LineWidth:   DefaultLineWidth,
		FillEnabled: true,
		Kind:        KindFromID(s.ID),
	}
	if ls := s.LineStyle; ls != nil {
		rec.LineColor = optionalColor(ls.Color)
		if ls.Width != nil {
			rec.LineWidth = parseWidth(*ls.Width)
		}
	}
	if ps := s.PolyStyle; ps != nil {
		rec.PolyColor = optionalColor(ps.Color)
		if ps.Fill != nil {
			rec.FillEnabled = isOne(*ps.Fill)
		}
		if ps.Outline != nil {
			rec.OutlineEnabled = isOne(*ps.Outline)
		}
	}
	if ls := s.LabelStyle; ls != nil {
		rec.LabelColor = optionalColor(ls.Color)
	}
	if is := s.IconStyle; is != nil {
		rec.IconColor = optionalColor(is.Color)
	}
	return rec
}

func optionalColor(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return ""
	}
	return ColorToHex(*v)
}

func isOne(v string) bool {
	return strings.TrimSpace(v) == "1"
}

// parseWidth reads the leading integer of v, so "1.5" is 1. Anything that
// does not yield a positive integer falls back to DefaultLineWidth.
func parseWidth(v string) int {
	v = strings.TrimSpace(v)
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil || n <= 0 {
		return DefaultLineWidth
	}
	return n
}
