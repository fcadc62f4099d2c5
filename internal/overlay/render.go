package overlay

import (
	"github.com/paulmach/orb"

	"github.com/joeblew999/plat-mine/internal/kml"
)

// RenderMode tells a renderer how to draw a feature.
type RenderMode string

const (
	RenderLine    RenderMode = "line"
	RenderPolygon RenderMode = "polygon"
	RenderLabel   RenderMode = "label"
)

// Fallback presentation values used when a style is missing or partial.
const (
	DefaultLineColor    = "#504d75ff"
	DefaultLineWeight   = 3
	DefaultPolygonColor = "#000000"
	DefaultLabelColor   = "#FFFFFF"
	strokeOpacity       = 0.8
	fillOpacity         = 0.3
)

// RenderStyle is the resolved presentation of one feature.
type RenderStyle struct {
	Mode        RenderMode `json:"mode" enum:"line,polygon,label" doc:"How the feature is drawn"`
	Color       string     `json:"color,omitempty" doc:"Stroke color (CSS)"`
	Weight      int        `json:"weight,omitempty" doc:"Stroke width"`
	Opacity     float64    `json:"opacity,omitempty" doc:"Stroke opacity (0-1)"`
	FillColor   string     `json:"fillColor,omitempty" doc:"Fill color (CSS)"`
	FillOpacity float64    `json:"fillOpacity" doc:"Fill opacity (0-1)"`
	FillEnabled bool       `json:"fillEnabled" doc:"Whether the polygon is filled"`
	LabelColor  string     `json:"labelColor,omitempty" doc:"Label text color (CSS)"`
}

// RenderModeFor dispatches on the geometry kind.
func RenderModeFor(kind kml.GeometryKind) RenderMode {
	switch kind {
	case kml.GeometryLine:
		return RenderLine
	case kml.GeometryPolygon:
		return RenderPolygon
	default:
		return RenderLabel
	}
}

// ResolveStyle resolves the feature's style reference and fills the gaps
// with kind specific defaults.
func ResolveStyle(f kml.Feature, styles kml.Styles) RenderStyle {
	rec, _ := styles.Lookup(f.StyleRef)
	if rec.ID == "" {
		rec.FillEnabled = true
	}

	rs := RenderStyle{Mode: RenderModeFor(f.Kind), LabelColor: DefaultLabelColor}
	switch rs.Mode {
	case RenderLine:
		rs.Color = firstNonEmpty(rec.LineColor, DefaultLineColor)
		rs.Weight = firstPositive(rec.LineWidth, DefaultLineWeight)
		rs.Opacity = strokeOpacity
	case RenderPolygon:
		rs.Color = firstNonEmpty(rec.LineColor, DefaultPolygonColor)
		rs.Weight = firstPositive(rec.LineWidth, kml.DefaultLineWidth)
		rs.Opacity = strokeOpacity
		rs.FillColor = firstNonEmpty(rec.PolyColor, rec.LineColor, DefaultPolygonColor)
		rs.FillEnabled = rec.FillEnabled
		if rs.FillEnabled {
			rs.FillOpacity = fillOpacity
		}
	case RenderLabel:
		rs.LabelColor = firstNonEmpty(rec.LabelColor, rec.IconColor, DefaultLabelColor)
	}
	return rs
}

// Anchor is where a feature's label and popup are placed: the point itself,
// or the centre of the geometry's bounds.
func Anchor(f kml.Feature) orb.Point {
	if f.Geometry == nil {
		return orb.Point{}
	}
	if p, ok := f.Geometry.(orb.Point); ok {
		return p
	}
	return f.Geometry.Bound().Center()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
