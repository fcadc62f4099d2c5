// Package overlay partitions parsed KML features into the map's fixed
// overlay groups and derives what a renderer needs to draw them.
package overlay

import (
	"regexp"
	"strings"

	"github.com/joeblew999/plat-mine/internal/kml"
)

// Group is one of the fixed overlay buckets.
type Group string

const (
	GroupLeasePillars   Group = "Lease Pillars"
	GroupInfrastructure Group = "Infrastructure"
	GroupAreas          Group = "Areas"
	GroupBoundaries     Group = "Boundaries"
)

// Groups lists every group in display order.
var Groups = []Group{GroupLeasePillars, GroupInfrastructure, GroupAreas, GroupBoundaries}

// Slug returns the URL form of the group name, e.g. "lease-pillars".
func (g Group) Slug() string {
	return strings.ToLower(strings.ReplaceAll(string(g), " ", "-"))
}

// GroupFromSlug resolves a slug or display name to a Group.
func GroupFromSlug(s string) (Group, bool) {
	for _, g := range Groups {
		if s == g.Slug() || s == string(g) {
			return g, true
		}
	}
	return "", false
}

// FeatureType is derived presentation metadata. The empty value means
// untyped.
type FeatureType string

const (
	TypePit         FeatureType = "pit"
	TypeGate        FeatureType = "gate"
	TypeLeasePillar FeatureType = "lease_pillar"
	TypeRoad        FeatureType = "road"
)

// DisplayName is the human readable label shown in popups.
func (t FeatureType) DisplayName() string {
	switch t {
	case TypePit:
		return "Mining Pit"
	case TypeGate:
		return "Access Gate"
	case TypeLeasePillar:
		return "Lease Boundary Pillar"
	case TypeRoad:
		return "Access Road"
	}
	return string(t)
}

// StyledFeature is a classified feature with its resolved presentation.
type StyledFeature struct {
	Index       int
	Feature     kml.Feature
	Group       Group
	Style       RenderStyle
	FeatureType FeatureType
	LabelColor  string
}

// Overlays maps each group to its features in document order. Every group
// key is present.
type Overlays map[Group][]StyledFeature

// Count returns the total number of classified features.
func (o Overlays) Count() int {
	n := 0
	for _, fs := range o {
		n += len(fs)
	}
	return n
}

// All returns every feature in group display order.
func (o Overlays) All() []StyledFeature {
	out := make([]StyledFeature, 0, o.Count())
	for _, g := range Groups {
		out = append(out, o[g]...)
	}
	return out
}

// Find returns the feature with the given input index.
func (o Overlays) Find(index int) (StyledFeature, bool) {
	for _, fs := range o {
		for _, f := range fs {
			if f.Index == index {
				return f, true
			}
		}
	}
	return StyledFeature{}, false
}

// pillarLabel matches lease pillar codes such as "12", "12A", "12/" or
// "12/3". It is anchored on both ends so names that merely contain digits
// do not match.
var pillarLabel = regexp.MustCompile(`^\d+([A-Z]?|/[0-9]?)$`)

var infrastructureKeywords = []string{
	"PIT", "GATE", "PLANT", "ADMIN", "TLS", "WTP", "ROAD", "Chowk", "COMPLEX",
}

// Classify assigns every feature to exactly one group, then tags it.
// The inputs are not modified.
func Classify(features []kml.Feature, styles kml.Styles) Overlays {
	out := make(Overlays, len(Groups))
	for _, g := range Groups {
		out[g] = []StyledFeature{}
	}

	for i, f := range features {
		g := groupFor(f, styles)
		sf := StyledFeature{
			Index:   i,
			Feature: f,
			Group:   g,
			Style:   ResolveStyle(f, styles),
		}
		sf.FeatureType, sf.LabelColor = tag(sf)
		out[g] = append(out[g], sf)
	}
	return out
}

func groupFor(f kml.Feature, styles kml.Styles) Group {
	switch {
	case isLeasePillar(f):
		return GroupLeasePillars
	case isInfrastructure(f.Name):
		return GroupInfrastructure
	case isArea(f, styles):
		return GroupAreas
	default:
		return GroupBoundaries
	}
}

func isLeasePillar(f kml.Feature) bool {
	if strings.Contains(f.Description, "Lease pillar") {
		return true
	}
	name := strings.TrimSpace(f.Name)
	return name != "" && pillarLabel.MatchString(name)
}

func isInfrastructure(name string) bool {
	for _, kw := range infrastructureKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func isArea(f kml.Feature, styles kml.Styles) bool {
	if f.Kind == kml.GeometryPolygon {
		return true
	}
	rec, ok := styles.Lookup(f.StyleRef)
	return ok && strings.Contains(rec.ID, "area")
}

// tag derives the feature type and label color of an already classified
// feature. It never feeds back into group assignment.
func tag(sf StyledFeature) (FeatureType, string) {
	name := sf.Feature.Name
	label := sf.Style.LabelColor
	switch {
	case strings.Contains(name, "PIT"):
		return TypePit, "#FF0000"
	case strings.Contains(name, "GATE"):
		return TypeGate, "#00FF00"
	case sf.Group == GroupLeasePillars:
		return TypeLeasePillar, "#ffffffff"
	case strings.Contains(name, "ROAD"):
		return TypeRoad, label
	}
	return "", label
}
