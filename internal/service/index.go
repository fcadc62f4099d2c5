package service

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"github.com/joeblew999/plat-mine/internal/overlay"
)

// SpatialIndex answers bounding-box queries over classified features.
type SpatialIndex struct {
	rtree *rtreego.Rtree
	size  int
}

// indexedFeature wraps a feature for R-tree storage.
type indexedFeature struct {
	feature overlay.StyledFeature
	bounds  orb.Bound
}

// Bounds implements rtreego.Spatial.
func (f *indexedFeature) Bounds() rtreego.Rect {
	return boundToRect(f.bounds)
}

// NewSpatialIndex indexes every feature with a geometry.
func NewSpatialIndex(features []overlay.StyledFeature) *SpatialIndex {
	idx := &SpatialIndex{rtree: rtreego.NewTree(2, 25, 50)}
	for _, sf := range features {
		if sf.Feature.Geometry == nil {
			continue
		}
		idx.rtree.Insert(&indexedFeature{feature: sf, bounds: sf.Feature.Geometry.Bound()})
		idx.size++
	}
	return idx
}

// Size returns the number of indexed features.
func (i *SpatialIndex) Size() int {
	return i.size
}

// FeaturesInBounds returns the features whose bounds intersect b, in
// document order.
func (i *SpatialIndex) FeaturesInBounds(b orb.Bound) []overlay.StyledFeature {
	spatials := i.rtree.SearchIntersect(boundToRect(b))

	result := make([]overlay.StyledFeature, 0, len(spatials))
	for _, s := range spatials {
		indexed := s.(*indexedFeature)
		if !indexed.bounds.Intersects(b) {
			continue
		}
		result = append(result, indexed.feature)
	}
	sort.Slice(result, func(a, c int) bool { return result[a].Index < result[c].Index })
	return result
}

// boundToRect converts a bound into an R-tree rectangle. Zero-area bounds
// get a small epsilon (~11 m) since the tree rejects zero lengths.
func boundToRect(b orb.Bound) rtreego.Rect {
	const epsilon = 0.0001

	lonLength := b.Max.Lon() - b.Min.Lon()
	latLength := b.Max.Lat() - b.Min.Lat()
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(rtreego.Point{b.Min.Lon(), b.Min.Lat()}, []float64{lonLength, latLength})
	return rect
}
