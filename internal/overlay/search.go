package overlay

import "strings"

// SearchResult is one match of a feature name search.
type SearchResult struct {
	Index int     `json:"index" doc:"Feature index in the document"`
	Name  string  `json:"name" doc:"Feature name"`
	Group Group   `json:"group" doc:"Overlay group"`
	Type  string  `json:"type" doc:"Feature type, or 'feature' when untyped" example:"pit"`
	Lat   float64 `json:"lat" doc:"Anchor latitude"`
	Lng   float64 `json:"lng" doc:"Anchor longitude"`
}

// Search returns features whose name contains term, ignoring case. Results
// follow group display order, then document order.
func Search(o Overlays, term string) []SearchResult {
	term = strings.ToLower(strings.TrimSpace(term))
	results := []SearchResult{}
	if term == "" {
		return results
	}
	for _, sf := range o.All() {
		if !strings.Contains(strings.ToLower(sf.Feature.Name), term) {
			continue
		}
		typ := string(sf.FeatureType)
		if typ == "" {
			typ = "feature"
		}
		at := Anchor(sf.Feature)
		results = append(results, SearchResult{
			Index: sf.Index,
			Name:  sf.Feature.Name,
			Group: sf.Group,
			Type:  typ,
			Lat:   at.Lat(),
			Lng:   at.Lon(),
		})
	}
	return results
}
