package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb"

	"github.com/joeblew999/plat-mine/internal/overlay"
)

// minSearchLength is the shortest term that is searched.
const minSearchLength = 2

type SearchInput struct {
	Q string `query:"q" maxLength:"100" doc:"Case-insensitive name fragment; shorter than 2 characters returns nothing" example:"pit"`
}

type BBoxInput struct {
	MinLon float64 `query:"minLon" required:"true" minimum:"-180" maximum:"180" doc:"West edge"`
	MinLat float64 `query:"minLat" required:"true" minimum:"-90" maximum:"90" doc:"South edge"`
	MaxLon float64 `query:"maxLon" required:"true" minimum:"-180" maximum:"180" doc:"East edge"`
	MaxLat float64 `query:"maxLat" required:"true" minimum:"-90" maximum:"90" doc:"North edge"`
}

type FeatureIndexInput struct {
	Index int `path:"index" minimum:"0" doc:"Feature index in the document"`
}

type PopupBody struct {
	overlay.PopupContent
	HTML string `json:"html" doc:"Rendered popup fragment"`
}

// RegisterFeatures registers feature query routes.
func (h *APIHandler) RegisterFeatures(api huma.API) {
	huma.Get(api, "/api/v1/features/search", h.SearchFeatures, huma.OperationTags("features"))
	huma.Get(api, "/api/v1/features/bbox", h.FeaturesInBBox, huma.OperationTags("features"))
	huma.Get(api, "/api/v1/features/{index}/popup", h.GetPopup, huma.OperationTags("features"))
}

func (h *APIHandler) SearchFeatures(ctx context.Context, input *SearchInput) (*struct{ Body []overlay.SearchResult }, error) {
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}
	if len([]rune(strings.TrimSpace(input.Q))) < minSearchLength {
		return &struct{ Body []overlay.SearchResult }{Body: []overlay.SearchResult{}}, nil
	}
	return &struct{ Body []overlay.SearchResult }{Body: overlay.Search(snap.Overlays, input.Q)}, nil
}

func (h *APIHandler) FeaturesInBBox(ctx context.Context, input *BBoxInput) (*struct{ Body []FeatureView }, error) {
	if input.MinLon > input.MaxLon || input.MinLat > input.MaxLat {
		return nil, huma.Error422UnprocessableEntity("bounding box min must not exceed max")
	}
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}
	b := orb.Bound{
		Min: orb.Point{input.MinLon, input.MinLat},
		Max: orb.Point{input.MaxLon, input.MaxLat},
	}
	return &struct{ Body []FeatureView }{Body: FeatureViews(snap.Index.FeaturesInBounds(b))}, nil
}

func (h *APIHandler) GetPopup(ctx context.Context, input *FeatureIndexInput) (*struct{ Body PopupBody }, error) {
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}
	sf, ok := snap.Overlays.Find(input.Index)
	if !ok {
		return nil, huma.Error404NotFound("feature not found")
	}

	body := PopupBody{PopupContent: overlay.Popup(sf)}
	if h.svc.Renderer != nil {
		html, err := h.svc.Renderer.Render("feature-popup", body.PopupContent)
		if err != nil {
			return nil, huma.Error500InternalServerError("rendering popup", err)
		}
		body.HTML = html
	}
	return &struct{ Body PopupBody }{Body: body}, nil
}
