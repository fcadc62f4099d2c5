package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mine/internal/humastar"
	"github.com/joeblew999/plat-mine/internal/overlay"
)

// FeatureView is the API form of a classified feature.
type FeatureView struct {
	Index        int                 `json:"index" doc:"Feature index in the document"`
	Name         string              `json:"name" doc:"Feature name"`
	Description  string              `json:"description,omitempty" doc:"Raw description"`
	Group        string              `json:"group" doc:"Overlay group"`
	GeometryKind string              `json:"geometryKind" enum:"point,line,polygon" doc:"Geometry kind"`
	FeatureType  string              `json:"featureType,omitempty" doc:"Derived feature type" example:"pit"`
	StyleID      string              `json:"styleId,omitempty" doc:"Referenced style ID"`
	Style        overlay.RenderStyle `json:"style" doc:"Resolved presentation"`
	LabelColor   string              `json:"labelColor,omitempty" doc:"Label color (CSS)"`
	Lat          float64             `json:"lat" doc:"Anchor latitude"`
	Lng          float64             `json:"lng" doc:"Anchor longitude"`
}

func featureView(sf overlay.StyledFeature) FeatureView {
	at := overlay.Anchor(sf.Feature)
	return FeatureView{
		Index:        sf.Index,
		Name:         sf.Feature.Name,
		Description:  sf.Feature.Description,
		Group:        string(sf.Group),
		GeometryKind: string(sf.Feature.Kind),
		FeatureType:  string(sf.FeatureType),
		StyleID:      sf.Feature.StyleID(),
		Style:        sf.Style,
		LabelColor:   sf.LabelColor,
		Lat:          at.Lat(),
		Lng:          at.Lon(),
	}
}

// FeatureViews converts features in order.
func FeatureViews(features []overlay.StyledFeature) []FeatureView {
	views := make([]FeatureView, 0, len(features))
	for _, sf := range features {
		views = append(views, featureView(sf))
	}
	return views
}

type OverlaySummary struct {
	Group string `json:"group" doc:"Group display name" example:"Lease Pillars"`
	Slug  string `json:"slug" doc:"Group URL slug" example:"lease-pillars"`
	Count int    `json:"count" doc:"Number of features"`
}

type GroupInput struct {
	Group string `path:"group" enum:"lease-pillars,infrastructure,areas,boundaries" doc:"Overlay group slug"`
}

type OverlayPageInput struct {
	GroupInput
	Offset int `query:"offset" minimum:"0" default:"0" doc:"Index of the first feature"`
	Limit  int `query:"limit" minimum:"1" maximum:"1000" default:"100" doc:"Page size"`
}

type OverlayPageOutput struct {
	Body humastar.PageBody[FeatureView]
}

type FileOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// RegisterOverlays registers overlay group routes.
func (h *APIHandler) RegisterOverlays(api huma.API) {
	huma.Get(api, "/api/v1/overlays", h.GetOverlays, huma.OperationTags("overlays"))
	huma.Get(api, "/api/v1/overlays/{group}", h.GetOverlay, huma.OperationTags("overlays"))
	huma.Get(api, "/api/v1/overlays/{group}/kml", h.GetOverlayKML, huma.OperationTags("overlays"))
	huma.Get(api, "/api/v1/overlays/{group}/geojson", h.GetOverlayGeoJSON, huma.OperationTags("overlays"))
}

func (h *APIHandler) GetOverlays(ctx context.Context, input *struct{}) (*struct{ Body []OverlaySummary }, error) {
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}
	summaries := make([]OverlaySummary, 0, len(overlay.Groups))
	for _, g := range overlay.Groups {
		summaries = append(summaries, OverlaySummary{
			Group: string(g),
			Slug:  g.Slug(),
			Count: len(snap.Overlays[g]),
		})
	}
	return &struct{ Body []OverlaySummary }{Body: summaries}, nil
}

func (h *APIHandler) GetOverlay(ctx context.Context, input *OverlayPageInput) (*OverlayPageOutput, error) {
	features, _, err := h.group(input.Group)
	if err != nil {
		return nil, err
	}
	return &OverlayPageOutput{
		Body: humastar.Paginate(FeatureViews(features), input.Offset, input.Limit),
	}, nil
}

func (h *APIHandler) GetOverlayKML(ctx context.Context, input *GroupInput) (*FileOutput, error) {
	features, g, err := h.group(input.Group)
	if err != nil {
		return nil, err
	}
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := overlay.ExportKML(&buf, g, features, snap.Styles); err != nil {
		return nil, huma.Error500InternalServerError("kml export failed", err)
	}
	return &FileOutput{
		ContentType:        "application/vnd.google-earth.kml+xml",
		ContentDisposition: fmt.Sprintf(`attachment; filename="%s.kml"`, g.Slug()),
		Body:               buf.Bytes(),
	}, nil
}

func (h *APIHandler) GetOverlayGeoJSON(ctx context.Context, input *GroupInput) (*FileOutput, error) {
	features, g, err := h.group(input.Group)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(overlay.ExportGeoJSON(features))
	if err != nil {
		return nil, huma.Error500InternalServerError("geojson export failed", err)
	}
	return &FileOutput{
		ContentType:        "application/geo+json",
		ContentDisposition: fmt.Sprintf(`inline; filename="%s.geojson"`, g.Slug()),
		Body:               data,
	}, nil
}

// group resolves a slug against the current snapshot.
func (h *APIHandler) group(slug string) ([]overlay.StyledFeature, overlay.Group, error) {
	g, ok := overlay.GroupFromSlug(slug)
	if !ok {
		return nil, "", huma.Error404NotFound("unknown overlay group: " + slug)
	}
	snap, err := h.snapshot()
	if err != nil {
		return nil, "", err
	}
	return snap.Overlays[g], g, nil
}
