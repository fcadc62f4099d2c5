package api

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mine/internal/kml"
	"github.com/joeblew999/plat-mine/internal/overlay"
	"github.com/joeblew999/plat-mine/internal/service"
)

type BoundsBody struct {
	MinLon float64 `json:"minLon" doc:"West edge"`
	MinLat float64 `json:"minLat" doc:"South edge"`
	MaxLon float64 `json:"maxLon" doc:"East edge"`
	MaxLat float64 `json:"maxLat" doc:"North edge"`
}

type MapBody struct {
	Name      string          `json:"name" doc:"Site name"`
	View      service.MapView `json:"view" doc:"Initial map view"`
	Loaded    bool            `json:"loaded" doc:"Whether the KML document is loaded"`
	Source    string          `json:"source,omitempty" doc:"Where the document was read from"`
	LoadedAt  *time.Time      `json:"loadedAt,omitempty" doc:"When the current document was loaded"`
	Bounds    *BoundsBody     `json:"bounds,omitempty" doc:"Extent of all features"`
	Counts    map[string]int  `json:"counts" doc:"Feature count per overlay group"`
	Total     int             `json:"total" doc:"Total feature count"`
	Styles    int             `json:"styles" doc:"Number of named styles"`
	LastError string          `json:"lastError,omitempty" doc:"Error of the most recent failed load"`
}

type StyleIDInput struct {
	ID string `path:"id" doc:"Style ID, with or without a leading '#'" example:"area1"`
}

// RegisterMap registers map document routes.
func (h *APIHandler) RegisterMap(api huma.API) {
	huma.Get(api, "/api/v1/map", h.GetMap, huma.OperationTags("map"))
	huma.Post(api, "/api/v1/map/reload", h.ReloadMap, huma.OperationTags("map"))
	huma.Get(api, "/api/v1/styles", h.GetStyles, huma.OperationTags("map"))
	huma.Get(api, "/api/v1/styles/{id}", h.GetStyle, huma.OperationTags("map"))
}

// GetMap reports the map state. It answers even when the document failed
// to load so the UI can show its fallback message.
func (h *APIHandler) GetMap(ctx context.Context, input *struct{}) (*struct{ Body MapBody }, error) {
	body := MapBody{Counts: map[string]int{}}
	for _, g := range overlay.Groups {
		body.Counts[string(g)] = 0
	}
	if h.svc != nil && h.svc.Site != nil {
		body.Name = h.svc.Site.Site().Name
		body.View = h.svc.Site.View()
	}
	if h.svc == nil || h.svc.Map == nil {
		return &struct{ Body MapBody }{Body: body}, nil
	}

	if err := h.svc.Map.LastError(); err != nil {
		body.LastError = err.Error()
	}
	snap, err := h.svc.Map.Snapshot()
	if err != nil {
		return &struct{ Body MapBody }{Body: body}, nil
	}

	body.Loaded = true
	body.Source = snap.Source
	body.LoadedAt = &snap.LoadedAt
	body.Styles = len(snap.Styles)
	body.Total = snap.Overlays.Count()
	for g, n := range snap.Counts() {
		body.Counts[string(g)] = n
	}
	if body.Total > 0 {
		body.Bounds = &BoundsBody{
			MinLon: snap.Bounds.Min.Lon(), MinLat: snap.Bounds.Min.Lat(),
			MaxLon: snap.Bounds.Max.Lon(), MaxLat: snap.Bounds.Max.Lat(),
		}
	}
	return &struct{ Body MapBody }{Body: body}, nil
}

// ReloadMap re-reads the KML file. A failed reload keeps the previous map.
func (h *APIHandler) ReloadMap(ctx context.Context, input *struct{}) (*struct{ Body MessageBody }, error) {
	if h.svc == nil || h.svc.Map == nil {
		return nil, huma.Error503ServiceUnavailable("map service not available")
	}
	snap, err := h.svc.Map.Reload()
	if err != nil {
		if errors.Is(err, kml.ErrMalformedDocument) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, huma.Error500InternalServerError("reload failed", err)
	}
	return &struct{ Body MessageBody }{Body: MessageBody{
		Message: "Map reloaded from " + snap.Source,
	}}, nil
}

func (h *APIHandler) GetStyles(ctx context.Context, input *struct{}) (*struct{ Body []kml.StyleRecord }, error) {
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}
	styles := make([]kml.StyleRecord, 0, len(snap.Styles))
	for _, rec := range snap.Styles {
		styles = append(styles, rec)
	}
	sort.Slice(styles, func(i, j int) bool { return styles[i].ID < styles[j].ID })
	return &struct{ Body []kml.StyleRecord }{Body: styles}, nil
}

func (h *APIHandler) GetStyle(ctx context.Context, input *StyleIDInput) (*struct{ Body kml.StyleRecord }, error) {
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}
	rec, ok := snap.Styles.Lookup(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("style not found")
	}
	return &struct{ Body kml.StyleRecord }{Body: rec}, nil
}
