package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mine/internal/humastar"
	"github.com/joeblew999/plat-mine/internal/overlay"
	"github.com/joeblew999/plat-mine/internal/service"
	"github.com/joeblew999/plat-mine/internal/templates"
)

// OverlayItem is the data for one row of the overlay checkbox panel.
type OverlayItem struct {
	Name  string
	Slug  string
	Key   string // signal name, e.g. "leasePillars"
	Count int
}

// EventHandler streams map changes to the Datastar UI via SSE.
type EventHandler struct {
	humastar.Handler
	maps *service.MapService
	bus  *service.EventBus
}

// NewEventHandler creates a new event handler.
func NewEventHandler(maps *service.MapService, bus *service.EventBus, renderer *templates.Renderer) *EventHandler {
	return &EventHandler{
		Handler: humastar.Handler{Renderer: renderer},
		maps:    maps,
		bus:     bus,
	}
}

func (h *EventHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/map/events", h.Events,
		huma.OperationTags("map"),
	)
}

// Events sends the current overlay panel, then re-sends it after every
// reload until the client disconnects.
func (h *EventHandler) Events(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		ch := h.bus.Subscribe()
		defer h.bus.Unsubscribe(ch)

		h.patchOverlays(sse)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				switch {
				case ev.Resource == service.ResourceOverlays && ev.Action == service.ActionReloaded:
					h.patchOverlays(sse)
					sse.DispatchCustomEvent("overlays-changed", map[string]any{"action": ev.Action})
				case ev.Resource == service.ResourceOverlays && ev.Action == service.ActionFailed:
					sse.Patch(h.statusHTML(ev.Detail), "#map-status")
					sse.Error(ev.Detail)
				default:
					sse.DispatchCustomEvent("resource-changed", map[string]any{
						"resource": ev.Resource,
						"action":   ev.Action,
						"id":       ev.ID,
					})
				}
			}
		}
	}), nil
}

func (h *EventHandler) patchOverlays(sse humastar.SSE) {
	snap, err := h.maps.Snapshot()
	if err != nil {
		sse.Patch(h.RenderList("overlay-group", nil, "Map not loaded", err.Error()), "#overlay-checkboxes")
		return
	}
	sse.Patch(h.RenderList("overlay-group", OverlayItems(snap.Overlays), "No overlays", ""), "#overlay-checkboxes")
}

func (h *EventHandler) statusHTML(detail string) string {
	html, err := h.Renderer.Render("map-status", map[string]string{
		"Title":   "KML Map Loaded with Basic Features",
		"Message": fmt.Sprintf("The map document could not be reloaded: %s", detail),
	})
	if err != nil {
		return ""
	}
	return html
}

// OverlayItems lists the groups with their counts for the checkbox panel.
func OverlayItems(o overlay.Overlays) []any {
	items := make([]any, 0, len(overlay.Groups))
	for _, g := range overlay.Groups {
		items = append(items, OverlayItem{
			Name:  string(g),
			Slug:  g.Slug(),
			Key:   signalKey(g.Slug()),
			Count: len(o[g]),
		})
	}
	return items
}

// signalKey turns "lease-pillars" into "leasePillars".
func signalKey(slug string) string {
	parts := strings.Split(slug, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
