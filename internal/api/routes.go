// Package api defines the Huma API routes and handlers.
package api

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mine/internal/service"
	"github.com/joeblew999/plat-mine/internal/templates"
)

// Services holds the service dependencies for API handlers.
type Services struct {
	Map       *service.MapService
	Site      *service.SiteService
	BaseMaps  *service.BaseMapService
	Documents *service.DocumentService
	Renderer  *templates.Renderer
}

// Types

type MessageBody struct {
	Message string `json:"message" doc:"Result message"`
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
	Map     bool   `json:"map" doc:"Whether the map document is loaded"`
}

// APIHandler holds all REST API handlers. Methods named Register* are
// auto-discovered by huma.AutoRegister.
type APIHandler struct {
	svc *Services
}

func NewAPIHandler(svc *Services) *APIHandler {
	return &APIHandler{svc: svc}
}

// RegisterRoutes registers every REST route on api.
func RegisterRoutes(api huma.API, svc *Services) {
	huma.AutoRegister(api, NewAPIHandler(svc))
}

// RegisterHealth registers health check routes.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

// Handlers

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	loaded := false
	if h.svc != nil && h.svc.Map != nil {
		_, err := h.svc.Map.Snapshot()
		loaded = err == nil
	}
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0", Map: loaded}}, nil
}

// snapshot returns the current map snapshot or a 503 when none is loaded.
func (h *APIHandler) snapshot() (*service.MapSnapshot, error) {
	if h.svc == nil || h.svc.Map == nil {
		return nil, huma.Error503ServiceUnavailable("map service not available")
	}
	snap, err := h.svc.Map.Snapshot()
	if err != nil {
		if errors.Is(err, service.ErrNoSnapshot) {
			return nil, huma.Error503ServiceUnavailable(err.Error())
		}
		return nil, huma.Error500InternalServerError("map unavailable", err)
	}
	return snap, nil
}
