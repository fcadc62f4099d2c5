package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mine/internal/humastar"
	"github.com/joeblew999/plat-mine/internal/service"
)

var baseMapActions = []humastar.ActionDef{
	{Rel: "edit", Pattern: "/api/v1/basemaps/%s", Method: "PUT", Title: "Update base layer"},
	{Rel: "delete", Pattern: "/api/v1/basemaps/%s", Method: "DELETE", Title: "Delete base layer"},
}

// BaseLayerBody is a base layer response carrying its edit/delete actions.
type BaseLayerBody struct {
	service.BaseLayer
}

// Actions implements humastar.Actor.
func (b BaseLayerBody) Actions() []humastar.Action {
	return humastar.ActionsFor(b.ID, baseMapActions)
}

type BaseLayerIDInput struct {
	ID string `path:"id" doc:"Base layer ID" example:"satellite"`
}

type BaseLayerOutput struct {
	Body BaseLayerBody
}

// RegisterBaseMaps registers base layer CRUD routes.
func (h *APIHandler) RegisterBaseMaps(api huma.API) {
	huma.Get(api, "/api/v1/basemaps", h.GetBaseMaps, huma.OperationTags("basemaps"))
	huma.Post(api, "/api/v1/basemaps", h.CreateBaseMap, huma.OperationTags("basemaps"))
	huma.Get(api, "/api/v1/basemaps/{id}", h.GetBaseMap, huma.OperationTags("basemaps"))
	huma.Put(api, "/api/v1/basemaps/{id}", h.PutBaseMap, huma.OperationTags("basemaps"))
	huma.Delete(api, "/api/v1/basemaps/{id}", h.DeleteBaseMap, huma.OperationTags("basemaps"))
}

func (h *APIHandler) GetBaseMaps(ctx context.Context, input *struct{}) (*struct{ Body []service.BaseLayer }, error) {
	if h.svc == nil || h.svc.BaseMaps == nil {
		return &struct{ Body []service.BaseLayer }{Body: []service.BaseLayer{}}, nil
	}
	return &struct{ Body []service.BaseLayer }{Body: h.svc.BaseMaps.List()}, nil
}

func (h *APIHandler) CreateBaseMap(ctx context.Context, input *struct{ Body service.BaseLayer }) (*BaseLayerOutput, error) {
	if h.svc == nil || h.svc.BaseMaps == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	created, err := h.svc.BaseMaps.Create(input.Body)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	return &BaseLayerOutput{Body: BaseLayerBody{created}}, nil
}

func (h *APIHandler) GetBaseMap(ctx context.Context, input *BaseLayerIDInput) (*BaseLayerOutput, error) {
	if h.svc == nil || h.svc.BaseMaps == nil {
		return nil, huma.Error404NotFound("service not available")
	}
	layer, ok := h.svc.BaseMaps.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("base layer not found")
	}
	return &BaseLayerOutput{Body: BaseLayerBody{layer}}, nil
}

func (h *APIHandler) PutBaseMap(ctx context.Context, input *struct {
	BaseLayerIDInput
	Body service.BaseLayer
}) (*BaseLayerOutput, error) {
	if h.svc == nil || h.svc.BaseMaps == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	updated, err := h.svc.BaseMaps.Update(input.ID, input.Body)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &BaseLayerOutput{Body: BaseLayerBody{updated}}, nil
}

func (h *APIHandler) DeleteBaseMap(ctx context.Context, input *BaseLayerIDInput) (*struct{ Body MessageBody }, error) {
	if h.svc == nil || h.svc.BaseMaps == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	if err := h.svc.BaseMaps.Delete(input.ID); err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &struct{ Body MessageBody }{Body: MessageBody{Message: "Base layer deleted"}}, nil
}
