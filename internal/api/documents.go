package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mine/internal/service"
)

// RegisterDocuments registers the PDF document listing.
func (h *APIHandler) RegisterDocuments(api huma.API) {
	huma.Get(api, "/api/v1/documents", h.GetDocuments, huma.OperationTags("documents"))
}

func (h *APIHandler) GetDocuments(ctx context.Context, input *struct{}) (*struct{ Body []service.DocumentFile }, error) {
	if h.svc == nil || h.svc.Documents == nil {
		return &struct{ Body []service.DocumentFile }{Body: []service.DocumentFile{}}, nil
	}
	docs, err := h.svc.Documents.List()
	if err != nil {
		return nil, huma.Error500InternalServerError("listing documents", err)
	}
	return &struct{ Body []service.DocumentFile }{Body: docs}, nil
}
