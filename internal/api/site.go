package api

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mine/internal/service"
)

type ContactQRInput struct {
	Phone string `query:"phone" required:"true" minLength:"3" doc:"Phone number of a listed contact" example:"+917763807795"`
	Size  int    `query:"size" minimum:"64" maximum:"1024" default:"256" doc:"Image size in pixels"`
}

type ImageOutput struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}

// RegisterSite registers static site content routes.
func (h *APIHandler) RegisterSite(api huma.API) {
	huma.Get(api, "/api/v1/site", h.GetSite, huma.OperationTags("site"))
	huma.Get(api, "/api/v1/tour", h.GetTour, huma.OperationTags("site"))
	huma.Get(api, "/api/v1/locations", h.GetLocations, huma.OperationTags("site"))
	huma.Get(api, "/api/v1/contacts", h.GetContacts, huma.OperationTags("contacts"))
	huma.Get(api, "/api/v1/contacts/qr", h.GetContactQR, huma.OperationTags("contacts"))
}

func (h *APIHandler) site() (*service.SiteService, error) {
	if h.svc == nil || h.svc.Site == nil {
		return nil, huma.Error503ServiceUnavailable("site service not available")
	}
	return h.svc.Site, nil
}

func (h *APIHandler) GetSite(ctx context.Context, input *struct{}) (*struct{ Body service.Site }, error) {
	site, err := h.site()
	if err != nil {
		return nil, err
	}
	return &struct{ Body service.Site }{Body: site.Site()}, nil
}

func (h *APIHandler) GetTour(ctx context.Context, input *struct{}) (*struct{ Body []service.TourStep }, error) {
	site, err := h.site()
	if err != nil {
		return nil, err
	}
	return &struct{ Body []service.TourStep }{Body: site.Tour()}, nil
}

func (h *APIHandler) GetLocations(ctx context.Context, input *struct{}) (*struct{ Body []service.KeyLocation }, error) {
	site, err := h.site()
	if err != nil {
		return nil, err
	}
	return &struct{ Body []service.KeyLocation }{Body: site.Locations()}, nil
}

func (h *APIHandler) GetContacts(ctx context.Context, input *struct{}) (*struct{ Body []service.ContactCategory }, error) {
	site, err := h.site()
	if err != nil {
		return nil, err
	}
	return &struct{ Body []service.ContactCategory }{Body: site.Contacts()}, nil
}

// GetContactQR renders a dial QR code. Only numbers in the directory are
// encoded.
func (h *APIHandler) GetContactQR(ctx context.Context, input *ContactQRInput) (*ImageOutput, error) {
	site, err := h.site()
	if err != nil {
		return nil, err
	}
	if !site.HasPhone(input.Phone) {
		return nil, huma.Error404NotFound(fmt.Sprintf("no contact with phone %s", input.Phone))
	}
	png, err := service.ContactQR(input.Phone, input.Size)
	if err != nil {
		return nil, huma.Error500InternalServerError("qr code failed", err)
	}
	return &ImageOutput{
		ContentType:  "image/png",
		CacheControl: "public, max-age=86400",
		Body:         png,
	}, nil
}
