// Package service contains business logic for the plat-mine site.
package service

// BaseLayer is a base tile layer offered in the map's layer switcher.
// Huma reads the tags for OpenAPI and validation.
type BaseLayer struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" doc:"Unique layer identifier" example:"satellite"`
	Name        string `json:"name" yaml:"name" required:"true" minLength:"1" maxLength:"100" doc:"Display name" example:"Satellite"`
	URL         string `json:"url" yaml:"url" required:"true" minLength:"1" doc:"XYZ tile URL template" example:"https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}"`
	Attribution string `json:"attribution,omitempty" yaml:"attribution,omitempty" doc:"Attribution text"`
	MaxZoom     int    `json:"maxZoom,omitempty" yaml:"maxZoom,omitempty" minimum:"0" maximum:"22" doc:"Maximum zoom level" example:"19"`
	Preview     string `json:"preview,omitempty" yaml:"preview,omitempty" doc:"CSS background used for the layer preview swatch"`
	Default     bool   `json:"default" yaml:"default" doc:"Whether this layer is selected initially"`
}

// MapView is the initial map position.
type MapView struct {
	Lat  float64 `json:"lat" yaml:"lat" doc:"Centre latitude" example:"21.9438"`
	Lng  float64 `json:"lng" yaml:"lng" doc:"Centre longitude" example:"85.3798"`
	Zoom int     `json:"zoom" yaml:"zoom" minimum:"0" maximum:"22" doc:"Initial zoom" example:"15"`
}

// KeyLocation is a featured place shown in the locations carousel.
type KeyLocation struct {
	Name        string  `json:"name" yaml:"name" doc:"Location name" example:"Admin Complex"`
	Description string  `json:"description" yaml:"description" doc:"Short description"`
	Lat         float64 `json:"lat" yaml:"lat" doc:"Latitude"`
	Lng         float64 `json:"lng" yaml:"lng" doc:"Longitude"`
	Icon        string  `json:"icon,omitempty" yaml:"icon,omitempty" doc:"Icon name" example:"building"`
}

// TourStep is one bubble of the guided tour.
type TourStep struct {
	Step     int    `json:"step" yaml:"step" doc:"1-based step number"`
	Target   string `json:"target,omitempty" yaml:"target,omitempty" doc:"CSS selector the bubble points at; empty for a centred message"`
	Title    string `json:"title" yaml:"title" doc:"Bubble title"`
	Message  string `json:"message" yaml:"message" doc:"Bubble text"`
	Position string `json:"position" yaml:"position" doc:"Bubble placement" example:"bottom-left"`
}

// Contact is one person in the contact directory.
type Contact struct {
	Name         string `json:"name" yaml:"name" doc:"Contact name"`
	Phone        string `json:"phone" yaml:"phone" doc:"Dialable phone number" example:"+917763807795"`
	DisplayPhone string `json:"displayPhone,omitempty" yaml:"displayPhone,omitempty" doc:"Formatted phone number" example:"+91-776-380-7795"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty" doc:"Role or department"`
}

// ContactCategory groups contacts under a heading.
type ContactCategory struct {
	Name     string    `json:"name" yaml:"name" doc:"Category heading" example:"First-Aid"`
	Contacts []Contact `json:"contacts" yaml:"contacts" doc:"Contacts in this category"`
}

// Site is the static content of the site.
type Site struct {
	Name       string            `json:"name" yaml:"name" doc:"Site name"`
	View       MapView           `json:"view" yaml:"view" doc:"Initial map view"`
	BaseLayers []BaseLayer       `json:"baseLayers" yaml:"baseLayers" doc:"Base tile layers"`
	Locations  []KeyLocation     `json:"locations" yaml:"locations" doc:"Key locations"`
	Tour       []TourStep        `json:"tour" yaml:"tour" doc:"Guided tour steps"`
	Contacts   []ContactCategory `json:"contacts" yaml:"contacts" doc:"Contact directory"`
}

// DocumentFile is a PDF served to the document viewer.
type DocumentFile struct {
	Name string `json:"name" doc:"File name" example:"mine-rules.pdf"`
	Size string `json:"size" doc:"Human-readable file size" example:"1.2 MB"`
	URL  string `json:"url" doc:"Download URL" example:"/files/mine-rules.pdf"`
}
