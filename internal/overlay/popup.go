package overlay

import (
	"fmt"
	"regexp"
	"strings"
)

// PopupContent is what a feature's popup shows.
type PopupContent struct {
	Title         string  `json:"title,omitempty" doc:"Feature name"`
	Description   string  `json:"description,omitempty" doc:"Cleaned description (HTML line breaks)"`
	TypeName      string  `json:"typeName,omitempty" doc:"Feature type display name" example:"Mining Pit"`
	Lat           float64 `json:"lat" doc:"Anchor latitude"`
	Lng           float64 `json:"lng" doc:"Anchor longitude"`
	DirectionsURL string  `json:"directionsUrl" doc:"Google Maps directions link"`
}

var cdataWrapper = regexp.MustCompile(`<!\[CDATA\[(.*?)\]\]>`)

// CleanDescription strips literal CDATA wrappers and turns newlines into
// <br>. Placeholder descriptions ("TEXT", "0") come back empty.
func CleanDescription(desc string) string {
	if desc == "" || desc == "TEXT" || desc == "0" {
		return ""
	}
	desc = cdataWrapper.ReplaceAllString(desc, "$1")
	desc = strings.ReplaceAll(desc, `\n`, "\n")
	return strings.ReplaceAll(desc, "\n", "<br>")
}

// DirectionsURL links to Google Maps directions for a destination.
func DirectionsURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%v,%v", lat, lng)
}

// Popup builds the popup content for a classified feature.
func Popup(sf StyledFeature) PopupContent {
	at := Anchor(sf.Feature)
	return PopupContent{
		Title:         sf.Feature.Name,
		Description:   CleanDescription(sf.Feature.Description),
		TypeName:      sf.FeatureType.DisplayName(),
		Lat:           at.Lat(),
		Lng:           at.Lon(),
		DirectionsURL: DirectionsURL(at.Lat(), at.Lon()),
	}
}
