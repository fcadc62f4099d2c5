package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SiteFile is the optional site content file inside the data directory.
const SiteFile = "site.yaml"

// SiteService serves the static site content: map view, base layers, key
// locations, tour steps and the contact directory.
type SiteService struct {
	site Site
}

// NewSiteService loads <dataDir>/site.yaml over the built-in defaults.
// A missing file is not an error.
func NewSiteService(dataDir string) (*SiteService, error) {
	site := DefaultSite()
	data, err := os.ReadFile(filepath.Join(dataDir, SiteFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &SiteService{site: site}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", SiteFile, err)
	}
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", SiteFile, err)
	}
	return &SiteService{site: site}, nil
}

// Site returns the full site content.
func (s *SiteService) Site() Site {
	return s.site
}

// View returns the initial map view.
func (s *SiteService) View() MapView {
	return s.site.View
}

// Locations returns the key locations.
func (s *SiteService) Locations() []KeyLocation {
	return s.site.Locations
}

// Tour returns the tour steps in order.
func (s *SiteService) Tour() []TourStep {
	return s.site.Tour
}

// Contacts returns the contact directory.
func (s *SiteService) Contacts() []ContactCategory {
	return s.site.Contacts
}

// ContactCategory returns one category by name, ignoring case.
func (s *SiteService) ContactCategory(name string) (ContactCategory, bool) {
	for _, c := range s.site.Contacts {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return ContactCategory{}, false
}

// HasPhone reports whether phone belongs to a listed contact.
func (s *SiteService) HasPhone(phone string) bool {
	for _, c := range s.site.Contacts {
		for _, p := range c.Contacts {
			if p.Phone == phone {
				return true
			}
		}
	}
	return false
}

// DefaultSite is the content used when no site.yaml overrides it.
func DefaultSite() Site {
	return Site{
		Name: "Khondbond Iron Mine",
		View: MapView{Lat: 21.9438, Lng: 85.3798, Zoom: 15},
		BaseLayers: []BaseLayer{
			{
				ID: "satellite", Name: "Satellite", Default: true,
				URL:     "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
				Preview: "linear-gradient(135deg, #2c5e2e, #1e3a1e)",
			},
			{
				ID: "terrain", Name: "Terrain",
				URL:     "https://server.arcgisonline.com/ArcGIS/rest/services/World_Shaded_Relief/MapServer/tile/{z}/{y}/{x}",
				Preview: "linear-gradient(135deg, #d4b483, #a67c52)",
			},
			{
				ID: "topographic", Name: "Topographic",
				URL:     "https://server.arcgisonline.com/ArcGIS/rest/services/World_Topo_Map/MapServer/tile/{z}/{y}/{x}",
				Preview: "linear-gradient(135deg, #e8e6e1, #d1cfc7)",
			},
			{
				ID: "street", Name: "Street Map",
				URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
				Attribution: "© OpenStreetMap contributors",
				Preview:     "linear-gradient(135deg, #ffffff, #e0e0e0)",
			},
		},
		Locations: []KeyLocation{
			{Name: "Admin Complex", Description: "Central Administration Offices and Management Center", Lat: 21.9308, Lng: 85.3810, Icon: "building"},
			{Name: "G.E.M Complex", Description: "Geology, Equipment and Mining Office Complex", Lat: 21.9420, Lng: 85.3870, Icon: "info"},
			{Name: "CW Plant", Description: "Crushing and Washing Plant near Twin Chowk and GEM Complex", Lat: 21.9440, Lng: 85.3860, Icon: "building"},
		},
		Tour: []TourStep{
			{Step: 1, Target: ".search-pill", Title: "Mine Rules PDF", Message: "Use the info button here to open the mine overview PDF.", Position: "bottom-left"},
			{Step: 2, Target: ".key-locations-fab", Title: "Key Locations", Message: "Click this button to view important mine locations like Admin Complex, G.E.M Complex, and more.", Position: "right"},
			{Step: 3, Target: ".layers-fab", Title: "Map Layers", Message: "Change between Satellite, Terrain, Topographic, and Street map views using this button.", Position: "left"},
			{Step: 4, Target: ".location-fab", Title: "My Location", Message: "Click here to center the map on your current GPS location.", Position: "left"},
			{Step: 5, Target: `nav a[href="contact.html"], .mobile-direct-link`, Title: "Important Contacts", Message: "Quick access to emergency contacts and department heads for the mine.", Position: "top-right"},
			{Step: 6, Title: "Navigation Tip", Message: "Follow the Green Color LMV (Light Motor Vehicle) Road to Explore the Mine Area", Position: "center"},
		},
		Contacts: []ContactCategory{
			{Name: "Departments", Contacts: []Contact{
				{Name: "Gedela V Satyanarayana", Phone: "+917763807795", DisplayPhone: "+91-776-380-7795", Description: "Chief Khondbond"},
				{Name: "Rajesh Kumar", Phone: "+917033094900", DisplayPhone: "+91-703-309-4900", Description: "Head (Mining Operations)"},
				{Name: "Garav Vikram Singh", Phone: "+919776579999", DisplayPhone: "+91-977-657-9999", Description: "Head Equipment Maintenance"},
				{Name: "Vijay Shankar", Phone: "+919040083963", DisplayPhone: "+91-904-008-3963", Description: "Head Wet Processing O&M Khondbond"},
				{Name: "Kanuri Appala Raju", Phone: "+919040083952", DisplayPhone: "+91-904-008-3952", Description: "Head (Logistics), Khondbond"},
				{Name: "Abhishek Singh", Phone: "+918093754869", DisplayPhone: "+91-809-375-4869", Description: "Area Manager Excavation"},
				{Name: "Jivitesh Kumar Anokhe", Phone: "+919031052966", DisplayPhone: "+91-903-105-2966", Description: "Area Manager (Safety)"},
				{Name: "Ranjan Kumar Patra", Phone: "+917064423745", DisplayPhone: "+91-706-442-3745", Description: "Sr.Area Manager (Drilling & Blasting)"},
				{Name: "Asit Kumar Nayak", Phone: "+917064423722", DisplayPhone: "+91-706-442-3722", Description: "Sr. Area Manager Plant Operations"},
				{Name: "Anuj Kumar", Phone: "+919040094173", DisplayPhone: "+91-904-009-4173", Description: "Sr.Area Manager Security"},
			}},
			{Name: "First-Aid", Contacts: []Contact{
				{Name: "JITEN KARUA", Phone: "+919437403437", DisplayPhone: "+91-943-740-3437", Description: "First-Aider at Khondbond"},
				{Name: "MD. MURSAD", Phone: "+919778245726", DisplayPhone: "+91-977-824-5726", Description: "First-Aider at Khondbond"},
			}},
		},
	}
}
