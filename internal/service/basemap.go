package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// BaseMapService manages the base tile layers offered by the layer
// switcher. Layers are persisted to <dataDir>/basemaps.json and seeded from
// the site defaults on first use.
type BaseMapService struct {
	dataDir string
	layers  []BaseLayer
	bus     *EventBus
	mu      sync.RWMutex
}

// NewBaseMapService creates a base map service.
func NewBaseMapService(dataDir string, seed []BaseLayer, bus *EventBus) *BaseMapService {
	s := &BaseMapService{
		dataDir: dataDir,
		layers:  append([]BaseLayer(nil), seed...),
		bus:     bus,
	}
	s.loadFromDisk()
	return s
}

// List returns all base layers in display order.
func (s *BaseMapService) List() []BaseLayer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]BaseLayer{}, s.layers...)
}

// Get returns a base layer by ID.
func (s *BaseMapService) Get(id string) (BaseLayer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return BaseLayer{}, false
	}
	return s.layers[i], true
}

// Create appends a new base layer.
func (s *BaseMapService) Create(layer BaseLayer) (BaseLayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Generate ID from name if not provided
	if layer.ID == "" {
		layer.ID = generateID(layer.Name)
	}
	if layer.ID == "" {
		return BaseLayer{}, fmt.Errorf("cannot derive an ID from name %q", layer.Name)
	}
	if s.indexOf(layer.ID) >= 0 {
		return BaseLayer{}, fmt.Errorf("base layer with ID %q already exists", layer.ID)
	}

	s.layers = append(s.layers, layer)
	if layer.Default {
		s.clearDefaults(layer.ID)
	}
	if err := s.saveToDisk(); err != nil {
		return BaseLayer{}, err
	}

	s.bus.Publish(Event{Resource: ResourceBaseMaps, Action: ActionCreated, ID: layer.ID})
	return layer, nil
}

// Update replaces a base layer by ID.
func (s *BaseMapService) Update(id string, layer BaseLayer) (BaseLayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return BaseLayer{}, fmt.Errorf("base layer %q not found", id)
	}

	layer.ID = id
	s.layers[i] = layer
	if layer.Default {
		s.clearDefaults(id)
	}
	if err := s.saveToDisk(); err != nil {
		return BaseLayer{}, err
	}

	s.bus.Publish(Event{Resource: ResourceBaseMaps, Action: ActionUpdated, ID: id})
	return layer, nil
}

// Delete removes a base layer by ID.
func (s *BaseMapService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("base layer %q not found", id)
	}

	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	if err := s.saveToDisk(); err != nil {
		return err
	}

	s.bus.Publish(Event{Resource: ResourceBaseMaps, Action: ActionDeleted, ID: id})
	return nil
}

func (s *BaseMapService) indexOf(id string) int {
	for i, l := range s.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// clearDefaults keeps a single default layer.
func (s *BaseMapService) clearDefaults(keep string) {
	for i := range s.layers {
		if s.layers[i].ID != keep {
			s.layers[i].Default = false
		}
	}
}

// configFile returns the path to the base layers file.
func (s *BaseMapService) configFile() string {
	return filepath.Join(s.dataDir, "basemaps.json")
}

// loadFromDisk replaces the seed with the persisted layers, if any.
func (s *BaseMapService) loadFromDisk() {
	data, err := os.ReadFile(s.configFile())
	if err != nil {
		return // File doesn't exist yet, keep the seed
	}

	var layers []BaseLayer
	if err := json.Unmarshal(data, &layers); err != nil {
		return // Invalid JSON, keep the seed
	}

	s.layers = layers
}

// saveToDisk persists the base layers to disk.
func (s *BaseMapService) saveToDisk() error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.layers, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.configFile(), data, 0644)
}

// generateID creates a URL-safe ID from a name.
func generateID(name string) string {
	id := strings.ToLower(name)
	id = strings.ReplaceAll(id, " ", "_")
	// Remove any characters that aren't alphanumeric or underscore
	var result strings.Builder
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
