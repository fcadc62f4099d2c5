package service

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/joeblew999/plat-mine/internal/kml"
	"github.com/joeblew999/plat-mine/internal/overlay"
)

// ErrNoSnapshot is returned before the KML document has loaded once.
var ErrNoSnapshot = errors.New("map document not loaded")

// MapSnapshot is one immutable parse and classification of the KML
// document. Reloads replace it wholesale.
type MapSnapshot struct {
	Source   string
	LoadedAt time.Time
	Styles   kml.Styles
	Overlays overlay.Overlays
	Bounds   orb.Bound
	Index    *SpatialIndex
}

// Counts returns the number of features per group.
func (m *MapSnapshot) Counts() map[overlay.Group]int {
	counts := make(map[overlay.Group]int, len(overlay.Groups))
	for _, g := range overlay.Groups {
		counts[g] = len(m.Overlays[g])
	}
	return counts
}

// MapService owns the current MapSnapshot.
type MapService struct {
	path   string
	bus    *EventBus
	logger *zap.Logger

	mu      sync.RWMutex
	snap    *MapSnapshot
	lastErr error
	hooks   []func(*MapSnapshot)
}

// NewMapService creates a map service for the KML file at path. Nothing is
// read until Reload is called.
func NewMapService(path string, bus *EventBus, logger *zap.Logger) *MapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MapService{path: path, bus: bus, logger: logger}
}

// Path returns the KML file path.
func (s *MapService) Path() string {
	return s.path
}

// OnLoad registers fn to run after every successful load, outside the lock.
func (s *MapService) OnLoad(fn func(*MapSnapshot)) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

// Reload reads and classifies the KML file. On failure the previous
// snapshot stays current and the error is returned.
func (s *MapService) Reload() (*MapSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, s.fail(fmt.Errorf("reading %s: %w", s.path, err))
	}
	return s.Load(data, s.path)
}

// Load parses and classifies an already-fetched document.
func (s *MapService) Load(data []byte, source string) (*MapSnapshot, error) {
	doc, err := kml.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, s.fail(fmt.Errorf("parsing %s: %w", source, err))
	}

	overlays := overlay.Classify(doc.Features, doc.Styles)
	snap := &MapSnapshot{
		Source:   source,
		LoadedAt: time.Now(),
		Styles:   doc.Styles,
		Overlays: overlays,
		Bounds:   doc.Bounds(),
		Index:    NewSpatialIndex(overlays.All()),
	}

	s.mu.Lock()
	s.snap = snap
	s.lastErr = nil
	hooks := append([]func(*MapSnapshot){}, s.hooks...)
	s.mu.Unlock()

	counts := snap.Counts()
	s.logger.Info("map document loaded",
		zap.String("source", source),
		zap.Int("styles", len(doc.Styles)),
		zap.Int("features", overlays.Count()),
		zap.Int("lease_pillars", counts[overlay.GroupLeasePillars]),
		zap.Int("infrastructure", counts[overlay.GroupInfrastructure]),
		zap.Int("areas", counts[overlay.GroupAreas]),
		zap.Int("boundaries", counts[overlay.GroupBoundaries]),
	)

	for _, fn := range hooks {
		fn(snap)
	}
	s.bus.Publish(Event{Resource: ResourceOverlays, Action: ActionReloaded})
	return snap, nil
}

// Snapshot returns the current snapshot.
func (s *MapService) Snapshot() (*MapSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		if s.lastErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoSnapshot, s.lastErr)
		}
		return nil, ErrNoSnapshot
	}
	return s.snap, nil
}

// LastError returns the error of the most recent failed load, or nil if
// the latest load succeeded.
func (s *MapService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *MapService) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err
	kept := s.snap != nil
	s.mu.Unlock()

	s.logger.Warn("map document load failed", zap.Error(err), zap.Bool("kept_previous", kept))
	s.bus.Publish(Event{Resource: ResourceOverlays, Action: ActionFailed, Detail: err.Error()})
	return err
}
