// Package server wires the services, the Huma API and the static site into
// one http.Handler.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"go.uber.org/zap"

	"github.com/joeblew999/plat-mine/internal/api"
	"github.com/joeblew999/plat-mine/internal/db"
	"github.com/joeblew999/plat-mine/internal/service"
	"github.com/joeblew999/plat-mine/internal/templates"
)

// Config holds the server configuration.
type Config struct {
	Host    string
	Port    string
	DataDir string
	WebDir  string // Path to web/ directory for static files and templates
	KMLPath string // Defaults to <DataDir>/doc.kml
	Watch   bool   // Reload the KML document when it changes on disk
	NoDB    bool   // Skip the DuckDB feature mirror
	Logger  *zap.Logger
}

// Server is the mine map HTTP server.
type Server struct {
	config   Config
	logger   *zap.Logger
	mux      *http.ServeMux
	humaAPI  huma.API
	db       *sql.DB
	bus      *service.EventBus
	services *api.Services
	watcher  *service.Watcher
}

// New creates the server and loads the KML document. A document that fails
// to load is logged, not fatal: the API reports it and a later reload can
// recover.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.KMLPath == "" {
		cfg.KMLPath = filepath.Join(cfg.DataDir, "doc.kml")
	}
	logger := cfg.Logger

	mux := http.NewServeMux()

	// Create Huma API with humago (pure stdlib) adapter
	humaConfig := huma.DefaultConfig("plat-mine API", "1.0.0")
	humaConfig.Info.Description = "Mine site map API: KML styles, classified overlays, feature search, site content and contacts."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	// Disable $schema property in responses (cleaner JSON)
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}
	humaConfig.Transformers = append(humaConfig.Transformers, api.LinkTransformer())

	humaAPI := humago.New(mux, humaConfig)

	site, err := service.NewSiteService(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	renderer, err := loadRenderer(cfg.WebDir, logger)
	if err != nil {
		return nil, err
	}

	bus := service.NewEventBus()
	maps := service.NewMapService(cfg.KMLPath, bus, logger.Named("map"))

	services := &api.Services{
		Map:       maps,
		Site:      site,
		BaseMaps:  service.NewBaseMapService(cfg.DataDir, site.Site().BaseLayers, bus),
		Documents: service.NewDocumentService(cfg.DataDir),
		Renderer:  renderer,
	}

	s := &Server{
		config:   cfg,
		logger:   logger,
		mux:      mux,
		humaAPI:  humaAPI,
		bus:      bus,
		services: services,
	}

	if !cfg.NoDB {
		s.openDB()
	}

	if _, err := maps.Reload(); err != nil {
		logger.Warn("map document not loaded", zap.String("path", cfg.KMLPath), zap.Error(err))
	}

	if cfg.Watch {
		w, err := service.NewWatcher(maps, logger.Named("watch"))
		if err != nil {
			logger.Warn("file watching disabled", zap.Error(err))
		} else {
			s.watcher = w
		}
	}

	s.routes()
	return s, nil
}

// openDB connects DuckDB and mirrors every loaded snapshot into it.
func (s *Server) openDB() {
	conn, err := db.Get(db.Config{
		DataDir: s.config.DataDir,
		DBName:  "mine",
	})
	if err != nil {
		s.logger.Warn("duckdb unavailable", zap.Error(err))
		return
	}
	store, err := db.NewFeatureStore(context.Background(), conn)
	if err != nil {
		s.logger.Warn("duckdb feature store unavailable", zap.Error(err))
		return
	}
	s.db = conn

	s.services.Map.OnLoad(func(snap *service.MapSnapshot) {
		if err := store.Sync(context.Background(), snap.Overlays.All()); err != nil {
			s.logger.Warn("feature sync failed", zap.Error(err))
		}
	})
}

func loadRenderer(webDir string, logger *zap.Logger) (*templates.Renderer, error) {
	if webDir != "" {
		fragmentsDir := filepath.Join(webDir, "templates", "fragments")
		if _, err := os.Stat(fragmentsDir); err == nil {
			r, err := templates.New(fragmentsDir)
			if err != nil {
				return nil, fmt.Errorf("loading fragments: %w", err)
			}
			logger.Info("loaded fragment templates", zap.String("dir", fragmentsDir))
			return r, nil
		}
	}
	return templates.Default()
}

// Start begins watching the KML document, if enabled, until ctx ends.
func (s *Server) Start(ctx context.Context) {
	if s.watcher != nil {
		s.watcher.Start(ctx)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// OpenAPI returns the generated OpenAPI document.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

// Maps returns the map service.
func (s *Server) Maps() *service.MapService {
	return s.services.Map
}

// Close closes server resources.
func (s *Server) Close() error {
	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Close())
	}
	if s.db != nil {
		errs = append(errs, db.Close())
	}
	return errors.Join(errs...)
}

func (s *Server) routes() {
	// Register Huma REST API routes (OpenAPI-documented JSON endpoints)
	api.RegisterRoutes(s.humaAPI, s.services)
	api.NewInfoHandler(s.config.DataDir, s.config.KMLPath, s.db != nil).RegisterRoutes(s.humaAPI)
	api.NewDBHandler(s.db).RegisterRoutes(s.humaAPI)
	api.NewEventHandler(s.services.Map, s.bus, s.services.Renderer).RegisterRoutes(s.humaAPI)

	// Raw files
	s.mux.HandleFunc("GET /doc.kml", s.handleKML)
	s.mux.HandleFunc("GET /files/{name}", s.handleDocument)

	// Static files and templates
	if s.config.WebDir != "" {
		staticDir := filepath.Join(s.config.WebDir, "static")
		s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	// Page routes
	s.mux.HandleFunc("/contact", s.handlePage("contact.html"))
	s.mux.HandleFunc("/", s.handleRoot)
}

// handleKML serves the raw document for clients that render it themselves.
func (s *Server) handleKML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
	http.ServeFile(w, r, s.config.KMLPath)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	path, err := s.services.Documents.Path(r.PathValue("name"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilename) {
			http.Error(w, "Invalid filename", http.StatusBadRequest)
		} else {
			http.NotFound(w, r)
		}
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.handlePage("index.html")(w, r)
}

// handlePage serves a page from web/templates, or a JSON status when the
// web directory has no such page.
func (s *Server) handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.WebDir != "" {
			page := filepath.Join(s.config.WebDir, "templates", name)
			if _, err := os.Stat(page); err == nil {
				http.ServeFile(w, r, page)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"service":"plat-mine","status":"running"}`)
	}
}
