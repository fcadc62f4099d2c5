package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

type InfoHandler struct {
	dataDir string
	kmlPath string
	dbOK    bool
}

func NewInfoHandler(dataDir, kmlPath string, dbOK bool) *InfoHandler {
	return &InfoHandler{dataDir: dataDir, kmlPath: kmlPath, dbOK: dbOK}
}

func (h *InfoHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/info", h.GetInfo, huma.OperationTags("health"))
}

type InfoBody struct {
	Name     string   `json:"name" doc:"Service name"`
	Version  string   `json:"version" doc:"Service version"`
	DataDir  string   `json:"data_dir" doc:"Data directory path"`
	KMLPath  string   `json:"kml_path" doc:"KML document path"`
	DB       bool     `json:"db" doc:"Whether database is available"`
	Features []string `json:"features" doc:"Available features"`
}

func (h *InfoHandler) GetInfo(ctx context.Context, input *struct{}) (*struct{ Body InfoBody }, error) {
	features := []string{"kml", "overlays", "search", "spatial-index", "qr", "documents"}
	if h.dbOK {
		features = append(features, "duckdb")
	}
	return &struct{ Body InfoBody }{Body: InfoBody{
		Name:     "plat-mine",
		Version:  "0.1.0",
		DataDir:  h.dataDir,
		KMLPath:  h.kmlPath,
		DB:       h.dbOK,
		Features: features,
	}}, nil
}
