package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-mine/internal/api"
	"github.com/joeblew999/plat-mine/internal/overlay"
	"github.com/joeblew999/plat-mine/internal/server"
	"github.com/joeblew999/plat-mine/internal/service"
)

// Options defines all CLI flags and env vars for the mine map server.
// Flags: --host, --port, --data-dir, --web-dir, --kml, --watch, --no-db, --debug
// Env vars: SERVICE_HOST, SERVICE_PORT, SERVICE_DATA_DIR, SERVICE_WEB_DIR, ...
type Options struct {
	Host    string `doc:"Host to bind to" default:"0.0.0.0"`
	Port    int    `doc:"Port to listen on" short:"p" default:"8086"`
	DataDir string `doc:"Directory for site data files" default:".data"`
	WebDir  string `doc:"Path to web/ directory" default:"web"`
	KML     string `doc:"Path to the KML document (default <data-dir>/doc.kml)"`
	Watch   bool   `doc:"Reload the KML document when it changes on disk" default:"true"`
	NoDB    bool   `doc:"Disable the DuckDB feature mirror"`
	Debug   bool   `doc:"Enable debug logging"`
}

func (o *Options) kmlPath() string {
	if o.KML != "" {
		return o.KML
	}
	return filepath.Join(o.DataDir, "doc.kml")
}

func newLogger(opts *Options) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if opts.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newServer(opts *Options, logger *zap.Logger) (*server.Server, error) {
	return server.New(server.Config{
		Host:    opts.Host,
		Port:    fmt.Sprintf("%d", opts.Port),
		DataDir: opts.DataDir,
		WebDir:  opts.WebDir,
		KMLPath: opts.kmlPath(),
		Watch:   opts.Watch,
		NoDB:    opts.NoDB,
		Logger:  logger,
	})
}

// loadSnapshot parses and classifies the KML document once.
func loadSnapshot(opts *Options, logger *zap.Logger) (*service.MapSnapshot, error) {
	return service.NewMapService(opts.kmlPath(), nil, logger).Reload()
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	// .env values become SERVICE_* defaults; real env vars win.
	_ = godotenv.Load(".env")

	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		logger := newLogger(opts)
		srv, err := newServer(opts, logger)
		if err != nil {
			logger.Fatal("server setup failed", zap.Error(err))
		}

		ctx, cancel := context.WithCancel(context.Background())
		addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
		httpServer := &http.Server{Addr: addr, Handler: srv}

		hooks.OnStart(func() {
			displayHost := opts.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, opts.Port)

			fmt.Println()
			fmt.Printf("plat-mine map server starting...\n")
			fmt.Printf("  Server:  %s\n", baseURL)
			fmt.Printf("  Data:    %s\n", opts.DataDir)
			fmt.Printf("  KML:     %s\n", opts.kmlPath())
			fmt.Println()
			fmt.Printf("  Map:     %s/api/v1/map\n", baseURL)
			fmt.Printf("  Docs:    %s/docs\n", baseURL)
			fmt.Printf("  OpenAPI: %s/openapi.json\n", baseURL)
			fmt.Println()

			srv.Start(ctx)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server error", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			cancel()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown", zap.Error(err))
			}
			if err := srv.Close(); err != nil {
				logger.Warn("closing resources", zap.Error(err))
			}
			_ = logger.Sync()
		})
	})

	cli.Root().Use = "mine"
	cli.Root().Short = "Mine site map: KML overlays, search, contacts and documents"
	cli.Root().Version = "0.1.0"

	// spec subcommand: export OpenAPI spec
	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			opts.NoDB = true
			opts.Watch = false
			srv, err := newServer(opts, zap.NewNop())
			if err != nil {
				fail("Error creating server: %v", err)
			}
			defer srv.Close()
			spec := srv.OpenAPI()

			useYAML, _ := cmd.Flags().GetBool("yaml")
			if err := writeOutput(os.Stdout, spec, useYAML); err != nil {
				fail("Error marshaling spec: %v", err)
			}
		}),
	}
	specCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(specCmd)

	// classify subcommand: print group counts, or one group's features
	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify the KML document and print group counts or a group's features",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			snap, err := loadSnapshot(opts, zap.NewNop())
			if err != nil {
				fail("Error loading %s: %v", opts.kmlPath(), err)
			}

			useYAML, _ := cmd.Flags().GetBool("yaml")
			slug, _ := cmd.Flags().GetString("group")

			var out any
			if slug == "" {
				counts := map[string]int{}
				for g, n := range snap.Counts() {
					counts[string(g)] = n
				}
				out = counts
			} else {
				g, ok := overlay.GroupFromSlug(slug)
				if !ok {
					fail("Unknown group %q", slug)
				}
				out = api.FeatureViews(snap.Overlays[g])
			}
			if err := writeOutput(os.Stdout, out, useYAML); err != nil {
				fail("Error writing output: %v", err)
			}
		}),
	}
	classifyCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	classifyCmd.Flags().StringP("group", "g", "", "Group slug (lease-pillars, infrastructure, areas, boundaries)")
	cli.Root().AddCommand(classifyCmd)

	// export subcommand: write one group as KML or GeoJSON
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export one overlay group as KML or GeoJSON",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			slug, _ := cmd.Flags().GetString("group")
			format, _ := cmd.Flags().GetString("format")
			outPath, _ := cmd.Flags().GetString("output")

			g, ok := overlay.GroupFromSlug(slug)
			if !ok {
				fail("Unknown group %q", slug)
			}
			snap, err := loadSnapshot(opts, zap.NewNop())
			if err != nil {
				fail("Error loading %s: %v", opts.kmlPath(), err)
			}

			var w io.Writer = os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					fail("Error creating %s: %v", outPath, err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "kml":
				err = overlay.ExportKML(w, g, snap.Overlays[g], snap.Styles)
			case "geojson":
				err = writeOutput(w, overlay.ExportGeoJSON(snap.Overlays[g]), false)
			default:
				fail("Unknown format %q (kml or geojson)", format)
			}
			if err != nil {
				fail("Error exporting %s: %v", g, err)
			}
		}),
	}
	exportCmd.Flags().StringP("group", "g", "", "Group slug (lease-pillars, infrastructure, areas, boundaries)")
	exportCmd.Flags().StringP("format", "f", "geojson", "Output format: kml or geojson")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	_ = exportCmd.MarkFlagRequired("group")
	cli.Root().AddCommand(exportCmd)

	cli.Run()
}

// writeOutput encodes v as indented JSON or YAML.
func writeOutput(w io.Writer, v any, useYAML bool) error {
	var (
		output []byte
		err    error
	)
	if useYAML {
		output, err = yaml.Marshal(v)
	} else {
		output, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}
