// Package templates handles HTML template rendering for Datastar SSE responses.
package templates

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed fragments/*.html
var defaultFragments embed.FS

// funcMap provides common template functions.
var funcMap = template.FuncMap{
	// dict creates a map from key-value pairs, useful for passing multiple values to nested templates
	"dict": func(values ...any) map[string]any {
		if len(values)%2 != 0 {
			return nil
		}
		m := make(map[string]any, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				continue
			}
			m[key] = values[i+1]
		}
		return m
	},
	// lines splits text on <br> so each line is escaped on its own
	"lines": func(s string) []string {
		if s == "" {
			return nil
		}
		return strings.Split(s, "<br>")
	},
}

// Renderer manages HTML fragment templates.
type Renderer struct {
	templates *template.Template
	mu        sync.RWMutex
}

// Default returns a renderer over the built-in fragments.
func Default() (*Renderer, error) {
	tmpl, err := parse(defaultFragments, "fragments/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

// New creates a renderer from the built-in fragments, overridden by any
// fragment of the same name in fragmentsDir (e.g. web/templates/fragments/).
func New(fragmentsDir string) (*Renderer, error) {
	r, err := Default()
	if err != nil {
		return nil, err
	}
	if err := r.Reload(fragmentsDir); err != nil {
		return nil, err
	}
	return r, nil
}

// Render renders a named template to a string.
func (r *Renderer) Render(name string, data any) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToBuffer renders a named template to a buffer.
func (r *Renderer) RenderToBuffer(buf *bytes.Buffer, name string, data any) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.templates.ExecuteTemplate(buf, name, data)
}

// Reload re-parses the built-in fragments plus the overrides in
// fragmentsDir (useful for dev hot-reload). A directory with no fragments
// leaves only the built-ins.
func (r *Renderer) Reload(fragmentsDir string) error {
	tmpl, err := parse(defaultFragments, "fragments/*.html")
	if err != nil {
		return err
	}

	pattern := filepath.Join(fragmentsDir, "*.html")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(matches) > 0 {
		if tmpl, err = tmpl.ParseFiles(matches...); err != nil {
			return err
		}
	}

	r.mu.Lock()
	r.templates = tmpl
	r.mu.Unlock()

	return nil
}

func parse(fsys fs.FS, pattern string) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(fsys, pattern)
}
