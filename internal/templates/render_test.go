package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFragments(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	html, err := r.Render("empty-state", map[string]string{"Title": "Nothing", "Message": "here"})
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Nothing</strong>")
	assert.Contains(t, html, "<p>here</p>")

	_, err = r.Render("missing", nil)
	assert.Error(t, err)
}

func TestFeaturePopupEscapesLines(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	html, err := r.Render("feature-popup", map[string]any{
		"Title":         "MAIN PIT",
		"Description":   "Bench 3<br><b>active</b>",
		"TypeName":      "Mining Pit",
		"Lat":           21.94,
		"Lng":           85.38,
		"DirectionsURL": "https://www.google.com/maps/dir/?api=1&destination=21.94,85.38",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Bench 3<br>&lt;b&gt;active&lt;/b&gt;")
	assert.Contains(t, html, "21.940000, 85.380000")
	assert.Contains(t, html, "Mining Pit")
}

func TestOverrideFragments(t *testing.T) {
	dir := t.TempDir()
	custom := `{{define "empty-state"}}<em>{{.Title}}</em>{{end}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.html"), []byte(custom), 0644))

	r, err := New(dir)
	require.NoError(t, err)

	html, err := r.Render("empty-state", map[string]string{"Title": "Custom"})
	require.NoError(t, err)
	assert.Equal(t, "<em>Custom</em>", html)

	// Built-ins not overridden are still available.
	html, err = r.Render("map-status", map[string]string{"Title": "Loaded", "Message": "4 features"})
	require.NoError(t, err)
	assert.Contains(t, html, "4 features")
}
