package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `<kml><Document>
<Placemark><name>12A</name><Point><coordinates>85.38,21.94</coordinates></Point></Placemark>
</Document></kml>`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.kml"), []byte(doc), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "rules.pdf"), []byte("%PDF-1.4"), 0644))

	srv, err := New(Config{Host: "localhost", Port: "0", DataDir: dir, NoDB: true})
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv, dir
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServerRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(srv, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"map":true`)

	rec = get(srv, "/doc.kml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<name>12A</name>")

	rec = get(srv, "/files/rules.pdf")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = get(srv, "/files/missing.pdf")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(srv, "/files/notes.txt")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(srv, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"service":"plat-mine"`)

	rec = get(srv, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(srv, "/api/v1/tables")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServerMissingDocument(t *testing.T) {
	srv, err := New(Config{DataDir: t.TempDir(), NoDB: true})
	require.NoError(t, err)
	defer srv.Close()

	rec := get(srv, "/api/v1/overlays")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = get(srv, "/api/v1/map")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loaded":false`)
}

func TestOpenAPIListsRoutes(t *testing.T) {
	srv, _ := newTestServer(t)
	paths := srv.OpenAPI().Paths
	for _, p := range []string{
		"/api/v1/map",
		"/api/v1/overlays/{group}",
		"/api/v1/features/search",
		"/api/v1/contacts/qr",
		"/api/v1/basemaps/{id}",
		"/api/v1/map/events",
	} {
		assert.Contains(t, paths, p)
	}
}
