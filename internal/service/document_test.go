package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentServiceList(t *testing.T) {
	dir := t.TempDir()
	svc := NewDocumentService(dir)

	files, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, files, "missing docs dir is an empty list")

	require.NoError(t, os.MkdirAll(svc.DocsDir(), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(svc.DocsDir(), "mine rules.pdf"), make([]byte, 2048), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(svc.DocsDir(), "Atlas.PDF"), []byte("%PDF"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(svc.DocsDir(), "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(svc.DocsDir(), "archive.pdf"), 0755))

	files, err = svc.List()
	require.NoError(t, err)
	assert.Equal(t, []DocumentFile{
		{Name: "Atlas.PDF", Size: "4 B", URL: "/files/Atlas.PDF"},
		{Name: "mine rules.pdf", Size: "2.0 KB", URL: "/files/mine%20rules.pdf"},
	}, files)
}

func TestDocumentServicePath(t *testing.T) {
	dir := t.TempDir()
	svc := NewDocumentService(dir)
	require.NoError(t, os.MkdirAll(svc.DocsDir(), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(svc.DocsDir(), "plan.pdf"), []byte("%PDF"), 0644))

	p, err := svc.Path("plan.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.DocsDir(), "plan.pdf"), p)

	for _, name := range []string{"", "../secret.pdf", "a/b.pdf", `a\b.pdf`, "plan.txt"} {
		_, err := svc.Path(name)
		assert.ErrorIs(t, err, ErrInvalidFilename, name)
	}

	_, err = svc.Path("missing.pdf")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KB", formatSize(1536))
	assert.Equal(t, "3.0 MB", formatSize(3*1024*1024))
}
