package service

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidFilename is returned for names that could escape the documents
// directory.
var ErrInvalidFilename = errors.New("invalid filename")

// DocumentService lists the PDF documents shown in the viewer modal.
type DocumentService struct {
	docsDir string
}

// NewDocumentService creates a document service for <dataDir>/docs.
func NewDocumentService(dataDir string) *DocumentService {
	return &DocumentService{
		docsDir: filepath.Join(dataDir, "docs"),
	}
}

// List returns the available PDF documents sorted by name.
func (s *DocumentService) List() ([]DocumentFile, error) {
	entries, err := os.ReadDir(s.docsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []DocumentFile{}, nil
		}
		return nil, err
	}

	files := []DocumentFile{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != ".pdf" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, DocumentFile{
			Name: entry.Name(),
			Size: formatSize(info.Size()),
			URL:  "/files/" + url.PathEscape(entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Path returns the on-disk path of a document after validating its name.
func (s *DocumentService) Path(filename string) (string, error) {
	if err := ValidateFilename(filename); err != nil {
		return "", err
	}
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return "", fmt.Errorf("%w: not a pdf: %s", ErrInvalidFilename, filename)
	}
	p := filepath.Join(s.docsDir, filename)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("document %s: %w", filename, err)
	}
	return p, nil
}

// DocsDir returns the path to the documents directory.
func (s *DocumentService) DocsDir() string {
	return s.docsDir
}

// ValidateFilename rejects empty names and names with path separators or
// parent references.
func ValidateFilename(filename string) error {
	if filename == "" ||
		strings.Contains(filename, "/") || strings.Contains(filename, "\\") || strings.Contains(filename, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return nil
}

// formatSize returns a human-readable file size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
