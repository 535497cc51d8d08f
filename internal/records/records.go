// Package records loads flat pine records from the file formats the service
// accepts.
package records

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pinetree/internal/pine"
)

// Loader converts raw file bytes into records.
type Loader interface {
	Load(r io.Reader, filename string) ([]pine.Record, error)
}

// SupportedExtensions lists file extensions this service can load.
var SupportedExtensions = map[string]bool{
	".json":     true,
	".yaml":     true,
	".yml":      true,
	".csv":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".txt":      true,
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONLoader{}, nil
	case ".yaml", ".yml":
		return &YAMLLoader{}, nil
	case ".csv":
		return &CSVLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".txt":
		return &OutlineLoader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// LoadFile reads records from the file at path.
func LoadFile(path string) ([]pine.Record, error) {
	l, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.Load(f, filepath.Base(path))
}

// sequence hands out ids 1, 2, 3... for formats that carry structure but no
// ids of their own. Ids in taken are skipped.
type sequence struct {
	next    int64
	taken   map[int64]bool
	records []pine.Record
}

func (s *sequence) add(parent int64, name string) int64 {
	s.next++
	for s.taken[s.next] {
		s.next++
	}
	return s.addWithID(s.next, parent, name)
}

func (s *sequence) addWithID(id, parent int64, name string) int64 {
	s.records = append(s.records, pine.Record{
		ItemID:       id,
		ItemParentID: pine.Parent(parent),
		ItemName:     name,
	})
	return id
}
