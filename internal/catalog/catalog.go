// Package catalog loads the per-language JSON data files that describe the
// available installation scripts.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/andchir/install-scripts/internal/metrics"
	"github.com/andchir/install-scripts/internal/transcript"
)

var (
	// ErrNotFound means the data file for the language (and the default
	// fallback) does not exist, or a script lookup missed.
	ErrNotFound = errors.New("not found")
	// ErrPermission means the data file exists but cannot be read.
	ErrPermission = errors.New("permission denied")
	// ErrBadData means the data file is not valid JSON.
	ErrBadData = errors.New("invalid data file")
)

// Script is one catalog entry. Entries are authored by hand in the data
// files, so the shape is kept open: any field survives a round trip, and
// every free-text value is run through the transcript sanitizer before it
// leaves this package.
type Script map[string]any

// Name returns the entry's script_name key, the catalog's lookup identity.
func (s Script) Name() string {
	if v, ok := s["script_name"].(string); ok {
		return v
	}
	return ""
}

// langPattern keeps user-supplied language codes file-name safe.
var langPattern = regexp.MustCompile(`^[a-z]{2}(-[a-zA-Z]{2,8})?$`)

// Store selects and loads data files named data_<lang>.json under DataDir,
// falling back to DefaultLang when the requested language has no file.
type Store struct {
	DataDir     string
	DefaultLang string
}

func NewStore(dataDir, defaultLang string) *Store {
	return &Store{DataDir: dataDir, DefaultLang: defaultLang}
}

// DataFilePath resolves the data file for lang, falling back to the default
// language file when the requested one does not exist. Malformed language
// codes resolve directly to the default.
func (s *Store) DataFilePath(lang string) string {
	if lang != "" && langPattern.MatchString(lang) {
		path := filepath.Join(s.DataDir, fmt.Sprintf("data_%s.json", lang))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(s.DataDir, fmt.Sprintf("data_%s.json", s.DefaultLang))
}

// Load reads the catalog for lang. Every string field of every entry comes
// back sanitized.
func (s *Store) Load(lang string) ([]Script, error) {
	path := s.DataFilePath(lang)

	raw, err := os.ReadFile(path)
	if err != nil {
		metrics.IncCatalogError()
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("data file %s: %w", filepath.Base(path), ErrNotFound)
		case os.IsPermission(err):
			return nil, fmt.Errorf("data file %s: %w", filepath.Base(path), ErrPermission)
		default:
			return nil, fmt.Errorf("read data file: %w", err)
		}
	}

	var scripts []Script
	if err := json.Unmarshal(raw, &scripts); err != nil {
		metrics.IncCatalogError()
		return nil, fmt.Errorf("%w: %v", ErrBadData, err)
	}

	for _, script := range scripts {
		sanitizeValues(script)
	}

	metrics.IncCatalogLoad()
	return scripts, nil
}

// Find returns the entry whose script_name equals name.
func (s *Store) Find(lang, name string) (Script, error) {
	scripts, err := s.Load(lang)
	if err != nil {
		return nil, err
	}

	for _, script := range scripts {
		if script.Name() == name {
			return script, nil
		}
	}

	return nil, fmt.Errorf("script %q: %w", name, ErrNotFound)
}

// sanitizeValues strips escape sequences from every string reachable in the
// decoded entry, including nested objects and arrays.
func sanitizeValues(m map[string]any) {
	for k, v := range m {
		m[k] = sanitizeValue(v)
	}
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		clean := transcript.Sanitize(val)
		metrics.ObserveSanitize(len(val) - len(clean))
		return clean
	case map[string]any:
		sanitizeValues(val)
		return val
	case []any:
		for i := range val {
			val[i] = sanitizeValue(val[i])
		}
		return val
	default:
		return v
	}
}
