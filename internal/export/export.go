// Package export writes analysis results to files in several formats.
package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/afero"

	"github.com/jadenpxrk/tally/internal/analyzer"
)

// FormatVersion is written into exported documents that carry a version.
const FormatVersion = "2.0.0"

// Exporter writes a result to path.
type Exporter interface {
	Export(res *analyzer.Result, path string) error
	// Extension is the file extension, without the dot.
	Extension() string
}

// Registry maps format names to exporters.
type Registry struct {
	exporters map[string]Exporter
	aliases   map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		exporters: make(map[string]Exporter),
		aliases:   make(map[string]string),
	}
}

// Default returns a registry with the built-in json, csv, txt and pdf
// exporters writing to the OS filesystem.
func Default() *Registry {
	r := NewRegistry()
	r.Register("json", &JSON{})
	r.Register("csv", &CSV{})
	r.Register("txt", &Text{Detailed: true})
	r.Register("pdf", &PDF{})
	r.Alias("text", "txt")
	return r
}

// Register adds or replaces the exporter for name. Names are case-insensitive.
func (r *Registry) Register(name string, e Exporter) {
	r.exporters[strings.ToLower(name)] = e
}

// Alias makes alias resolve to the exporter registered as name.
func (r *Registry) Alias(alias, name string) {
	r.aliases[strings.ToLower(alias)] = strings.ToLower(name)
}

// Lookup returns the exporter for format.
func (r *Registry) Lookup(format string) (Exporter, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	e, ok := r.exporters[name]
	if !ok {
		return nil, serr.F("unknown export format %q (available: %s)", format, strings.Join(r.Formats(), ", "))
	}
	return e, nil
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultFilename returns tally_<project>_<YYYYMMDD_HHMMSS>.<ext>.
func DefaultFilename(res *analyzer.Result, ext string, now time.Time) string {
	project := filepath.Base(res.ProjectPath)
	return fmt.Sprintf("tally_%s_%s.%s", project, now.Format("20060102_150405"), strings.TrimPrefix(ext, "."))
}

func fsOrOS(fsys afero.Fs) afero.Fs {
	if fsys == nil {
		return afero.NewOsFs()
	}
	return fsys
}

// create opens path for writing, creating parent directories as needed.
func create(fsys afero.Fs, path string) (afero.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, serr.Wrap(err, "failed to create output directory "+dir)
		}
	}
	f, err := fsys.Create(path)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create "+path)
	}
	return f, nil
}
