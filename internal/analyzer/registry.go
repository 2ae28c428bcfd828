package analyzer

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rohanthewiz/serr"
	"gopkg.in/yaml.v3"
)

// UnknownCategory is returned for files with no registered mapping.
const UnknownCategory = "Unknown"

// defaultExtensions is the built-in extension table.
var defaultExtensions = map[string]string{
	// Programming languages
	".py": "Python", ".js": "JavaScript", ".ts": "TypeScript",
	".jsx": "React JSX", ".tsx": "React TSX", ".java": "Java",
	".cpp": "C++", ".c": "C", ".cs": "C#", ".go": "Go",
	".rs": "Rust", ".php": "PHP", ".rb": "Ruby", ".swift": "Swift",
	".kt": "Kotlin", ".scala": "Scala", ".r": "R", ".m": "Objective-C",
	".pl": "Perl", ".lua": "Lua", ".sh": "Shell", ".ps1": "PowerShell",
	".bat": "Batch", ".vbs": "VBScript", ".sql": "SQL",
	".hs": "Haskell", ".ml": "OCaml", ".f90": "Fortran",
	".asm": "Assembly", ".s": "Assembly",

	// Web
	".html": "HTML", ".htm": "HTML", ".css": "CSS",
	".scss": "SCSS", ".sass": "SASS", ".less": "LESS",
	".xml": "XML", ".svg": "SVG",

	// Configuration and data
	".json": "JSON", ".yaml": "YAML", ".yml": "YAML",
	".toml": "TOML", ".ini": "INI", ".cfg": "Config",
	".conf": "Config", ".env": "Environment",
	".properties": "Properties", ".lock": "Lock File",

	// Documentation
	".md": "Markdown", ".rst": "reStructuredText",
	".txt": "Text", ".pdf": "PDF", ".doc": "Word",
	".docx": "Word", ".rtf": "Rich Text",
}

// Registry maps file extensions (and optionally exact file names) to categories.
// It is not safe for concurrent mutation.
type Registry struct {
	extensions map[string]string // ".go" -> "Go"
	filenames  map[string]string // "Makefile" -> "Makefile"
}

// NewRegistry returns a registry preloaded with the default extension table.
func NewRegistry() *Registry {
	r := &Registry{
		extensions: make(map[string]string, len(defaultExtensions)),
		filenames:  make(map[string]string),
	}
	for ext, cat := range defaultExtensions {
		r.extensions[ext] = cat
	}
	return r
}

// Category returns the category for path, or UnknownCategory.
// Exact file name matches take precedence over extensions.
func (r *Registry) Category(path string) string {
	base := filepath.Base(path)
	if cat, ok := r.filenames[base]; ok {
		return cat
	}
	if cat, ok := r.extensions[extension(base)]; ok {
		return cat
	}
	return UnknownCategory
}

// Register adds or overwrites an extension mapping.
func (r *Registry) Register(ext, category string) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.extensions[ext] = category
}

// RegisterFilename maps an exact file name (case-sensitive) to a category.
func (r *Registry) RegisterFilename(name, category string) {
	if name == "" {
		return
	}
	r.filenames[name] = category
}

// Extensions returns the sorted extensions registered for category.
func (r *Registry) Extensions(category string) []string {
	var exts []string
	for ext, cat := range r.extensions {
		if cat == category {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// Categories returns every registered category, sorted.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	for _, cat := range r.extensions {
		seen[cat] = true
	}
	for _, cat := range r.filenames {
		seen[cat] = true
	}
	cats := make([]string, 0, len(seen))
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// LanguageInfo is one entry of a languages.yml document.
type LanguageInfo struct {
	Type       string   `yaml:"type"` // e.g. programming, data, markup
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// LoadLanguages registers every language in a YAML document of the form
//
//	Go:
//	  extensions: [".go"]
//	Makefile:
//	  filenames: ["Makefile"]
//
// Entries override existing mappings. It returns the number of languages read.
func (r *Registry) LoadLanguages(src io.Reader) (int, error) {
	var langs map[string]LanguageInfo
	if err := yaml.NewDecoder(src).Decode(&langs); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, serr.Wrap(err, "error parsing language definitions")
	}

	// Sorted so that two languages claiming the same extension resolve deterministically
	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := langs[name]
		for _, ext := range info.Extensions {
			r.Register(ext, name)
		}
		for _, fname := range info.Filenames {
			r.RegisterFilename(fname, name)
		}
	}
	return len(langs), nil
}

// extension returns the lowercased extension of a file name, including the dot.
func extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
