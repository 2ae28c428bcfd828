package analyzer

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rohanthewiz/serr"
)

// Unlimited disables the directory depth limit.
const Unlimited = -1

const (
	// DefaultMaxFileSize is the size above which files are skipped (100 MB).
	DefaultMaxFileSize int64 = 100 * 1024 * 1024
	// DefaultTopN is the number of largest files tracked.
	DefaultTopN = 20
)

// Config controls one analysis run. It must not be modified while Analyze runs.
type Config struct {
	// IgnorePatterns are matched in order against each entry's root-relative
	// path, so a pattern naming an absolute path never matches.
	IgnorePatterns []string
	// IncludePatterns, when non-empty, restrict analyzed files to those whose
	// root-relative slash path matches at least one doublestar glob.
	IncludePatterns []string
	// RespectGitignore applies the root directory's .gitignore, if present.
	RespectGitignore bool

	// MaxDepth is the deepest directory level descended into; the root is
	// depth 0. Unlimited disables the check.
	MaxDepth       int
	FollowSymlinks bool
	IncludeHidden  bool
	// MaxFileSize is in bytes. Larger files are left out of the walk.
	MaxFileSize int64
	TopN        int

	CommentPatterns  map[string]CommentPattern
	TextExtensions   []string
	BinaryExtensions []string
}

// DefaultIgnorePatterns are the patterns applied unless a config overrides them.
var DefaultIgnorePatterns = []string{
	"__pycache__", ".git", ".svn", ".hg", ".DS_Store", "Thumbs.db",
	"node_modules", "venv", "env", ".venv", ".env", "dist", "build",
	"*.pyc", "*.pyo", "*.so", "*.dll", "*.exe", "*.log", "*.tmp",
	".pytest_cache", ".coverage", ".tox", ".mypy_cache",
}

// DefaultTextExtensions are the extensions whose lines are counted.
var DefaultTextExtensions = []string{
	".txt", ".md", ".rst", ".log", ".csv", ".tsv", ".json", ".xml",
	".yaml", ".yml", ".toml", ".ini", ".cfg", ".conf", ".env",
	".py", ".js", ".ts", ".jsx", ".tsx", ".java", ".cpp", ".c",
	".cs", ".go", ".rs", ".php", ".rb", ".swift", ".kt", ".scala",
	".r", ".m", ".pl", ".lua", ".sh", ".ps1", ".bat", ".vbs",
	".sql", ".hs", ".ml", ".f90", ".asm", ".s", ".html", ".htm",
	".css", ".scss", ".sass", ".less", ".svg",
}

// DefaultBinaryExtensions are never read.
var DefaultBinaryExtensions = []string{
	".exe", ".dll", ".so", ".dylib", ".pyc", ".pyo", ".jar",
	".war", ".ear", ".apk", ".ipa", ".deb", ".rpm", ".tar",
	".gz", ".zip", ".7z", ".rar", ".bz2", ".xz", ".jpg", ".jpeg",
	".png", ".gif", ".bmp", ".tiff", ".ico", ".mp3", ".wav",
	".mp4", ".avi", ".mov", ".pdf", ".doc", ".docx", ".rtf",
}

var (
	cStyle   = CommentPattern{Single: "//", MultiStart: "/*", MultiEnd: "*/"}
	hashOnly = CommentPattern{Single: "#"}
)

// DefaultCommentPatterns returns a fresh copy of the built-in comment syntax table.
func DefaultCommentPatterns() map[string]CommentPattern {
	return map[string]CommentPattern{
		"Python":           {Single: "#", MultiStart: `"""`, MultiEnd: `"""`},
		"JavaScript":       cStyle,
		"TypeScript":       cStyle,
		"React JSX":        cStyle,
		"React TSX":        cStyle,
		"Java":             cStyle,
		"C++":              cStyle,
		"C":                cStyle,
		"C#":               cStyle,
		"Go":               cStyle,
		"Rust":             cStyle,
		"PHP":              cStyle,
		"Ruby":             {Single: "#", MultiStart: "=begin", MultiEnd: "=end"},
		"Swift":            cStyle,
		"Kotlin":           cStyle,
		"Scala":            cStyle,
		"R":                hashOnly,
		"Objective-C":      cStyle,
		"Perl":             {Single: "#", MultiStart: "=pod", MultiEnd: "=cut"},
		"Lua":              {Single: "--", MultiStart: "--[[", MultiEnd: "]]"},
		"Shell":            hashOnly,
		"PowerShell":       {Single: "#", MultiStart: "<#", MultiEnd: "#>"},
		"Batch":            {Single: "REM"},
		"VBScript":         {Single: "'"},
		"SQL":              {Single: "--", MultiStart: "/*", MultiEnd: "*/"},
		"Haskell":          {Single: "--", MultiStart: "{-", MultiEnd: "-}"},
		"OCaml":            {Single: "(*", MultiStart: "(*", MultiEnd: "*)"},
		"Fortran":          {Single: "!"},
		"Assembly":         {Single: ";"},
		"HTML":             {MultiStart: "<!--", MultiEnd: "-->"},
		"CSS":              {MultiStart: "/*", MultiEnd: "*/"},
		"SCSS":             cStyle,
		"SASS":             cStyle,
		"LESS":             cStyle,
		"XML":              {MultiStart: "<!--", MultiEnd: "-->"},
		"SVG":              {MultiStart: "<!--", MultiEnd: "-->"},
		"YAML":             hashOnly,
		"TOML":             hashOnly,
		"INI":              {Single: ";"},
		"Config":           hashOnly,
		"Environment":      hashOnly,
		"JSON":             {},
		"Markdown":         {},
		"reStructuredText": {Single: ".."},
		"Text":             {},
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		IgnorePatterns:   append([]string(nil), DefaultIgnorePatterns...),
		MaxDepth:         Unlimited,
		MaxFileSize:      DefaultMaxFileSize,
		TopN:             DefaultTopN,
		CommentPatterns:  DefaultCommentPatterns(),
		TextExtensions:   append([]string(nil), DefaultTextExtensions...),
		BinaryExtensions: append([]string(nil), DefaultBinaryExtensions...),
	}
}

// Validate rejects limits and patterns the walker cannot honor.
func (c Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return serr.New("max file size must be positive")
	}
	if c.MaxDepth < Unlimited {
		return serr.New("max depth must be non-negative")
	}
	if c.TopN <= 0 {
		return serr.New("top-N size must be positive")
	}
	for _, p := range c.IncludePatterns {
		if !doublestar.ValidatePattern(p) {
			return serr.F("invalid include pattern %q", p)
		}
	}
	return nil
}

// commentPattern returns the syntax for category, or the empty pattern.
func (c Config) commentPattern(category string) CommentPattern {
	return c.CommentPatterns[category]
}

// extensionSet normalizes a list of extensions into a lookup set.
func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}
