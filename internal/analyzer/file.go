package analyzer

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TokenCounter counts model tokens in decoded file text.
type TokenCounter interface {
	CountTokens(text string) int
}

// FileAnalyzer produces a FileRecord for a single file.
type FileAnalyzer struct {
	fs       afero.Fs
	registry *Registry
	cfg      Config
	text     map[string]bool
	binary   map[string]bool
	tokens   TokenCounter
}

// NewFileAnalyzer returns an analyzer reading from fsys. tokens may be nil.
func NewFileAnalyzer(fsys afero.Fs, registry *Registry, cfg Config, tokens TokenCounter) *FileAnalyzer {
	return &FileAnalyzer{
		fs:       fsys,
		registry: registry,
		cfg:      cfg,
		text:     extensionSet(cfg.TextExtensions),
		binary:   extensionSet(cfg.BinaryExtensions),
		tokens:   tokens,
	}
}

// Analyze stats and, for text files, reads and classifies path.
// It returns nil if the file cannot be stat'ed. Every other failure yields
// a record with zero line counts.
func (a *FileAnalyzer) Analyze(path string) *FileRecord {
	rec, _ := a.analyze(path)
	return rec
}

func (a *FileAnalyzer) analyze(path string) (*FileRecord, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errIsDir
	}

	name := filepath.Base(path)
	ext := extension(name)
	rec := &FileRecord{
		Path:         path,
		Name:         name,
		Category:     a.registry.Category(path),
		Extension:    ext,
		Size:         info.Size(),
		LastModified: info.ModTime(),
	}

	if !a.isCountable(ext, info.Size()) {
		return rec, nil
	}

	counts, text, err := a.readLines(path, a.cfg.commentPattern(rec.Category))
	if err != nil {
		// Unreadable content still counts as a file, with no line metrics
		return rec, nil
	}
	rec.CodeLines = counts.Code
	rec.CommentLines = counts.Comment
	rec.BlankLines = counts.Blank
	rec.Lines = counts.Total()
	if a.tokens != nil && text != "" {
		rec.Tokens = a.tokens.CountTokens(text)
	}
	return rec, nil
}

// isCountable reports whether a file's lines should be read.
func (a *FileAnalyzer) isCountable(ext string, size int64) bool {
	if size > a.cfg.MaxFileSize {
		return false
	}
	if a.binary[ext] {
		return false
	}
	return a.text[ext]
}

// readLines streams the decoded file through a classifier. Invalid UTF-8 is
// replaced rather than rejected, and a UTF-8 or UTF-16 BOM selects the decoding.
// The decoded text is returned only when a token counter needs it.
func (a *FileAnalyzer) readLines(path string, pattern CommentPattern) (LineCounts, string, error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return LineCounts{}, "", err
	}
	defer f.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	r := bufio.NewReader(transform.NewReader(f, decoder))

	var text strings.Builder
	c := NewClassifier(pattern)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			c.Add(line)
			if a.tokens != nil {
				text.WriteString(line)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return LineCounts{}, "", err
		}
	}
	return c.Counts(), text.String(), nil
}
