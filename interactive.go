package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/rohanthewiz/serr"

	"github.com/jadenpxrk/tally/internal/analyzer"
)

// directoryCandidates lists root and the directories below it that an
// analysis would descend into, as slash paths relative to root.
func directoryCandidates(root string, cfg analyzer.Config) ([]string, error) {
	candidates := []string{"."}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root || !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !cfg.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if analyzer.ShouldIgnore(rel, cfg.IgnorePatterns) {
			return fs.SkipDir
		}
		if cfg.MaxDepth != analyzer.Unlimited && strings.Count(rel, "/")+1 > cfg.MaxDepth {
			return fs.SkipDir
		}
		candidates = append(candidates, rel)
		return nil
	})
	if err != nil {
		return nil, serr.Wrap(err, "error scanning for directories")
	}
	return candidates, nil
}

// pickDirectory lets the user choose which directory below root to analyze.
// It returns "" when the selection is aborted.
func pickDirectory(root string, cfg analyzer.Config) (string, error) {
	candidates, err := directoryCandidates(root, cfg)
	if err != nil {
		return "", err
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string { return candidates[i] },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select a directory to analyze. Enter to confirm, Esc to abort."
			}
			return previewDirectory(filepath.Join(root, candidates[i]))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", serr.Wrap(err, "fuzzy finder error")
	}
	return filepath.Join(root, candidates[idx]), nil
}

func previewDirectory(path string) string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Sprintf("Path: %s\nError: %v", path, err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Path: %s\nEntries: %d\n\n", path, len(entries))
	for i, e := range entries {
		if i == 30 {
			b.WriteString("...\n")
			break
		}
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		b.WriteString(name + "\n")
	}
	return b.String()
}
