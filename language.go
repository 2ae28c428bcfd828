package main

import (
	"os"
	"path/filepath"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"github.com/jadenpxrk/tally/internal/analyzer"
)

const languagesFile = "languages.yml"

// findLanguagesFile returns explicit if set, otherwise the first languages.yml
// found in the config directory or the working directory. It returns "" when
// there is none.
func findLanguagesFile(explicit string, dirs ...string) string {
	if explicit != "" {
		return explicit
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, languagesFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// newRegistry builds the file type registry, extended with the definitions in
// the languages file when one is found.
func newRegistry(explicit string) (*analyzer.Registry, error) {
	registry := analyzer.NewRegistry()

	path := findLanguagesFile(explicit, configDir(), ".")
	if path == "" {
		return registry, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, serr.Wrap(err, "error reading language file "+path)
	}
	defer f.Close()

	n, err := registry.LoadLanguages(f)
	if err != nil {
		return nil, serr.Wrap(err, "error parsing language file "+path)
	}
	logger.Debug("Loaded language definitions", "file", path, "languages", n)
	return registry, nil
}
