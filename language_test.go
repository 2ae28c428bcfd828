package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindLanguagesFile(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeTestFile(t, filepath.Join(second, languagesFile), "Go:\n  extensions: [\".go\"]\n")

	if got := findLanguagesFile("", first, second); got != filepath.Join(second, languagesFile) {
		t.Errorf("findLanguagesFile() = %q", got)
	}
	if got := findLanguagesFile("/explicit/langs.yml", first, second); got != "/explicit/langs.yml" {
		t.Errorf("explicit path not preferred: %q", got)
	}
	if got := findLanguagesFile("", "", first); got != "" {
		t.Errorf("expected no file, got %q", got)
	}
}

func TestNewRegistry_LoadsLanguagesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "langs.yml")
	writeTestFile(t, path, "Zig:\n  type: programming\n  extensions: [\".zig\"]\n")

	registry, err := newRegistry(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := registry.Category("build.zig"); got != "Zig" {
		t.Errorf("Category(build.zig) = %q", got)
	}
}

func TestNewRegistry_Errors(t *testing.T) {
	if _, err := newRegistry(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected an error for a missing explicit file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yml")
	writeTestFile(t, bad, "Go: [unclosed")
	if _, err := newRegistry(bad); err == nil {
		t.Error("expected a parse error")
	}
}
