package analyzer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
)

// walker performs one depth-first traversal and owns the accumulating results.
type walker struct {
	fs        afero.Fs
	cfg       Config
	root      string
	files     *FileAnalyzer
	gitignore gitignore.IgnoreMatcher
	onSkip    func(path string, err error)
	// onProgress, when set, is called after each file is added.
	onProgress func(path string, processed int)

	stats   *ProjectStats
	records []*FileRecord
	largest *TopN
}

func newWalker(fsys afero.Fs, cfg Config, root string, files *FileAnalyzer, onSkip func(string, error)) *walker {
	w := &walker{
		fs:      fsys,
		cfg:     cfg,
		root:    root,
		files:   files,
		onSkip:  onSkip,
		stats:   NewProjectStats(),
		records: make([]*FileRecord, 0),
		largest: NewTopN(cfg.TopN),
	}
	if cfg.RespectGitignore {
		w.gitignore = w.loadGitignore()
	}
	return w
}

// loadGitignore reads <root>/.gitignore. Nested .gitignore files are not consulted.
func (w *walker) loadGitignore() gitignore.IgnoreMatcher {
	path := filepath.Join(w.root, ".gitignore")
	f, err := w.fs.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.skip(path, err)
		}
		return nil
	}
	defer f.Close()
	return gitignore.NewGitIgnoreFromReader(w.root, f)
}

// walkDir visits the entries of dir, which sits at the given depth below the root.
func (w *walker) walkDir(ctx context.Context, dir string, depth int) error {
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		w.skip(dir, err)
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		path := filepath.Join(dir, name)

		if !w.cfg.IncludeHidden && isHidden(name) {
			continue
		}

		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			if !w.cfg.FollowSymlinks {
				continue
			}
			info, err = w.fs.Stat(path)
			if err != nil {
				w.skip(path, err)
				continue
			}
		}

		rel := w.rel(path)
		if ShouldIgnore(rel, w.cfg.IgnorePatterns) {
			continue
		}
		if w.gitignore != nil && w.gitignore.Match(path, info.IsDir()) {
			continue
		}

		if info.IsDir() {
			child := depth + 1
			if w.cfg.MaxDepth != Unlimited && child > w.cfg.MaxDepth {
				continue
			}
			w.stats.AddDir()
			if err := w.walkDir(ctx, path, child); err != nil {
				return err
			}
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}
		if !w.included(rel) || info.Size() > w.cfg.MaxFileSize {
			continue
		}
		w.visitFile(path)
	}
	return nil
}

// visitFile analyzes one file and folds it into the results.
func (w *walker) visitFile(path string) {
	rec, err := w.files.analyze(path)
	if err != nil {
		w.skip(path, err)
		return
	}
	w.add(rec)
}

func (w *walker) add(rec *FileRecord) {
	w.records = append(w.records, rec)
	w.stats.Add(rec)
	w.largest.Offer(rec)
	if w.onProgress != nil {
		w.onProgress(rec.Path, len(w.records))
	}
}

// included reports whether a root-relative path passes the include globs.
func (w *walker) included(rel string) bool {
	if len(w.cfg.IncludePatterns) == 0 {
		return true
	}
	for _, pattern := range w.cfg.IncludePatterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// rel returns path relative to the walk root, slash-separated.
func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (w *walker) skip(path string, err error) {
	if w.onSkip != nil {
		w.onSkip(path, err)
	}
}

// isHidden checks if a file name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}
