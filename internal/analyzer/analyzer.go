// Package analyzer walks a directory tree and aggregates per-file line
// statistics by category.
package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/afero"
)

// Analyzer runs analyses with a fixed configuration and type registry.
type Analyzer struct {
	cfg      Config
	registry *Registry
	fs       afero.Fs
	tokens   TokenCounter
	onSkip   func(path string, err error)
	progress func(Progress)
	now      func() time.Time
}

// Progress describes an analysis in flight. It is passed to the progress
// handler after each file is added to the result.
type Progress struct {
	Processed int    // files analyzed so far
	Current   string // path of the file just analyzed
	Started   time.Time
	Elapsed   time.Duration
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithFs sets the filesystem to analyze. The default is the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(a *Analyzer) { a.fs = fsys }
}

// WithTokenCounter enables token counting for text files.
func WithTokenCounter(tc TokenCounter) Option {
	return func(a *Analyzer) { a.tokens = tc }
}

// WithSkipHandler registers fn to be called for every entry skipped because
// of an error. It does not change the result.
func WithSkipHandler(fn func(path string, err error)) Option {
	return func(a *Analyzer) { a.onSkip = fn }
}

// WithProgress registers fn to be called once per analyzed file. It does not
// change the result.
func WithProgress(fn func(Progress)) Option {
	return func(a *Analyzer) { a.progress = fn }
}

// WithClock overrides the time source used for timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// New validates cfg and returns an Analyzer. A nil registry uses NewRegistry().
func New(cfg Config, registry *Registry, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, serr.Wrap(err, "invalid analysis config")
	}
	if registry == nil {
		registry = NewRegistry()
	}
	a := &Analyzer{
		cfg:      cfg,
		registry: registry,
		fs:       afero.NewOsFs(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Config returns the configuration the analyzer was built with.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze walks root and returns the aggregated result. A missing root yields
// a *PathNotFoundError; any other failure to stat the root is returned
// wrapped. A root that is a regular file is analyzed on its own. Errors on
// individual entries are absorbed, and the walk otherwise only fails when
// ctx is cancelled.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*Result, error) {
	start := a.now()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, serr.Wrap(err, "cannot resolve root "+root)
	}
	info, err := a.fs.Stat(absRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &PathNotFoundError{Path: absRoot, Err: err}
		}
		return nil, serr.Wrap(err, "cannot access root "+absRoot)
	}

	files := NewFileAnalyzer(a.fs, a.registry, a.cfg, a.tokens)
	w := newWalker(a.fs, a.cfg, absRoot, files, a.onSkip)
	if a.progress != nil {
		w.onProgress = func(path string, processed int) {
			now := a.now()
			a.progress(Progress{Processed: processed, Current: path, Started: start, Elapsed: now.Sub(start)})
		}
	}

	if info.IsDir() {
		if err := w.walkDir(ctx, absRoot, 0); err != nil {
			return nil, err
		}
	} else {
		w.visitFile(absRoot)
	}

	end := a.now()
	return &Result{
		ProjectPath:  absRoot,
		AnalyzedAt:   end,
		Duration:     end.Sub(start),
		Stats:        w.stats,
		Files:        w.records,
		LargestFiles: w.largest.Records(),
	}, nil
}
