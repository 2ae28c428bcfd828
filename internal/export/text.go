package export

import (
	"github.com/rohanthewiz/serr"
	"github.com/spf13/afero"

	"github.com/jadenpxrk/tally/internal/analyzer"
	"github.com/jadenpxrk/tally/internal/report"
)

// Text writes the plain-text report.
type Text struct {
	Fs       afero.Fs
	Detailed bool
}

func (e *Text) Extension() string { return "txt" }

func (e *Text) Export(res *analyzer.Result, path string) error {
	f, err := create(fsOrOS(e.Fs), path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(report.Text(res, e.Detailed)); err != nil {
		return serr.Wrap(err, "failed to write text export")
	}
	return f.Close()
}
