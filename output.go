package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// destination says where the rendered report goes.
type destination struct {
	File      string // save to this path when set
	Clipboard bool
}

// deliver writes text to the configured destination, falling back to out.
// A failed clipboard write prints to out instead.
func deliver(out io.Writer, text string, dest destination) error {
	switch {
	case dest.File != "":
		if dir := filepath.Dir(dest.File); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return serr.Wrap(err, "failed to create directory "+dir)
			}
		}
		if err := os.WriteFile(dest.File, []byte(text), 0644); err != nil {
			return serr.Wrap(err, "error writing to file "+dest.File)
		}
		logger.Info("Report saved", "file", dest.File)
	case dest.Clipboard:
		if err := clipboard.WriteAll(text); err != nil {
			logger.LogErr(err, "error writing to clipboard")
			fmt.Fprintln(out, text)
			return nil
		}
		logger.Info("Report copied to clipboard")
	default:
		fmt.Fprint(out, text)
	}
	return nil
}
