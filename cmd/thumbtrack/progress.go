package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// newExtractionProgress returns a pool progress callback plus a finish hook.
// When stderr is not a terminal both are no-ops so piped output stays clean.
func newExtractionProgress(label string) (func(completed, total int), func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return func(int, int) {}, func() {}
	}

	var bar *progressbar.ProgressBar
	callback := func(completed, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(label),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(completed)
	}
	finish := func() {
		if bar != nil {
			_ = bar.Finish()
		}
	}
	return callback, finish
}
