package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/user/sequencestitch/pkg/pipeline"
)

// progressSteps is the bar resolution.
const progressSteps = 1000

// newProgressBar returns a progress callback drawing on stderr, and a
// function that ends the bar. Nothing is drawn unless stderr is a terminal.
func newProgressBar(description string, quiet bool) (pipeline.ProgressFunc, func()) {
	fd := os.Stderr.Fd()
	if quiet || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return nil, func() {}
	}

	bar := progressbar.NewOptions(progressSteps,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)

	report := func(fraction float64) {
		_ = bar.Set(int(fraction * progressSteps))
	}
	finish := func() {
		_ = bar.Finish()
	}
	return report, finish
}
