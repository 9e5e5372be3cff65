package main

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// progressSteps is the resolution of the fetch progress bar.
const progressSteps = 1000

// progressReporter renders provider fetch progress as a bar on a terminal stream.
type progressReporter struct {
	bar *progressbar.ProgressBar
}

func newProgressReporter(w io.Writer) *progressReporter {
	bar := progressbar.NewOptions(progressSteps,
		progressbar.OptionSetWriter(w),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowDescriptionAtLineEnd(),
	)

	return &progressReporter{bar: bar}
}

// OnProgress matches provider.OnFetchProgress.
func (p *progressReporter) OnProgress(current float64, total float64, message string) {
	p.bar.Describe(message)

	if total <= 0 {
		return
	}

	step := int(current / total * progressSteps)
	step = max(0, min(step, progressSteps))

	_ = p.bar.Set(step)
}

func (p *progressReporter) Finish() {
	_ = p.bar.Finish()
}
