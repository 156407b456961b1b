package main

import (
	"fmt"
	"io"
	"time"

	"cdoc/internal/observ"
	"cdoc/internal/pipeline"
)

// printStageTimings prints per-stage totals summed over all files followed by
// the phase summary of the command.
func printStageTimings(out io.Writer, timings pipeline.Timings, timer *observ.Timer) error {
	if out == nil {
		return nil
	}
	for _, stage := range pipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage))); err != nil {
			return err
		}
	}
	if timer == nil {
		return nil
	}
	_, err := io.WriteString(out, timer.Summary())
	return err
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
