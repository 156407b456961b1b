package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cdoc/internal/driver"
	"cdoc/internal/pipeline"
	"cdoc/internal/source"
	"cdoc/internal/ui"
)

type renderOutcome struct {
	fs      *source.FileSet
	results []driver.RenderResult
	err     error
}

// runRenderWithUI runs the batch in the background and shows its progress.
func runRenderWithUI(ctx context.Context, title string, files []string, opts driver.RenderOptions) (*source.FileSet, []driver.RenderResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan renderOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		fs, results, err := driver.RenderFiles(ctx, files, optsCopy)
		outcomeCh <- renderOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// UI мог выйти раньше (ctrl+c): дочитываем события, чтобы воркеры не заблокировались
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
