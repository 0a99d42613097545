package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vischeck/internal/driver"
	"vischeck/internal/pipeline"
	"vischeck/internal/ui"
)

type checkOutcome struct {
	results []driver.UnitResult
	err     error
}

// runCheckWithUI runs driver.Check while a Bubble Tea view follows its
// progress events on stderr.
func runCheckWithUI(ctx context.Context, files []string, opts driver.Options) ([]driver.UnitResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, files, optsCopy)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking privacy", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		for range events {
		}
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
