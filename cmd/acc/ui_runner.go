package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"ashlang/internal/pipeline"
	"ashlang/internal/ui"
)

// runWithUI runs the pipeline in a worker goroutine while Bubble Tea renders
// its progress events.
func runWithUI(ctx context.Context, title string, req *pipeline.Request) (pipeline.Result, error) {
	if req == nil {
		return pipeline.Result{}, fmt.Errorf("missing run request")
	}
	events := make(chan pipeline.Event, 64)
	var (
		res    pipeline.Result
		runErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	program := tea.NewProgram(ui.NewProgressModel(title, events), tea.WithOutput(os.Stdout), tea.WithContext(gctx))
	g.Go(func() error {
		defer close(events)
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		if req.OnAssembly != nil {
			// печатаем над прогрессом, а не поверх него
			reqCopy.OnAssembly = func(asm string) { program.Println(strings.TrimRight(asm, "\n")) }
		}
		res, runErr = pipeline.Run(gctx, &reqCopy)
		return nil
	})
	g.Go(func() error {
		_, err := program.Run()
		if err != nil {
			// keep the worker from blocking on a full channel
			go func() {
				for range events {
				}
			}()
		}
		return err
	})
	if uiErr := g.Wait(); uiErr != nil {
		if runErr != nil {
			return res, runErr
		}
		return res, uiErr
	}
	return res, runErr
}
