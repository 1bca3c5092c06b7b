package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"mosaic-media/domain/agent"
)

// Runner abstracts the control-plane agent endpoints
// This allows mocking the Mosaic client in tests
type Runner interface {
	StartRun(ctx context.Context, agentID string, videoIDs []string, callbackURL string) (string, error)
	GetRun(ctx context.Context, runID string) (agent.Run, error)
}

// ErrNoVideoIDs is returned when a run is started without any videos
var ErrNoVideoIDs = errors.New("at least one video id is required")

// Service handles starting agent runs and watching their progress
type Service struct {
	runner Runner
	output io.Writer
}

// NewService creates a new agent service
func NewService(runner Runner, output io.Writer) *Service {
	if output == nil {
		output = io.Discard
	}
	return &Service{runner: runner, output: output}
}

// Start launches an agent run over the given uploaded videos
func (s *Service) Start(ctx context.Context, agentID string, videoIDs []string, callbackURL string) (string, error) {
	if len(videoIDs) == 0 {
		return "", ErrNoVideoIDs
	}

	runID, err := s.runner.StartRun(ctx, agentID, videoIDs, callbackURL)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(s.output, "Run started: %s\n", runID)
	return runID, nil
}

// Status fetches the current state of a run once
func (s *Service) Status(ctx context.Context, runID string) (agent.Run, error) {
	return s.runner.GetRun(ctx, runID)
}

// Watch polls the run at the given interval until it reaches a terminal
// status or the context is cancelled, printing a summary per poll
func (s *Service) Watch(ctx context.Context, runID string, interval time.Duration) (agent.Run, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		run, err := s.runner.GetRun(ctx, runID)
		if err != nil {
			return agent.Run{}, err
		}

		s.printSummary(run)
		if run.Terminal() {
			return run, nil
		}

		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Service) printSummary(run agent.Run) {
	fmt.Fprintf(s.output, "status %s\n", run.Status)
	if len(run.Outputs) == 0 {
		return
	}
	fmt.Fprintf(s.output, "outputs %d\n", len(run.Outputs))
	for i, out := range run.Outputs {
		fmt.Fprintf(s.output, "  %d. %s\n", i+1, out.VideoURL)
	}
}
