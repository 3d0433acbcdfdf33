package grader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/distsys-lab/grade-runner/exitcodes"
	"github.com/distsys-lab/grade-runner/metrics"
	"github.com/distsys-lab/grade-runner/registry"
	"github.com/distsys-lab/grade-runner/reporting"
	"github.com/distsys-lab/grade-runner/runner"
	"github.com/distsys-lab/grade-runner/types"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
)

// grader implements the cliapp.Lifecycle interface.
var _ cliapp.Lifecycle = &grader{}

// grader drives grading runs over a subject program.
type grader struct {
	ctx      context.Context
	config   *Config
	version  string
	registry *registry.Registry
	runner   runner.GradeRunner
	result   *runner.RunResult

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup

	shutdownCallback func(error) // Callback to signal application shutdown
}

func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*grader, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("Creating grader with config",
		"testDir", config.TestDir,
		"subjectCommand", config.SubjectCommand,
		"resultsFile", config.ResultsFile,
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce)

	reg := registry.NewRegistry(registry.Config{
		Log:     config.Log,
		TestDir: config.TestDir,
	})

	gradeRunner, err := runner.NewGradeRunner(runner.Config{
		TestDir:        config.TestDir,
		BuildCommand:   config.BuildCommand,
		SubjectCommand: config.SubjectCommand,
		ResultsFile:    config.ResultsFile,
		CaptureDir:     config.CaptureDir,
		SettlePause:    config.SettlePause,
		Log:            config.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create grade runner: %w", err)
	}
	config.Log.Info("grader.New: created registry and grade runner")

	return &grader{
		ctx:              ctx,
		config:           config,
		version:          version,
		registry:         reg,
		runner:           gradeRunner,
		done:             make(chan struct{}),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start runs grading immediately, and then periodically at the configured
// interval when one is set.
// Start implements the cliapp.Lifecycle interface.
func (g *grader) Start(ctx context.Context) error {
	// Set up panic recovery to ensure we exit with code 2 for runtime errors
	defer func() {
		if r := recover(); r != nil {
			g.config.Log.Error("Runtime error occurred", "error", r)
			os.Exit(exitcodes.RuntimeErr)
		}
	}()

	g.ctx = ctx
	g.done = make(chan struct{})
	g.running.Store(true)

	if g.config.RunOnce {
		g.config.Log.Info("Starting grade-runner in run-once mode")
	} else {
		g.config.Log.Info("Starting grade-runner in continuous mode", "interval", g.config.RunInterval)
	}

	err := g.runGrading()
	if err != nil {
		g.config.Log.Error("Runtime error while grading", "error", err)
		return NewRuntimeError(err)
	}

	// If in run-once mode, trigger shutdown and return. The exit code does
	// not depend on verdicts; the results file carries them.
	if g.config.RunOnce {
		g.config.Log.Info("Grading completed, exiting (run-once mode)")
		go func() {
			g.shutdownCallback(nil)
		}()
		return nil
	}

	// Start a goroutine for periodic grading
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.config.Log.Debug("Starting periodic grading goroutine", "interval", g.config.RunInterval)

		for {
			select {
			case <-time.After(g.config.RunInterval):
				if !g.running.Load() {
					g.config.Log.Debug("Service stopped, exiting periodic grading")
					return
				}

				g.config.Log.Info("Running periodic grading")
				if err := g.runGrading(); err != nil {
					g.config.Log.Error("Error running periodic grading", "error", err)
				}

			case <-g.done:
				g.config.Log.Debug("Done signal received, stopping periodic grading")
				return

			case <-ctx.Done():
				g.config.Log.Debug("Context canceled, stopping periodic grading")
				g.running.Store(false)
				return
			}
		}
	}()
	g.config.Log.Debug("grade-runner started successfully")
	return nil
}

// runGrading performs one grading pass and processes the results
func (g *grader) runGrading() error {
	g.config.Log.Info("Grading all test cases...")
	result, err := g.runner.Run(g.ctx)
	if err != nil {
		return err
	}
	g.result = result

	g.printResultsTable(result.RunID)
	fmt.Println(g.result.String())
	g.config.Log.Info("Grading run completed", "run_id", result.RunID,
		"correct", result.Stats.Correct, "wrong", result.Stats.Wrong)
	return nil
}

// Stop stops the grade-runner service.
// Stop implements the cliapp.Lifecycle interface.
func (g *grader) Stop(ctx context.Context) error {
	g.config.Log.Info("Stopping grade-runner")

	if !g.running.Load() {
		g.config.Log.Debug("Service already stopped, nothing to do")
		return nil
	}

	g.running.Store(false)
	g.config.Log.Debug("Sending done signal to goroutines")
	close(g.done)

	g.config.Log.Info("grade-runner stopped successfully")
	return nil
}

// Stopped returns true if the grade-runner service is stopped.
// Stopped implements the cliapp.Lifecycle interface.
func (g *grader) Stopped() bool {
	return !g.running.Load()
}

// printResultsTable prints the grading results to the console.
func (g *grader) printResultsTable(runID string) {
	g.config.Log.Info("Printing results...")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	title := fmt.Sprintf("Grading Results: %s (%s)", g.registry.SuiteName(), formatDuration(g.result.Duration))
	if desc := g.registry.Description(); desc != "" {
		title = fmt.Sprintf("%s — %s", title, desc)
	}
	t.SetTitle(title)

	t.AppendHeader(table.Row{
		"Test", "Duration", "Verdict", "Detail",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Test", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Detail", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, cr := range g.result.Cases {
		name := cr.Case.Name
		if note := g.registry.NoteFor(name); note != "" {
			name = fmt.Sprintf("%s (%s)", name, note)
		}

		// For wrong answers, surface the first line the subject wrote to
		// stderr; it is usually the reason the output diverged.
		detail := ""
		if !cr.Passed() {
			detail = reporting.ExtractFailureDetail(cr.Case.CapturedErr)
		}

		t.AppendRow(table.Row{
			name,
			formatDuration(cr.Duration),
			getVerdictString(cr.Verdict),
			detail,
		})
	}

	if g.result.AllCorrect() {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("TOTAL %d", g.result.Stats.Total),
		formatDuration(g.result.Duration),
		fmt.Sprintf("%d correct, %d wrong", g.result.Stats.Correct, g.result.Stats.Wrong),
		"",
	})

	t.Render()

	runStatus := string(types.VerdictCorrect)
	if !g.result.AllCorrect() {
		runStatus = string(types.VerdictWrong)
	}
	metrics.RecordRun(
		runID,
		runStatus,
		g.result.Stats.Total,
		g.result.Stats.Correct,
		g.result.Stats.Wrong,
		g.result.Duration,
	)
}

// WaitForShutdown blocks until all goroutines have terminated.
// This is useful in tests to ensure complete cleanup before moving to the next test.
func (g *grader) WaitForShutdown(ctx context.Context) error {
	g.config.Log.Debug("Waiting for all goroutines to terminate")

	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		g.config.Log.Debug("All goroutines terminated successfully")
		return nil
	case <-ctx.Done():
		g.config.Log.Warn("Timed out waiting for goroutines to terminate", "error", ctx.Err())
		return ctx.Err()
	}
}
