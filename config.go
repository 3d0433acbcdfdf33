package grader

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/distsys-lab/grade-runner/flags"
	"github.com/distsys-lab/grade-runner/runner"
	"github.com/ethereum/go-ethereum/log"
)

// Config holds the application configuration
type Config struct {
	TestDir        string        // Directory of <name>.input/<name>.output pairs
	BuildCommand   string        // Build step, run once per grading pass
	SubjectCommand string        // Subject program, run once per case
	ResultsFile    string        // Flat results file, one line per case
	CaptureDir     string        // Capture directory, recreated each pass
	SettlePause    time.Duration // Pause after each graded case
	RunInterval    time.Duration // Interval between grading passes
	RunOnce        bool          // Indicates if the service should exit after one pass
	Log            log.Logger
}

// NewConfig creates a new Config from cli context. testDirArg is the optional
// positional argument; when non-empty it overrides the --testdir flag, which
// keeps the classic `runner [test_directory]` invocation working.
func NewConfig(ctx *cli.Context, log log.Logger, testDirArg string) (*Config, error) {
	testDir := testDirArg
	if testDir == "" {
		testDir = ctx.String(flags.TestDir.Name)
	}
	if testDir == "" {
		return nil, errors.New("test directory is required")
	}

	absTestDir, err := filepath.Abs(testDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for test directory '%s': %w", testDir, err)
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)
	runOnce := runInterval == 0

	return &Config{
		TestDir:        absTestDir,
		BuildCommand:   ctx.String(flags.BuildCmd.Name),
		SubjectCommand: ctx.String(flags.SubjectCmd.Name),
		ResultsFile:    ctx.String(flags.ResultsFile.Name),
		CaptureDir:     ctx.String(flags.CaptureDir.Name),
		SettlePause:    runner.DefaultSettlePause,
		RunInterval:    runInterval,
		RunOnce:        runOnce,
		Log:            log,
	}, nil
}
