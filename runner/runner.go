package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/distsys-lab/grade-runner/capture"
	"github.com/distsys-lab/grade-runner/metrics"
	"github.com/distsys-lab/grade-runner/reporting"
	"github.com/distsys-lab/grade-runner/testlist"
	"github.com/distsys-lab/grade-runner/types"
)

// DefaultSettlePause is the unconditional delay after each graded case,
// giving the subject's resources (sockets, child processes) time to settle
// before the next invocation.
const DefaultSettlePause = 2 * time.Second

// RunResult captures the complete results of one grading run.
type RunResult struct {
	Cases    []*types.CaseResult // in discovery (lexicographic) order
	Stats    types.RunStats
	Duration time.Duration
	RunID    string
}

// AllCorrect reports whether every graded case was correct.
func (r *RunResult) AllCorrect() bool {
	return r.Stats.Wrong == 0
}

// String returns a one-line summary of the run.
func (r *RunResult) String() string {
	return fmt.Sprintf("Graded %d case(s): %d correct, %d wrong (run %s, %.1fs)",
		r.Stats.Total, r.Stats.Correct, r.Stats.Wrong, r.RunID, r.Duration.Seconds())
}

// GradeRunner defines the interface for running a grading pass.
type GradeRunner interface {
	Run(ctx context.Context) (*RunResult, error)
}

// runner struct implements GradeRunner.
type runner struct {
	testDir        string
	buildCommand   string
	resultsFile    string
	settlePause    time.Duration
	area           *capture.Area
	executor       CaseExecutor
	cmdBuilder     CmdBuilder
	log            log.Logger
	tracer         trace.Tracer
}

// Config holds configuration for creating a new runner.
type Config struct {
	TestDir        string
	BuildCommand   string // invoked once before grading; exit status ignored
	SubjectCommand string // invoked once per case with redirected stdio
	ResultsFile    string
	CaptureDir     string
	SettlePause    time.Duration // 0 means no pause between cases
	CmdBuilder     CmdBuilder    // nil means exec.CommandContext
	Log            log.Logger
}

// NewGradeRunner creates a new grading runner instance.
func NewGradeRunner(cfg Config) (GradeRunner, error) {
	if cfg.TestDir == "" {
		return nil, fmt.Errorf("test directory is required")
	}
	if cfg.BuildCommand == "" {
		return nil, fmt.Errorf("build command is required")
	}
	if cfg.SubjectCommand == "" {
		return nil, fmt.Errorf("subject command is required")
	}
	if cfg.ResultsFile == "" {
		return nil, fmt.Errorf("results file is required")
	}
	if cfg.CaptureDir == "" {
		return nil, fmt.Errorf("capture directory is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
	}
	if cfg.CmdBuilder == nil {
		cfg.CmdBuilder = DefaultCmdBuilder
	}

	area := capture.NewArea(cfg.CaptureDir, cfg.Log)
	executor, err := NewCaseExecutor(cfg.SubjectCommand, area, cfg.CmdBuilder, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create case executor: %w", err)
	}

	return &runner{
		testDir:        cfg.TestDir,
		buildCommand:   cfg.BuildCommand,
		resultsFile:    cfg.ResultsFile,
		settlePause:    cfg.SettlePause,
		area:           area,
		executor:       executor,
		cmdBuilder:     cfg.CmdBuilder,
		log:            cfg.Log,
		tracer:         otel.Tracer("grade-runner"),
	}, nil
}

// Run performs one grading pass: build, prepare the capture area, discover
// cases, then execute, compare and record each case in order. A file-read
// error during comparison aborts the pass immediately; cases recorded before
// the abort stay in the results file.
func (r *runner) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.New().String()
	ctx, span := r.tracer.Start(ctx, "grading run")
	defer span.End()

	result := &RunResult{RunID: runID}
	result.Stats.StartTime = time.Now()

	r.runBuild(ctx)

	if err := r.area.Prepare(); err != nil {
		return nil, err
	}

	cases, err := testlist.FindTestCases(r.testDir, r.area.Dir())
	if err != nil {
		return nil, err
	}

	names := testlist.Names(cases)
	r.log.Info("Discovered test cases", "dir", r.testDir, "count", len(cases))
	fmt.Println(names)

	sink, err := reporting.CreateResultsFile(r.resultsFile)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil {
			r.log.Error("Failed to close results file", "path", r.resultsFile, "err", closeErr)
		}
	}()

	for _, tc := range cases {
		caseResult, err := r.gradeCase(ctx, tc, runID, sink)
		if err != nil {
			return nil, err
		}
		result.Cases = append(result.Cases, caseResult)
		result.Stats.Record(caseResult.Verdict)

		time.Sleep(r.settlePause)
	}

	result.Stats.EndTime = time.Now()
	result.Duration = result.Stats.EndTime.Sub(result.Stats.StartTime)
	return result, nil
}

// runBuild invokes the build command once, inheriting the runner's stdio.
// Its exit status is deliberately not acted upon; a broken build surfaces as
// wrong verdicts when the stale or absent subject runs.
func (r *runner) runBuild(ctx context.Context) {
	r.log.Info("Running build step", "cmd", r.buildCommand)
	cmd, cleanup := r.cmdBuilder(ctx, r.buildCommand)
	defer cleanup()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		r.log.Warn("Build step failed, continuing", "cmd", r.buildCommand, "err", err)
	}
}

func (r *runner) gradeCase(ctx context.Context, tc types.TestCase, runID string, sink *reporting.ResultsFile) (*types.CaseResult, error) {
	_, span := r.tracer.Start(ctx, fmt.Sprintf("case %s", tc.Name))
	defer span.End()

	fmt.Printf("%s ", tc.Name)

	caseResult, err := r.executor.Execute(ctx, tc)
	if err != nil {
		return nil, err
	}

	verdict, err := CompareCase(tc)
	if err != nil {
		return nil, err
	}
	caseResult.Verdict = verdict

	if err := sink.Record(tc.Name, verdict); err != nil {
		return nil, err
	}
	fmt.Println(verdict)
	metrics.RecordVerdict(runID, tc.Name, verdict)
	r.log.Debug("Graded case", "test", tc.Name, "verdict", verdict, "duration", caseResult.Duration)

	return caseResult, nil
}
