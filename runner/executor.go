package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/distsys-lab/grade-runner/capture"
	"github.com/distsys-lab/grade-runner/types"
)

var _ CaseExecutor = (*caseExecutor)(nil)

// CaseExecutor runs the subject program for a single test case, with stdin
// bound to the case input file and stdout/stderr redirected into the capture
// area. Execution is synchronous; Execute returns only after the subject
// process has terminated.
type CaseExecutor interface {
	Execute(ctx context.Context, tc types.TestCase) (*types.CaseResult, error)
}

// CmdBuilder constructs the command to run and returns a cleanup function.
// Tests substitute builders to avoid depending on a real subject binary.
type CmdBuilder func(ctx context.Context, name string, arg ...string) (*exec.Cmd, func())

// DefaultCmdBuilder builds commands with exec.CommandContext.
func DefaultCmdBuilder(ctx context.Context, name string, arg ...string) (*exec.Cmd, func()) {
	return exec.CommandContext(ctx, name, arg...), func() {}
}

// caseExecutor implements CaseExecutor.
type caseExecutor struct {
	subjectCommand string
	area           *capture.Area
	cmdBuilder     CmdBuilder
	log            log.Logger
}

// NewCaseExecutor creates an executor for the given subject command.
func NewCaseExecutor(subjectCommand string, area *capture.Area, cmdBuilder CmdBuilder, logger log.Logger) (CaseExecutor, error) {
	if subjectCommand == "" {
		return nil, fmt.Errorf("subjectCommand cannot be empty")
	}
	if area == nil {
		return nil, fmt.Errorf("capture area cannot be nil")
	}
	if cmdBuilder == nil {
		cmdBuilder = DefaultCmdBuilder
	}
	if logger == nil {
		logger = log.New()
	}
	return &caseExecutor{
		subjectCommand: subjectCommand,
		area:           area,
		cmdBuilder:     cmdBuilder,
		log:            logger,
	}, nil
}

// Execute runs the subject once for tc. The subject's exit status is not
// inspected: a crash that leaves empty or partial output is graded by
// comparison like any other output. Only failures to wire up the process
// (unreadable input, uncreatable capture files) are returned as errors.
func (e *caseExecutor) Execute(ctx context.Context, tc types.TestCase) (*types.CaseResult, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	input, err := os.Open(tc.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input for %s: %w", tc.Name, err)
	}
	defer input.Close()

	stdout, stderr, err := e.area.CreateCaseFiles(tc)
	if err != nil {
		return nil, err
	}

	cmd, cleanup := e.cmdBuilder(ctx, e.subjectCommand)
	defer cleanup()
	cmd.Stdin = input
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	startTime := time.Now()
	runErr := cmd.Run()
	duration := time.Since(startTime)

	_ = stdout.Sync()
	_ = stdout.Close()
	_ = stderr.Sync()
	_ = stderr.Close()

	if runErr != nil {
		// Not a grading failure; the captured output decides the verdict.
		e.log.Debug("Subject exited abnormally", "test", tc.Name, "err", runErr)
	}

	return &types.CaseResult{Case: tc, Duration: duration}, nil
}
