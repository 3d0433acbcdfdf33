// Package exitcodes defines the standard exit codes used by the runner.
package exitcodes

// Exit code constants used by the runner.
//
// Verdicts never influence the exit code: a run full of wrong answers still
// exits 0, because the results file is the output that matters.
//
// * Success (0): the grading run completed
// * RuntimeErr (2): a fatal error aborted the run (missing test directory,
//   unreadable expected or captured output, panics)
const (
	Success    = 0
	RuntimeErr = 2
)
