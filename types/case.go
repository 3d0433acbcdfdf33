package types

import (
	"path/filepath"
	"strings"
	"time"
)

// Verdict represents the outcome of comparing a test case's captured output
// against its expected reference.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictWrong   Verdict = "wrong"
)

// File layout suffixes. A test case is a pair of files in the test directory:
// "<name>.input" holds the subject's stdin, "<name>.output" the expected
// reference. The capture directory holds "<name>.output" (captured stdout)
// and "<name>.err" (captured stderr) per case.
const (
	InputSuffix       = ".input"
	ExpectedSuffix    = ".output"
	CapturedOutSuffix = ".output"
	CapturedErrSuffix = ".err"
)

// TestCase identifies a single grading case and the four file paths derived
// from its base name.
type TestCase struct {
	Name         string // base name, input file name with the suffix stripped
	InputPath    string // "<testdir>/<name>.input", bound to the subject's stdin
	ExpectedPath string // "<testdir>/<name>.output", the reference output
	CapturedOut  string // "<capturedir>/<name>.output", the subject's stdout
	CapturedErr  string // "<capturedir>/<name>.err", the subject's stderr
}

// NewTestCase derives a TestCase from an input file name found in testDir.
// inputName must end with InputSuffix; the caller is expected to have
// filtered directory entries already.
func NewTestCase(inputName, testDir, captureDir string) TestCase {
	base := strings.TrimSuffix(inputName, InputSuffix)
	return TestCase{
		Name:         base,
		InputPath:    filepath.Join(testDir, inputName),
		ExpectedPath: filepath.Join(testDir, base+ExpectedSuffix),
		CapturedOut:  filepath.Join(captureDir, base+CapturedOutSuffix),
		CapturedErr:  filepath.Join(captureDir, base+CapturedErrSuffix),
	}
}

// CaseResult captures the outcome of grading a single test case.
type CaseResult struct {
	Case     TestCase
	Verdict  Verdict
	Duration time.Duration // wall-clock time of the subject process
}

// Passed reports whether the case was graded correct.
func (r *CaseResult) Passed() bool {
	return r.Verdict == VerdictCorrect
}

// RunStats tracks aggregate verdict counts for a grading run.
type RunStats struct {
	Total     int
	Correct   int
	Wrong     int
	StartTime time.Time
	EndTime   time.Time
}

// Record folds a single verdict into the stats.
func (s *RunStats) Record(v Verdict) {
	s.Total++
	if v == VerdictCorrect {
		s.Correct++
	} else {
		s.Wrong++
	}
}
