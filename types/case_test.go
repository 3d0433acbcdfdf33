package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTestCase(t *testing.T) {
	tc := NewTestCase("t1.input", "grading_tests", "test_output")

	assert.Equal(t, "t1", tc.Name)
	assert.Equal(t, filepath.Join("grading_tests", "t1.input"), tc.InputPath)
	assert.Equal(t, filepath.Join("grading_tests", "t1.output"), tc.ExpectedPath)
	assert.Equal(t, filepath.Join("test_output", "t1.output"), tc.CapturedOut)
	assert.Equal(t, filepath.Join("test_output", "t1.err"), tc.CapturedErr)
}

func TestNewTestCaseDottedName(t *testing.T) {
	// Only the trailing suffix is stripped; dots inside the name survive.
	tc := NewTestCase("clock.v2.input", "tests", "out")
	assert.Equal(t, "clock.v2", tc.Name)
	assert.Equal(t, filepath.Join("tests", "clock.v2.output"), tc.ExpectedPath)
}

func TestRunStatsRecord(t *testing.T) {
	var s RunStats
	s.Record(VerdictCorrect)
	s.Record(VerdictWrong)
	s.Record(VerdictCorrect)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Correct)
	assert.Equal(t, 1, s.Wrong)
}

func TestCaseResultPassed(t *testing.T) {
	assert.True(t, (&CaseResult{Verdict: VerdictCorrect}).Passed())
	assert.False(t, (&CaseResult{Verdict: VerdictWrong}).Passed())
}
