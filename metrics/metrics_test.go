package metrics

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/distsys-lab/grade-runner/types"
)

func TestErrToLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "nil error",
			err:  nil,
		},
		{
			name: "simple error",
			err:  errors.New("test error"),
		},
		{
			name: "error with special chars",
			err:  errors.New("test@error#123"),
		},
		{
			name: "error with multiple spaces",
			err:  errors.New("test   error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := errToLabel(tt.err)
			validLabelRegex := regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)
			if !validLabelRegex.MatchString(result) {
				t.Errorf("errToLabel() = %v, is not a valid Prometheus label", result)
			}
		})
	}
}

func TestRecordError(t *testing.T) {
	// just test that it doesn't panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("RecordError panic'd")
		}
	}()

	RecordError("test_error")
}

func TestRecordErrorDetails(t *testing.T) {
	RecordErrorDetails("test", nil)
	RecordErrorDetails("test", errors.New("sample error"))
}

func TestRecordVerdict(t *testing.T) {
	RecordVerdict("run1", "t1", types.VerdictCorrect)
	RecordVerdict("run1", "t2", types.VerdictWrong)
	// Invalid verdicts are logged and dropped, not recorded
	RecordVerdict("run1", "t3", types.Verdict("crashed"))
}

func TestRecordRun(t *testing.T) {
	RecordRun("run1", "correct", 2, 2, 0, time.Second)
	RecordRun("run2", "wrong", 2, 1, 1, time.Second)
}
