// Package capture manages the directory holding per-case captured output.
// The directory is torn down and recreated at the start of every grading run
// so stale captures from a previous run can never leak into a comparison.
package capture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"

	"github.com/distsys-lab/grade-runner/types"
)

// Area is the capture directory for a grading run. File names inside the
// area are partitioned by case base name, so cases never collide.
type Area struct {
	dir string
	log log.Logger
}

// NewArea creates an Area rooted at dir. The directory is not touched until
// Prepare is called.
func NewArea(dir string, logger log.Logger) *Area {
	if logger == nil {
		logger = log.New()
	}
	return &Area{dir: dir, log: logger}
}

// Dir returns the capture directory path.
func (a *Area) Dir() string {
	return a.dir
}

// Prepare deletes the capture directory if present and recreates it empty.
// A deletion failure (typically the directory not existing yet) is ignored.
func (a *Area) Prepare() error {
	if err := os.RemoveAll(a.dir); err != nil {
		a.log.Debug("Ignoring capture directory cleanup failure", "dir", a.dir, "err", err)
	}
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return fmt.Errorf("failed to create capture directory %s: %w", a.dir, err)
	}
	return nil
}

// OutputPath returns the captured-stdout path for a case base name.
func (a *Area) OutputPath(base string) string {
	return filepath.Join(a.dir, base+types.CapturedOutSuffix)
}

// ErrPath returns the captured-stderr path for a case base name.
func (a *Area) ErrPath(base string) string {
	return filepath.Join(a.dir, base+types.CapturedErrSuffix)
}

// CreateCaseFiles creates fresh capture files for a case and returns them
// open for writing. The caller owns closing both files.
func (a *Area) CreateCaseFiles(tc types.TestCase) (stdout, stderr *os.File, err error) {
	stdout, err = os.Create(tc.CapturedOut)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create capture file for %s: %w", tc.Name, err)
	}
	stderr, err = os.Create(tc.CapturedErr)
	if err != nil {
		_ = stdout.Close()
		return nil, nil, fmt.Errorf("failed to create error capture file for %s: %w", tc.Name, err)
	}
	return stdout, stderr, nil
}
