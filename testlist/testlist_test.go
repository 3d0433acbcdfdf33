package testlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestFindTestCases(t *testing.T) {
	testDir := t.TempDir()
	captureDir := filepath.Join(t.TempDir(), "test_output")

	writeFile(t, testDir, "b.input", "2\n")
	writeFile(t, testDir, "b.output", "4\n")
	writeFile(t, testDir, "a.input", "1\n")
	writeFile(t, testDir, "a.output", "1\n")
	writeFile(t, testDir, "c.input", "3\n")
	writeFile(t, testDir, "c.output", "9\n")
	// Entries that must not become test cases.
	writeFile(t, testDir, "notes.txt", "ignore me")
	writeFile(t, testDir, "input", "no suffix match")
	require.NoError(t, os.Mkdir(filepath.Join(testDir, "sub.input"), 0755))

	cases, err := FindTestCases(testDir, captureDir)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, Names(cases),
		"cases should be sorted lexicographically and filtered to .input regular files")

	a := cases[0]
	assert.Equal(t, filepath.Join(testDir, "a.input"), a.InputPath)
	assert.Equal(t, filepath.Join(testDir, "a.output"), a.ExpectedPath)
	assert.Equal(t, filepath.Join(captureDir, "a.output"), a.CapturedOut)
	assert.Equal(t, filepath.Join(captureDir, "a.err"), a.CapturedErr)
}

func TestFindTestCasesEmptyDirectory(t *testing.T) {
	cases, err := FindTestCases(t.TempDir(), "test_output")
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestFindTestCasesMissingDirectory(t *testing.T) {
	_, err := FindTestCases(filepath.Join(t.TempDir(), "does-not-exist"), "test_output")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read test directory")
}

func TestFindTestCasesSortOrderIsLexicographic(t *testing.T) {
	testDir := t.TempDir()
	// "t10" sorts before "t2" lexicographically; discovery must not try to
	// be clever about numeric ordering.
	writeFile(t, testDir, "t2.input", "")
	writeFile(t, testDir, "t10.input", "")
	writeFile(t, testDir, "t1.input", "")

	cases, err := FindTestCases(testDir, "test_output")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t10", "t2"}, Names(cases))
}
