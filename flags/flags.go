package flags

import (
	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
	opmetrics "github.com/ethereum-optimism/optimism/op-service/metrics"
	oprpc "github.com/ethereum-optimism/optimism/op-service/rpc"
)

const EnvVarPrefix = "GRADE_RUNNER"

// Defaults match the fixed names the bare `runner` invocation uses, so
// running with no flags behaves exactly like the classic grading script.
var (
	TestDir = &cli.StringFlag{
		Name:    "testdir",
		Value:   "grading_tests",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "TESTDIR"),
		Usage:   "Directory holding <name>.input/<name>.output test case pairs. A positional argument takes precedence.",
	}
	BuildCmd = &cli.StringFlag{
		Name:    "build-cmd",
		Value:   "./build",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "BUILD_CMD"),
		Usage:   "Build command invoked once before grading; its exit status is ignored",
	}
	SubjectCmd = &cli.StringFlag{
		Name:    "subject-cmd",
		Value:   "./master",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "SUBJECT_CMD"),
		Usage:   "Subject program invoked once per test case with stdin bound to the case input",
	}
	ResultsFile = &cli.StringFlag{
		Name:    "results-file",
		Value:   "results_1",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "RESULTS_FILE"),
		Usage:   "File receiving one '<name> <verdict>' line per test case",
	}
	CaptureDir = &cli.StringFlag{
		Name:    "capture-dir",
		Value:   "test_output",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "CAPTURE_DIR"),
		Usage:   "Directory recreated each run to hold captured stdout/stderr per case",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "RUN_INTERVAL"),
		Usage:   "Interval between grading runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
)

var optionalFlags = []cli.Flag{
	TestDir,
	BuildCmd,
	SubjectCmd,
	ResultsFile,
	CaptureDir,
	RunInterval,
}

var Flags []cli.Flag

func init() {
	optionalFlags = append(optionalFlags, oprpc.CLIFlags(EnvVarPrefix)...)
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)
	optionalFlags = append(optionalFlags, opmetrics.CLIFlags(EnvVarPrefix)...)

	Flags = optionalFlags
}
