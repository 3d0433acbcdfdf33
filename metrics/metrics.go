package metrics

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/distsys-lab/grade-runner/types"
)

const (
	MetricsNamespace = "grader"
)

var (
	Debug                bool = true
	validVerdicts             = []types.Verdict{types.VerdictCorrect, types.VerdictWrong}
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	verdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "verdicts_total",
		Help:      "Count of graded test case verdicts",
	}, []string{
		"run_id",
		"test",
		"verdict",
	})

	runResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_results",
		Help:      "Result of grading runs",
	}, []string{
		"run_id",
		"result",
	})

	runCasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "run_cases_total",
		Help:      "Total number of graded cases",
	}, []string{
		"run_id",
	})

	runCasesCorrect = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "run_cases_correct",
		Help:      "Number of correct cases",
	}, []string{
		"run_id",
	})

	runCasesWrong = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "run_cases_wrong",
		Help:      "Number of wrong cases",
	}, []string{
		"run_id",
	})

	runDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration",
		Help:      "Duration of grading runs",
	}, []string{
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

func RecordVerdict(runID string, testName string, verdict types.Verdict) {
	if !isValidVerdict(verdict) {
		log.Error("RecordVerdict - invalid verdict", "verdict", verdict)
		return
	}
	if Debug {
		log.Debug("metric inc",
			"m", "verdicts_total",
			"run_id", runID,
			"test", testName,
			"verdict", verdict)
	}
	verdictsTotal.WithLabelValues(runID, testName, string(verdict)).Inc()
}

func RecordRun(
	runID string,
	result string,
	total int,
	correct int,
	wrong int,
	duration time.Duration,
) {
	runResults.WithLabelValues(runID, result).Set(1)
	runCasesTotal.WithLabelValues(runID).Add(float64(total))
	runCasesCorrect.WithLabelValues(runID).Add(float64(correct))
	runCasesWrong.WithLabelValues(runID).Add(float64(wrong))
	runDuration.WithLabelValues(runID).Set(duration.Seconds())
}

func isValidVerdict(verdict types.Verdict) bool {
	return slices.Contains(validVerdicts, verdict)
}
