package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"genai-space-backend/internal/cache"
	"genai-space-backend/internal/models"
)

const (
	genAISpace = "genai_space"

	submissionStatusCount = "submission_status_count"
	tokenRejectionsTotal  = "token_rejections_total"
	storeWriteErrorsTotal = "store_write_errors_total"
	uploadsTotal          = "uploads_total"

	// Labels
	statusLabel = "status"
	opLabel     = "op"
	targetLabel = "target"
	stateLabel  = "state"
)

var submissionStatusCountMetric = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: genAISpace,
		Name:      submissionStatusCount,
		Help:      "number of submissions in each status",
	},
	[]string{statusLabel},
)

var tokenRejectionsTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: genAISpace,
		Name:      tokenRejectionsTotal,
		Help:      "number of submissions rejected for insufficient tokens",
	},
)

var storeWriteErrorsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: genAISpace,
		Name:      storeWriteErrorsTotal,
		Help:      "number of document store writes rejected, by operation",
	},
	[]string{opLabel},
)

var uploadsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: genAISpace,
		Name:      uploadsTotal,
		Help:      "number of blob uploads by target and outcome",
	},
	[]string{targetLabel, stateLabel},
)

func UpdateSubmissionStatusMetric(status models.Status, count int) {
	submissionStatusCountMetric.With(prometheus.Labels{statusLabel: string(status)}).Set(float64(count))
}

func IncreaseTokenRejectionsMetric() {
	tokenRejectionsTotalMetric.Inc()
}

func IncreaseStoreWriteErrorsMetric(op string) {
	storeWriteErrorsTotalMetric.With(prometheus.Labels{opLabel: op}).Inc()
}

// IncreaseUploadsMetric counts an upload; target is "draft" or "result" and
// state is "success" or "failed".
func IncreaseUploadsMetric(target, state string) {
	uploadsTotalMetric.With(prometheus.Labels{targetLabel: target, stateLabel: state}).Inc()
}

// SubmissionListener keeps the status gauges in line with the cache. It is
// registered with cache.Cache.Listen.
func SubmissionListener(snapshot []models.Submission, _ cache.Diff) {
	counts := map[models.Status]int{
		models.StatusPending:    0,
		models.StatusInProgress: 0,
		models.StatusCompleted:  0,
		models.StatusFailed:     0,
	}
	for _, s := range snapshot {
		counts[s.Status]++
	}
	for status, n := range counts {
		UpdateSubmissionStatusMetric(status, n)
	}
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(submissionStatusCountMetric)
	prometheus.MustRegister(tokenRejectionsTotalMetric)
	prometheus.MustRegister(storeWriteErrorsTotalMetric)
	prometheus.MustRegister(uploadsTotalMetric)
}
