package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rezoom"

// Recorder holds the application's Prometheus collectors. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	splits     *prometheus.CounterVec
	scores     *prometheus.CounterVec
	modelCalls *prometheus.CounterVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		splits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reply_splits_total",
			Help:      "Model replies split into feedback and to-do sections, by matched to-do header.",
		}, []string{"header"}),
		scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reply_scores_total",
			Help:      "Model replies by whether a hidden score was extracted.",
		}, []string{"result"}),
		modelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "Language model calls by operation and outcome.",
		}, []string{"operation", "status"}),
	}

	if reg != nil {
		reg.MustRegister(r.splits, r.scores, r.modelCalls)
	}

	return r
}

func (r *Recorder) ObserveSplit(header string, scored bool) {
	if r == nil {
		return
	}
	r.splits.WithLabelValues(header).Inc()

	result := "missing"
	if scored {
		result = "found"
	}
	r.scores.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveModelCall(operation, status string) {
	if r == nil {
		return
	}
	r.modelCalls.WithLabelValues(operation, status).Inc()
}
