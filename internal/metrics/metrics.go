// Package metrics exposes Prometheus counters for HDA construction.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons for candidate cubes.
const (
	ReasonIdentity  = "identity"
	ReasonDuplicate = "duplicate"
)

// Recorder collects construction metrics. A nil *Recorder records nothing.
type Recorder struct {
	states   prometheus.Counter
	edges    prometheus.Counter
	cubes    *prometheus.CounterVec
	rejected *prometheus.CounterVec
	builds   *prometheus.CounterVec
	duration prometheus.Histogram
}

// New registers the construction metrics on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		states: f.NewCounter(prometheus.CounterOpts{
			Name: "pg2hda_states_explored_total",
			Help: "Global states dequeued by the explorer",
		}),
		edges: f.NewCounter(prometheus.CounterOpts{
			Name: "pg2hda_transitions_total",
			Help: "Degree-1 cubes created for enabled transitions",
		}),
		cubes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pg2hda_cubes_added_total",
			Help: "Cubes inserted into the complex by degree",
		}, []string{"degree"}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pg2hda_candidates_rejected_total",
			Help: "Candidate cubes discarded by degree and reason",
		}, []string{"degree", "reason"}),
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pg2hda_builds_total",
			Help: "Completed constructions by result",
		}, []string{"result"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pg2hda_build_duration_seconds",
			Help:    "Wall time of a complete construction",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

// StateExplored counts a dequeued state.
func (r *Recorder) StateExplored() {
	if r == nil {
		return
	}
	r.states.Inc()
}

// TransitionAdded counts a new edge.
func (r *Recorder) TransitionAdded() {
	if r == nil {
		return
	}
	r.edges.Inc()
}

// CubeAdded counts an inserted cube.
func (r *Recorder) CubeAdded(degree int) {
	if r == nil {
		return
	}
	r.cubes.WithLabelValues(strconv.Itoa(degree)).Inc()
}

// CandidateRejected counts a discarded candidate cube.
func (r *Recorder) CandidateRejected(degree int, reason string) {
	if r == nil {
		return
	}
	r.rejected.WithLabelValues(strconv.Itoa(degree), reason).Inc()
}

// BuildFinished records the outcome and wall time of a construction.
func (r *Recorder) BuildFinished(err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.builds.WithLabelValues(result).Inc()
	r.duration.Observe(elapsed.Seconds())
}
