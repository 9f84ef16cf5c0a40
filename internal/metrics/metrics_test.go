package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.StateExplored()
	r.StateExplored()
	r.TransitionAdded()
	r.CubeAdded(2)
	r.CubeAdded(2)
	r.CubeAdded(3)
	r.CandidateRejected(3, ReasonDuplicate)
	r.BuildFinished(nil, time.Millisecond)
	r.BuildFinished(errors.New("boom"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.states))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.edges))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cubes.WithLabelValues("2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cubes.WithLabelValues("3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejected.WithLabelValues("3", ReasonDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.builds.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.builds.WithLabelValues("error")))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.StateExplored()
		r.TransitionAdded()
		r.CubeAdded(2)
		r.CandidateRejected(2, ReasonIdentity)
		r.BuildFinished(nil, 0)
	})
}

func TestSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
