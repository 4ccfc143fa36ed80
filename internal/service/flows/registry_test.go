package flows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionBooking/internal/workflow"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newFlow(id string, clientID, hostID int64) *workflow.Workflow {
	return workflow.New(id, workflow.Snapshot{ClientID: clientID, HostID: hostID}, workflow.Dependencies{
		Clock:  &fakeClock{now: t0},
		Logger: nopLogger{},
	})
}

func TestRegistry_GetChecksOwner(t *testing.T) {
	r := NewRegistry(time.Hour, &fakeClock{now: t0}, nopLogger{})
	r.Register(newFlow("a", 9, 3))

	w, err := r.Get("a", 9)
	require.NoError(t, err)
	assert.Equal(t, "a", w.ID())

	_, err = r.Get("a", 10)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = r.Get("missing", 9)
	assert.ErrorIs(t, err, ErrFlowNotFound)
}

func TestRegistry_ReopenReplacesPreviousFlow(t *testing.T) {
	r := NewRegistry(time.Hour, &fakeClock{now: t0}, nopLogger{})
	first := newFlow("a", 9, 3)
	r.Register(first)

	r.Register(newFlow("b", 9, 3))

	assert.Equal(t, workflow.StateClosed, first.State())
	_, err := r.Get("a", 9)
	assert.ErrorIs(t, err, ErrFlowNotFound)
	assert.Equal(t, 1, r.Len())

	// другой хост - отдельный процесс
	r.Register(newFlow("c", 9, 4))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_RegisterSameFlowTwice(t *testing.T) {
	r := NewRegistry(time.Hour, &fakeClock{now: t0}, nopLogger{})
	w := newFlow("a", 9, 3)

	r.Register(w)
	r.Register(w)

	assert.Equal(t, workflow.StateHostIntro, w.State())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Close(t *testing.T) {
	r := NewRegistry(time.Hour, &fakeClock{now: t0}, nopLogger{})
	w := newFlow("a", 9, 3)
	r.Register(w)

	assert.ErrorIs(t, r.Close("a", 10), ErrAccessDenied)
	require.NoError(t, r.Close("a", 9))

	assert.Equal(t, workflow.StateClosed, w.State())
	assert.Zero(t, r.Len())
	assert.ErrorIs(t, r.Close("a", 9), ErrFlowNotFound)
}

func TestRegistry_Sweep(t *testing.T) {
	clock := &fakeClock{now: t0}
	r := NewRegistry(30*time.Minute, clock, nopLogger{})
	w := newFlow("a", 9, 3)
	r.Register(w)

	clock.now = t0.Add(10 * time.Minute)
	assert.Zero(t, r.Sweep())

	clock.now = t0.Add(31 * time.Minute)
	assert.Equal(t, 1, r.Sweep())

	assert.Equal(t, workflow.StateClosed, w.State())
	assert.Zero(t, r.Len())
}

func TestRegistry_SweepDisabled(t *testing.T) {
	clock := &fakeClock{now: t0}
	r := NewRegistry(0, clock, nopLogger{})
	r.Register(newFlow("a", 9, 3))

	clock.now = t0.Add(24 * time.Hour)
	assert.Zero(t, r.Sweep())
	assert.Equal(t, 1, r.Len())
}
