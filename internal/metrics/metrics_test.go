package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/smart-guard/internal/domain/alarm"
)

// TestRecorder_Counts verifies each event lands in its own collector.
func TestRecorder_Counts(t *testing.T) {
	t.Parallel()

	r := New()

	r.Transition(alarm.StateArmed, alarm.StateTriggered)
	r.Transition(alarm.StateArmed, alarm.StateTriggered)
	r.Trigger()
	r.PasswordFailure()
	r.PasswordFailure()
	r.Lockout()
	r.Disarm()

	require.InDelta(t, 2, testutil.ToFloat64(r.transitions.WithLabelValues("armed", "triggered")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(r.triggers), 0)
	require.InDelta(t, 2, testutil.ToFloat64(r.passwordFailures), 0)
	require.InDelta(t, 1, testutil.ToFloat64(r.lockouts), 0)
	require.InDelta(t, 1, testutil.ToFloat64(r.disarms), 0)
	require.InDelta(t, 1, testutil.ToFloat64(r.state.WithLabelValues("triggered")), 0)
	require.InDelta(t, 0, testutil.ToFloat64(r.state.WithLabelValues("armed")), 0)
}

// TestRecorder_Gather checks the exposition names.
func TestRecorder_Gather(t *testing.T) {
	t.Parallel()

	r := New()
	r.Disarm()

	expected := `
# HELP smart_guard_disarms_total Total number of successful disarms
# TYPE smart_guard_disarms_total counter
smart_guard_disarms_total 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "smart_guard_disarms_total"))

	count, err := testutil.GatherAndCount(r.Registry(), "smart_guard_state")
	require.NoError(t, err)
	require.Equal(t, len(alarm.States()), count)
}

// TestRecorder_WriteTextfile verifies the textfile is written.
func TestRecorder_WriteTextfile(t *testing.T) {
	t.Parallel()

	r := New()
	r.Lockout()

	path := filepath.Join(t.TempDir(), "smart_guard.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "smart_guard_lockouts_total 1")

	require.Error(t, r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")))
}

// TestRecorder_Nil ensures a nil recorder is usable.
func TestRecorder_Nil(t *testing.T) {
	t.Parallel()

	var r *Recorder

	r.Transition(alarm.StateArmed, alarm.StateTriggered)
	r.Trigger()
	r.PasswordFailure()
	r.Lockout()
	r.Disarm()
	require.Nil(t, r.Registry())
	require.NoError(t, r.WriteTextfile("ignored"))
}
