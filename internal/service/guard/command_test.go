package guard

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/smart-guard/internal/logger"
)

// quietRecorder counts Quiet calls.
type quietRecorder struct {
	calls int
}

func (q *quietRecorder) Quiet() {
	q.calls++
}

// TestHalt_WaitsForStop verifies the halt path quiets outputs and blocks until the context ends.
func TestHalt_WaitsForStop(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		outputs := new(quietRecorder)
		done := make(chan error, 1)

		go func() {
			done <- halt(ctx, outputs, errBusFault)
		}()

		time.Sleep(time.Hour)
		synctest.Wait()

		select {
		case <-done:
			require.Fail(t, "halt returned before stop")
		default:
		}

		require.Equal(t, 1, outputs.calls)

		cancel()

		err := <-done
		require.ErrorIs(t, err, ErrHalted)
		require.ErrorIs(t, err, errBusFault)
	})
}

// TestHalt_KeepsHaltedCause ensures an ErrHalted cause is not wrapped twice.
func TestHalt_KeepsHaltedCause(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cause := &haltedError{}
	err := halt(ctx, nil, cause)
	require.Same(t, cause, err)
}

// haltedError is a fault that already carries ErrHalted.
type haltedError struct{}

func (*haltedError) Error() string {
	return "halted: bus gone"
}

func (*haltedError) Unwrap() error {
	return ErrHalted
}

// TestFindInstance checks the process scan skips the caller.
func TestFindInstance(t *testing.T) {
	t.Parallel()

	_, found, err := findInstance("smart-guard-no-such-process", os.Getpid())
	require.NoError(t, err)
	require.False(t, found)

	executable, err := os.Executable()
	require.NoError(t, err)

	name := filepath.Base(executable)
	if len(name) > 15 {
		t.Skip("process names are truncated by the kernel")
	}

	pid, found, err := findInstance(name, -1)
	require.NoError(t, err)
	require.True(t, found)
	require.Positive(t, pid)
}

// TestSimulate_Transcript runs a full alert and disarm on the simulated board.
func TestSimulate_Transcript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scenario := filepath.Join(dir, "scenario.yaml")
	metricsFile := filepath.Join(dir, "smart_guard.prom")
	cfgPath := filepath.Join(dir, "smart-guard.yaml")

	require.NoError(t, os.WriteFile(scenario, []byte(`
duration: 40s
keys:
  - at: 24s
    text: "1234"
  - at: 35s
    text: "1234"
motion:
  - at: 30s
`), 0o600))
	require.NoError(t, os.WriteFile(cfgPath, []byte("metrics_file: "+metricsFile+"\n"), 0o600))

	var out, logs bytes.Buffer

	ctx := logger.ToContext(context.Background(), logger.NewTo(zapcore.AddSync(&logs), zapcore.DebugLevel))

	err := Simulate(ctx, &SimulateOptions{
		ConfigPath:   cfgPath,
		ScenarioPath: scenario,
		Output:       &out,
		DisplayOnly:  true,
	})
	require.NoError(t, err)

	// Only warnings of the controller are kept.
	require.Contains(t, logs.String(), "Simulation started")
	require.Contains(t, logs.String(), "Motion detected")
	require.NotContains(t, logs.String(), "State changed")

	transcript := out.String()
	require.Contains(t, transcript, `"Motion alert!!!"`)
	require.Contains(t, transcript, `"Password correct"`)
	require.Contains(t, transcript, "state: disarmed")
	require.Contains(t, transcript, "|Alarm           |")
	require.NotContains(t, transcript, "buzzer")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "smart_guard_disarms_total 1")
}

// TestSimulate_LogsState checks every controller message names the state it was logged in.
func TestSimulate_LogsState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scenario := filepath.Join(dir, "scenario.yaml")

	require.NoError(t, os.WriteFile(scenario, []byte(`
duration: 40s
keys:
  - at: 24s
    text: "1234"
  - at: 35s
    text: "9999"
motion:
  - at: 30s
`), 0o600))

	var logs bytes.Buffer

	ctx := logger.ToContext(context.Background(), logger.NewTo(zapcore.AddSync(&logs), zapcore.DebugLevel))

	err := Simulate(ctx, &SimulateOptions{
		ScenarioPath: scenario,
		Output:       new(bytes.Buffer),
	})
	require.NoError(t, err)

	var rejected, changed string

	for line := range strings.Lines(logs.String()) {
		switch {
		case strings.Contains(line, "Password rejected"):
			rejected = line
		case strings.Contains(line, "State changed") && strings.Contains(line, `"to": "armed"`):
			changed = line
		}
	}

	require.Contains(t, rejected, `"state": "verifying_password"`)
	require.Contains(t, rejected, `"attempts": 1`)
	require.Contains(t, changed, `"state": "setting_password"`)
}

// TestSimulate_Errors covers missing inputs.
func TestSimulate_Errors(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Simulate(context.Background(), &SimulateOptions{}), errNoScenario)

	err := Simulate(context.Background(), &SimulateOptions{
		ScenarioPath: filepath.Join(t.TempDir(), "missing.yaml"),
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}
