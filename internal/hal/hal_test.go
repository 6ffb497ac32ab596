package hal

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	errFirst  = errors.New("first")
	errSecond = errors.New("second")
)

// TestFaults_KeepsFirst verifies that only the first reported failure is latched.
func TestFaults_KeepsFirst(t *testing.T) {
	t.Parallel()

	var faults Faults
	require.NoError(t, faults.Err())

	faults.Report(nil)
	require.NoError(t, faults.Err())

	faults.Report(errFirst)
	faults.Report(errSecond)
	require.ErrorIs(t, faults.Err(), errFirst)

	var missing *Faults
	require.NoError(t, missing.Err())
}

// TestSystemClock_Sleep checks the wall clock advances by the requested duration.
func TestSystemClock_Sleep(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		start := time.Now()

		SystemClock{}.Sleep(1500 * time.Millisecond)

		require.Equal(t, 1500*time.Millisecond, time.Since(start))
	})
}
