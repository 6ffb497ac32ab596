package motion

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/smart-guard/internal/hal/sim"
)

// TestParseWiring verifies accepted spellings and rejection of unknown modes.
func TestParseWiring(t *testing.T) {
	t.Parallel()

	cases := map[string]Wiring{
		"":    NormallyOpen,
		"no":  NormallyOpen,
		" NC": NormallyClosed,
	}
	for s, want := range cases {
		got, err := ParseWiring(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseWiring("EOL")
	require.ErrorIs(t, err, ErrUnknownWiring)
}

// TestSensor_Poll checks that every active tick reports motion and NC inverts the level.
func TestSensor_Poll(t *testing.T) {
	t.Parallel()

	open := NewSensor(sim.NewScript(true, true, false), NormallyOpen)
	require.True(t, open.Poll())
	require.True(t, open.Poll())
	require.False(t, open.Poll())

	closed := NewSensor(sim.NewScript(true, false), NormallyClosed)
	require.False(t, closed.Poll())
	require.True(t, closed.Poll())
}
