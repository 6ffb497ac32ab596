package keypad

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/smart-guard/internal/domain/alarm"
	"github.com/oshokin/smart-guard/internal/hal"
	"github.com/oshokin/smart-guard/internal/hal/sim"
)

// TestResolve verifies the fixed lowest-index-wins priority.
func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		levels []bool
		want   int
		ok     bool
	}{
		{levels: []bool{false, false, false, false}},
		{levels: []bool{false, false, false, true}, want: 3, ok: true},
		{levels: []bool{true, false, true, false}, want: 0, ok: true},
		{levels: []bool{false, true, true, true}, want: 1, ok: true},
	}

	for _, c := range cases {
		got, ok := resolve(c.levels)
		require.Equal(t, c.ok, ok, "levels %v", c.levels)
		require.Equal(t, c.want, got, "levels %v", c.levels)
	}
}

// TestScanner_Poll covers symbol mapping, tie-break and repeated reports of a held key.
func TestScanner_Poll(t *testing.T) {
	t.Parallel()

	pad := sim.NewKeypad("", "3", "13", "4", "4")

	s, err := NewScanner(pad.Lines())
	require.NoError(t, err)

	_, ok := s.Poll()
	require.False(t, ok)

	for _, want := range []alarm.Symbol{'3', '1', '4', '4'} {
		got, ok := s.Poll()
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok = s.Poll()
	require.False(t, ok)
}

// TestNewScanner_Validates rejects wrong line counts and nil lines.
func TestNewScanner_Validates(t *testing.T) {
	t.Parallel()

	_, err := NewScanner(sim.NewKeypad().Lines()[:3])
	require.ErrorIs(t, err, ErrLineCount)

	lines := []hal.DigitalInput{sim.NewScript(), nil, sim.NewScript(), sim.NewScript()}
	_, err = NewScanner(lines)
	require.ErrorIs(t, err, errNilLine)
}
