package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestParseSymbols verifies keypad text parsing and rejection of unknown keys.
func TestParseSymbols(t *testing.T) {
	t.Parallel()

	symbols, err := ParseSymbols("4213")
	require.NoError(t, err)
	require.Equal(t, []Symbol{'4', '2', '1', '3'}, symbols)

	_, err = ParseSymbols("12a4")
	require.ErrorIs(t, err, errUnknownSymbol)
}

// TestKeyIndex checks that every key maps back to its line.
func TestKeyIndex(t *testing.T) {
	t.Parallel()

	for want, key := range Keys() {
		got, ok := KeyIndex(key)
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok := KeyIndex('9')
	require.False(t, ok)
	require.False(t, Symbol('0').Valid())
}

// TestContextClone ensures Clone copies buffers instead of sharing them.
func TestContextClone(t *testing.T) {
	t.Parallel()

	c := NewContext()
	c.PasswordDigest = []byte("digest")
	c.Entry = append(c.Entry, '1', '2')
	c.Attempts = 2

	cloned := c.Clone()
	require.Equal(t, c, cloned)

	cloned.Entry[0] = '4'
	require.Equal(t, Symbol('1'), c.Entry[0])

	c.ClearEntry()
	require.Empty(t, c.Entry)
	require.Len(t, cloned.Entry, 2)
}

// TestSuccessMelodyDuration pins the playback length of the disarm melody.
func TestSuccessMelodyDuration(t *testing.T) {
	t.Parallel()

	melody := SuccessMelody()
	require.Len(t, melody, 9)
	require.Equal(t, 3650*time.Millisecond, melody.Duration())
}

// TestSirenTone checks the alert tone is audible and within duty range.
func TestSirenTone(t *testing.T) {
	t.Parallel()

	tone := SirenTone()
	require.False(t, tone.Silent())
	require.Positive(t, int64(tone.Duty))
	require.Less(t, int64(tone.Duty), int64(1<<24))
}
