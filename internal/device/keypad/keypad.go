package keypad

import (
	"errors"
	"fmt"

	"github.com/oshokin/smart-guard/internal/domain/alarm"
	"github.com/oshokin/smart-guard/internal/hal"
)

// ErrLineCount is returned when the number of lines does not match the keypad alphabet.
var ErrLineCount = errors.New("keypad needs exactly one line per key")

// errNilLine is returned when a line is missing.
var errNilLine = errors.New("keypad line is nil")

// Scanner samples the keypad lines once per poll.
// It does no debouncing and no edge detection: a held key is reported on every poll.
type Scanner struct {
	// lines are the key lines in priority order.
	lines []hal.DigitalInput
	// keys maps a line index to its symbol.
	keys []alarm.Symbol
}

// NewScanner returns a scanner over lines given in priority order.
func NewScanner(lines []hal.DigitalInput) (*Scanner, error) {
	keys := alarm.Keys()
	if len(lines) != len(keys) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLineCount, len(lines), len(keys))
	}

	for i, line := range lines {
		if line == nil {
			return nil, fmt.Errorf("line %d: %w", i+1, errNilLine)
		}
	}

	return &Scanner{
		lines: lines,
		keys:  keys,
	}, nil
}

// Poll samples every line once and returns the symbol of the winning line.
func (s *Scanner) Poll() (alarm.Symbol, bool) {
	levels := make([]bool, len(s.lines))
	for i, line := range s.lines {
		levels[i] = line.IsActive()
	}

	index, ok := resolve(levels)
	if !ok {
		return 0, false
	}

	return s.keys[index], true
}

// resolve picks the line that wins when several are active at once.
// Priority is fixed by line order: the lowest index wins, the rest are ignored for the tick.
func resolve(levels []bool) (int, bool) {
	for i, active := range levels {
		if active {
			return i, true
		}
	}

	return 0, false
}
