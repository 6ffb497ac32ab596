package motion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/smart-guard/internal/hal"
)

// Wiring tells how the sensor contact signals motion.
type Wiring string

const (
	// NormallyOpen sensors drive the line high on motion.
	NormallyOpen Wiring = "NO"
	// NormallyClosed sensors drop the line on motion.
	NormallyClosed Wiring = "NC"
)

// ErrUnknownWiring is returned for wiring names other than NO and NC.
var ErrUnknownWiring = errors.New("unknown sensor wiring")

// ParseWiring parses "NO" or "NC", case-insensitively. Empty input means NO.
func ParseWiring(s string) (Wiring, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(NormallyOpen):
		return NormallyOpen, nil
	case string(NormallyClosed):
		return NormallyClosed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWiring, s)
	}
}

// Sensor reports the current level of the PIR line. No edge or debounce logic.
type Sensor struct {
	in     hal.DigitalInput
	wiring Wiring
}

// NewSensor wraps in.
func NewSensor(in hal.DigitalInput, wiring Wiring) *Sensor {
	return &Sensor{
		in:     in,
		wiring: wiring,
	}
}

// Poll reports whether motion is signalled right now.
func (s *Sensor) Poll() bool {
	level := s.in.IsActive()
	if s.wiring == NormallyClosed {
		return !level
	}

	return level
}
