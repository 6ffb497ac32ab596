package sim

import (
	"fmt"
	"slices"
	"time"
)

// Device names used in recorded calls.
const (
	DeviceRed     = "red"
	DeviceGreen   = "green"
	DeviceBlue    = "blue"
	DeviceBuzzer  = "buzzer"
	DeviceDisplay = "display"
)

// Call is one recorded output call.
type Call struct {
	// At is the virtual time of the call.
	At time.Duration
	// Device is the output that was driven.
	Device string
	// Op is the operation name.
	Op string
	// Arg is the formatted argument, empty when the operation has none.
	Arg string
}

// String renders the call as one transcript line.
func (c Call) String() string {
	if c.Arg == "" {
		return fmt.Sprintf("%10s %-7s %s", c.At, c.Device, c.Op)
	}

	return fmt.Sprintf("%10s %-7s %s %s", c.At, c.Device, c.Op, c.Arg)
}

// Log records output calls in order.
type Log struct {
	// clock stamps the calls.
	clock *Clock
	// calls is the ordered record.
	calls []Call
}

// NewLog returns an empty log stamped by clock.
func NewLog(clock *Clock) *Log {
	return &Log{
		clock: clock,
	}
}

// Len returns the number of recorded calls.
func (l *Log) Len() int {
	return len(l.calls)
}

// Calls returns a copy of every recorded call.
func (l *Log) Calls() []Call {
	return slices.Clone(l.calls)
}

// Since returns a copy of the calls recorded after the first mark calls.
func (l *Log) Since(mark int) []Call {
	if mark >= len(l.calls) {
		return nil
	}

	return slices.Clone(l.calls[mark:])
}

// Filter returns the calls made on one device.
func (l *Log) Filter(device string) []Call {
	var filtered []Call

	for _, call := range l.calls {
		if call.Device == device {
			filtered = append(filtered, call)
		}
	}

	return filtered
}

// record appends a call stamped with the current virtual time.
func (l *Log) record(device, op, arg string) {
	l.calls = append(l.calls, Call{
		At:     l.clock.Now(),
		Device: device,
		Op:     op,
		Arg:    arg,
	})
}
