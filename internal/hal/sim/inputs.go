package sim

import (
	"strings"
	"time"

	"github.com/oshokin/smart-guard/internal/domain/alarm"
	"github.com/oshokin/smart-guard/internal/hal"
)

// Span is a half-open interval [From, To) of virtual time.
type Span struct {
	From time.Duration
	To   time.Duration
}

// Line is an input that is active during scheduled spans of virtual time.
type Line struct {
	// clock is sampled on every read.
	clock *Clock
	// spans are the active intervals.
	spans []Span
}

// NewLine returns an inactive line on clock.
func NewLine(clock *Clock) *Line {
	return &Line{
		clock: clock,
	}
}

// Hold schedules the line to be active for hold starting at at.
func (l *Line) Hold(at, hold time.Duration) {
	l.spans = append(l.spans, Span{From: at, To: at + hold})
}

// IsActive reports whether the current virtual time falls in a span.
func (l *Line) IsActive() bool {
	now := l.clock.Now()

	for _, span := range l.spans {
		if now >= span.From && now < span.To {
			return true
		}
	}

	return false
}

// Script is an input that reports one queued frame per read and is
// inactive once the queue is drained.
type Script struct {
	// frames are the pending levels.
	frames []bool
}

// NewScript returns a script with the given frames queued.
func NewScript(frames ...bool) *Script {
	return &Script{
		frames: frames,
	}
}

// Push queues more frames.
func (s *Script) Push(frames ...bool) {
	s.frames = append(s.frames, frames...)
}

// Pending returns the number of queued frames.
func (s *Script) Pending() int {
	return len(s.frames)
}

// IsActive pops the next frame.
func (s *Script) IsActive() bool {
	if len(s.frames) == 0 {
		return false
	}

	level := s.frames[0]
	s.frames = s.frames[1:]

	return level
}

// Keypad is a scripted four-line keypad. Each frame is the set of keys held
// during one scan, e.g. "13" holds keys 1 and 3 and "" holds nothing.
// The queue advances on every read of the first line, which a scan samples first.
type Keypad struct {
	// frames are the pending scans.
	frames []string
	// current is the scan being sampled.
	current string
	// lines are the per-key inputs.
	lines []hal.DigitalInput
}

// NewKeypad returns a keypad with the given frames queued.
func NewKeypad(frames ...string) *Keypad {
	k := &Keypad{
		frames: frames,
	}

	for i := range alarm.Keys() {
		k.lines = append(k.lines, keypadLine{pad: k, index: i})
	}

	return k
}

// Lines returns the key lines in priority order.
func (k *Keypad) Lines() []hal.DigitalInput {
	return k.lines
}

// Push queues more frames.
func (k *Keypad) Push(frames ...string) {
	k.frames = append(k.frames, frames...)
}

// Type queues one frame per character of text.
func (k *Keypad) Type(text string) {
	for i := range len(text) {
		k.frames = append(k.frames, text[i:i+1])
	}
}

// Pending returns the number of queued frames.
func (k *Keypad) Pending() int {
	return len(k.frames)
}

// advance moves to the next frame, or to an idle scan when none is queued.
func (k *Keypad) advance() {
	if len(k.frames) == 0 {
		k.current = ""
		return
	}

	k.current = k.frames[0]
	k.frames = k.frames[1:]
}

// keypadLine is one key line of a scripted keypad.
type keypadLine struct {
	pad   *Keypad
	index int
}

// IsActive reports whether the key of this line is held in the current scan.
func (l keypadLine) IsActive() bool {
	if l.index == 0 {
		l.pad.advance()
	}

	key := alarm.Keys()[l.index]

	return strings.IndexByte(l.pad.current, byte(key)) >= 0
}
