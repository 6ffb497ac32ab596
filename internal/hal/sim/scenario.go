package sim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/smart-guard/internal/domain/alarm"
	"github.com/oshokin/smart-guard/internal/hal"
)

const (
	// DefaultKeyHold is how long a scheduled key stays pressed: one poll interval,
	// so an idle scanner sees each key exactly once.
	DefaultKeyHold = 100 * time.Millisecond
	// DefaultKeyInterval is the delay between keys of one typed text.
	DefaultKeyInterval = 500 * time.Millisecond
	// DefaultMotionHold is how long a scheduled motion pulse lasts.
	DefaultMotionHold = 500 * time.Millisecond
)

var (
	// errNoDuration is returned when a scenario does not say how long to run.
	errNoDuration = errors.New("scenario duration must be positive")
	// errNegativeTime is returned when an event is scheduled before the start.
	errNegativeTime = errors.New("scenario event scheduled before start")
)

// Scenario describes the inputs of one simulated run.
type Scenario struct {
	// Duration is the virtual time to run for.
	Duration time.Duration `yaml:"duration"`
	// Motion lists the PIR pulses.
	Motion []MotionEvent `yaml:"motion"`
	// Keys lists typed keypad texts.
	Keys []KeyEvent `yaml:"keys"`
}

// MotionEvent is one PIR pulse.
type MotionEvent struct {
	At   time.Duration `yaml:"at"`
	Hold time.Duration `yaml:"hold"`
}

// KeyEvent types Text starting at At, one key every Interval, each held for Hold.
type KeyEvent struct {
	At       time.Duration `yaml:"at"`
	Text     string        `yaml:"text"`
	Interval time.Duration `yaml:"interval"`
	Hold     time.Duration `yaml:"hold"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	return ParseScenario(contents)
}

// ParseScenario decodes and validates a YAML scenario, filling in default holds and intervals.
func ParseScenario(contents []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(contents, &scenario); err != nil {
		return nil, fmt.Errorf("unmarshal scenario: %w", err)
	}

	if scenario.Duration <= 0 {
		return nil, errNoDuration
	}

	for i := range scenario.Motion {
		event := &scenario.Motion[i]
		if event.At < 0 {
			return nil, fmt.Errorf("motion #%d: %w", i, errNegativeTime)
		}

		if event.Hold <= 0 {
			event.Hold = DefaultMotionHold
		}
	}

	for i := range scenario.Keys {
		event := &scenario.Keys[i]
		if event.At < 0 {
			return nil, fmt.Errorf("keys #%d: %w", i, errNegativeTime)
		}

		if _, err := alarm.ParseSymbols(event.Text); err != nil {
			return nil, fmt.Errorf("keys #%d: %w", i, err)
		}

		if event.Hold <= 0 {
			event.Hold = DefaultKeyHold
		}

		if event.Interval <= 0 {
			event.Interval = DefaultKeyInterval
		}
	}

	return &scenario, nil
}

// Inputs schedules the scenario on clock and returns the keypad lines and the motion line.
func (s *Scenario) Inputs(clock *Clock) ([]hal.DigitalInput, hal.DigitalInput) {
	keys := make([]*Line, len(alarm.Keys()))
	for i := range keys {
		keys[i] = NewLine(clock)
	}

	for _, event := range s.Keys {
		at := event.At

		for i := range len(event.Text) {
			// Validated by ParseScenario.
			index, _ := alarm.KeyIndex(alarm.Symbol(event.Text[i]))
			keys[index].Hold(at, event.Hold)
			at += event.Interval
		}
	}

	motion := NewLine(clock)
	for _, event := range s.Motion {
		motion.Hold(event.At, event.Hold)
	}

	lines := make([]hal.DigitalInput, len(keys))
	for i, key := range keys {
		lines[i] = key
	}

	return lines, motion
}
