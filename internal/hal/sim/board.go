package sim

import "github.com/oshokin/smart-guard/internal/hal"

// Board is a simulated device: a virtual clock, a call log and recording outputs.
type Board struct {
	Clock   *Clock
	Log     *Log
	Red     *LED
	Green   *LED
	Blue    *LED
	Buzzer  *Buzzer
	Display *Display
}

// NewBoard returns a board whose display has the given size.
func NewBoard(rows, cols int) *Board {
	clock := NewClock()
	log := NewLog(clock)

	return &Board{
		Clock:   clock,
		Log:     log,
		Red:     NewLED(DeviceRed, log),
		Green:   NewLED(DeviceGreen, log),
		Blue:    NewLED(DeviceBlue, log),
		Buzzer:  NewBuzzer(log),
		Display: NewDisplay(rows, cols, log),
	}
}

// Collaborators wires the board outputs together with the given inputs.
func (b *Board) Collaborators(keypad []hal.DigitalInput, motion hal.DigitalInput) hal.Board {
	return hal.Board{
		Keypad:  keypad,
		Motion:  motion,
		Red:     b.Red,
		Green:   b.Green,
		Blue:    b.Blue,
		Buzzer:  b.Buzzer,
		Display: b.Display,
	}
}
