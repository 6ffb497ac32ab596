package hal

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// DigitalInput is a single input line such as a keypad column or a PIR output.
type DigitalInput interface {
	IsActive() bool
}

// DigitalOutput is a single output line such as a status LED.
type DigitalOutput interface {
	Set(level bool)
}

// ToneOutput drives the buzzer.
type ToneOutput interface {
	SetTone(frequency physic.Frequency, duty gpio.Duty)
	Off()
}

// TextDisplay is a character display addressed by row and column.
type TextDisplay interface {
	Clear()
	SetCursor(row, col int)
	WriteText(s string)
	WriteSymbol(c byte)
}

// Clock is the only suspension point of the core.
type Clock interface {
	Sleep(d time.Duration)
}

// Board groups the collaborators of one device.
type Board struct {
	// Keypad holds the key lines in priority order.
	Keypad []DigitalInput
	// Motion is the PIR sensor line.
	Motion DigitalInput
	// Red, Green and Blue are the status LEDs.
	Red   DigitalOutput
	Green DigitalOutput
	Blue  DigitalOutput
	// Buzzer is the piezo buzzer.
	Buzzer ToneOutput
	// Display is the two-row character display.
	Display TextDisplay
}

// SystemClock sleeps on the wall clock.
type SystemClock struct{}

// Sleep blocks the calling goroutine for d.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
