package rpi

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/oshokin/smart-guard/internal/hal"
	"github.com/oshokin/smart-guard/internal/hal/lcd"
)

// input is an active-high GPIO input.
type input struct {
	pin gpio.PinIn
}

// IsActive reports whether the line is high.
func (i input) IsActive() bool {
	return i.pin.Read() == gpio.High
}

// output is a GPIO output line.
type output struct {
	pin    gpio.PinOut
	faults *hal.Faults
}

// Set drives the line.
func (o output) Set(level bool) {
	if err := o.pin.Out(gpio.Level(level)); err != nil {
		o.faults.Report(fmt.Errorf("set %s: %w", o.pin, err))
	}
}

// buzzer drives a piezo buzzer with hardware PWM.
type buzzer struct {
	pin    gpio.PinOut
	faults *hal.Faults
}

// SetTone starts a square wave.
func (b buzzer) SetTone(frequency physic.Frequency, duty gpio.Duty) {
	if err := b.pin.PWM(duty, frequency); err != nil {
		b.faults.Report(fmt.Errorf("pwm %s at %s: %w", b.pin, frequency, err))
	}
}

// Off stops the wave and holds the line low.
func (b buzzer) Off() {
	if err := b.pin.Out(gpio.Low); err != nil {
		b.faults.Report(fmt.Errorf("silence %s: %w", b.pin, err))
	}
}

// textDisplay adapts the LCD driver.
type textDisplay struct {
	lcd    *lcd.Display
	faults *hal.Faults
}

// Clear blanks the display.
func (d textDisplay) Clear() {
	d.report("clear", d.lcd.Clear())
}

// SetCursor moves the cursor.
func (d textDisplay) SetCursor(row, col int) {
	d.report("set cursor", d.lcd.SetCursor(row, col))
}

// WriteText writes s at the cursor.
func (d textDisplay) WriteText(s string) {
	d.report("write text", d.lcd.WriteString(s))
}

// WriteSymbol writes one character at the cursor.
func (d textDisplay) WriteSymbol(c byte) {
	d.report("write symbol", d.lcd.WriteByte(c))
}

func (d textDisplay) report(op string, err error) {
	if err != nil {
		d.faults.Report(fmt.Errorf("display %s: %w", op, err))
	}
}
