package sim

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/oshokin/smart-guard/internal/domain/alarm"
)

// LED is a recording digital output.
type LED struct {
	// name is the device name in the log.
	name string
	// log receives every call.
	log *Log
	// on is the current level.
	on bool
}

// NewLED returns an LED that is off.
func NewLED(name string, log *Log) *LED {
	return &LED{
		name: name,
		log:  log,
	}
}

// Set drives the LED.
func (l *LED) Set(level bool) {
	l.on = level

	if level {
		l.log.record(l.name, "on", "")
	} else {
		l.log.record(l.name, "off", "")
	}
}

// On reports whether the LED is lit.
func (l *LED) On() bool {
	return l.on
}

// Buzzer is a recording tone output.
type Buzzer struct {
	// log receives every call.
	log *Log
	// tone is the tone currently playing; zero when silent.
	tone alarm.Tone
}

// NewBuzzer returns a silent buzzer.
func NewBuzzer(log *Log) *Buzzer {
	return &Buzzer{
		log: log,
	}
}

// SetTone starts a tone.
func (b *Buzzer) SetTone(frequency physic.Frequency, duty gpio.Duty) {
	b.tone = alarm.Tone{
		Frequency: frequency,
		Duty:      duty,
	}

	b.log.record(DeviceBuzzer, "tone", fmt.Sprintf("%s %s", frequency, duty))
}

// Off silences the buzzer.
func (b *Buzzer) Off() {
	b.tone = alarm.Tone{}
	b.log.record(DeviceBuzzer, "off", "")
}

// Playing reports whether a tone is sounding.
func (b *Buzzer) Playing() bool {
	return !b.tone.Silent()
}

// Tone returns the current tone.
func (b *Buzzer) Tone() alarm.Tone {
	return b.tone
}

// Display is a recording character display with a text buffer.
type Display struct {
	// log receives every call.
	log *Log
	// cells is the character buffer, one slice per row.
	cells [][]byte
	// row and col are the cursor position.
	row, col int
}

// NewDisplay returns a blank display of the given size.
func NewDisplay(rows, cols int, log *Log) *Display {
	d := &Display{
		log:   log,
		cells: make([][]byte, rows),
	}

	for i := range d.cells {
		d.cells[i] = make([]byte, cols)
	}

	d.blank()

	return d
}

// Clear blanks the screen and homes the cursor.
func (d *Display) Clear() {
	d.blank()
	d.log.record(DeviceDisplay, "clear", "")
}

// SetCursor moves the cursor.
func (d *Display) SetCursor(row, col int) {
	d.row, d.col = row, col
	d.log.record(DeviceDisplay, "cursor", fmt.Sprintf("%d,%d", row, col))
}

// WriteText writes s at the cursor. Characters past the row end are dropped.
func (d *Display) WriteText(s string) {
	for i := range len(s) {
		d.put(s[i])
	}

	d.log.record(DeviceDisplay, "text", fmt.Sprintf("%q", s))
}

// WriteSymbol writes a single character at the cursor.
func (d *Display) WriteSymbol(c byte) {
	d.put(c)
	d.log.record(DeviceDisplay, "symbol", fmt.Sprintf("%q", c))
}

// Rows returns the screen contents with trailing blanks trimmed.
func (d *Display) Rows() []string {
	rows := make([]string, len(d.cells))
	for i, row := range d.cells {
		rows[i] = strings.TrimRight(string(row), " ")
	}

	return rows
}

// Text returns the screen contents as newline separated rows.
func (d *Display) Text() string {
	return strings.Join(d.Rows(), "\n")
}

// blank fills the buffer with spaces and homes the cursor.
func (d *Display) blank() {
	for _, row := range d.cells {
		for i := range row {
			row[i] = ' '
		}
	}

	d.row, d.col = 0, 0
}

// put stores one character and advances the cursor.
func (d *Display) put(c byte) {
	if d.row >= 0 && d.row < len(d.cells) && d.col >= 0 && d.col < len(d.cells[d.row]) {
		d.cells[d.row][d.col] = c
	}

	d.col++
}
