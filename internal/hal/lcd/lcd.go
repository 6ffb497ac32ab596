package lcd

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
)

// PCF8574 pin mapping of the common backpacks.
const (
	pinRS        byte = 0x01
	pinEnable    byte = 0x04
	pinBacklight byte = 0x08
)

// HD44780 instructions.
const (
	cmdClear         byte = 0x01
	cmdEntryMode     byte = 0x04
	cmdDisplayCtrl   byte = 0x08
	cmdFunctionSet   byte = 0x20
	cmdSetDDRAMAddr  byte = 0x80
	entryIncrement   byte = 0x02
	displayOn        byte = 0x04
	functionTwoLines byte = 0x08
	initNibble8Bit   byte = 0x03
	initNibble4Bit   byte = 0x02
)

// Controller delays.
const (
	powerOnDelay  = 50 * time.Millisecond
	initDelay     = 4100 * time.Microsecond
	clearDelay    = 2 * time.Millisecond
	commandDelay  = 50 * time.Microsecond
	defaultRows   = 2
	defaultCols   = 16
	maxRows       = 4
	maxCols       = 40
	nibbleShift   = 4
	lowNibbleMask = 0x0F
)

// rowOffsets are the DDRAM addresses of each row start.
var rowOffsets = [maxRows]byte{0x00, 0x40, 0x14, 0x54}

var (
	// ErrOutOfRange is returned when the cursor is placed outside the display.
	ErrOutOfRange = errors.New("cursor out of range")
	// ErrGeometry is returned for unsupported display sizes.
	ErrGeometry = errors.New("unsupported display geometry")
)

// Display is an initialized HD44780 controller.
type Display struct {
	// dev is the I2C device of the backpack.
	dev conn.Conn
	// rows and cols are the display size.
	rows, cols int
	// backlight is ORed into every expander write.
	backlight byte
	// sleep waits for the controller; replaced in tests.
	sleep func(time.Duration)
}

// Option configures the display.
type Option func(*Display)

// WithSize sets the display geometry.
func WithSize(rows, cols int) Option {
	return func(d *Display) {
		d.rows, d.cols = rows, cols
	}
}

// WithSleep replaces time.Sleep for the controller delays.
func WithSleep(sleep func(time.Duration)) Option {
	return func(d *Display) {
		d.sleep = sleep
	}
}

// New initializes the controller behind dev and returns a cleared display
// with the backlight on.
func New(dev conn.Conn, opts ...Option) (*Display, error) {
	d := &Display{
		dev:       dev,
		rows:      defaultRows,
		cols:      defaultCols,
		backlight: pinBacklight,
		sleep:     time.Sleep,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.rows < 1 || d.rows > maxRows || d.cols < 1 || d.cols > maxCols {
		return nil, fmt.Errorf("%w: %dx%d", ErrGeometry, d.rows, d.cols)
	}

	if err := d.init(); err != nil {
		return nil, fmt.Errorf("initialize display on %s: %w", dev, err)
	}

	return d, nil
}

// init switches the controller to 4-bit mode and configures it.
func (d *Display) init() error {
	d.sleep(powerOnDelay)

	for range 3 {
		if err := d.writeNibble(initNibble8Bit, 0); err != nil {
			return err
		}

		d.sleep(initDelay)
	}

	if err := d.writeNibble(initNibble4Bit, 0); err != nil {
		return err
	}

	steps := []byte{
		cmdFunctionSet | functionTwoLines,
		cmdDisplayCtrl | displayOn,
		cmdEntryMode | entryIncrement,
	}

	for _, cmd := range steps {
		if err := d.command(cmd); err != nil {
			return err
		}
	}

	return d.Clear()
}

// Rows returns the number of rows.
func (d *Display) Rows() int {
	return d.rows
}

// Cols returns the number of columns.
func (d *Display) Cols() int {
	return d.cols
}

// Clear blanks the display and homes the cursor.
func (d *Display) Clear() error {
	if err := d.command(cmdClear); err != nil {
		return err
	}

	d.sleep(clearDelay)

	return nil
}

// SetCursor moves the cursor to row and col, both zero based.
func (d *Display) SetCursor(row, col int) error {
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return fmt.Errorf("%w: %d,%d on %dx%d", ErrOutOfRange, row, col, d.rows, d.cols)
	}

	return d.command(cmdSetDDRAMAddr | (rowOffsets[row] + byte(col)))
}

// WriteString writes s at the cursor.
func (d *Display) WriteString(s string) error {
	for i := range len(s) {
		if err := d.WriteByte(s[i]); err != nil {
			return err
		}
	}

	return nil
}

// WriteByte writes one character code at the cursor.
func (d *Display) WriteByte(c byte) error {
	return d.send(c, pinRS)
}

// Backlight switches the backlight.
func (d *Display) Backlight(on bool) error {
	if on {
		d.backlight = pinBacklight
	} else {
		d.backlight = 0
	}

	return d.dev.Tx([]byte{d.backlight}, nil)
}

// command sends an instruction byte.
func (d *Display) command(cmd byte) error {
	if err := d.send(cmd, 0); err != nil {
		return err
	}

	d.sleep(commandDelay)

	return nil
}

// send writes b as two nibbles in a single bus transaction.
func (d *Display) send(b, mode byte) error {
	frame := make([]byte, 0, 4)
	frame = d.appendNibble(frame, b>>nibbleShift, mode)
	frame = d.appendNibble(frame, b&lowNibbleMask, mode)

	if err := d.dev.Tx(frame, nil); err != nil {
		return fmt.Errorf("write %#x: %w", b, err)
	}

	return nil
}

// writeNibble sends a single nibble, used only before 4-bit mode is active.
func (d *Display) writeNibble(nibble, mode byte) error {
	if err := d.dev.Tx(d.appendNibble(nil, nibble, mode), nil); err != nil {
		return fmt.Errorf("write nibble %#x: %w", nibble, err)
	}

	return nil
}

// appendNibble appends the enable pulse that latches nibble.
func (d *Display) appendNibble(frame []byte, nibble, mode byte) []byte {
	data := nibble<<nibbleShift | mode | d.backlight

	return append(frame, data|pinEnable, data)
}
