package rpi

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/oshokin/smart-guard/internal/config"
	"github.com/oshokin/smart-guard/internal/device/motion"
	"github.com/oshokin/smart-guard/internal/hal"
	"github.com/oshokin/smart-guard/internal/hal/lcd"
)

// ErrPinNotFound is returned when a configured line is not in the pin registry.
var ErrPinNotFound = errors.New("gpio pin not found")

// Board is the opened Raspberry Pi wiring.
type Board struct {
	// keypad and motion are the input lines.
	keypad []gpio.PinIO
	motion gpio.PinIO
	// red, green, blue and buzzer are the output lines.
	red, green, blue, buzzer gpio.PinIO
	// display is the initialized LCD.
	display *lcd.Display
	// bus is the I2C bus the display is on.
	bus i2c.BusCloser
	// faults receives collaborator failures.
	faults *hal.Faults
}

// Open initializes periph.io, configures every line from cfg and brings up the display.
func Open(cfg *config.Config, faults *hal.Faults) (*Board, error) {
	if faults == nil {
		faults = new(hal.Faults)
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initialize host: %w", err)
	}

	b := &Board{
		faults: faults,
	}

	var err error

	for _, name := range cfg.Pins.Keypad {
		var pin gpio.PinIO

		if pin, err = openInput(name, gpio.PullDown); err != nil {
			return nil, fmt.Errorf("keypad: %w", err)
		}

		b.keypad = append(b.keypad, pin)
	}

	wiring, err := motion.ParseWiring(cfg.Pins.MotionWiring)
	if err != nil {
		return nil, err
	}

	pull := gpio.PullDown
	if wiring == motion.NormallyClosed {
		pull = gpio.PullUp
	}

	if b.motion, err = openInput(cfg.Pins.Motion, pull); err != nil {
		return nil, fmt.Errorf("motion: %w", err)
	}

	outputs := []struct {
		name string
		pin  *gpio.PinIO
	}{
		{cfg.Pins.Red, &b.red},
		{cfg.Pins.Green, &b.green},
		{cfg.Pins.Blue, &b.blue},
		{cfg.Pins.Buzzer, &b.buzzer},
	}

	for _, out := range outputs {
		if *out.pin, err = openOutput(out.name); err != nil {
			return nil, err
		}
	}

	if err = b.openDisplay(cfg.Display); err != nil {
		return nil, err
	}

	return b, nil
}

// openDisplay opens the I2C bus and initializes the LCD.
func (b *Board) openDisplay(cfg config.Display) error {
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return fmt.Errorf("open i2c bus %q: %w", cfg.Bus, err)
	}

	display, err := lcd.New(&i2c.Dev{Bus: bus, Addr: cfg.Address}, lcd.WithSize(cfg.Rows, cfg.Cols))
	if err != nil {
		_ = bus.Close()

		return fmt.Errorf("display at %#x: %w", cfg.Address, err)
	}

	b.bus = bus
	b.display = display

	return nil
}

// Collaborators returns the hal view of the board.
func (b *Board) Collaborators() hal.Board {
	keypad := make([]hal.DigitalInput, len(b.keypad))
	for i, pin := range b.keypad {
		keypad[i] = input{pin: pin}
	}

	return hal.Board{
		Keypad:  keypad,
		Motion:  input{pin: b.motion},
		Red:     output{pin: b.red, faults: b.faults},
		Green:   output{pin: b.green, faults: b.faults},
		Blue:    output{pin: b.blue, faults: b.faults},
		Buzzer:  buzzer{pin: b.buzzer, faults: b.faults},
		Display: textDisplay{lcd: b.display, faults: b.faults},
	}
}

// Quiet switches the LEDs and the buzzer off, ignoring failures.
func (b *Board) Quiet() {
	for _, pin := range []gpio.PinIO{b.red, b.green, b.blue, b.buzzer} {
		if pin != nil {
			_ = pin.Out(gpio.Low)
		}
	}
}

// Close quiets the outputs, turns the backlight off and releases the bus.
func (b *Board) Close() error {
	b.Quiet()

	var errs []error

	if b.display != nil {
		errs = append(errs, b.display.Clear(), b.display.Backlight(false))
	}

	if b.bus != nil {
		errs = append(errs, b.bus.Close())
	}

	return errors.Join(errs...)
}

func openInput(name string, pull gpio.Pull) (gpio.PinIO, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("%w: %s", ErrPinNotFound, name)
	}

	if err := pin.In(pull, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure %s as input: %w", name, err)
	}

	return pin, nil
}

func openOutput(name string) (gpio.PinIO, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("%w: %s", ErrPinNotFound, name)
	}

	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("configure %s as output: %w", name, err)
	}

	return pin, nil
}
