package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/oshokin/smart-guard/internal/device/motion"
	"github.com/oshokin/smart-guard/internal/domain/alarm"
	"github.com/oshokin/smart-guard/internal/logger"
)

// Config holds everything needed to run one device.
type Config struct {
	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level"`
	// Pins names the GPIO lines.
	Pins Pins `yaml:"pins"`
	// Display describes the I2C character display.
	Display Display `yaml:"display"`
	// Timing holds every delay of the device.
	Timing alarm.Timing `yaml:"timing"`
	// Security holds the password policy.
	Security Security `yaml:"security"`
	// Sound configures the buzzer.
	Sound Sound `yaml:"sound"`
	// MetricsFile is where metrics are written on exit; empty disables the export.
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// Pins names GPIO lines as understood by the periph.io pin registry.
type Pins struct {
	// Keypad lists the key lines in priority order.
	Keypad []string `yaml:"keypad"`
	// Motion is the PIR output line.
	Motion string `yaml:"motion"`
	// MotionWiring is NO when the sensor drives the line high on motion
	// and NC when it pulls it low.
	MotionWiring string `yaml:"motion_wiring"`
	// Red, Green and Blue are the status LED lines.
	Red   string `yaml:"red"`
	Green string `yaml:"green"`
	Blue  string `yaml:"blue"`
	// Buzzer is the PWM capable buzzer line.
	Buzzer string `yaml:"buzzer"`
}

// Display describes the character display.
type Display struct {
	// Bus is the I2C bus name; empty selects the first bus.
	Bus string `yaml:"bus"`
	// Address is the 7-bit I2C address of the PCF8574 backpack.
	Address uint16 `yaml:"address"`
	// Rows and Cols are the display geometry.
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Security holds the password policy.
type Security struct {
	// MaxAttempts is how many wrong passwords lock the keypad.
	MaxAttempts int `yaml:"max_attempts"`
	// HashCost is the bcrypt work factor of the stored password.
	HashCost int `yaml:"hash_cost"`
}

// Sound configures the buzzer.
type Sound struct {
	// SirenHz is the alert and key beep frequency in hertz.
	SirenHz int `yaml:"siren_hz"`
	// MuteMelody replaces the disarm melody with a rest of the same length.
	MuteMelody bool `yaml:"mute_melody"`
}

// Siren returns the alert tone at the configured frequency.
func (s Sound) Siren() alarm.Tone {
	tone := alarm.SirenTone()
	tone.Frequency = physic.Frequency(s.SirenHz) * physic.Hertz

	return tone
}

// Melody returns the disarm melody, or a silent rest of the same length when muted.
func (s Sound) Melody() alarm.Melody {
	melody := alarm.SuccessMelody()
	if s.MuteMelody {
		return alarm.Melody{{Duration: melody.Duration()}}
	}

	return melody
}

const (
	// DefaultConfigFilename is used when no path is given to Save.
	DefaultConfigFilename = "smart-guard.yaml"

	// DefaultFilePermissions restricts configuration files to the owner.
	DefaultFilePermissions = 0o600

	// minRows and minCols are the smallest display the screens fit on.
	minRows = 2
	minCols = 16

	// defaultSirenHz and maxSirenHz bound the buzzer frequency.
	defaultSirenHz = 1907
	maxSirenHz     = 20000
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// ErrInvalidLogLevel is returned for an unknown log level.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidPins is returned when a GPIO line is missing or used twice.
	ErrInvalidPins = errors.New("invalid pins")
	// ErrInvalidDisplay is returned for an unusable display geometry or address.
	ErrInvalidDisplay = errors.New("invalid display")
	// ErrInvalidTiming is returned for negative delays or empty countdowns.
	ErrInvalidTiming = errors.New("invalid timing")
	// ErrInvalidSecurity is returned for an unusable password policy.
	ErrInvalidSecurity = errors.New("invalid security")
	// ErrInvalidSound is returned for a siren frequency the buzzer cannot play.
	ErrInvalidSound = errors.New("invalid sound")
)

// Default returns the factory configuration for a Raspberry Pi wiring.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Pins: Pins{
			Keypad:       []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"},
			Motion:       "GPIO17",
			MotionWiring: string(motion.NormallyOpen),
			Red:          "GPIO16",
			Green:        "GPIO20",
			Blue:         "GPIO21",
			Buzzer:       "GPIO18",
		},
		Display: Display{
			Address: 0x27,
			Rows:    minRows,
			Cols:    minCols,
		},
		Timing: alarm.DefaultTiming(),
		Security: Security{
			MaxAttempts: alarm.MaxAttempts,
			HashCost:    bcrypt.MinCost,
		},
		Sound: Sound{
			SirenHz: defaultSirenHz,
		},
	}
}

// Load reads the configuration at path over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate checks cfg for values the device cannot run with.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}

	if err := validatePins(&cfg.Pins); err != nil {
		return err
	}

	if err := validateDisplay(&cfg.Display); err != nil {
		return err
	}

	if err := validateTiming(&cfg.Timing); err != nil {
		return err
	}

	if cfg.Security.MaxAttempts < 1 {
		return fmt.Errorf("%w: max_attempts must be positive", ErrInvalidSecurity)
	}

	if cfg.Security.HashCost < bcrypt.MinCost || cfg.Security.HashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: hash_cost must be within %d..%d",
			ErrInvalidSecurity, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.Sound.SirenHz < 1 || cfg.Sound.SirenHz > maxSirenHz {
		return fmt.Errorf("%w: siren_hz must be within 1..%d", ErrInvalidSound, maxSirenHz)
	}

	return nil
}

func validatePins(p *Pins) error {
	if len(p.Keypad) != len(alarm.Keys()) {
		return fmt.Errorf("%w: %d keypad lines, want %d", ErrInvalidPins, len(p.Keypad), len(alarm.Keys()))
	}

	if _, err := motion.ParseWiring(p.MotionWiring); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPins, err)
	}

	named := append(slices.Clone(p.Keypad), p.Motion, p.Red, p.Green, p.Blue, p.Buzzer)
	seen := make(map[string]struct{}, len(named))

	for _, name := range named {
		if name == "" {
			return fmt.Errorf("%w: empty line name", ErrInvalidPins)
		}

		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s is used twice", ErrInvalidPins, name)
		}

		seen[name] = struct{}{}
	}

	return nil
}

func validateDisplay(d *Display) error {
	if d.Address == 0 || d.Address > 0x7F {
		return fmt.Errorf("%w: address %#x is not a 7-bit I2C address", ErrInvalidDisplay, d.Address)
	}

	if d.Rows < minRows || d.Cols < minCols {
		return fmt.Errorf("%w: %dx%d is smaller than %dx%d", ErrInvalidDisplay, d.Rows, d.Cols, minRows, minCols)
	}

	return nil
}

func validateTiming(t *alarm.Timing) error {
	if t.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidTiming)
	}

	if t.CountdownTicks < 1 || t.LockoutTicks < 1 {
		return fmt.Errorf("%w: countdowns need at least one tick", ErrInvalidTiming)
	}

	delays := []struct {
		name  string
		value time.Duration
	}{
		{"led_step", t.LEDStep},
		{"display_init", t.DisplayInit},
		{"greeting", t.Greeting},
		{"notice", t.Notice},
		{"countdown_tick", t.CountdownTick},
		{"prompt_settle", t.PromptSettle},
		{"key_beep", t.KeyBeep},
		{"armed_settle", t.ArmedSettle},
		{"alert_hold", t.AlertHold},
		{"incorrect_delay", t.IncorrectDelay},
		{"incorrect_hold", t.IncorrectHold},
		{"lockout_delay", t.LockoutDelay},
		{"lockout_notice", t.LockoutNotice},
		{"lockout_tick", t.LockoutTick},
		{"disarmed_hold", t.DisarmedHold},
	}

	for _, d := range delays {
		if d.value < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidTiming, d.name)
		}
	}

	return nil
}
