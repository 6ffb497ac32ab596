package alarm

import "time"

// ChaseRounds is how many times the red-green-blue chase runs in alert patterns.
const ChaseRounds = 3

// Timing holds every fixed delay of the device.
type Timing struct {
	// PollInterval is the keypad and motion sampling period.
	PollInterval time.Duration `yaml:"poll_interval"`
	// LEDStep is how long each LED of a chase stays lit.
	LEDStep time.Duration `yaml:"led_step"`
	// DisplayInit is the wait for the display controller after power-up.
	DisplayInit time.Duration `yaml:"display_init"`
	// Greeting is how long the splash text is shown.
	Greeting time.Duration `yaml:"greeting"`
	// Notice is how long informational screens are shown.
	Notice time.Duration `yaml:"notice"`
	// CountdownTicks is the length of the start-up countdowns.
	CountdownTicks int `yaml:"countdown_ticks"`
	// CountdownTick is the pause after each start-up countdown step.
	CountdownTick time.Duration `yaml:"countdown_tick"`
	// PromptSettle is the pause after the setup prompt is drawn.
	PromptSettle time.Duration `yaml:"prompt_settle"`
	// KeyBeep is the acknowledgement beep length during setup.
	KeyBeep time.Duration `yaml:"key_beep"`
	// ArmedSettle is the pause after arming before motion is polled.
	ArmedSettle time.Duration `yaml:"armed_settle"`
	// AlertHold is how long the motion alert text is shown.
	AlertHold time.Duration `yaml:"alert_hold"`
	// IncorrectDelay is the pause before the wrong password feedback.
	IncorrectDelay time.Duration `yaml:"incorrect_delay"`
	// IncorrectHold is how long the wrong password text is shown.
	IncorrectHold time.Duration `yaml:"incorrect_hold"`
	// LockoutDelay is the pause before the lockout notice.
	LockoutDelay time.Duration `yaml:"lockout_delay"`
	// LockoutNotice is how long the lockout notice is shown.
	LockoutNotice time.Duration `yaml:"lockout_notice"`
	// LockoutTicks is the length of the lockout countdown.
	LockoutTicks int `yaml:"lockout_ticks"`
	// LockoutTick is the duration of one lockout countdown step.
	LockoutTick time.Duration `yaml:"lockout_tick"`
	// DisarmedHold is the pause after disarming before the device rearms.
	DisarmedHold time.Duration `yaml:"disarmed_hold"`
}

// DefaultTiming returns the factory timing table.
func DefaultTiming() Timing {
	return Timing{
		PollInterval:   100 * time.Millisecond,
		LEDStep:        200 * time.Millisecond,
		DisplayInit:    500 * time.Millisecond,
		Greeting:       2 * time.Second,
		Notice:         1500 * time.Millisecond,
		CountdownTicks: 5,
		CountdownTick:  time.Second,
		PromptSettle:   200 * time.Millisecond,
		KeyBeep:        100 * time.Millisecond,
		ArmedSettle:    2 * time.Second,
		AlertHold:      2 * time.Second,
		IncorrectDelay: time.Second,
		IncorrectHold:  time.Second,
		LockoutDelay:   time.Second,
		LockoutNotice:  1700 * time.Millisecond,
		LockoutTicks:   5,
		LockoutTick:    time.Second,
		DisarmedHold:   3 * time.Second,
	}
}
