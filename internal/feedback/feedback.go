package feedback

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/oshokin/smart-guard/internal/domain/alarm"
	"github.com/oshokin/smart-guard/internal/hal"
)

// Screen texts.
const (
	textSplashTop       = "Burglar"
	textSplashBottom    = "alarm"
	textCalibrateTop    = "Calibrating PIR"
	textCalibrateBottom = "Please wait..."
	textInitTop         = "Initializing"
	textInitBottom      = "software..."
	textArmedTop        = "Alarm"
	textArmedBottom     = "armed!"
	textSetupTop        = "Enter    custom"
	textSetupBottom     = "password :"
	textWaitingTop      = "Waiting  for"
	textWaitingBottom   = "motion..."
	textMotionAlert     = "Motion alert!!!"
	textAlertPrompt     = "Enter  password:"
	textPrompt          = "Enter password:"
	textIncorrectTop    = "Password "
	textIncorrectBottom = "incorrect"
	textLockoutTop      = "Too many wrong"
	textLockoutBottom   = "attempts.Wait.. "
	textCorrect         = "Password correct"
	textDisarmedTop     = "Alarm"
	textDisarmedBottom  = "disarmed  "
	countdownFormat     = "%d seconds"
)

// Cursor positions.
const (
	splashCol      = 8
	calibrateCol   = 0
	initCol        = 5
	armedCol       = 7
	waitingCol     = 7
	incorrectCol   = 6
	disarmedCol    = 6
	countdownCol   = 4
	setupEchoStart = 10
)

// ErrMissingOutput is returned when an output collaborator is nil.
var ErrMissingOutput = errors.New("missing output")

// Outputs are the collaborators feedback is rendered on.
type Outputs struct {
	Red     hal.DigitalOutput
	Green   hal.DigitalOutput
	Blue    hal.DigitalOutput
	Buzzer  hal.ToneOutput
	Display hal.TextDisplay
	Clock   hal.Clock
}

// validate checks every output is wired.
func (o Outputs) validate() error {
	switch {
	case o.Red == nil:
		return fmt.Errorf("%w: red led", ErrMissingOutput)
	case o.Green == nil:
		return fmt.Errorf("%w: green led", ErrMissingOutput)
	case o.Blue == nil:
		return fmt.Errorf("%w: blue led", ErrMissingOutput)
	case o.Buzzer == nil:
		return fmt.Errorf("%w: buzzer", ErrMissingOutput)
	case o.Display == nil:
		return fmt.Errorf("%w: display", ErrMissingOutput)
	case o.Clock == nil:
		return fmt.Errorf("%w: clock", ErrMissingOutput)
	}

	return nil
}

// Controller renders feedback for the alarm state machine.
type Controller struct {
	out    Outputs
	timing alarm.Timing
	siren  alarm.Tone
	melody alarm.Melody
}

// Option configures the controller.
type Option func(*Controller)

// WithSiren replaces the alert tone.
func WithSiren(tone alarm.Tone) Option {
	return func(c *Controller) {
		c.siren = tone
	}
}

// WithMelody replaces the disarm melody.
func WithMelody(melody alarm.Melody) Option {
	return func(c *Controller) {
		c.melody = melody
	}
}

// New returns a controller drawing on out with the given timing.
func New(out Outputs, timing alarm.Timing, opts ...Option) (*Controller, error) {
	if err := out.validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		out:    out,
		timing: timing,
		siren:  alarm.SirenTone(),
		melody: alarm.SuccessMelody(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Render performs the feedback for ev in state. Unknown combinations render nothing.
func (c *Controller) Render(state alarm.State, ev Event) {
	switch ev.Kind {
	case KindEnter:
		c.enter(state, ev.From)
	case KindKey:
		c.key(state, ev)
	case KindPasswordStored:
		c.out.Blue.Set(true)
		c.sleep(c.timing.Notice)
	case KindCountdown:
		c.countdown(state, ev.Remaining)
	case KindIncorrect:
		c.incorrect()
	case KindLockoutExpired:
		c.out.Red.Set(true)
	}
}

func (c *Controller) enter(state, from alarm.State) {
	switch state {
	case alarm.StateBooting:
		c.boot()
	case alarm.StateCalibratingSensor:
		c.screen(textInitTop, textInitBottom, initCol)
		c.sleep(c.timing.Notice)
	case alarm.StateSettingPassword:
		c.screen(textArmedTop, textArmedBottom, armedCol)
		c.out.Blue.Set(true)
		c.sleep(c.timing.Notice)
		c.screen(textSetupTop, textSetupBottom, 0)
		c.sleep(c.timing.PromptSettle)
		c.out.Blue.Set(false)
	case alarm.StateArmed:
		c.screen(textWaitingTop, textWaitingBottom, waitingCol)
		c.out.Blue.Set(true)
		c.sleep(c.timing.ArmedSettle)
	case alarm.StateTriggered:
		c.alert()
	case alarm.StateVerifyingPassword:
		if from == alarm.StateLocked {
			c.prompt(textPrompt)
		} else {
			c.prompt(textAlertPrompt)
		}
	case alarm.StateLocked:
		c.lockout()
	case alarm.StateDisarmed:
		c.disarm()
	}
}

// boot runs the power-up splash and the sensor calibration notice.
func (c *Controller) boot() {
	c.Quiet()
	c.sleep(c.timing.DisplayInit)

	c.screen(textSplashTop, textSplashBottom, splashCol)
	c.sleep(c.timing.Greeting)

	c.screen(textCalibrateTop, textCalibrateBottom, calibrateCol)
	c.sleep(c.timing.Notice)
}

// key echoes a typed symbol and beeps while the password is being set.
func (c *Controller) key(state alarm.State, ev Event) {
	switch state {
	case alarm.StateSettingPassword:
		c.out.Display.SetCursor(1, setupEchoStart+ev.Position)
		c.out.Display.WriteSymbol(byte(ev.Symbol))
		c.out.Buzzer.SetTone(c.siren.Frequency, c.siren.Duty)
		c.sleep(c.timing.KeyBeep)
		c.out.Buzzer.Off()
	case alarm.StateVerifyingPassword:
		c.out.Display.SetCursor(1, ev.Position)
		c.out.Display.WriteSymbol(byte(ev.Symbol))
	}
}

// countdown draws one step. The lockout countdown waits before the chase,
// start-up countdowns wait after it.
func (c *Controller) countdown(state alarm.State, remaining int) {
	c.out.Display.Clear()
	c.out.Display.SetCursor(0, countdownCol)
	c.out.Display.WriteText(fmt.Sprintf(countdownFormat, remaining))

	if state == alarm.StateLocked {
		c.sleep(c.timing.LockoutTick)
		c.chase(1)

		return
	}

	c.chase(1)
	c.sleep(c.timing.CountdownTick)
}

// alert sounds the siren for a detected intrusion.
func (c *Controller) alert() {
	c.out.Blue.Set(false)
	c.out.Buzzer.SetTone(c.siren.Frequency, c.siren.Duty)
	c.chase(alarm.ChaseRounds)
	c.only(c.out.Red)

	c.out.Display.Clear()
	c.out.Display.SetCursor(0, 0)
	c.out.Display.WriteText(textMotionAlert)
	c.sleep(c.timing.AlertHold)
	c.out.Buzzer.Off()
}

func (c *Controller) incorrect() {
	c.sleep(c.timing.IncorrectDelay)
	c.chase(alarm.ChaseRounds)
	c.only(c.out.Red)

	c.screen(textIncorrectTop, textIncorrectBottom, incorrectCol)
	c.sleep(c.timing.IncorrectHold)
	c.prompt(textPrompt)
}

func (c *Controller) lockout() {
	c.chase(alarm.ChaseRounds)
	c.only(c.out.Red)
	c.sleep(c.timing.LockoutDelay)

	c.screen(textLockoutTop, textLockoutBottom, 0)
	c.sleep(c.timing.LockoutNotice)
	c.out.Red.Set(false)
}

func (c *Controller) disarm() {
	c.chase(alarm.ChaseRounds)
	c.only(c.out.Green)

	c.out.Display.Clear()
	c.out.Display.SetCursor(0, 0)
	c.out.Display.WriteText(textCorrect)
	c.play(c.melody)

	c.screen(textDisarmedTop, textDisarmedBottom, disarmedCol)
	c.sleep(c.timing.DisarmedHold)
	c.out.Green.Set(false)
}

// play sounds each note at half duty. Zero frequency notes are rests.
func (c *Controller) play(melody alarm.Melody) {
	for _, note := range melody {
		if note.Frequency == 0 {
			c.out.Buzzer.Off()
		} else {
			c.out.Buzzer.SetTone(note.Frequency, gpio.DutyHalf)
		}

		c.sleep(note.Duration)
	}

	c.out.Buzzer.Off()
}

// prompt asks for the password. The first prompt after an alert is spaced
// wider than the re-prompts.
func (c *Controller) prompt(text string) {
	c.out.Display.Clear()
	c.out.Display.SetCursor(0, 0)
	c.out.Display.WriteText(text)
}

// screen clears the display and draws top at the origin and bottom on row 1 at col.
func (c *Controller) screen(top, bottom string, col int) {
	c.out.Display.Clear()
	c.out.Display.SetCursor(0, 0)
	c.out.Display.WriteText(top)
	c.out.Display.SetCursor(1, col)
	c.out.Display.WriteText(bottom)
}

// chase lights red, green and blue in turn for the given number of rounds.
func (c *Controller) chase(rounds int) {
	leds := []hal.DigitalOutput{c.out.Red, c.out.Green, c.out.Blue}

	for range rounds {
		for _, led := range leds {
			led.Set(true)
			c.sleep(c.timing.LEDStep)
			led.Set(false)
		}
	}
}

// only leaves led as the single lit LED.
func (c *Controller) only(led hal.DigitalOutput) {
	for _, other := range []hal.DigitalOutput{c.out.Red, c.out.Green, c.out.Blue} {
		other.Set(other == led)
	}
}

// Quiet switches every LED and the buzzer off.
func (c *Controller) Quiet() {
	c.out.Red.Set(false)
	c.out.Green.Set(false)
	c.out.Blue.Set(false)
	c.out.Buzzer.Off()
}

func (c *Controller) sleep(d time.Duration) {
	if d > 0 {
		c.out.Clock.Sleep(d)
	}
}
