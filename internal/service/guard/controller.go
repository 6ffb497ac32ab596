package guard

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/looplab/fsm"

	"github.com/oshokin/smart-guard/internal/auth"
	"github.com/oshokin/smart-guard/internal/config"
	"github.com/oshokin/smart-guard/internal/device/keypad"
	"github.com/oshokin/smart-guard/internal/device/motion"
	"github.com/oshokin/smart-guard/internal/domain/alarm"
	"github.com/oshokin/smart-guard/internal/feedback"
	"github.com/oshokin/smart-guard/internal/hal"
	"github.com/oshokin/smart-guard/internal/logger"
	"github.com/oshokin/smart-guard/internal/metrics"
)

// State machine events.
const (
	eventCalibrate = "calibrate"
	eventSetup     = "setup"
	eventArm       = "arm"
	eventTrigger   = "trigger"
	eventVerify    = "verify"
	eventDisarm    = "disarm"
	eventLock      = "lock"
	eventUnlock    = "unlock"
	eventRearm     = "rearm"
)

var (
	// ErrHalted is returned once a collaborator fault stops the device.
	ErrHalted = errors.New("device halted")
	// errMissingMotion is returned when the board has no motion line.
	errMissingMotion = errors.New("motion input is not set")
	// errNoConfig is returned when a nil configuration is provided.
	errNoConfig = errors.New("configuration is not set")
)

// Controller owns the alarm context and moves it through the state machine.
// It is not safe for concurrent use: Step and Run must be called from one goroutine.
type Controller struct {
	// machine holds the current state and the allowed transitions.
	machine *fsm.FSM
	// ac is the device data; only the controller mutates it.
	ac *alarm.Context
	// keypad and motion sample the inputs.
	keypad *keypad.Scanner
	motion *motion.Sensor
	// auth judges passwords.
	auth *auth.Authenticator
	// feedback renders every state and event.
	feedback *feedback.Controller
	// clock paces polling.
	clock hal.Clock
	// timing holds the poll interval and countdown lengths.
	timing alarm.Timing
	// faults latches collaborator failures; nil when outputs cannot fail.
	faults *hal.Faults
	// metrics counts activity; nil disables it.
	metrics *metrics.Recorder
	// booted is set once the boot screens have been rendered.
	booted bool
}

// Option configures the controller.
type Option func(*Controller)

// WithMetrics records activity into r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Controller) {
		c.metrics = r
	}
}

// WithFaults makes the controller halt once f latches a failure.
func WithFaults(f *hal.Faults) Option {
	return func(c *Controller) {
		c.faults = f
	}
}

// NewController wires a controller to board.
func NewController(cfg *config.Config, board hal.Board, clock hal.Clock, opts ...Option) (*Controller, error) {
	if cfg == nil {
		return nil, errNoConfig
	}

	scanner, err := keypad.NewScanner(board.Keypad)
	if err != nil {
		return nil, fmt.Errorf("keypad: %w", err)
	}

	if board.Motion == nil {
		return nil, errMissingMotion
	}

	wiring, err := motion.ParseWiring(cfg.Pins.MotionWiring)
	if err != nil {
		return nil, fmt.Errorf("motion: %w", err)
	}

	renderer, err := feedback.New(feedback.Outputs{
		Red:     board.Red,
		Green:   board.Green,
		Blue:    board.Blue,
		Buzzer:  board.Buzzer,
		Display: board.Display,
		Clock:   clock,
	}, cfg.Timing,
		feedback.WithSiren(cfg.Sound.Siren()),
		feedback.WithMelody(cfg.Sound.Melody()),
	)
	if err != nil {
		return nil, fmt.Errorf("feedback: %w", err)
	}

	c := &Controller{
		ac:     alarm.NewContext(),
		keypad: scanner,
		motion: motion.NewSensor(board.Motion, wiring),
		auth: auth.New(
			auth.WithMaxAttempts(cfg.Security.MaxAttempts),
			auth.WithHashCost(cfg.Security.HashCost),
		),
		feedback: renderer,
		clock:    clock,
		timing:   cfg.Timing,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.machine = fsm.NewFSM(
		alarm.StateBooting.String(),
		fsm.Events{
			{Name: eventCalibrate, Src: states(alarm.StateBooting), Dst: alarm.StateCalibratingSensor.String()},
			{Name: eventSetup, Src: states(alarm.StateCalibratingSensor), Dst: alarm.StateSettingPassword.String()},
			{Name: eventArm, Src: states(alarm.StateSettingPassword), Dst: alarm.StateArmed.String()},
			{Name: eventTrigger, Src: states(alarm.StateArmed), Dst: alarm.StateTriggered.String()},
			{Name: eventVerify, Src: states(alarm.StateTriggered), Dst: alarm.StateVerifyingPassword.String()},
			{Name: eventDisarm, Src: states(alarm.StateVerifyingPassword), Dst: alarm.StateDisarmed.String()},
			{Name: eventLock, Src: states(alarm.StateVerifyingPassword), Dst: alarm.StateLocked.String()},
			{Name: eventUnlock, Src: states(alarm.StateLocked), Dst: alarm.StateVerifyingPassword.String()},
			{Name: eventRearm, Src: states(alarm.StateDisarmed), Dst: alarm.StateArmed.String()},
		},
		fsm.Callbacks{
			"enter_state": c.onEnter,
		},
	)

	return c, nil
}

// State returns the current state.
func (c *Controller) State() alarm.State {
	return alarm.State(c.machine.Current())
}

// Context returns a snapshot of the device data.
func (c *Controller) Context() *alarm.Context {
	return c.ac.Clone()
}

// Run steps the machine until ctx is canceled or a fault halts the device.
// A step in progress always completes before cancellation is observed.
func (c *Controller) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "guard")

	logger.InfoKV(ctx, "Controller started", "state", c.State())

	for {
		if ctx.Err() != nil {
			logger.InfoKV(ctx, "Controller stopped", "state", c.State())

			return nil
		}

		if err := c.Step(ctx); err != nil {
			return err
		}
	}
}

// Step performs one tick of the current state, or one automatic phase
// such as a countdown, and then checks for collaborator faults.
func (c *Controller) Step(ctx context.Context) error {
	state := c.State()

	// Feedback started by a step runs to completion.
	ctx = logger.WithKV(context.WithoutCancel(ctx), "state", state)

	var err error

	switch state {
	case alarm.StateBooting:
		err = c.boot(ctx)
	case alarm.StateCalibratingSensor:
		c.countdown(state, c.timing.CountdownTicks)
		err = c.fire(ctx, eventSetup)
	case alarm.StateSettingPassword:
		err = c.collectPassword(ctx)
	case alarm.StateArmed:
		err = c.watch(ctx)
	case alarm.StateTriggered:
		err = c.fire(ctx, eventVerify)
	case alarm.StateVerifyingPassword:
		err = c.verify(ctx)
	case alarm.StateLocked:
		err = c.waitLockout(ctx)
	case alarm.StateDisarmed:
		err = c.fire(ctx, eventRearm)
	}

	if err != nil {
		return err
	}

	if fault := c.faults.Err(); fault != nil {
		return fmt.Errorf("%w: %w", ErrHalted, fault)
	}

	return nil
}

// boot renders the start-up screens, runs the sensor calibration countdown
// and moves on to the software initialization.
func (c *Controller) boot(ctx context.Context) error {
	if !c.booted {
		c.booted = true
		c.feedback.Render(alarm.StateBooting, feedback.Enter())
	}

	c.countdown(alarm.StateBooting, c.timing.CountdownTicks)

	return c.fire(ctx, eventCalibrate)
}

// collectPassword buffers one key of the new password and arms the device
// once all of them are in.
func (c *Controller) collectPassword(ctx context.Context) error {
	symbol, ok := c.keypad.Poll()
	if !ok {
		c.clock.Sleep(c.timing.PollInterval)

		return nil
	}

	c.ac.Entry = append(c.ac.Entry, symbol)
	c.feedback.Render(alarm.StateSettingPassword, feedback.Key(symbol, len(c.ac.Entry)))

	if len(c.ac.Entry) < alarm.PasswordLength {
		return nil
	}

	password := slices.Clone(c.ac.Entry)
	c.ac.ClearEntry()

	if err := c.auth.SetPassword(c.ac, password); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	logger.Info(ctx, "Password stored")
	c.feedback.Render(alarm.StateSettingPassword, feedback.Event{Kind: feedback.KindPasswordStored})

	return c.fire(ctx, eventArm)
}

// watch polls the motion sensor.
func (c *Controller) watch(ctx context.Context) error {
	if !c.motion.Poll() {
		c.clock.Sleep(c.timing.PollInterval)

		return nil
	}

	logger.Warn(ctx, "Motion detected")
	c.metrics.Trigger()

	return c.fire(ctx, eventTrigger)
}

// verify submits one polled key and reacts to the outcome once the entry is complete.
func (c *Controller) verify(ctx context.Context) error {
	symbol, ok := c.keypad.Poll()
	if !ok {
		c.clock.Sleep(c.timing.PollInterval)

		return nil
	}

	result := c.auth.Submit(c.ac, symbol)
	if result.Outcome != alarm.OutcomeIgnored {
		c.feedback.Render(alarm.StateVerifyingPassword, feedback.Key(symbol, result.Entered))
	}

	c.clock.Sleep(c.timing.PollInterval)

	switch result.Outcome {
	case alarm.OutcomeCorrect:
		logger.Info(ctx, "Password accepted")
		c.metrics.Disarm()

		return c.fire(ctx, eventDisarm)
	case alarm.OutcomeIncorrect:
		logger.WarnKV(ctx, "Password rejected", "attempts", result.Attempts, "max_attempts", c.auth.MaxAttempts())
		c.metrics.PasswordFailure()
		c.feedback.Render(alarm.StateVerifyingPassword, feedback.Event{Kind: feedback.KindIncorrect})
	case alarm.OutcomeLockedOut:
		logger.WarnKV(ctx, "Keypad locked", "attempts", result.Attempts)
		c.metrics.PasswordFailure()
		c.metrics.Lockout()

		return c.fire(ctx, eventLock)
	case alarm.OutcomePending, alarm.OutcomeIgnored:
	}

	return nil
}

// waitLockout runs the lockout countdown and reopens the keypad.
func (c *Controller) waitLockout(ctx context.Context) error {
	c.countdown(alarm.StateLocked, c.timing.LockoutTicks)
	c.auth.OnLockoutExpired(c.ac)
	c.feedback.Render(alarm.StateLocked, feedback.Event{Kind: feedback.KindLockoutExpired})

	logger.Info(ctx, "Lockout expired")

	return c.fire(ctx, eventUnlock)
}

// countdown renders ticks down to 1.
func (c *Controller) countdown(state alarm.State, ticks int) {
	for remaining := ticks; remaining > 0; remaining-- {
		c.feedback.Render(state, feedback.Countdown(remaining))
	}
}

// fire runs a transition. Entry feedback is rendered by onEnter before fire returns.
func (c *Controller) fire(ctx context.Context, event string) error {
	if err := c.machine.Event(ctx, event); err != nil {
		return fmt.Errorf("%s from %s: %w", event, c.State(), err)
	}

	return nil
}

// onEnter updates the context, counts the transition and renders the new state.
func (c *Controller) onEnter(ctx context.Context, e *fsm.Event) {
	from, to := alarm.State(e.Src), alarm.State(e.Dst)

	c.ac.State = to
	c.metrics.Transition(from, to)

	logger.InfoKV(ctx, "State changed", "event", e.Event, "from", from, "to", to)

	c.feedback.Render(to, feedback.EnterFrom(from))
}

// states converts states to fsm source names.
func states(ss ...alarm.State) []string {
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = s.String()
	}

	return names
}
