package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"

	"github.com/oshokin/smart-guard/internal/domain/alarm"
	"github.com/oshokin/smart-guard/internal/hal/sim"
)

// newController returns a controller drawing on a fresh simulated board.
func newController(t *testing.T) (*Controller, *sim.Board) {
	t.Helper()

	b := sim.NewBoard(2, 16)
	c, err := New(Outputs{
		Red:     b.Red,
		Green:   b.Green,
		Blue:    b.Blue,
		Buzzer:  b.Buzzer,
		Display: b.Display,
		Clock:   b.Clock,
	}, alarm.DefaultTiming())
	require.NoError(t, err)

	return c, b
}

// withoutTime strips timestamps so sequences rendered at different times compare equal.
func withoutTime(calls []sim.Call) []sim.Call {
	for i := range calls {
		calls[i].At = 0
	}

	return calls
}

// TestNew_MissingOutput verifies every collaborator is required.
func TestNew_MissingOutput(t *testing.T) {
	t.Parallel()

	b := sim.NewBoard(2, 16)
	_, err := New(Outputs{Red: b.Red, Green: b.Green}, alarm.DefaultTiming())
	require.ErrorIs(t, err, ErrMissingOutput)
}

// TestRender_Idempotent renders every state and event twice and compares the call sequences.
func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	events := []Event{
		Enter(),
		Key('3', 2),
		{Kind: KindPasswordStored},
		Countdown(4),
		{Kind: KindIncorrect},
		{Kind: KindLockoutExpired},
	}

	for _, state := range alarm.States() {
		for _, ev := range events {
			c, b := newController(t)

			c.Render(state, ev)
			first := withoutTime(b.Log.Calls())
			elapsed := b.Clock.Now()

			mark := b.Log.Len()
			c.Render(state, ev)
			second := withoutTime(b.Log.Since(mark))

			require.Equal(t, first, second, "state %s event %s", state, ev.Kind)
			require.Equal(t, 2*elapsed, b.Clock.Now(), "state %s event %s", state, ev.Kind)
		}
	}
}

// TestRender_Boot checks the splash and calibration screens and their timing.
func TestRender_Boot(t *testing.T) {
	t.Parallel()

	c, b := newController(t)
	c.Render(alarm.StateBooting, Enter())

	require.Equal(t, []string{"Calibrating PIR", "Please wait..."}, b.Display.Rows())
	require.Equal(t, 4*time.Second, b.Clock.Now())
	require.False(t, b.Buzzer.Playing())

	var splash bool

	for _, call := range b.Log.Filter(sim.DeviceDisplay) {
		if call.Op == "text" && call.Arg == `"Burglar"` {
			require.Equal(t, 500*time.Millisecond, call.At)

			splash = true
		}
	}

	require.True(t, splash)
}

// TestRender_Countdown checks text placement and the order of chase and wait.
func TestRender_Countdown(t *testing.T) {
	t.Parallel()

	c, b := newController(t)
	c.Render(alarm.StateCalibratingSensor, Countdown(5))
	require.Equal(t, []string{"    5 seconds", ""}, b.Display.Rows())
	require.Equal(t, 1600*time.Millisecond, b.Clock.Now())

	red := b.Log.Filter(sim.DeviceRed)
	require.Equal(t, time.Duration(0), red[0].At)

	c, b = newController(t)
	c.Render(alarm.StateLocked, Countdown(1))
	require.Equal(t, []string{"    1 seconds", ""}, b.Display.Rows())

	red = b.Log.Filter(sim.DeviceRed)
	require.Equal(t, time.Second, red[0].At)
}

// TestRender_KeyEcho checks both echo columns and the setup beep.
func TestRender_KeyEcho(t *testing.T) {
	t.Parallel()

	c, b := newController(t)
	c.Render(alarm.StateSettingPassword, Key('4', 1))
	c.Render(alarm.StateSettingPassword, Key('2', 2))
	require.Equal(t, "           42", b.Display.Rows()[1])
	require.Len(t, b.Log.Filter(sim.DeviceBuzzer), 4)
	require.False(t, b.Buzzer.Playing())
	require.Equal(t, 200*time.Millisecond, b.Clock.Now())

	c, b = newController(t)
	for i, s := range []alarm.Symbol{'1', '2', '3'} {
		c.Render(alarm.StateVerifyingPassword, Key(s, i+1))
	}

	require.Equal(t, " 123", b.Display.Rows()[1])
	require.Empty(t, b.Log.Filter(sim.DeviceBuzzer))
	require.Zero(t, b.Clock.Now())
}

// TestRender_Triggered verifies the siren starts before the chase and stops before the state ends.
func TestRender_Triggered(t *testing.T) {
	t.Parallel()

	c, b := newController(t)
	c.Render(alarm.StateTriggered, Enter())

	buzzer := b.Log.Filter(sim.DeviceBuzzer)
	require.Len(t, buzzer, 2)
	require.Equal(t, "tone", buzzer[0].Op)
	require.Zero(t, buzzer[0].At)
	require.Equal(t, "off", buzzer[1].Op)
	require.Equal(t, 3800*time.Millisecond, buzzer[1].At)

	require.Equal(t, "Motion alert!!!", b.Display.Rows()[0])
	require.True(t, b.Red.On())
	require.False(t, b.Green.On())
	require.False(t, b.Blue.On())
}

// TestRender_Disarmed checks the melody and the final screen.
func TestRender_Disarmed(t *testing.T) {
	t.Parallel()

	c, b := newController(t)
	c.Render(alarm.StateDisarmed, Enter())

	var (
		tones  int
		melody time.Duration
		start  time.Duration
	)

	for _, call := range b.Log.Filter(sim.DeviceBuzzer) {
		if call.Op == "tone" {
			if tones == 0 {
				start = call.At
			}

			tones++
		} else {
			melody = call.At - start
		}
	}

	require.Equal(t, 9, tones)
	require.Equal(t, 3650*time.Millisecond, melody)
	require.Equal(t, alarm.SuccessMelody().Duration(), melody)
	require.Equal(t, []string{"Alarm", "      disarmed"}, b.Display.Rows())
	require.False(t, b.Green.On())
}

// TestRender_Prompt checks the prompt after an alert is spaced wider than after a lockout.
func TestRender_Prompt(t *testing.T) {
	t.Parallel()

	c, b := newController(t)

	c.Render(alarm.StateVerifyingPassword, EnterFrom(alarm.StateTriggered))
	require.Equal(t, []string{"Enter  password:", ""}, b.Display.Rows())

	c.Render(alarm.StateVerifyingPassword, EnterFrom(alarm.StateLocked))
	require.Equal(t, []string{"Enter password:", ""}, b.Display.Rows())
}

// TestRender_Incorrect checks the wrong password screen is followed by a fresh prompt.
func TestRender_Incorrect(t *testing.T) {
	t.Parallel()

	c, b := newController(t)
	c.Render(alarm.StateVerifyingPassword, Event{Kind: KindIncorrect})

	require.Equal(t, []string{"Enter password:", ""}, b.Display.Rows())
	require.True(t, b.Red.On())
	require.Equal(t, 3800*time.Millisecond, b.Clock.Now())

	var shown bool

	for _, call := range b.Log.Filter(sim.DeviceDisplay) {
		if call.Arg == `"incorrect"` {
			shown = true
		}
	}

	require.True(t, shown)
}

// TestRender_Lockout checks the lockout notice and the red LED at expiry.
func TestRender_Lockout(t *testing.T) {
	t.Parallel()

	c, b := newController(t)
	c.Render(alarm.StateLocked, Enter())
	require.Equal(t, []string{"Too many wrong", "attempts.Wait.."}, b.Display.Rows())
	require.False(t, b.Red.On())

	c.Render(alarm.StateLocked, Event{Kind: KindLockoutExpired})
	require.True(t, b.Red.On())
}

// TestRender_Options verifies custom siren and melody are used.
func TestRender_Options(t *testing.T) {
	t.Parallel()

	b := sim.NewBoard(2, 16)
	siren := alarm.Tone{Frequency: alarm.SirenTone().Frequency * 2, Duty: gpio.DutyMax}
	c, err := New(Outputs{
		Red:     b.Red,
		Green:   b.Green,
		Blue:    b.Blue,
		Buzzer:  b.Buzzer,
		Display: b.Display,
		Clock:   b.Clock,
	}, alarm.DefaultTiming(), WithSiren(siren), WithMelody(alarm.Melody{{Duration: time.Second}}))
	require.NoError(t, err)

	c.Render(alarm.StateTriggered, Enter())
	require.Equal(t, "tone", b.Log.Filter(sim.DeviceBuzzer)[0].Op)

	mark := b.Log.Len()
	c.Render(alarm.StateDisarmed, Enter())

	for _, call := range b.Log.Since(mark) {
		require.NotEqual(t, "tone", call.Op)
	}
}
