package alarm

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Tone is a buzzer setting.
type Tone struct {
	// Frequency of the square wave; zero means silence.
	Frequency physic.Frequency
	// Duty is the share of each period the output is high.
	Duty gpio.Duty
}

// Silent reports whether the tone produces no sound.
func (t Tone) Silent() bool {
	return t.Frequency == 0
}

// SirenTone is the continuous alert and key acknowledgement tone: a 16-bit PWM
// counter wrapping at 125 MHz with the compare register at 50000.
func SirenTone() Tone {
	return Tone{
		Frequency: 1907 * physic.Hertz,
		Duty:      gpio.Duty(uint64(gpio.DutyMax) * 50000 / 0xFFFF),
	}
}

// Note is one step of a melody.
type Note struct {
	// Frequency of the note; zero is a rest.
	Frequency physic.Frequency
	// Duration is how long the note is held.
	Duration time.Duration
}

// Melody is an ordered list of notes played back to back.
type Melody []Note

// Duration returns the total playback time.
func (m Melody) Duration() time.Duration {
	var total time.Duration
	for _, note := range m {
		total += note.Duration
	}

	return total
}

// SuccessMelody is played when the alarm is disarmed.
func SuccessMelody() Melody {
	const (
		a4 = 440 * physic.Hertz
		f4 = 349 * physic.Hertz
		c5 = 523 * physic.Hertz
	)

	return Melody{
		{Frequency: a4, Duration: 500 * time.Millisecond},
		{Frequency: a4, Duration: 500 * time.Millisecond},
		{Frequency: a4, Duration: 500 * time.Millisecond},
		{Frequency: f4, Duration: 350 * time.Millisecond},
		{Frequency: c5, Duration: 150 * time.Millisecond},
		{Frequency: a4, Duration: 500 * time.Millisecond},
		{Frequency: f4, Duration: 350 * time.Millisecond},
		{Frequency: c5, Duration: 150 * time.Millisecond},
		{Frequency: a4, Duration: 650 * time.Millisecond},
	}
}
