package feedback

import "github.com/oshokin/smart-guard/internal/domain/alarm"

// Kind identifies what happened inside a state.
type Kind int

const (
	// KindEnter is rendered once when a state is entered.
	KindEnter Kind = iota
	// KindKey echoes an accepted keypad symbol.
	KindKey
	// KindPasswordStored confirms the new password.
	KindPasswordStored
	// KindCountdown is one step of a countdown.
	KindCountdown
	// KindIncorrect reports a wrong password that did not lock the keypad.
	KindIncorrect
	// KindLockoutExpired ends the lockout countdown.
	KindLockoutExpired
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindEnter:
		return "enter"
	case KindKey:
		return "key"
	case KindPasswordStored:
		return "password_stored"
	case KindCountdown:
		return "countdown"
	case KindIncorrect:
		return "incorrect"
	case KindLockoutExpired:
		return "lockout_expired"
	default:
		return "unknown"
	}
}

// Event is the input of Render.
type Event struct {
	// Kind is the event type.
	Kind Kind
	// Symbol is the key to echo for KindKey.
	Symbol alarm.Symbol
	// Position is the 1-based index of Symbol within the entry.
	Position int
	// Remaining is the countdown value for KindCountdown.
	Remaining int
	// From is the state left for KindEnter; empty when unknown.
	From alarm.State
}

// Enter returns the state entry event.
func Enter() Event {
	return Event{Kind: KindEnter}
}

// EnterFrom returns the entry event of a transition out of from.
func EnterFrom(from alarm.State) Event {
	return Event{Kind: KindEnter, From: from}
}

// Key returns the echo event for the symbol typed at the 1-based position.
func Key(symbol alarm.Symbol, position int) Event {
	return Event{
		Kind:     KindKey,
		Symbol:   symbol,
		Position: position,
	}
}

// Countdown returns one countdown step.
func Countdown(remaining int) Event {
	return Event{
		Kind:      KindCountdown,
		Remaining: remaining,
	}
}
