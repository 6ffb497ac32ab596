package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/oshokin/smart-guard/internal/domain/alarm"
)

var (
	// ErrPasswordAlreadySet is returned when the password is set a second time.
	ErrPasswordAlreadySet = errors.New("password already set")
	// ErrInvalidPassword is returned when the password is not exactly four keypad symbols.
	ErrInvalidPassword = errors.New("password must be 4 keypad symbols")
)

// Authenticator decides whether typed symbols match the stored password.
type Authenticator struct {
	// maxAttempts is the number of consecutive mismatches that locks the keypad.
	maxAttempts int
	// cost is the bcrypt work factor of the password digest.
	cost int
}

// Option configures the authenticator.
type Option func(*Authenticator)

// WithMaxAttempts sets how many mismatches lock the keypad.
func WithMaxAttempts(n int) Option {
	return func(a *Authenticator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithHashCost sets the bcrypt work factor.
func WithHashCost(cost int) Option {
	return func(a *Authenticator) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			a.cost = cost
		}
	}
}

// New returns an authenticator with three attempts and the cheapest bcrypt cost.
func New(opts ...Option) *Authenticator {
	a := &Authenticator{
		maxAttempts: alarm.MaxAttempts,
		cost:        bcrypt.MinCost,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// MaxAttempts returns the configured attempt limit.
func (a *Authenticator) MaxAttempts() int {
	return a.maxAttempts
}

// SetPassword stores the digest of sequence in ac. It succeeds once per device lifetime.
func (a *Authenticator) SetPassword(ac *alarm.Context, sequence []alarm.Symbol) error {
	if ac.HasPassword() {
		return ErrPasswordAlreadySet
	}

	if len(sequence) != alarm.PasswordLength {
		return fmt.Errorf("%w: got %d symbols", ErrInvalidPassword, len(sequence))
	}

	for _, s := range sequence {
		if !s.Valid() {
			return fmt.Errorf("%w: %q is not on the keypad", ErrInvalidPassword, s)
		}
	}

	digest, err := bcrypt.GenerateFromPassword(encode(sequence), a.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ac.PasswordDigest = digest
	ac.ClearEntry()
	ac.Attempts = 0
	ac.Locked = false

	return nil
}

// Submit appends symbol to the entry buffer and judges the entry once it is complete.
// The buffer is always cleared after a comparison. While the keypad is locked,
// before a password exists, or for symbols that are not on the keypad,
// Submit changes nothing and reports OutcomeIgnored.
func (a *Authenticator) Submit(ac *alarm.Context, symbol alarm.Symbol) alarm.EntryResult {
	if ac.Locked || !ac.HasPassword() || !symbol.Valid() {
		return alarm.EntryResult{
			Outcome:  alarm.OutcomeIgnored,
			Attempts: ac.Attempts,
			Entered:  len(ac.Entry),
		}
	}

	ac.Entry = append(ac.Entry, symbol)

	entered := len(ac.Entry)
	if entered < alarm.PasswordLength {
		return alarm.EntryResult{
			Outcome:  alarm.OutcomePending,
			Attempts: ac.Attempts,
			Entered:  entered,
		}
	}

	match := bcrypt.CompareHashAndPassword(ac.PasswordDigest, encode(ac.Entry)) == nil

	ac.ClearEntry()

	if match {
		ac.Attempts = 0

		return alarm.EntryResult{
			Outcome: alarm.OutcomeCorrect,
			Entered: entered,
		}
	}

	ac.Attempts++

	attempts := ac.Attempts
	if attempts >= a.maxAttempts {
		// The counter restarts when the lockout begins, not when it ends.
		ac.Attempts = 0
		ac.Locked = true

		return alarm.EntryResult{
			Outcome:  alarm.OutcomeLockedOut,
			Attempts: attempts,
			Entered:  entered,
		}
	}

	return alarm.EntryResult{
		Outcome:  alarm.OutcomeIncorrect,
		Attempts: attempts,
		Entered:  entered,
	}
}

// OnLockoutExpired reopens the keypad after the lockout countdown.
func (a *Authenticator) OnLockoutExpired(ac *alarm.Context) {
	ac.Locked = false
	ac.Attempts = 0
	ac.ClearEntry()
}

// encode renders symbols as the bcrypt input.
func encode(symbols []alarm.Symbol) []byte {
	b := make([]byte, len(symbols))
	for i, s := range symbols {
		b[i] = byte(s)
	}

	return b
}
