package alarm

import (
	"errors"
	"fmt"
)

// Symbol is a single keypad key.
type Symbol byte

const (
	// PasswordLength is the number of symbols in a password.
	PasswordLength = 4

	// MaxAttempts is the default number of consecutive mismatches that
	// escalates to a lockout.
	MaxAttempts = 3
)

// errUnknownSymbol is returned when text contains a key that is not on the keypad.
var errUnknownSymbol = errors.New("unknown keypad symbol")

// Keys returns the keypad alphabet in line order:
// line 1 reports Keys()[0], line 2 reports Keys()[1] and so on.
func Keys() []Symbol {
	return []Symbol{'1', '2', '3', '4'}
}

// KeyIndex returns the input line index of the symbol.
func KeyIndex(s Symbol) (int, bool) {
	for i, key := range Keys() {
		if key == s {
			return i, true
		}
	}

	return 0, false
}

// Valid reports whether the symbol belongs to the keypad alphabet.
func (s Symbol) Valid() bool {
	_, ok := KeyIndex(s)

	return ok
}

// String implements fmt.Stringer.
func (s Symbol) String() string {
	return string(rune(s))
}

// ParseSymbols converts text such as "1234" to keypad symbols.
func ParseSymbols(text string) ([]Symbol, error) {
	symbols := make([]Symbol, 0, len(text))

	for i := range len(text) {
		s := Symbol(text[i])
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %q at position %d", errUnknownSymbol, text[i], i)
		}

		symbols = append(symbols, s)
	}

	return symbols, nil
}
