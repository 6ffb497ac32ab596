package alarm

import "slices"

// Context is the mutable state of one device. The state machine owns it
// exclusively and lends it to sub-components for the duration of a single call.
type Context struct {
	// State is the active state of the state machine.
	State State
	// PasswordDigest is the bcrypt digest of the stored password.
	// It is empty until the password has been set.
	PasswordDigest []byte
	// Entry holds the symbols typed since the last comparison.
	Entry []Symbol
	// Attempts counts consecutive mismatches.
	Attempts int
	// Locked is raised while the keypad is locked out.
	Locked bool
}

// NewContext returns the context of a freshly booted device.
func NewContext() *Context {
	return &Context{
		State: StateBooting,
		Entry: make([]Symbol, 0, PasswordLength),
	}
}

// HasPassword reports whether a password has been stored.
func (c *Context) HasPassword() bool {
	return len(c.PasswordDigest) > 0
}

// ClearEntry drops buffered symbols without releasing the buffer.
func (c *Context) ClearEntry() {
	clear(c.Entry)
	c.Entry = c.Entry[:0]
}

// Clone returns a copy of the context to avoid leaking internal references.
func (c *Context) Clone() *Context {
	return &Context{
		State:          c.State,
		PasswordDigest: slices.Clone(c.PasswordDigest),
		Entry:          slices.Clone(c.Entry),
		Attempts:       c.Attempts,
		Locked:         c.Locked,
	}
}
