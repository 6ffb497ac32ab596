// Package hal declares the capabilities the alarm core needs from the board:
// digital inputs and outputs, a tone generator, a character display and a
// cooperative clock.
//
// Collaborators never return errors to the core. Hardware bindings report
// failures to a Faults latch instead, and the state machine escalates a
// latched fault to a halt.
package hal
