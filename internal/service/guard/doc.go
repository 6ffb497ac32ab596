// Package guard runs the alarm state machine.
//
// The Controller drives a looplab/fsm machine through booting, calibration,
// password setup, the armed loop, intrusion alerts, password verification,
// lockouts and disarming. It polls inputs on a single goroutine and renders
// every transition through the feedback package. Run binds the controller to
// Raspberry Pi hardware; Simulate runs it on a simulated board against a
// scripted scenario.
package guard
