// Package alarm contains core domain types for the intrusion alarm.
//
// It defines the keypad Symbol alphabet, the State set of the alarm state
// machine, the Context that the state machine owns and lends to its
// sub-components, entry results, tones, the success melody and the fixed
// timing table of the device.
package alarm
