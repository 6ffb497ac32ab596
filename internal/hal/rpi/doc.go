// Package rpi binds the hal collaborators to Raspberry Pi hardware through periph.io.
//
// Collaborator calls never return errors. Failures are reported to a
// hal.Faults latch that the controller checks after every step.
package rpi
