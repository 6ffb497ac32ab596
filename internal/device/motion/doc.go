// Package motion reads the PIR sensor line.
//
// Normally open sensors drive the line high on motion; normally closed ones
// pull it low.
package motion
