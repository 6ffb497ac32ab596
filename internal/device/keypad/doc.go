// Package keypad turns the four keypad lines into symbols.
//
// The scanner samples every line on each poll and reports at most one
// symbol. When several keys are down the first line in wiring order wins.
// A key held across polls is reported again on every poll.
package keypad
