// Package feedback maps alarm states and events to LED, buzzer and display calls.
//
// The controller here holds no mutable state: rendering the same state and
// event twice produces the same sequence of collaborator calls.
package feedback
