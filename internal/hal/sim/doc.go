// Package sim is a simulated board for desktop runs and tests.
//
// Time is virtual: Clock.Sleep advances it instantly, so a full alarm cycle
// runs in microseconds and every run is reproducible. Outputs record each call
// into a shared Log; inputs are either scheduled on the virtual clock (Line)
// or scripted per read (Script, Keypad). Scenario files describe scheduled
// inputs in YAML.
package sim
