// Package auth implements password setup, verification and the lockout policy.
//
// The Authenticator holds policy only. All mutable data (password digest,
// entry buffer, attempt counter, lockout flag) lives in the alarm.Context
// owned by the state machine and is passed in on every call.
package auth
