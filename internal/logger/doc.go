// Package logger wraps zap with a process-wide sugared logger and context helpers.
//
// Components take a context.Context and log through it, so a caller can
// scope names, key/value pairs and levels once (WithName, WithKV, Restrict)
// and every nested call inherits them.
package logger
