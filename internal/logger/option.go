package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// leveledCore filters a wrapped core by a fixed minimum level.
type leveledCore struct {
	zapcore.Core

	// level is the minimum level passed to the wrapped core.
	level zapcore.Level
}

// Enabled reports whether both the filter and the wrapped core accept l.
func (c *leveledCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l) && c.Core.Enabled(l)
}

// Check forwards enabled entries to the wrapped core.
//
//nolint:gocritic // zapcore.Core requires ent by value.
func (c *leveledCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(ent.Level) {
		return ce
	}

	return c.Core.Check(ent, ce)
}

// With keeps the level filter on derived cores.
//
//nolint:ireturn // zapcore.Core is the contract.
func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return &leveledCore{
		Core:  c.Core.With(fields),
		level: c.level,
	}
}

// WithLevel filters out entries below lvl.
//
//nolint:ireturn // zap.Option is the contract.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &leveledCore{
			Core:  core,
			level: lvl,
		}
	})
}
