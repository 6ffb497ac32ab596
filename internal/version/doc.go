// Package version exposes smart-guard build metadata injected with -ldflags.
package version
