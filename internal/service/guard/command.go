package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/smart-guard/internal/config"
	"github.com/oshokin/smart-guard/internal/hal"
	"github.com/oshokin/smart-guard/internal/hal/rpi"
	"github.com/oshokin/smart-guard/internal/logger"
	"github.com/oshokin/smart-guard/internal/metrics"
)

// Options controls the smart-guard device process.
type Options struct {
	// ConfigPath specifies the path to the configuration YAML file; empty uses defaults.
	ConfigPath string
	// LogLevel overrides the configured log level when set.
	LogLevel string
}

// quieter switches outputs off on the halt path.
type quieter interface {
	Quiet()
}

// Run binds the controller to the Raspberry Pi board and runs it until ctx is canceled.
// Hardware failures halt the device: outputs are switched off and Run waits for ctx
// before returning an error wrapping ErrHalted.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "smart-guard")

	cfg, err := loadConfig(opts.ConfigPath, opts.LogLevel)
	if err != nil {
		return err
	}

	if err = ensureSingleInstance(ctx); err != nil {
		return err
	}

	faults := new(hal.Faults)

	board, err := rpi.Open(cfg, faults)
	if err != nil {
		return halt(ctx, nil, fmt.Errorf("open board: %w", err))
	}

	defer func() {
		if closeErr := board.Close(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to release board", "error", closeErr)
		}
	}()

	recorder := metrics.New()
	defer exportMetrics(ctx, recorder, cfg.MetricsFile)

	controller, err := NewController(cfg, board.Collaborators(), hal.SystemClock{},
		WithFaults(faults),
		WithMetrics(recorder),
	)
	if err != nil {
		return halt(ctx, board, fmt.Errorf("wire controller: %w", err))
	}

	logger.InfoKV(ctx, "Device ready",
		"keypad", cfg.Pins.Keypad,
		"motion", cfg.Pins.Motion,
		"display_address", fmt.Sprintf("%#x", cfg.Display.Address))

	if err = controller.Run(ctx); err != nil {
		return halt(ctx, board, err)
	}

	return nil
}

// loadConfig reads the configuration and applies the log level.
func loadConfig(path, levelOverride string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if levelOverride != "" {
		cfg.LogLevel = levelOverride
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidLogLevel, cfg.LogLevel)
	}

	logger.SetLevel(level)

	return cfg, nil
}

// halt logs cause, switches outputs off when possible and blocks until ctx is done.
// There is no retry.
func halt(ctx context.Context, outputs quieter, cause error) error {
	logger.ErrorKV(ctx, "Device halted", "error", cause)

	if outputs != nil {
		outputs.Quiet()
	}

	<-ctx.Done()

	if errors.Is(cause, ErrHalted) {
		return cause
	}

	return fmt.Errorf("%w: %w", ErrHalted, cause)
}

// exportMetrics writes the metrics textfile when a path is configured.
func exportMetrics(ctx context.Context, recorder *metrics.Recorder, path string) {
	if path == "" {
		return
	}

	if err := recorder.WriteTextfile(path); err != nil {
		logger.ErrorKV(ctx, "Failed to export metrics", "error", err)

		return
	}

	logger.InfoKV(ctx, "Metrics exported", "path", path)
}
