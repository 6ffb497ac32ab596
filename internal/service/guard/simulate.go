package guard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/smart-guard/internal/hal/sim"
	"github.com/oshokin/smart-guard/internal/logger"
	"github.com/oshokin/smart-guard/internal/metrics"
)

// SimulateOptions controls a simulated run.
type SimulateOptions struct {
	// ConfigPath specifies the path to the configuration YAML file; empty uses defaults.
	ConfigPath string
	// ScenarioPath is the scenario YAML file.
	ScenarioPath string
	// LogLevel overrides the configured log level when set.
	LogLevel string
	// Output receives the transcript; nil means stdout.
	Output io.Writer
	// DisplayOnly limits the transcript to display calls and the controller
	// logs to warnings and errors.
	DisplayOnly bool
}

// errNoScenario is returned when no scenario file is given.
var errNoScenario = errors.New("scenario path is required")

// Simulate runs the controller on a simulated board with a virtual clock until
// the scenario duration has elapsed, then prints every output call, the final
// state and the final screen.
func Simulate(ctx context.Context, opts *SimulateOptions) error {
	ctx = logger.WithName(ctx, "simulate")

	if opts.ScenarioPath == "" {
		return errNoScenario
	}

	cfg, err := loadConfig(opts.ConfigPath, opts.LogLevel)
	if err != nil {
		return err
	}

	scenario, err := sim.LoadScenario(opts.ScenarioPath)
	if err != nil {
		return err
	}

	board := sim.NewBoard(cfg.Display.Rows, cfg.Display.Cols)
	keys, motionLine := scenario.Inputs(board.Clock)

	recorder := metrics.New()
	defer exportMetrics(ctx, recorder, cfg.MetricsFile)

	controller, err := NewController(cfg, board.Collaborators(keys, motionLine), board.Clock,
		WithMetrics(recorder),
	)
	if err != nil {
		return fmt.Errorf("wire controller: %w", err)
	}

	logger.InfoKV(ctx, "Simulation started", "scenario", opts.ScenarioPath, "duration", scenario.Duration)

	stepCtx := ctx
	if opts.DisplayOnly {
		stepCtx = logger.Restrict(ctx, zapcore.WarnLevel)
	}

	for board.Clock.Now() < scenario.Duration && ctx.Err() == nil {
		if err = controller.Step(stepCtx); err != nil {
			return err
		}
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return writeTranscript(out, board, controller, cfg.Display.Cols, opts.DisplayOnly)
}

// writeTranscript prints the recorded calls followed by the final state and screen.
func writeTranscript(w io.Writer, board *sim.Board, controller *Controller, cols int, displayOnly bool) error {
	calls := board.Log.Calls()
	if displayOnly {
		calls = board.Log.Filter(sim.DeviceDisplay)
	}

	for _, call := range calls {
		if _, err := fmt.Fprintln(w, call); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w, "\nelapsed: %s\nstate: %s\n", board.Clock.Now(), controller.State()); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	for _, row := range board.Display.Rows() {
		if _, err := fmt.Fprintf(w, "|%-*s|\n", cols, row); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}

	return nil
}
