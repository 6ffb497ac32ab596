package guard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/smart-guard/internal/logger"
)

// errAlreadyRunning is returned when another process owns the GPIO lines.
var errAlreadyRunning = errors.New("another instance is already running")

// ensureSingleInstance refuses to start while another process with the same
// executable name is alive. Only one process may drive the GPIO lines.
func ensureSingleInstance(ctx context.Context) error {
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	pid, found, err := findInstance(filepath.Base(executable), os.Getpid())
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	if found {
		logger.ErrorKV(ctx, "Another instance is running", "pid", pid)

		return fmt.Errorf("%w: pid %d", errAlreadyRunning, pid)
	}

	return nil
}

// findInstance looks for a process named name other than self.
func findInstance(name string, self int) (int, bool, error) {
	processList, err := ps.Processes()
	if err != nil {
		return 0, false, err
	}

	for _, process := range processList {
		if process.Pid() == self {
			continue
		}

		if process.Executable() == name {
			return process.Pid(), true, nil
		}
	}

	return 0, false, nil
}
