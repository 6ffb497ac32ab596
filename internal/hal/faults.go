package hal

import "sync"

// Faults latches the first collaborator failure.
// The zero value is ready to use and safe for concurrent use.
type Faults struct {
	// mu protects err.
	mu sync.Mutex
	// err is the first reported failure.
	err error
}

// Report records err unless a failure is already latched.
func (f *Faults) Report(err error) {
	if err == nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err == nil {
		f.err = err
	}
}

// Err returns the latched failure, if any.
func (f *Faults) Err() error {
	if f == nil {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}
