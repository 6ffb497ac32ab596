package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/oshokin/smart-guard/internal/domain/alarm"
)

const namespace = "smart_guard"

// Recorder owns the alarm collectors. A nil Recorder discards everything.
type Recorder struct {
	registry *prometheus.Registry

	transitions      *prometheus.CounterVec
	passwordFailures prometheus.Counter
	lockouts         prometheus.Counter
	disarms          prometheus.Counter
	triggers         prometheus.Counter
	state            *prometheus.GaugeVec
}

// New returns a recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Recorder{
		registry: reg,
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Total number of state transitions",
			},
			[]string{"from", "to"},
		),
		passwordFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_failures_total",
			Help:      "Total number of wrong password entries",
		}),
		lockouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lockouts_total",
			Help:      "Total number of keypad lockouts",
		}),
		disarms: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "disarms_total",
			Help:      "Total number of successful disarms",
		}),
		triggers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "triggers_total",
			Help:      "Total number of motion alerts",
		}),
		state: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "state",
				Help:      "Active state (1 for the current state, 0 otherwise)",
			},
			[]string{"state"},
		),
	}

	for _, s := range alarm.States() {
		r.state.WithLabelValues(s.String()).Set(0)
	}

	r.state.WithLabelValues(alarm.StateBooting.String()).Set(1)

	return r
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}

	return r.registry
}

// Transition counts a state change and moves the state gauge.
func (r *Recorder) Transition(from, to alarm.State) {
	if r == nil {
		return
	}

	r.transitions.WithLabelValues(from.String(), to.String()).Inc()
	r.state.WithLabelValues(from.String()).Set(0)
	r.state.WithLabelValues(to.String()).Set(1)
}

// PasswordFailure counts a wrong password entry.
func (r *Recorder) PasswordFailure() {
	if r == nil {
		return
	}

	r.passwordFailures.Inc()
}

// Lockout counts a keypad lockout.
func (r *Recorder) Lockout() {
	if r == nil {
		return
	}

	r.lockouts.Inc()
}

// Disarm counts a successful disarm.
func (r *Recorder) Disarm() {
	if r == nil {
		return
	}

	r.disarms.Inc()
}

// Trigger counts a motion alert.
func (r *Recorder) Trigger() {
	if r == nil {
		return
	}

	r.triggers.Inc()
}

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}

	return nil
}
