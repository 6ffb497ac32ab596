package alarm

// State is a state of the alarm state machine.
// The string values double as state names of the underlying FSM.
type State string

const (
	// StateBooting is the initial state: display greeting and sensor warm-up.
	StateBooting State = "booting"
	// StateCalibratingSensor is the timed software initialization countdown.
	StateCalibratingSensor State = "calibrating_sensor"
	// StateSettingPassword waits for the user to enter the device password.
	StateSettingPassword State = "setting_password"
	// StateArmed polls the motion sensor.
	StateArmed State = "armed"
	// StateTriggered raises the alert after motion was detected.
	StateTriggered State = "triggered"
	// StateVerifyingPassword collects keypad input and checks it.
	StateVerifyingPassword State = "verifying_password"
	// StateLocked suspends password entry after too many failures.
	StateLocked State = "locked"
	// StateDisarmed celebrates a correct password before rearming.
	StateDisarmed State = "disarmed"
)

// States returns every state in lifecycle order.
func States() []State {
	return []State{
		StateBooting,
		StateCalibratingSensor,
		StateSettingPassword,
		StateArmed,
		StateTriggered,
		StateVerifyingPassword,
		StateLocked,
		StateDisarmed,
	}
}

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}
