// Package calldesc demonstrates the call-description forms Invoke accepts:
// method expressions on the base type, method expressions on the substitute,
// and bound method values.
package calldesc

// thermostat is the production type under substitution.
type thermostat struct {
	target int
}

// setpoint reports the configured target temperature.
func (th *thermostat) setpoint() int {
	return th.target
}

// nudge shifts the target and reports the new value.
func (th *thermostat) nudge(delta int) int {
	th.target += delta

	return th.target
}

// dial is an unrelated type whose methods are never registered anywhere.
type dial struct{}

// calibrate exists only to produce a description that resolves to nothing.
func (d *dial) calibrate() int {
	return 0
}
