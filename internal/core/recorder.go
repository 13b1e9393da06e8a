package core

// This file provides the default handler: a per-test recorder that logs
// intercepted calls and plays back canned return values. Anything beyond
// that (matching, expectations, verification) belongs to whatever host
// framework the test wires into the Handler seam instead.

import (
	"sync"
)

// CallRecord is one intercepted call: the method name and the arguments it
// was invoked with.
type CallRecord struct {
	Method string
	Args   []any
}

// Recorder is a minimal Handler implementation. It records every call it
// handles and returns whatever canned values have been configured for the
// method name, or nil when none have.
//
// A Recorder is safe for concurrent use: substitutes under test may be
// called from goroutines the test spawns.
type Recorder struct {
	mu      sync.Mutex
	calls   []CallRecord
	returns map[string][]any
}

// RecorderFor returns the Recorder for the given test, creating one if
// needed. Multiple calls with the same TestReporter return the same
// Recorder, so every substitute in a test can share one call log.
//
// If the TestReporter supports Cleanup (like *testing.T), the Recorder is
// automatically removed from the registry when the test completes.
func RecorderFor(t TestReporter) *Recorder {
	recordersMu.Lock()
	defer recordersMu.Unlock()

	if recorder, ok := recorders[t]; ok {
		return recorder
	}

	recorder := &Recorder{}
	recorders[t] = recorder

	// Deregister when the test ends, if the reporter supports it
	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			recordersMu.Lock()
			delete(recorders, t)
			recordersMu.Unlock()
		})
	}

	return recorder
}

// Handle is a Handler: it records the call and returns the canned values
// configured for the method, if any. Assign it to a substitute's Handler
// field.
func (r *Recorder) Handle(method string, args []any) []any {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, CallRecord{Method: method, Args: args})

	return r.returns[method]
}

// Return configures the values Handle plays back for calls to the named
// method. Later calls replace earlier configuration for the same name.
func (r *Recorder) Return(method string, values ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.returns == nil {
		r.returns = make(map[string][]any)
	}

	r.returns[method] = values
}

// Calls returns a copy of the recorded calls, in arrival order.
func (r *Recorder) Calls() []CallRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	calls := make([]CallRecord, len(r.calls))
	copy(calls, r.calls)

	return calls
}

// Reset clears the call log and the canned returns.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = nil
	r.returns = nil
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	recorders = make(map[TestReporter]*Recorder)
	//nolint:gochecknoglobals // Mutex for recorders
	recordersMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup
// functions. This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
