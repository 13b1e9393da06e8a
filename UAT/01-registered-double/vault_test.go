package regdouble // NOT package regdouble_test - the substitute needs the non-public methods

import (
	"testing"

	"github.com/toejough/privateer"
)

// vaultSub substitutes vault. It has the same shape privgen generates:
// embed the base type and privateer.Core, shadow each intercepted method
// with a body that routes through the handler seam.
type vaultSub struct {
	vault
	privateer.Core
}

func newVaultSub() *vaultSub {
	s := &vaultSub{}
	s.ProtectedMethods().Register(privateer.Method{Name: "deposit", Func: s.deposit, Overridable: true})
	s.ProtectedMethods().Register(privateer.Method{Name: "audit", Func: s.audit, Overridable: true})

	return s
}

func (s *vaultSub) deposit(a0 int) int {
	out := s.HandleCall("deposit", a0)

	var r0 int
	if len(out) > 0 && out[0] != nil {
		r0 = out[0].(int)
	}

	return r0
}

func (s *vaultSub) audit() int {
	out := s.HandleCall("audit")

	var r0 int
	if len(out) > 0 && out[0] != nil {
		r0 = out[0].(int)
	}

	return r0
}

// TestRegisteredDouble walks the core workflow end to end.
func TestRegisteredDouble(t *testing.T) {
	t.Parallel()

	// 1. Build the substitute; its constructor registers the protected methods.
	sub := newVaultSub()

	// 2. Wire the per-test recorder into the handler seam.
	recorder := privateer.RecorderFor(t)
	sub.Handler = recorder.Handle

	// 3. Configure a canned return for the intercepted method.
	recorder.Return("deposit", 150)

	// 4. Invoke the protected method; the canned value comes back instead of
	// the real behavior.
	got := privateer.MustInvoke[int](t, sub, (*vault).deposit, 50)
	if got != 150 {
		t.Errorf("deposit returned %d, want the canned 150", got)
	}

	// 5. The real vault was never touched.
	if sub.vault.balance != 0 {
		t.Errorf("base balance = %d, want 0", sub.vault.balance)
	}

	// 6. The recorder observed the call and its arguments.
	calls := recorder.Calls()
	if len(calls) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(calls))
	}

	if calls[0].Method != "deposit" || len(calls[0].Args) != 1 || calls[0].Args[0] != 50 {
		t.Errorf("recorded call = %+v, want deposit(50)", calls[0])
	}
}

// TestInvokeByName reaches the same seam with a plain string, for callers
// that have no method expression handy.
func TestInvokeByName(t *testing.T) {
	t.Parallel()

	sub := newVaultSub()

	recorder := privateer.RecorderFor(t)
	sub.Handler = recorder.Handle
	recorder.Return("audit", 42)

	// 1. Name-based invocation returns every result, untyped.
	results := privateer.MustInvokeByName(t, sub, "audit")
	if len(results) != 1 || results[0] != 42 {
		t.Errorf("audit returned %v, want [42]", results)
	}

	// 2. The call log covers name-based invocations too.
	calls := recorder.Calls()
	if len(calls) != 1 || calls[0].Method != "audit" {
		t.Errorf("recorded calls = %+v, want one audit call", calls)
	}
}
