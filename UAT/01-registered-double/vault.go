// Package regdouble demonstrates the basic workflow: a hand-written
// substitute registers its non-public methods, a recorder observes them.
package regdouble

// vault is the production type under substitution. Its methods are
// deliberately non-public: they are internal behavior a test still needs to
// reach.
type vault struct {
	balance int
}

// deposit adds funds and reports the new balance.
func (v *vault) deposit(amount int) int {
	v.balance += amount

	return v.balance
}

// audit reports the current balance.
func (v *vault) audit() int {
	return v.balance
}
