// Package locked demonstrates methods registered as not overridable: they
// stay reachable directly, but the protected entry points refuse them.
package locked

// ledger is the production type. Sealing is the kind of irreversible
// behavior a generator invocation might choose to keep on the base type.
type ledger struct {
	entries []string
	sealed  bool
}

// post appends an entry and reports the ledger length.
func (l *ledger) post(entry string) int {
	l.entries = append(l.entries, entry)

	return len(l.entries)
}

// seal marks the ledger immutable.
func (l *ledger) seal() {
	l.sealed = true
}
