// Package testifyhost demonstrates bridging the handler seam into
// testify/mock, so protected calls flow through a full mocking framework.
package testifyhost

// notifier is the production type under substitution.
type notifier struct {
	sent int
}

// dispatch sends a message and reports whether the channel is still open.
func (n *notifier) dispatch(msg string) bool {
	n.sent++

	return n.sent < 100
}

// drop resets the send counter.
func (n *notifier) drop() {
	n.sent = 0
}
