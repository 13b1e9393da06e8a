// Package resolve demonstrates the failure modes of method resolution:
// ambiguous names, unknown names, and unregistered methods on the
// substitute itself.
package resolve

// audio and video both provide a blend method. A substitute embedding both
// registers the name twice, which is exactly the ambiguity lookups must
// report rather than guess through.
type audio struct {
	level int
}

func (a *audio) blend(with int) int {
	return a.level + with
}

type video struct {
	level int
}

func (v *video) blend(with int) int {
	return v.level * with
}
