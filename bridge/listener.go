package bridge

// Listener is an event handler that can be registered on a Bridge.
//
// Go functions cannot be compared, so the *Listener pointer is the handler
// identity: host adapters map it to a single host function, and passing the
// same *Listener to RemoveEventListener removes what AddEventListener added.
type Listener struct {
	fn func(args ...Value)
}

// NewListener returns a listener calling fn with the arguments the host
// dispatches the event with.
func NewListener(fn func(args ...Value)) *Listener {
	return &Listener{fn: fn}
}

// Handle runs the listener function. A nil listener or function is a no-op.
func (l *Listener) Handle(args ...Value) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(args...)
}
