package bridge

import (
	"log/slog"
)

const (
	DefaultName = "CefViewClient"

	methodAddEventListener    = "addEventListener"
	methodRemoveEventListener = "removeEventListener"
	methodInvoke              = "invoke"
)

// Bridge forwards calls to the CefView bridge object of a page.
type Bridge struct {
	name   string
	window Value
	logger *slog.Logger
}

type Option func(*Bridge)

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// New checks that window carries the bridge object called name and the
// CefView query functions, and returns a Bridge forwarding to them. The
// returned error is a *CapabilityError for the first check that failed.
func New(name string, window Value, opts ...Option) (*Bridge, error) {
	b := &Bridge{
		name:   name,
		window: window,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := validate(name, window); err != nil {
		b.logger.Debug("bridge unavailable", "name", name, "err", err)
		return nil, err
	}

	b.logger.Debug("bridge ready", "name", name)
	return b, nil
}

func validate(name string, window Value) error {
	fail := func(c Capability) error {
		return &CapabilityError{Bridge: name, Capability: c}
	}

	if window == nil || !window.Truthy() {
		return fail(CapEnvironment)
	}

	obj := window.Get(name)
	if obj == nil || !obj.Truthy() {
		return fail(CapObject)
	}
	if obj.Kind() != KindObject {
		return fail(CapObjectType)
	}

	methods := []struct {
		owner      Value
		name       string
		capability Capability
	}{
		{obj, methodAddEventListener, CapAddEventListener},
		{obj, methodRemoveEventListener, CapRemoveEventListener},
		{obj, methodInvoke, CapInvoke},
		{window, QueryFunction, CapQuery},
		{window, CancelQueryFunction, CapCancelQuery},
	}
	for _, m := range methods {
		if !isFunction(m.owner.Get(m.name)) {
			return fail(m.capability)
		}
	}
	return nil
}

// Name returns the name of the bridge object on window.
func (b *Bridge) Name() string {
	return b.name
}

func (b *Bridge) object() Value {
	return b.window.Get(b.name)
}

// AddEventListener registers l for event on the host bridge object.
func (b *Bridge) AddEventListener(event string, l *Listener) error {
	_, err := b.object().Call(methodAddEventListener, event, l)
	return err
}

// RemoveEventListener unregisters l for event on the host bridge object.
func (b *Bridge) RemoveEventListener(event string, l *Listener) error {
	_, err := b.object().Call(methodRemoveEventListener, event, l)
	return err
}

// Invoke calls method on the native side. Nothing is returned; the call is
// one way.
func (b *Bridge) Invoke(method string, args ...any) error {
	callArgs := make([]any, 0, len(args)+1)
	callArgs = append(callArgs, method)
	callArgs = append(callArgs, args...)

	_, err := b.object().Call(methodInvoke, callArgs...)
	return err
}

// Query sends request, encoded as JSON, to the native side. One of
// onSuccess and onFailure is called later by the host. The returned id can
// be passed to CancelQuery.
func (b *Bridge) Query(request any, onSuccess SuccessFunc, onFailure FailureFunc) (QueryID, error) {
	encoded, err := encodeRequest(request)
	if err != nil {
		return 0, err
	}

	ret, err := b.window.Call(QueryFunction, QueryDescriptor{
		Request:   encoded,
		OnSuccess: onSuccess,
		OnFailure: onFailure,
	})
	if err != nil {
		return 0, err
	}

	id := queryID(ret)
	b.logger.Debug("query sent", "name", b.name, "id", id)
	return id, nil
}

// CancelQuery asks the native side to cancel the query with the given id.
func (b *Bridge) CancelQuery(id QueryID) error {
	_, err := b.window.Call(CancelQueryFunction, id)
	return err
}
