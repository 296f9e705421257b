package bridge

import (
	"fmt"
	"math"
)

// fakeValue is an in-memory stand-in for a host JavaScript value.
type fakeValue struct {
	kind  Kind
	num   float64
	str   string
	props map[string]*fakeValue
	fn    func(args []any) (Value, error)
}

func undefinedValue() *fakeValue { return &fakeValue{kind: KindUndefined} }

func numberValue(n float64) *fakeValue { return &fakeValue{kind: KindNumber, num: n} }

func stringValue(s string) *fakeValue { return &fakeValue{kind: KindString, str: s} }

func objectValue() *fakeValue {
	return &fakeValue{kind: KindObject, props: map[string]*fakeValue{}}
}

func funcValue(fn func(args []any) (Value, error)) *fakeValue {
	return &fakeValue{kind: KindFunction, fn: fn}
}

func (f *fakeValue) Kind() Kind { return f.kind }

func (f *fakeValue) Truthy() bool {
	switch f.kind {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return f.num != 0
	case KindNumber:
		return f.num != 0 && !math.IsNaN(f.num)
	case KindString:
		return f.str != ""
	}
	return true
}

func (f *fakeValue) Get(property string) Value {
	if v, ok := f.props[property]; ok {
		return v
	}
	return undefinedValue()
}

func (f *fakeValue) Call(method string, args ...any) (Value, error) {
	m, ok := f.props[method]
	if !ok || m.kind != KindFunction {
		return nil, fmt.Errorf("TypeError: %s is not a function", method)
	}
	return m.fn(args)
}

func (f *fakeValue) String() string {
	if f.kind == KindString {
		return f.str
	}
	return f.kind.String()
}

func (f *fakeValue) Float() float64 {
	if f.kind == KindNumber {
		return f.num
	}
	return math.NaN()
}

// fakeHost is a window carrying a complete CefView bridge that records
// every call made to it.
type fakeHost struct {
	name   string
	window *fakeValue
	object *fakeValue
	calls  map[string][][]any

	queryResult Value
	callErr     error
}

func newFakeHost(name string) *fakeHost {
	h := &fakeHost{
		name:        name,
		window:      objectValue(),
		object:      objectValue(),
		calls:       map[string][][]any{},
		queryResult: numberValue(42),
	}
	h.object.props[methodAddEventListener] = h.recorder(methodAddEventListener, nil)
	h.object.props[methodRemoveEventListener] = h.recorder(methodRemoveEventListener, nil)
	h.object.props[methodInvoke] = h.recorder(methodInvoke, nil)
	h.window.props[name] = h.object
	h.window.props[QueryFunction] = h.recorder(QueryFunction, func() Value { return h.queryResult })
	h.window.props[CancelQueryFunction] = h.recorder(CancelQueryFunction, nil)
	return h
}

func (h *fakeHost) recorder(name string, result func() Value) *fakeValue {
	return funcValue(func(args []any) (Value, error) {
		h.calls[name] = append(h.calls[name], args)
		if h.callErr != nil {
			return nil, h.callErr
		}
		if result != nil {
			return result(), nil
		}
		return undefinedValue(), nil
	})
}
