//go:build js && wasm

package jshost

import (
	"fmt"
	"math"
	"syscall/js"

	"github.com/arko-chat/cefview/bridge"
)

// Value is a js.Value bound to the Host it came from.
type Value struct {
	host *Host
	v    js.Value
}

var _ bridge.Value = (*Value)(nil)

func (v *Value) JS() js.Value {
	return v.v
}

// Kind and Truthy accept a nil *Value as undefined.
func (v *Value) Kind() bridge.Kind {
	if v == nil {
		return bridge.KindUndefined
	}
	return kindOf(v.v)
}

func (v *Value) Truthy() bool {
	return v != nil && v.v.Truthy()
}

func (v *Value) Get(property string) bridge.Value {
	switch v.v.Type() {
	case js.TypeObject, js.TypeFunction:
		return v.host.Wrap(v.v.Get(property))
	}
	return v.host.Wrap(js.Undefined())
}

// Call calls method on the value. A JavaScript exception is returned as a
// js.Error.
func (v *Value) Call(method string, args ...any) (bridge.Value, error) {
	switch v.v.Type() {
	case js.TypeObject, js.TypeFunction:
	default:
		return nil, fmt.Errorf("jshost: cannot call %s on %s", method, v.Kind())
	}
	if v.v.Get(method).Type() != js.TypeFunction {
		return nil, fmt.Errorf("jshost: %s is not a function", method)
	}

	var query *pendingQuery
	callArgs := make([]any, len(args))
	for i, a := range args {
		if d, ok := a.(bridge.QueryDescriptor); ok {
			query = v.host.newQuery(d)
			a = query
		}
		jv, err := v.host.toValue(a)
		if err != nil {
			if query != nil {
				query.finish()
			}
			return nil, err
		}
		callArgs[i] = jv
	}

	out, err := call(v.v, method, callArgs)
	if err != nil {
		if query != nil {
			query.finish()
		}
		return nil, err
	}

	if query != nil {
		query.track(out)
	}
	if method == bridge.CancelQueryFunction && len(args) == 1 {
		if id, ok := args[0].(bridge.QueryID); ok {
			v.host.cancelled(int64(id))
		}
	}
	return v.host.Wrap(out), nil
}

func call(v js.Value, method string, args []any) (ret js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			jsErr, ok := r.(js.Error)
			if !ok {
				panic(r)
			}
			ret, err = js.Undefined(), jsErr
		}
	}()
	return v.Call(method, args...), nil
}

func (v *Value) String() string {
	if v.v.Type() == js.TypeString {
		return v.v.String()
	}
	return js.Global().Get("String").Invoke(v.v).String()
}

func (v *Value) Float() float64 {
	if v.v.Type() == js.TypeNumber {
		return v.v.Float()
	}
	return math.NaN()
}

// MarshalJSON encodes the value with JSON.stringify. Values JSON.stringify
// skips, such as undefined, encode as null.
func (v *Value) MarshalJSON() ([]byte, error) {
	out := js.Global().Get("JSON").Call("stringify", v.v)
	if out.Type() != js.TypeString {
		return []byte("null"), nil
	}
	return []byte(out.String()), nil
}
