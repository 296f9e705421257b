package gojahost

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/arko-chat/cefview/bridge"
	"github.com/dop251/goja"
)

// Value is a goja value bound to the Host it came from.
type Value struct {
	host *Host
	v    goja.Value
}

var _ bridge.Value = (*Value)(nil)

// Goja returns the underlying goja value.
func (v *Value) Goja() goja.Value {
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
	return v != nil && v.v != nil && v.v.ToBoolean()
}

func (v *Value) Get(property string) bridge.Value {
	obj, ok := v.v.(*goja.Object)
	if !ok {
		return v.host.Wrap(nil)
	}
	return v.host.Wrap(obj.Get(property))
}

func (v *Value) Call(method string, args ...any) (bridge.Value, error) {
	obj, ok := v.v.(*goja.Object)
	if !ok {
		return nil, fmt.Errorf("gojahost: cannot call %s on %s", method, v.Kind())
	}
	fn, ok := goja.AssertFunction(obj.Get(method))
	if !ok {
		return nil, fmt.Errorf("gojahost: %s is not a function", method)
	}

	callArgs := make([]goja.Value, len(args))
	for i, a := range args {
		callArgs[i] = v.host.toValue(a)
	}

	ret, err := fn(obj, callArgs...)
	if err != nil {
		return nil, err
	}
	return v.host.Wrap(ret), nil
}

func (v *Value) String() string {
	if v.v == nil {
		return "undefined"
	}
	return v.v.String()
}

func (v *Value) Float() float64 {
	if v.v == nil {
		return math.NaN()
	}
	return v.v.ToFloat()
}

// MarshalJSON encodes objects the way JSON.stringify does. Undefined
// encodes as null.
func (v *Value) MarshalJSON() ([]byte, error) {
	if obj, ok := v.v.(*goja.Object); ok {
		return obj.MarshalJSON()
	}
	if v.v == nil || goja.IsUndefined(v.v) {
		return []byte("null"), nil
	}
	return json.Marshal(v.v.Export())
}
