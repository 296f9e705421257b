// Package gojahost implements bridge.Value on top of a goja runtime, so a
// Go program embedding JavaScript can drive a CefView bridge, and so the
// bridge can be exercised against real JavaScript without a browser.
package gojahost

import (
	"reflect"

	"github.com/arko-chat/cefview/bridge"
	"github.com/dop251/goja"
	"github.com/puzpuzpuz/xsync/v4"
)

// Host converts values between Go and a goja runtime. Like the runtime
// itself, a Host must only be used from one goroutine at a time.
type Host struct {
	rt        *goja.Runtime
	listeners *xsync.Map[*bridge.Listener, goja.Value]
}

func New(rt *goja.Runtime) *Host {
	return &Host{
		rt:        rt,
		listeners: xsync.NewMap[*bridge.Listener, goja.Value](),
	}
}

func (h *Host) Runtime() *goja.Runtime {
	return h.rt
}

// Window returns the global window variable, undefined when the runtime
// does not define one.
func (h *Host) Window() *Value {
	return h.Wrap(h.rt.Get("window"))
}

// Wrap returns v as a bridge value. A nil v is undefined.
func (h *Host) Wrap(v goja.Value) *Value {
	if v == nil {
		v = goja.Undefined()
	}
	return &Value{host: h, v: v}
}

// Release forgets the JavaScript function created for l. A later
// registration of l gets a new function, so only release a listener once
// it is removed from every event.
func (h *Host) Release(l *bridge.Listener) {
	h.listeners.Delete(l)
}

func (h *Host) toValue(arg any) goja.Value {
	switch a := arg.(type) {
	case *Value:
		if a == nil {
			return goja.Undefined()
		}
		return a.v
	case goja.Value:
		return a
	case *bridge.Listener:
		return h.listener(a)
	case bridge.QueryDescriptor:
		return h.descriptor(a)
	case bridge.QueryID:
		return h.rt.ToValue(int64(a))
	}
	return h.rt.ToValue(arg)
}

func (h *Host) wrapArgs(args []goja.Value) []bridge.Value {
	out := make([]bridge.Value, len(args))
	for i, a := range args {
		out[i] = h.Wrap(a)
	}
	return out
}

func (h *Host) listener(l *bridge.Listener) goja.Value {
	if l == nil {
		return goja.Undefined()
	}
	fn, _ := h.listeners.Compute(l, func(old goja.Value, loaded bool) (goja.Value, xsync.ComputeOp) {
		if loaded {
			return old, xsync.CancelOp
		}
		return h.rt.ToValue(func(call goja.FunctionCall) goja.Value {
			l.Handle(h.wrapArgs(call.Arguments)...)
			return goja.Undefined()
		}), xsync.UpdateOp
	})
	return fn
}

func (h *Host) descriptor(d bridge.QueryDescriptor) goja.Value {
	obj := h.rt.NewObject()
	_ = obj.Set("request", d.Request)

	onSuccess := goja.Undefined()
	if d.OnSuccess != nil {
		onSuccess = h.rt.ToValue(func(call goja.FunctionCall) goja.Value {
			d.OnSuccess(call.Argument(0).String())
			return goja.Undefined()
		})
	}
	_ = obj.Set("onSuccess", onSuccess)

	onFailure := goja.Undefined()
	if d.OnFailure != nil {
		onFailure = h.rt.ToValue(func(call goja.FunctionCall) goja.Value {
			d.OnFailure(int(call.Argument(0).ToInteger()), call.Argument(1).String())
			return goja.Undefined()
		})
	}
	_ = obj.Set("onFailure", onFailure)

	return obj
}

func kindOf(v goja.Value) bridge.Kind {
	if v == nil || goja.IsUndefined(v) {
		return bridge.KindUndefined
	}
	if goja.IsNull(v) {
		return bridge.KindNull
	}
	if _, ok := goja.AssertFunction(v); ok {
		return bridge.KindFunction
	}
	switch v.(type) {
	case *goja.Object:
		return bridge.KindObject
	case *goja.Symbol:
		return bridge.KindSymbol
	}

	t := v.ExportType()
	if t == nil {
		return bridge.KindUndefined
	}
	switch t.Kind() {
	case reflect.Bool:
		return bridge.KindBoolean
	case reflect.String:
		return bridge.KindString
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return bridge.KindNumber
	}
	return bridge.KindUndefined
}
