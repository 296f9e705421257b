//go:build js && wasm

// Package jshost implements bridge.Value with syscall/js, for Go compiled
// to WebAssembly and loaded into a CefView page.
package jshost

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/arko-chat/cefview/bridge"
	"github.com/puzpuzpuz/xsync/v4"
)

// Host converts values between Go and the page's JavaScript. It keeps the
// js.Func created for every listener until Release, and the callbacks of
// every query until it completes or is cancelled.
type Host struct {
	listeners *xsync.Map[*bridge.Listener, js.Func]
	queries   *xsync.Map[int64, *pendingQuery]
}

func New() *Host {
	return &Host{
		listeners: xsync.NewMap[*bridge.Listener, js.Func](),
		queries:   xsync.NewMap[int64, *pendingQuery](),
	}
}

// Window returns window, undefined outside a browser page (a worker or
// Node.js, for instance).
func (h *Host) Window() *Value {
	return h.Wrap(js.Global().Get("window"))
}

func (h *Host) Wrap(v js.Value) *Value {
	return &Value{host: h, v: v}
}

// Release frees the js.Func of l. Calling a released function from
// JavaScript panics, so only release a listener once it is removed from
// every event.
func (h *Host) Release(l *bridge.Listener) {
	if fn, ok := h.listeners.LoadAndDelete(l); ok {
		fn.Release()
	}
}

func (h *Host) toValue(arg any) (js.Value, error) {
	switch a := arg.(type) {
	case *Value:
		if a == nil {
			return js.Undefined(), nil
		}
		return a.v, nil
	case *bridge.Listener:
		if a == nil {
			return js.Undefined(), nil
		}
		return h.listener(a).Value, nil
	case *pendingQuery:
		return a.obj, nil
	case bridge.QueryID:
		return js.ValueOf(int64(a)), nil
	}
	return valueOf(arg)
}

// valueOf is js.ValueOf returning an error instead of panicking on types
// it cannot convert.
func valueOf(x any) (v js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("jshost: cannot pass %T to JavaScript: %v", x, r)
		}
	}()
	return js.ValueOf(x), nil
}

func (h *Host) wrapArgs(args []js.Value) []bridge.Value {
	out := make([]bridge.Value, len(args))
	for i, a := range args {
		out[i] = h.Wrap(a)
	}
	return out
}

func (h *Host) listener(l *bridge.Listener) js.Func {
	fn, _ := h.listeners.Compute(l, func(old js.Func, loaded bool) (js.Func, xsync.ComputeOp) {
		if loaded {
			return old, xsync.CancelOp
		}
		return js.FuncOf(func(_ js.Value, args []js.Value) any {
			l.Handle(h.wrapArgs(args)...)
			return nil
		}), xsync.UpdateOp
	})
	return fn
}

// pendingQuery holds the callbacks of one CefViewQuery call. CefView
// completes a query by calling exactly one callback, once; the functions
// are released then, or when the query is cancelled. A host calling a
// callback after that makes the Go runtime panic.
type pendingQuery struct {
	host  *Host
	obj   js.Value
	funcs []js.Func

	once    sync.Once
	done    bool
	id      int64
	tracked bool
}

func (h *Host) newQuery(d bridge.QueryDescriptor) *pendingQuery {
	q := &pendingQuery{host: h, obj: js.Global().Get("Object").New()}
	q.obj.Set("request", d.Request)

	if d.OnSuccess != nil {
		fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
			defer q.finish()
			d.OnSuccess(h.Wrap(argument(args, 0)).String())
			return nil
		})
		q.funcs = append(q.funcs, fn)
		q.obj.Set("onSuccess", fn)
	}
	if d.OnFailure != nil {
		fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
			defer q.finish()
			d.OnFailure(intArgument(args, 0), h.Wrap(argument(args, 1)).String())
			return nil
		})
		q.funcs = append(q.funcs, fn)
		q.obj.Set("onFailure", fn)
	}
	return q
}

// track records the id CefViewQuery returned, unless the query already
// completed during the call.
func (q *pendingQuery) track(ret js.Value) {
	if q.done || ret.Type() != js.TypeNumber {
		return
	}
	q.id, q.tracked = int64(ret.Float()), true
	q.host.queries.Store(q.id, q)
}

func (q *pendingQuery) finish() {
	q.once.Do(func() {
		q.done = true
		if q.tracked {
			q.host.queries.Delete(q.id)
		}
		for _, fn := range q.funcs {
			fn.Release()
		}
	})
}

func (h *Host) cancelled(id int64) {
	if q, ok := h.queries.Load(id); ok {
		q.finish()
	}
}

func (h *Host) pendingQueries() int {
	return h.queries.Size()
}

func argument(args []js.Value, i int) js.Value {
	if i < len(args) {
		return args[i]
	}
	return js.Undefined()
}

func intArgument(args []js.Value, i int) int {
	v := argument(args, i)
	if v.Type() != js.TypeNumber {
		return 0
	}
	return v.Int()
}

func kindOf(v js.Value) bridge.Kind {
	switch v.Type() {
	case js.TypeNull:
		return bridge.KindNull
	case js.TypeBoolean:
		return bridge.KindBoolean
	case js.TypeNumber:
		return bridge.KindNumber
	case js.TypeString:
		return bridge.KindString
	case js.TypeSymbol:
		return bridge.KindSymbol
	case js.TypeObject:
		return bridge.KindObject
	case js.TypeFunction:
		return bridge.KindFunction
	}
	return bridge.KindUndefined
}
