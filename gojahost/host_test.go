package gojahost_test

import (
	"errors"
	"testing"

	"github.com/arko-chat/cefview/bridge"
	"github.com/arko-chat/cefview/gojahost"
	"github.com/dop251/goja"
)

const fixture = `
var calls = {add: [], remove: [], invoke: [], query: [], cancel: []};
var window = {
	CefViewQuery: function(q) { calls.query.push(q); return 42; },
	CefViewCancelQuery: function(id) { calls.cancel.push(id); },
	myBridge: {
		addEventListener: function(e, h) { calls.add.push([e, h]); },
		removeEventListener: function(e, h) { calls.remove.push([e, h]); },
		invoke: function() { calls.invoke.push(Array.prototype.slice.call(arguments)); },
	},
};
`

func newHost(t *testing.T, setup ...string) *gojahost.Host {
	t.Helper()
	rt := goja.New()
	for _, src := range append([]string{fixture}, setup...) {
		if _, err := rt.RunString(src); err != nil {
			t.Fatalf("run %q: %v", src, err)
		}
	}
	return gojahost.New(rt)
}

func newBridge(t *testing.T, h *gojahost.Host) *bridge.Bridge {
	t.Helper()
	b, err := bridge.New("myBridge", h.Window())
	if err != nil {
		t.Fatalf("bridge.New: %v", err)
	}
	return b
}

func eval(t *testing.T, h *gojahost.Host, src string) goja.Value {
	t.Helper()
	v, err := h.Runtime().RunString(src)
	if err != nil {
		t.Fatalf("run %q: %v", src, err)
	}
	return v
}

func TestConstructWithValidBridge(t *testing.T) {
	newBridge(t, newHost(t))
}

func TestConstructFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup string
		want  bridge.Capability
	}{
		{"window is missing", "window = undefined", bridge.CapEnvironment},
		{"bridge is missing", "delete window.myBridge", bridge.CapObject},
		{"bridge is null", "window.myBridge = null", bridge.CapObject},
		{"bridge is not object", "window.myBridge = 123", bridge.CapObjectType},
		{"bridge is a string", "window.myBridge = 'x'", bridge.CapObjectType},
		{"addEventListener is missing", "delete window.myBridge.addEventListener", bridge.CapAddEventListener},
		{"removeEventListener is missing", "delete window.myBridge.removeEventListener", bridge.CapRemoveEventListener},
		{"invoke is missing", "delete window.myBridge.invoke", bridge.CapInvoke},
		{"invoke is not callable", "window.myBridge.invoke = {}", bridge.CapInvoke},
		{"CefViewQuery is missing", "delete window.CefViewQuery", bridge.CapQuery},
		{"CefViewCancelQuery is missing", "delete window.CefViewCancelQuery", bridge.CapCancelQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHost(t, tt.setup)
			_, err := bridge.New("myBridge", h.Window())

			var capErr *bridge.CapabilityError
			if !errors.As(err, &capErr) {
				t.Fatalf("bridge.New error = %v, want a *bridge.CapabilityError", err)
			}
			if capErr.Capability != tt.want {
				t.Errorf("capability = %v, want %v (%v)", capErr.Capability, tt.want, err)
			}
		})
	}
}

func TestNoWindowDefined(t *testing.T) {
	h := gojahost.New(goja.New())
	_, err := bridge.New("myBridge", h.Window())
	if !errors.Is(err, bridge.ErrNoEnvironment) {
		t.Errorf("bridge.New error = %v, want ErrNoEnvironment", err)
	}
}

func TestNilWindowValue(t *testing.T) {
	var window *gojahost.Value
	_, err := bridge.New("myBridge", window)
	if !errors.Is(err, bridge.ErrNoEnvironment) {
		t.Errorf("bridge.New error = %v, want ErrNoEnvironment", err)
	}
}

func TestInvoke(t *testing.T) {
	h := newHost(t)
	b := newBridge(t, h)

	if err := b.Invoke("m", 1, 2, 3); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if err := b.Invoke("m", 1, 2, 3); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	got := eval(t, h, "JSON.stringify(calls.invoke)").String()
	want := `[["m",1,2,3],["m",1,2,3]]`
	if got != want {
		t.Errorf("invoke calls = %s, want %s", got, want)
	}
}

func TestInvokePassesHostValues(t *testing.T) {
	h := newHost(t)
	b := newBridge(t, h)

	obj := h.Wrap(eval(t, h, "({tag: 'host'})"))
	if err := b.Invoke("m", obj, map[string]any{"k": "v"}, nil); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	if !eval(t, h, "calls.invoke[0][1].tag === 'host'").ToBoolean() {
		t.Error("host object was not passed through")
	}
	if got := eval(t, h, "calls.invoke[0][2].k").String(); got != "v" {
		t.Errorf("map argument k = %q, want v", got)
	}
	if !eval(t, h, "calls.invoke[0][3] === null").ToBoolean() {
		t.Error("nil argument is not null")
	}
}

func TestListeners(t *testing.T) {
	h := newHost(t)
	b := newBridge(t, h)

	var got []bridge.Value
	l := bridge.NewListener(func(args ...bridge.Value) { got = args })

	if err := b.AddEventListener("evt", l); err != nil {
		t.Fatalf("AddEventListener: %v", err)
	}
	if err := b.RemoveEventListener("evt", l); err != nil {
		t.Fatalf("RemoveEventListener: %v", err)
	}

	if eval(t, h, "calls.add[0][0]").String() != "evt" || eval(t, h, "calls.remove[0][0]").String() != "evt" {
		t.Error("event name not forwarded")
	}
	if !eval(t, h, "calls.add[0][1] === calls.remove[0][1]").ToBoolean() {
		t.Error("add and remove received different handler references")
	}

	eval(t, h, "calls.add[0][1]('payload', 7)")
	if len(got) != 2 {
		t.Fatalf("listener got %d args, want 2", len(got))
	}
	if got[0].Kind() != bridge.KindString || got[0].String() != "payload" {
		t.Errorf("arg 0 = %v %q", got[0].Kind(), got[0].String())
	}
	if got[1].Kind() != bridge.KindNumber || got[1].Float() != 7 {
		t.Errorf("arg 1 = %v %v", got[1].Kind(), got[1].Float())
	}
}

func TestDistinctListenersDistinctHandlers(t *testing.T) {
	h := newHost(t)
	b := newBridge(t, h)

	l1 := bridge.NewListener(nil)
	l2 := bridge.NewListener(nil)
	_ = b.AddEventListener("evt", l1)
	_ = b.AddEventListener("evt", l2)

	if eval(t, h, "calls.add[0][1] === calls.add[1][1]").ToBoolean() {
		t.Error("two listeners share one handler")
	}
}

func TestRelease(t *testing.T) {
	h := newHost(t)
	b := newBridge(t, h)

	l := bridge.NewListener(nil)
	_ = b.AddEventListener("evt", l)
	h.Release(l)
	_ = b.AddEventListener("evt", l)

	if eval(t, h, "calls.add[0][1] === calls.add[1][1]").ToBoolean() {
		t.Error("released listener kept its handler")
	}
}

func TestQuery(t *testing.T) {
	h := newHost(t)
	b := newBridge(t, h)

	var response, message string
	var code int
	id, err := b.Query(map[string]string{"foo": "bar"},
		func(res string) { response = res },
		func(c int, msg string) { code, message = c, msg },
	)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if got := eval(t, h, "calls.query[0].request").String(); got != `{"foo":"bar"}` {
		t.Errorf("request = %s, want %s", got, `{"foo":"bar"}`)
	}

	eval(t, h, "calls.query[0].onSuccess('pong')")
	eval(t, h, "calls.query[0].onFailure(404, 'not found')")
	if response != "pong" {
		t.Errorf("response = %q, want pong", response)
	}
	if code != 404 || message != "not found" {
		t.Errorf("failure = %d %q, want 404 \"not found\"", code, message)
	}
}

func TestQueryWithoutCallbacks(t *testing.T) {
	h := newHost(t)
	b := newBridge(t, h)

	if _, err := b.Query(1, nil, nil); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !eval(t, h, "calls.query[0].onSuccess === undefined && calls.query[0].onFailure === undefined").ToBoolean() {
		t.Error("nil callbacks are not undefined")
	}
}

func TestQueryHostObjectRequest(t *testing.T) {
	h := newHost(t)
	b := newBridge(t, h)

	req := h.Wrap(eval(t, h, `({b: [1, "<x>"], skip: undefined})`))
	if _, err := b.Query(req, nil, nil); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if got := eval(t, h, "calls.query[0].request").String(); got != `{"b":[1,"<x>"]}` {
		t.Errorf("request = %s", got)
	}
}

func TestCancelQuery(t *testing.T) {
	h := newHost(t)
	b := newBridge(t, h)

	if err := b.CancelQuery(99); err != nil {
		t.Fatalf("CancelQuery: %v", err)
	}
	if got := eval(t, h, "JSON.stringify(calls.cancel)").String(); got != "[99]" {
		t.Errorf("cancel calls = %s, want [99]", got)
	}
}

func TestExceptionsPropagate(t *testing.T) {
	h := newHost(t)
	b := newBridge(t, h)
	eval(t, h, "window.myBridge.invoke = function() { throw new Error('boom'); }")

	err := b.Invoke("m")
	var exc *goja.Exception
	if !errors.As(err, &exc) {
		t.Fatalf("Invoke error = %v (%T), want *goja.Exception", err, err)
	}
	if got := exc.Value().ToObject(h.Runtime()).Get("message").String(); got != "boom" {
		t.Errorf("exception message = %q, want boom", got)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		src  string
		want bridge.Kind
	}{
		{"undefined", bridge.KindUndefined},
		{"null", bridge.KindNull},
		{"true", bridge.KindBoolean},
		{"1", bridge.KindNumber},
		{"1.5", bridge.KindNumber},
		{"'s'", bridge.KindString},
		{"Symbol('x')", bridge.KindSymbol},
		{"({})", bridge.KindObject},
		{"[]", bridge.KindObject},
		{"(function() {})", bridge.KindFunction},
	}
	h := gojahost.New(goja.New())
	for _, tt := range tests {
		if got := h.Wrap(eval(t, h, tt.src)).Kind(); got != tt.want {
			t.Errorf("Kind(%s) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestGetOnPrimitive(t *testing.T) {
	h := gojahost.New(goja.New())
	v := h.Wrap(eval(t, h, "1")).Get("x")
	if v.Kind() != bridge.KindUndefined {
		t.Errorf("Get on a number = %v, want undefined", v.Kind())
	}
	if _, err := h.Wrap(eval(t, h, "1")).Call("x"); err == nil {
		t.Error("Call on a number succeeded")
	}
}
