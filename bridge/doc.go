// Package bridge wraps the JavaScript bridge a CefView host injects into
// its pages.
//
// A CefView native application exposes an object on window under a name
// chosen by the application (CefViewClient by default) with the methods
// addEventListener, removeEventListener and invoke, together with the two
// global functions window.CefViewQuery and window.CefViewCancelQuery. New
// checks once that all of them are present and returns a [Bridge] that
// forwards calls to them. Nothing is re-validated afterwards.
//
// The package never touches a JavaScript engine itself. The window is
// passed in as a [Value], a dynamically typed handle implemented by a host
// adapter: see the gojahost package for a goja runtime and the jshost
// package for syscall/js in the browser.
package bridge
