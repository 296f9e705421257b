package bridge

import (
	"errors"
	"fmt"
)

var (
	ErrNoEnvironment = errors.New("cefview: no browser environment")
	ErrNotFound      = errors.New("cefview: bridge object not found")
	ErrNotObject     = errors.New("cefview: bridge is not an object")
	ErrMissingMethod = errors.New("cefview: method missing")
)

// Capability is one of the things New requires from the host, in the
// order they are checked.
type Capability int

const (
	CapEnvironment Capability = iota
	CapObject
	CapObjectType
	CapAddEventListener
	CapRemoveEventListener
	CapInvoke
	CapQuery
	CapCancelQuery
)

func (c Capability) String() string {
	switch c {
	case CapEnvironment:
		return "environment"
	case CapObject:
		return "object"
	case CapObjectType:
		return "object type"
	case CapAddEventListener:
		return methodAddEventListener
	case CapRemoveEventListener:
		return methodRemoveEventListener
	case CapInvoke:
		return methodInvoke
	case CapQuery:
		return QueryFunction
	case CapCancelQuery:
		return CancelQueryFunction
	}
	return fmt.Sprintf("capability(%d)", int(c))
}

// CapabilityError reports the first requirement New found unmet.
type CapabilityError struct {
	Bridge     string
	Capability Capability
}

func (e *CapabilityError) Error() string {
	switch e.Capability {
	case CapEnvironment:
		return "cefview: window is not defined, the bridge can only be used in a browser environment"
	case CapObject:
		return fmt.Sprintf("cefview: window.'%s' was not found", e.Bridge)
	case CapObjectType:
		return fmt.Sprintf("cefview: window.'%s' is not an object", e.Bridge)
	case CapAddEventListener, CapRemoveEventListener, CapInvoke:
		return fmt.Sprintf("cefview: method window.'%s'.%s was missing", e.Bridge, e.Capability)
	case CapQuery, CapCancelQuery:
		return fmt.Sprintf("cefview: method window.%s was missing", e.Capability)
	}
	return fmt.Sprintf("cefview: window.'%s': %s unavailable", e.Bridge, e.Capability)
}

// Unwrap returns the error class: ErrNoEnvironment, ErrNotFound,
// ErrNotObject or ErrMissingMethod.
func (e *CapabilityError) Unwrap() error {
	switch e.Capability {
	case CapEnvironment:
		return ErrNoEnvironment
	case CapObject:
		return ErrNotFound
	case CapObjectType:
		return ErrNotObject
	}
	return ErrMissingMethod
}
