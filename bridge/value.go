package bridge

// Kind is the JavaScript type of a host value. It follows typeof, except
// that null has its own kind.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindSymbol
	KindObject
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	}
	return "unknown"
}

// Value is a handle to a value living in the host JavaScript environment.
//
// Implementations must never return a nil Value from Get or Call; a missing
// property is a Value of KindUndefined.
//
// Arguments passed to Call are converted by the implementation:
//   - a *Listener becomes a host function, the same one every time for the
//     same listener
//   - a QueryDescriptor becomes {request, onSuccess, onFailure}
//   - a Value of the same host is passed as is
//   - anything else goes through the host's own Go value conversion
type Value interface {
	Kind() Kind

	// Truthy reports whether the value is truthy in JavaScript.
	Truthy() bool

	// Get returns the named property.
	Get(property string) Value

	// Call calls the named method with the value as this. An exception
	// thrown by the host is returned as the error.
	Call(method string, args ...any) (Value, error)

	String() string
	Float() float64
}

func isFunction(v Value) bool {
	return v != nil && v.Kind() == KindFunction
}
