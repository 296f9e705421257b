package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

const (
	QueryFunction       = "CefViewQuery"
	CancelQueryFunction = "CefViewCancelQuery"
)

// QueryID identifies a query sent through CefViewQuery.
type QueryID int64

// SuccessFunc receives the response of a query. The response is passed
// through as the host delivered it.
type SuccessFunc func(response string)

// FailureFunc receives the error code and message of a failed query.
type FailureFunc func(code int, message string)

// QueryDescriptor is the argument of window.CefViewQuery. Host adapters
// turn it into {request, onSuccess, onFailure}; a nil callback becomes
// undefined.
type QueryDescriptor struct {
	Request   string
	OnSuccess SuccessFunc
	OnFailure FailureFunc
}

// encodeRequest returns the JSON text of a query request. The output
// matches JSON.stringify for plain data: no HTML escaping and no trailing
// newline. Host values implementing json.Marshaler encode themselves.
func encodeRequest(request any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(request); err != nil {
		return "", fmt.Errorf("cefview: encode query request: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// queryID converts the return value of CefViewQuery. Ids are integers in
// the int64 range; anything else (a non-number, NaN, a fraction, an
// out-of-range value) becomes 0.
func queryID(v Value) QueryID {
	if v == nil || v.Kind() != KindNumber {
		return 0
	}
	f := v.Float()
	if math.IsNaN(f) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0
	}
	return QueryID(f)
}
