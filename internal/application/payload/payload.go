// Package payload reads loosely-typed JSON request bodies. Bodies are decoded
// with json.Decoder.UseNumber, so numbers arrive as json.Number.
package payload

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Payload is a decoded JSON object
type Payload map[string]any

// Has reports whether key is present, including an explicit null
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Get returns the value for key; a null value counts as absent
func (p Payload) Get(key string) (any, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Object returns v as a JSON object
func Object(v any) (Payload, bool) {
	switch o := v.(type) {
	case Payload:
		return o, true
	case map[string]any:
		return Payload(o), true
	}
	return nil, false
}

// Array returns v as a JSON array
func Array(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// String returns v only when it is a JSON string
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Bool returns v only when it is a JSON boolean
func Bool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// CoerceString converts scalars to their string form; true becomes "1",
// false and null become "". Arrays and objects are rejected.
func CoerceString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", true
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		if s {
			return "1", true
		}
		return "", true
	}
	return "", false
}

// CoerceInt converts v to an integer the permissive way: fractional numbers
// truncate, numeric strings parse, anything else becomes 0.
func CoerceInt(v any) int64 {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return truncate(f)
		}
	case float64:
		return truncate(n)
	case int:
		return int64(n)
	case int64:
		return n
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return truncate(f)
		}
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

// Int returns v when it is an integral number or a base-10 integer string
func Int(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			return int64(f), true
		}
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < math.MaxInt64 {
			return int64(n), true
		}
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func truncate(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}
