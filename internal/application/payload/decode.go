package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// ErrNotObject is returned when a body is missing or is not a JSON object
var ErrNotObject = errors.New("request body must be a JSON object")

// Decode reads a JSON object from r, keeping numbers as json.Number
func Decode(r io.Reader) (Payload, error) {
	if r == nil {
		return nil, ErrNotObject
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, ErrNotObject
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Payload(obj), nil
}
