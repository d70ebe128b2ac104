package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString tracks presence and value for JSON PATCH semantics (RFC 7396).
// This enables proper tri-state handling that Go's *string cannot express:
//   - Present=false: field absent from JSON (don't change)
//   - Present=true, Value=nil: field is JSON null (clear/set to NULL)
//   - Present=true, Value=&"": field is empty string
//   - Present=true, Value=&"text": field has value
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	// Check for JSON null
	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	// Parse as string
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// OptionalFloat64 is the numeric counterpart of OptionalString, with the
// same tri-state semantics for PATCH bodies.
type OptionalFloat64 struct {
	Present bool
	Value   *float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalFloat64) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	o.Value = &f
	return nil
}
