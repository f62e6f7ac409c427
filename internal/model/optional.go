package model

import "encoding/json"

// OptionalString is a JSON string field that tracks presence. Set is true
// when the key appeared in the payload; Value is nil for an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON records presence and decodes the value; JSON null leaves
// Value nil.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// MarshalJSON encodes the value, or null when it is absent.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
