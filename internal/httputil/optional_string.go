package httputil

import (
	"encoding/json"
)

// OptionalString is a PATCH field that remembers whether the client sent
// it. The edit dialogs use it for descriptions:
//   - absent: keep the stored description
//   - null: clear it
//   - a string: replace it (blank text clears it once trimmed)
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON only runs for keys present in the body, so reaching it
// marks the field as sent.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	o.Value = nil

	// a JSON null leaves Value nil
	return json.Unmarshal(data, &o.Value)
}
