// Package usecase contains the application-specific business rules.
package usecase

import "encoding/json"

// Field wraps a value in a partial-update payload so the mutation logic can
// tell an omitted key from an explicit null. A zero Field means the key was
// absent from the payload.
type Field[T any] struct {
	Present bool // Key appeared in the payload.
	Null    bool // Key was present with a JSON null.
	Value   T
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the key is
// present, so Present is always true here.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if string(data) == "null" {
		f.Null = true

		return nil
	}

	return json.Unmarshal(data, &f.Value)
}

// Set reports whether the key was present with a non-null value.
func (f Field[T]) Set() bool {
	return f.Present && !f.Null
}

// UnknownKeys returns the top-level keys of a JSON object payload that are
// not in the allowed set. Used by operations whose contract rejects any
// unexpected field outright.
func UnknownKeys(raw []byte, allowed ...string) ([]string, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = struct{}{}
	}

	var unknown []string
	for key := range payload {
		if _, ok := allowedSet[key]; !ok {
			unknown = append(unknown, key)
		}
	}

	return unknown, nil
}
