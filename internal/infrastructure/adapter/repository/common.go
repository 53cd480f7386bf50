package repository

import (
	"encoding/json"
)

// marshalMetadata serializes an opaque metadata bag for a jsonb column
func marshalMetadata(m map[string]any) string {
	if len(m) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// unmarshalMetadata restores a metadata bag from its jsonb column
func unmarshalMetadata(raw string) map[string]any {
	m := map[string]any{}
	if raw == "" {
		return m
	}
	_ = json.Unmarshal([]byte(raw), &m)
	return m
}
