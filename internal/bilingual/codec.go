// Package bilingual stores per-language payloads as JSON text columns and
// reads them back without ever failing the read path.
package bilingual

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Encode serialises a language payload for storage. Strings, byte slices and
// json.RawMessage values are treated as already encoded and returned as-is.
func Encode(payload any) (string, error) {
	switch v := payload.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.RawMessage:
		return string(v), nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// EncodeObject encodes payload and substitutes {} for a nil value so a
// missing language half is never stored as null.
func EncodeObject(payload any) (string, error) {
	if payload == nil {
		return "{}", nil
	}
	switch v := payload.(type) {
	case map[string]any:
		if v == nil {
			return "{}", nil
		}
	case json.RawMessage:
		if trimmed := bytes.TrimSpace(v); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			return "{}", nil
		}
	}
	return Encode(payload)
}

// IsObject reports whether stored holds a JSON object.
func IsObject(stored string) bool {
	trimmed := strings.TrimSpace(stored)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}
	var parsed map[string]any
	return json.Unmarshal([]byte(trimmed), &parsed) == nil
}

// Decode parses a stored JSON object. Empty, corrupt or non-object input
// yields an empty object.
func Decode(stored string) map[string]any {
	out := map[string]any{}
	if strings.TrimSpace(stored) == "" {
		return out
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(stored), &parsed); err != nil || parsed == nil {
		return out
	}
	return parsed
}

// DecodeList parses a stored JSON array; failures yield an empty slice.
func DecodeList(stored *string) []any {
	out := []any{}
	if stored == nil || strings.TrimSpace(*stored) == "" {
		return out
	}
	var parsed []any
	if err := json.Unmarshal([]byte(*stored), &parsed); err != nil || parsed == nil {
		return out
	}
	return parsed
}

// EncodeStrings stores a string list; nil encodes as [].
func EncodeStrings(values []string) string {
	if values == nil {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// DecodeAs unmarshals stored into T. The boolean is false when stored is
// empty or does not match T.
func DecodeAs[T any](stored string) (T, bool) {
	var out T
	if strings.TrimSpace(stored) == "" {
		return out, false
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(stored)))
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}
