package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one key/value pair of an OrderedMap.
type Entry[V any] struct {
	Key   string
	Value V
}

// OrderedMap decodes a JSON object keeping its keys in document order. Present is false only when
// the field was absent or null, so an empty object still counts as present. Entries whose value
// cannot be decoded into V are left out and counted in Skipped.
type OrderedMap[V any] struct {
	Present bool
	Entries []Entry[V]
	Skipped int
}

func (m *OrderedMap[V]) UnmarshalJSON(b []byte) error {
	*m = OrderedMap[V]{}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("store: expected object, got %v", tok)
	}

	m.Present = true
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var v V
		if err := json.Unmarshal(raw, &v); err != nil {
			m.Skipped++
			continue
		}
		m.Entries = append(m.Entries, Entry[V]{Key: key, Value: v})
	}

	_, err = dec.Token()
	return err
}

// Get returns the value stored under key.
func (m OrderedMap[V]) Get(key string) (V, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}
