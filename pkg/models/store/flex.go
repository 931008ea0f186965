package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flex is a scalar whose JSON type varies between backends: amounts and ids arrive as strings
// ("1,250") or numbers, dates as strings or null. Objects and arrays decode as an unset value.
type Flex struct {
	raw    string
	set    bool
	quoted bool
}

// Text builds a Flex that was sent as a JSON string.
func Text(s string) Flex {
	return Flex{raw: s, set: true, quoted: true}
}

func (f *Flex) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*f = Flex{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("store: flex string: %w", err)
		}
		*f = Text(s)
	case '{', '[':
	default:
		*f = Flex{raw: string(b), set: true}
	}
	return nil
}

func (f Flex) MarshalJSON() ([]byte, error) {
	switch {
	case !f.set:
		return []byte("null"), nil
	case f.quoted:
		return json.Marshal(f.raw)
	default:
		return []byte(f.raw), nil
	}
}

// String returns the textual form, or "" when unset.
func (f Flex) String() string {
	return f.raw
}

// Present mirrors a truthiness check: set, non-empty and not a zero/false literal.
func (f Flex) Present() bool {
	if !f.set || f.raw == "" {
		return false
	}
	if f.quoted {
		return true
	}
	return f.raw != "0" && f.raw != "false"
}

// Quoted reports whether the value arrived as a JSON string.
func (f Flex) Quoted() bool {
	return f.set && f.quoted
}

// Int parses the value as an integer, accepting integral floats such as "3.0".
func (f Flex) Int() (int, bool) {
	s := strings.TrimSpace(f.raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != float64(int(v)) {
		return 0, false
	}
	return int(v), true
}
