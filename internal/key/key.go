// Package key provides composite identity tokens over ordered field names.
//
// A Key names the fields that identify something (e.g. ["ID #", "Car ID #"]).
// An ID is the digest of a Key's fields as read from one record; it is the
// value stored in lookup tables.
package key

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is an immutable, ordered list of field names.
// Keys obtained from the same Interner with equal parts are the same pointer.
type Key struct {
	parts []string
	value string
}

func newKey(parts []string) *Key {
	p := make([]string, len(parts))
	copy(p, parts)
	return &Key{parts: p, value: canonical(p)}
}

// Parts returns a copy of the field names.
func (k *Key) Parts() []string {
	if k == nil {
		return nil
	}
	out := make([]string, len(k.parts))
	copy(out, k.parts)
	return out
}

// Len returns the number of parts. A nil Key has zero parts.
func (k *Key) Len() int {
	if k == nil {
		return 0
	}
	return len(k.parts)
}

// Value is the canonical form used for equality and hashing.
func (k *Key) Value() string {
	if k == nil {
		return ""
	}
	return k.value
}

func (k *Key) String() string {
	return "[" + strings.Join(k.Parts(), ", ") + "]"
}

// Equal compares k with another Key, a scalar or a list carrying the same parts.
// Key{"id"} equals "id", []string{"id"} and []any{"id"}.
func (k *Key) Equal(other any) bool {
	parts, ok := partsOf(other)
	if !ok {
		return false
	}
	return k.Value() == canonical(parts)
}

// canonical length-prefixes every part, so no two part lists share a value:
// the empty key and [""] differ, as do ["a\x00b"] and ["a", "b"].
func canonical(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

// partsOf normalizes the loose inputs accepted by Interner.From and Key.Equal.
func partsOf(v any) ([]string, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case *Key:
		return t.Parts(), true
	case string:
		return []string{t}, true
	case []string:
		return t, true
	case []any:
		parts := make([]string, len(t))
		for i, p := range t {
			parts[i] = fmt.Sprint(p)
		}
		return parts, true
	default:
		return nil, false
	}
}
