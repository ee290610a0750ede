// Package record wraps raw input rows and derives their identities.
package record

import (
	"fmt"
	"reflect"

	"github.com/agentic-research/regroup/internal/field"
	"github.com/agentic-research/regroup/internal/key"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cast"
)

// Record is an immutable wrapper around one raw row.
type Record struct {
	data   any
	fields field.Reader
}

func New(data any) *Record {
	return &Record{data: data, fields: field.For(data)}
}

// Data returns the raw payload the Record was created from.
func (r *Record) Data() any {
	return r.data
}

// Get reads a field from the payload.
func (r *Record) Get(name string) (any, bool) {
	return r.fields.Get(name)
}

// HasIdentity reports whether at least one field named by k has a non-empty
// string form. Rows failing this are blank under k.
func (r *Record) HasIdentity(k *key.Key) bool {
	for _, p := range k.Parts() {
		v, _ := r.fields.Get(p)
		if String(v) != "" {
			return true
		}
	}
	return false
}

// Identity digests the (field name, field value) pairs named by k, in key order.
// Missing fields contribute an empty value. An empty key yields key.Root.
func (r *Record) Identity(k *key.Key) key.ID {
	d := key.NewDigester()
	for _, p := range k.Parts() {
		v, _ := r.fields.Get(p)
		d.Add(p, String(v))
	}
	return d.Sum()
}

// Equal compares payloads. other may be a *Record or a raw payload.
func (r *Record) Equal(other any) bool {
	if o, ok := other.(*Record); ok {
		other = o.data
	}
	return reflect.DeepEqual(r.data, other)
}

// String renders a field value the way identities see it: nil is empty and
// scalars use their natural form. Objects and lists render as JSON with
// sorted keys, so equal content always yields the same string.
func String(v any) string {
	if v == nil {
		return ""
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	if b, err := oj.Marshal(field.Plain(v), &canonicalJSON); err == nil {
		return string(b)
	}
	return fmt.Sprint(v)
}

var canonicalJSON = ojg.Options{Sort: true}
