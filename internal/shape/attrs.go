package shape

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attrs is a generic attribute holder: a read-only bag of named values that
// keeps property order. It satisfies field.Getter and field.Enumerable, so an
// Attrs can itself be fed back in as a row.
type Attrs struct {
	fields Fields
}

// NewAttrs wraps fields. A nil fields yields an empty bag.
func NewAttrs(fields Fields) *Attrs {
	if fields == nil {
		fields = orderedmap.New[string, any]()
	}
	return &Attrs{fields: fields}
}

func (a *Attrs) Get(name string) (any, bool) {
	return a.fields.Get(name)
}

func (a *Attrs) Keys() []string {
	keys := make([]string, 0, a.fields.Len())
	for p := a.fields.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

func (a *Attrs) Len() int {
	return a.fields.Len()
}

// Fields returns the underlying ordered map.
func (a *Attrs) Fields() Fields {
	return a.fields
}

func (a *Attrs) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.fields)
}

func (a *Attrs) MarshalYAML() (any, error) {
	return a.fields, nil
}
