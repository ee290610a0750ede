// Package field reads named values out of heterogeneous row payloads.
//
// Rows arrive as plain maps, ordered maps, attribute bags or structs. For
// picks the matching Reader once per value; callers then look fields up by
// name without caring which representation they hold. A missing field is
// reported as absent, never as an error.
package field

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Reader is the uniform get-by-name capability over one source value.
type Reader interface {
	// Get returns the named value and whether it was present.
	Get(name string) (any, bool)
	// Keys returns the source's own field names, and false when the source
	// cannot enumerate them.
	Keys() ([]string, bool)
}

// Getter is implemented by attribute-bearing values that resolve names themselves.
type Getter interface {
	Get(name string) (any, bool)
}

// Enumerable is implemented by attribute-bearing values that can list their names.
type Enumerable interface {
	Keys() []string
}

// For selects the Reader for src. Names beginning with "$" are treated as
// JSONPath expressions on every kind of source.
func For(src any) Reader {
	return &pathReader{Reader: base(src), src: src}
}

// Get is shorthand for For(src).Get(name) that drops the presence flag.
func Get(src any, name string) any {
	v, _ := For(src).Get(name)
	return v
}

func base(src any) Reader {
	switch s := src.(type) {
	case nil:
		return emptyReader{}
	case map[string]any:
		return stringMap(s)
	case *orderedmap.OrderedMap[string, any]:
		if s == nil {
			return emptyReader{}
		}
		return orderedReader{m: s}
	case Getter:
		return getterReader{g: s}
	}

	v := reflect.ValueOf(src)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return emptyReader{}
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		return reflectMap{v: v}
	case reflect.Struct:
		return newStructReader(reflect.ValueOf(src))
	default:
		return emptyReader{}
	}
}

type emptyReader struct{}

func (emptyReader) Get(string) (any, bool)  { return nil, false }
func (emptyReader) Keys() ([]string, bool) { return nil, false }

type stringMap map[string]any

func (m stringMap) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func (m stringMap) Keys() ([]string, bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, true
}

type orderedReader struct {
	m *orderedmap.OrderedMap[string, any]
}

func (r orderedReader) Get(name string) (any, bool) {
	return r.m.Get(name)
}

func (r orderedReader) Keys() ([]string, bool) {
	keys := make([]string, 0, r.m.Len())
	for p := r.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys, true
}

type getterReader struct {
	g Getter
}

func (r getterReader) Get(name string) (any, bool) {
	return r.g.Get(name)
}

func (r getterReader) Keys() ([]string, bool) {
	if e, ok := r.g.(Enumerable); ok {
		return e.Keys(), true
	}
	return nil, false
}

// reflectMap covers maps with non-string keys or non-any values, such as
// map[any]any from YAML decoders or map[string]string. Keys compare by their
// printed form.
type reflectMap struct {
	v reflect.Value
}

func (r reflectMap) Get(name string) (any, bool) {
	iter := r.v.MapRange()
	for iter.Next() {
		if fmt.Sprint(iter.Key().Interface()) == name {
			return iter.Value().Interface(), true
		}
	}
	return nil, false
}

func (r reflectMap) Keys() ([]string, bool) {
	keys := make([]string, 0, r.v.Len())
	for _, k := range r.v.MapKeys() {
		keys = append(keys, fmt.Sprint(k.Interface()))
	}
	sort.Strings(keys)
	return keys, true
}

// normalize folds the naming styles a field may be asked for
// ("first_name", "FirstName", "first-name") onto one form.
func normalize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(name))
}
