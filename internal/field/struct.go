package field

import (
	"reflect"
	"strings"
)

// structReader resolves names against exported fields, json tags and
// zero-argument methods. Structs do not enumerate their names.
type structReader struct {
	v reflect.Value // the original value, possibly a pointer
	s reflect.Value // the dereferenced struct
}

func newStructReader(v reflect.Value) structReader {
	s := v
	for s.Kind() == reflect.Pointer || s.Kind() == reflect.Interface {
		s = s.Elem()
	}
	return structReader{v: v, s: s}
}

func (r structReader) Get(name string) (any, bool) {
	if v, ok := r.field(name); ok {
		return v, true
	}
	return r.method(name)
}

func (r structReader) Keys() ([]string, bool) {
	return nil, false
}

func (r structReader) field(name string) (any, bool) {
	t := r.s.Type()
	want := normalize(name)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" && tag == name {
			return r.s.Field(i).Interface(), true
		}
		if normalize(f.Name) == want {
			return r.s.Field(i).Interface(), true
		}
	}
	return nil, false
}

func (r structReader) method(name string) (any, bool) {
	want := normalize(name)
	for _, v := range []reflect.Value{r.v, r.s} {
		t := v.Type()
		for i := 0; i < t.NumMethod(); i++ {
			m := t.Method(i)
			if normalize(m.Name) != want {
				continue
			}
			fn := v.Method(i)
			if fn.Type().NumIn() != 0 || fn.Type().NumOut() != 1 {
				continue
			}
			return fn.Call(nil)[0].Interface(), true
		}
	}
	return nil, false
}
