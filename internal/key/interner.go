package key

import "fmt"

// Interner memoizes Keys by their parts. One Interner is shared by all the
// groups of a single graph, so repeated construction of the same key shape
// returns the same instance without a process-wide cache.
//
// An Interner is not safe for concurrent use.
type Interner struct {
	keys map[string]*Key
}

func NewInterner() *Interner {
	return &Interner{keys: make(map[string]*Key)}
}

// Get returns the memoized Key for parts.
func (in *Interner) Get(parts ...string) *Key {
	v := canonical(parts)
	if k, ok := in.keys[v]; ok {
		return k
	}
	k := newKey(parts)
	in.keys[v] = k
	return k
}

// From accepts a *Key (returned as-is), a string, a []string, a []any or nil.
func (in *Interner) From(v any) (*Key, error) {
	if k, ok := v.(*Key); ok && k != nil {
		return k, nil
	}
	parts, ok := partsOf(v)
	if !ok {
		return nil, fmt.Errorf("cannot build key from %T", v)
	}
	return in.Get(parts...), nil
}

// Len reports how many distinct keys have been interned.
func (in *Interner) Len() int {
	return len(in.keys)
}
