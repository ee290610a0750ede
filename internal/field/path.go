package field

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ohler55/ojg/jp"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const pathCacheSize = 512

// compiled caches parsed JSONPath expressions; the same handful of source
// keys is evaluated once per row.
var compiled, _ = lru.New[string, jp.Expr](pathCacheSize)

// pathReader routes "$"-prefixed names through JSONPath and everything else
// to the underlying Reader.
type pathReader struct {
	Reader
	src any
}

func (r *pathReader) Get(name string) (any, bool) {
	if !strings.HasPrefix(name, "$") {
		if v, ok := r.Reader.Get(name); ok {
			return v, true
		}
		return r.Reader.Get(symbolForm(name))
	}
	x, ok := parsePath(name)
	if !ok {
		return nil, false
	}
	results := x.Get(Plain(r.src))
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// symbolForm toggles the symbol-style spelling of a name: "id" and ":id"
// address the same field when the exact spelling is absent.
func symbolForm(name string) string {
	if rest, ok := strings.CutPrefix(name, ":"); ok {
		return rest
	}
	return ":" + name
}

func parsePath(s string) (jp.Expr, bool) {
	if x, ok := compiled.Get(s); ok {
		return x, true
	}
	x, err := jp.ParseString(s)
	if err != nil {
		return nil, false
	}
	compiled.Add(s, x)
	return x, true
}

// Plain converts ordered maps, attribute bags and non-string-keyed maps into
// the map[string]any / []any shapes that JSONPath evaluation understands.
// Other values are returned unchanged.
func Plain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Plain(e)
		}
		return out
	case *orderedmap.OrderedMap[string, any]:
		if t == nil {
			return nil
		}
		out := make(map[string]any, t.Len())
		for p := t.Oldest(); p != nil; p = p.Next() {
			out[p.Key] = Plain(p.Value)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	case Getter:
		e, ok := t.(Enumerable)
		if !ok {
			return v
		}
		out := make(map[string]any)
		for _, k := range e.Keys() {
			val, _ := t.Get(k)
			out[k] = Plain(val)
		}
		return out
	}
	if r, ok := base(v).(reflectMap); ok {
		keys, _ := r.Keys()
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			val, _ := r.Get(k)
			out[k] = Plain(val)
		}
		return out
	}
	return v
}
