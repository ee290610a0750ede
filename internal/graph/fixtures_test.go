package graph

import (
	"testing"

	"github.com/agentic-research/regroup/internal/key"
	"github.com/agentic-research/regroup/internal/shape"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// people is a denormalized export: one row per (person, car, house) combination.
var people = []any{
	map[string]any{"ID #": "1", "First Name": "Bozo", "Last Name": "Clown", "Car ID #": "3", "Car Make": "Lexus", "House ID #": "4", "House Street": "1234 Circus Ave"},
	map[string]any{"ID #": "1", "First Name": "Bozo", "Last Name": "Clown", "Car ID #": "3", "Car Make": "Lexus", "House ID #": "5", "House Street": "5678 Big Top Dr"},
	map[string]any{"ID #": "1", "First Name": "Bozo", "Last Name": "Clown", "Car ID #": "6", "Car Make": "Nissan", "House ID #": "4", "House Street": "1234 Circus Ave"},
	map[string]any{"ID #": "1", "First Name": "Bozo", "Last Name": "Clown", "Car ID #": "6", "Car Make": "Nissan", "House ID #": "5", "House Street": "5678 Big Top Dr"},
	map[string]any{"ID #": "2", "First Name": "Frank", "Last Name": "Rizzo", "Car ID #": "", "Car Make": "", "House ID #": "7", "House Street": "9 Main St"},
	map[string]any{"ID #": "2", "First Name": "Frank", "Last Name": "Rizzo", "Car ID #": "", "Car Make": "", "House ID #": "7", "House Street": "9 Main St"},
	map[string]any{"ID #": "", "First Name": "Nobody", "Last Name": "", "Car ID #": "8", "Car Make": "Tesla", "House ID #": "", "House Street": ""},
	map[string]any{"ID #": "3", "First Name": "Sally", "Last Name": "Smith", "Car ID #": "9", "Car Make": "Ford", "House ID #": "", "House Street": ""},
}

func props(pairs ...string) shape.Properties {
	p := orderedmap.New[string, string]()
	for i := 0; i+1 < len(pairs); i += 2 {
		p.Set(pairs[i], pairs[i+1])
	}
	return p
}

var (
	personType = shape.New("person", props("id", "ID #", "first", "First Name"), shape.MapOutput())
	carType    = shape.New("car", props("id", "Car ID #", "make", "Car Make"), shape.MapOutput())
	houseType  = shape.New("house", props("id", "House ID #", "street", "House Street"), shape.MapOutput())
)

func mustCategory(t *testing.T, keys *key.Interner, id, parent []string, includeBlank bool) *Category {
	t.Helper()
	c, err := NewCategory(keys.Get(id...), keys.Get(parent...), includeBlank)
	require.NoError(t, err)
	return c
}

func mustGroup(t *testing.T, name string, c *Category, typ *shape.Type, children ...*Group) *Group {
	t.Helper()
	g, err := NewGroup(name, c, typ, children...)
	require.NoError(t, err)
	return g
}

// peopleForest builds people -> {cars, houses} plus a root-level cars group.
func peopleForest(t *testing.T) []*Group {
	t.Helper()
	keys := key.NewInterner()
	cars := mustGroup(t, "cars", mustCategory(t, keys, []string{"Car ID #"}, []string{"ID #"}, false), carType)
	houses := mustGroup(t, "houses", mustCategory(t, keys, []string{"House ID #"}, []string{"ID #"}, false), houseType)
	persons := mustGroup(t, "people", mustCategory(t, keys, []string{"ID #"}, nil, false), personType, cars, houses)
	allCars := mustGroup(t, "all_cars", mustCategory(t, keys, []string{"Car ID #"}, nil, false), carType)
	return []*Group{persons, allCars}
}

// flatten converts shaped output into plain maps and slices for comparison.
func flatten(v any) any {
	switch t := v.(type) {
	case shape.Fields:
		out := map[string]any{}
		for p := t.Oldest(); p != nil; p = p.Next() {
			out[p.Key] = flatten(p.Value)
		}
		return out
	case *shape.Attrs:
		return flatten(t.Fields())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = flatten(e)
		}
		return out
	default:
		return v
	}
}

func flattenAll(vs []any) []any {
	return flatten(vs).([]any)
}

// ids pulls the "id" property out of each shaped object, preserving order.
func ids(vs []any) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = flatten(v).(map[string]any)["id"]
	}
	return out
}
