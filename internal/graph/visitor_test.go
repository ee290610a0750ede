package graph

import (
	"testing"

	"github.com/agentic-research/regroup/internal/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitor_Data_Shallow(t *testing.T) {
	g := newPeopleGraph(t)

	visitors := g.Visit("people")
	require.Len(t, visitors, 3)

	assert.Equal(t, map[string]any{"id": "1", "first": "Bozo"}, flatten(visitors[0].Data(false)),
		"children are only attached on request")
	assert.Equal(t, []string{"cars", "houses"}, visitors[0].Children())
	assert.Equal(t, "people", visitors[0].Group().Name())
	assert.True(t, visitors[0].Record().Equal(people[3]))
}

func TestVisitor_Visit(t *testing.T) {
	g := newPeopleGraph(t)
	bozo := g.Visit("people")[0]

	cars := bozo.Visit("cars")
	require.Len(t, cars, 2)
	assert.Equal(t, map[string]any{"id": "3", "make": "Lexus"}, flatten(cars[0].Data(true)))
	assert.Equal(t, map[string]any{"id": "6", "make": "Nissan"}, flatten(cars[1].Data(true)))

	assert.Empty(t, bozo.Visit("boats"), "unknown child names yield nothing")
}

func TestGroup_VisitChildren(t *testing.T) {
	g := newPeopleGraph(t)
	grp, ok := g.Group("people")
	require.True(t, ok)

	frank := grp.Visit(nil)[1]
	houses := grp.VisitChildren("houses", frank.Record())
	require.Len(t, houses, 1)
	assert.Equal(t, map[string]any{"id": "7", "street": "9 Main St"}, flatten(houses[0].Data(false)))

	assert.Empty(t, grp.VisitChildren("cars", frank.Record()))
	assert.Empty(t, grp.VisitChildren("boats", frank.Record()))

	child, ok := grp.Child("houses")
	require.True(t, ok)
	assert.Equal(t, "houses", child.Name())
}

func TestVisitor_Data_DeepNesting(t *testing.T) {
	keys := key.NewInterner()
	wheels := mustGroup(t, "wheels", mustCategory(t, keys, []string{"wheel"}, []string{"person", "car"}, false), nil)
	cars := mustGroup(t, "cars", mustCategory(t, keys, []string{"car"}, []string{"person"}, false), nil, wheels)
	persons := mustGroup(t, "people", mustCategory(t, keys, []string{"person"}, nil, false), nil, cars)
	g, err := New(persons)
	require.NoError(t, err)

	g.Add(
		map[string]any{"person": "p", "car": "c1", "wheel": "w1"},
		map[string]any{"person": "p", "car": "c1", "wheel": "w2"},
		map[string]any{"person": "p", "car": "c2", "wheel": "w1"},
	)

	got := flattenAll(g.Data("people"))
	require.Len(t, got, 1)
	carsOut := got[0].(map[string]any)["cars"].([]any)
	require.Len(t, carsOut, 2)
	assert.Len(t, carsOut[0].(map[string]any)["wheels"], 2)
	assert.Len(t, carsOut[1].(map[string]any)["wheels"], 1)
}
