// Package graph turns a flat stream of rows into a nested, deduplicated
// object graph.
//
// A Graph holds a forest of Groups. Every ingested row is offered to every
// group; each group's Category keeps at most one record per (parent
// identity, own identity). Output is built lazily, on read, by walking the
// tree with Visitors.
//
// A Graph is not safe for concurrent use. All Add calls are expected to
// finish before any read.
package graph

import (
	"fmt"

	"github.com/agentic-research/regroup/internal/record"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Graph is the entry point: construct it from root groups, Add rows, then
// read shaped data per root group.
type Graph struct {
	groups  *orderedmap.OrderedMap[string, *Group]
	records *record.Set
}

// New builds a graph over the given root groups, kept in the order given.
func New(groups ...*Group) (*Graph, error) {
	g := &Graph{
		groups:  orderedmap.New[string, *Group](),
		records: record.NewSet(),
	}
	for _, grp := range groups {
		if _, present := g.groups.Set(grp.name, grp); present {
			return nil, fmt.Errorf("root group %q: %w", grp.name, ErrDuplicateGroup)
		}
	}
	return g, nil
}

// Add ingests rows in order and returns g for chaining.
func (g *Graph) Add(rows ...any) *Graph {
	for _, row := range rows {
		r := g.records.Add(row)
		for p := g.groups.Oldest(); p != nil; p = p.Next() {
			p.Value.Add(r)
		}
	}
	return g
}

// Children returns the root group names in declaration order.
func (g *Graph) Children() []string {
	names := make([]string, 0, g.groups.Len())
	for p := g.groups.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// Group looks up a root group by name.
func (g *Graph) Group(name string) (*Group, bool) {
	return g.groups.Get(name)
}

// Visit returns the top-level visitors of the named root group.
func (g *Graph) Visit(name string) []Visitor {
	grp, ok := g.groups.Get(name)
	if !ok {
		return nil
	}
	return grp.Visit(nil)
}

// Data returns the fully nested output of the named root group. Unknown
// names yield an empty result.
func (g *Graph) Data(name string) []any {
	visitors := g.Visit(name)
	out := make([]any, len(visitors))
	for i, v := range visitors {
		out[i] = v.Data(true)
	}
	return out
}

// Rows echoes every ingested raw row in ingestion order.
func (g *Graph) Rows() []any {
	return g.records.Rows()
}

// Len returns the number of rows ingested so far.
func (g *Graph) Len() int {
	return g.records.Len()
}
