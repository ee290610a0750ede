package graph

import (
	"fmt"

	"github.com/agentic-research/regroup/internal/record"
	"github.com/agentic-research/regroup/internal/shape"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Group is a node of the group tree. It pairs a Category, which indexes the
// records belonging to the group, with the Type that shapes them, and owns
// its named child groups in declaration order.
type Group struct {
	name     string
	category *Category
	typ      *shape.Type
	children *orderedmap.OrderedMap[string, *Group]
}

// NewGroup builds a group node. A nil typ uses shape.Null.
func NewGroup(name string, category *Category, typ *shape.Type, children ...*Group) (*Group, error) {
	if category == nil {
		return nil, fmt.Errorf("group %q: %w", name, ErrMissingIDKey)
	}
	if typ == nil {
		typ = shape.Null
	}
	g := &Group{
		name:     name,
		category: category,
		typ:      typ,
		children: orderedmap.New[string, *Group](),
	}
	for _, c := range children {
		if _, present := g.children.Set(c.name, c); present {
			return nil, fmt.Errorf("group %q: child %q: %w", name, c.name, ErrDuplicateGroup)
		}
	}
	return g, nil
}

func (g *Group) Name() string {
	return g.name
}

func (g *Group) Category() *Category {
	return g.category
}

func (g *Group) Type() *shape.Type {
	return g.typ
}

// Children returns the child group names in declaration order.
func (g *Group) Children() []string {
	names := make([]string, 0, g.children.Len())
	for p := g.children.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// Child looks up a direct child by name.
func (g *Group) Child(name string) (*Group, bool) {
	return g.children.Get(name)
}

// Add offers r to this group and, unconditionally, to every group below it.
// Each category decides on its own whether to keep the record.
func (g *Group) Add(r *record.Record) {
	g.category.Add(g.category.ParentID(r), r)
	for p := g.children.Oldest(); p != nil; p = p.Next() {
		p.Value.Add(r)
	}
}

// Visit returns a Visitor for each record filed under parent, or under the
// root when parent is nil.
func (g *Group) Visit(parent *record.Record) []Visitor {
	records := g.category.Records(g.category.ParentID(parent))
	visitors := make([]Visitor, len(records))
	for i, r := range records {
		visitors[i] = Visitor{group: g, record: r}
	}
	return visitors
}

// VisitChildren visits the named child group in the context of parent.
// Unknown names yield nothing.
func (g *Group) VisitChildren(name string, parent *record.Record) []Visitor {
	c, ok := g.children.Get(name)
	if !ok {
		return nil
	}
	return c.Visit(parent)
}
