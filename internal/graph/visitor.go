package graph

import (
	"github.com/agentic-research/regroup/internal/record"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Visitor is a Record seen through the Group it was found in. Visitors are
// produced during traversal and are not retained by the graph.
type Visitor struct {
	group  *Group
	record *record.Record
}

func (v Visitor) Group() *Group {
	return v.group
}

func (v Visitor) Record() *record.Record {
	return v.record
}

// Children returns the owning group's child names.
func (v Visitor) Children() []string {
	return v.group.Children()
}

// Data shapes the record with its group's Type. With includeChildren every
// child group is materialized recursively, all the way down, and attached
// under its name.
func (v Visitor) Data(includeChildren bool) any {
	var children *orderedmap.OrderedMap[string, any]
	if includeChildren {
		children = orderedmap.New[string, any]()
		for p := v.group.children.Oldest(); p != nil; p = p.Next() {
			visitors := v.Visit(p.Key)
			items := make([]any, len(visitors))
			for i, c := range visitors {
				items[i] = c.Data(true)
			}
			children.Set(p.Key, items)
		}
	}
	return v.group.typ.Convert(v.record.Data(), children)
}

// Visit descends one level into the named child group.
func (v Visitor) Visit(name string) []Visitor {
	return v.group.VisitChildren(name, v.record)
}
