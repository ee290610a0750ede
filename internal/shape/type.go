// Package shape describes the output objects built from grouped records.
//
// A Type renames source fields into output properties and decides what the
// resulting object is: an ordered map, an attribute bag, or whatever a
// caller-supplied constructor returns.
package shape

import (
	"github.com/agentic-research/regroup/internal/field"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields is the ordered property map handed to every output strategy.
type Fields = *orderedmap.OrderedMap[string, any]

// Properties maps output property names to source field names, in output order.
type Properties = *orderedmap.OrderedMap[string, string]

// Kind tags the output strategy.
type Kind int

const (
	KindMap Kind = iota
	KindAttrs
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindAttrs:
		return "attrs"
	case KindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Constructor materializes a custom output object from its fields.
type Constructor func(Fields) any

// Output is a closed variant over the ways a Type can materialize.
// Use MapOutput, AttrsOutput or FuncOutput to build one.
type Output struct {
	kind      Kind
	construct Constructor
}

func MapOutput() Output {
	return Output{kind: KindMap}
}

func AttrsOutput() Output {
	return Output{kind: KindAttrs}
}

// FuncOutput hands the fields to fn. A nil fn behaves like MapOutput.
func FuncOutput(fn Constructor) Output {
	if fn == nil {
		return MapOutput()
	}
	return Output{kind: KindFunc, construct: fn}
}

func (o Output) Kind() Kind {
	return o.kind
}

func (o Output) materialize(fields Fields) any {
	switch o.kind {
	case KindAttrs:
		return &Attrs{fields: fields}
	case KindFunc:
		return o.construct(fields)
	default:
		return fields
	}
}

// Type is an output shape descriptor. It is immutable once built.
type Type struct {
	name       string
	properties Properties
	output     Output
}

// Null is the type of any group declared without one: every source field is
// copied under its own name into an ordered map.
var Null = &Type{}

// New builds a Type. A nil props means "no declared properties": the source's
// own field names are used when it can enumerate them.
func New(name string, props Properties, output Output) *Type {
	var p Properties
	if props != nil {
		p = orderedmap.New[string, string]()
		for pair := props.Oldest(); pair != nil; pair = pair.Next() {
			p.Set(pair.Key, pair.Value)
		}
	}
	return &Type{name: name, properties: p, output: output}
}

// Identity builds properties that copy each named field under its own name.
func Identity(names ...string) Properties {
	p := orderedmap.New[string, string]()
	for _, n := range names {
		p.Set(n, n)
	}
	return p
}

func (t *Type) Name() string {
	return t.name
}

func (t *Type) Output() Output {
	return t.output
}

// Properties returns the declared property table, or nil when none was declared.
func (t *Type) Properties() Properties {
	return t.properties
}

// Convert shapes one raw row. Declared properties are read first, in order;
// children are appended afterwards and replace a property of the same name.
func (t *Type) Convert(data any, children Fields) any {
	r := field.For(data)
	out := orderedmap.New[string, any]()

	props := t.properties
	if props == nil {
		names, _ := r.Keys()
		props = Identity(names...)
	}
	for p := props.Oldest(); p != nil; p = p.Next() {
		v, _ := r.Get(p.Value)
		out.Set(p.Key, v)
	}

	if children != nil {
		for c := children.Oldest(); c != nil; c = c.Next() {
			out.Set(c.Key, c.Value)
		}
	}

	return t.output.materialize(out)
}
