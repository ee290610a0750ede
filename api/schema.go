package api

// Config is the declarative specification of a regrouping: the output types
// and the tree of groups that index rows.
type Config struct {
	// Types declared by name, in declaration order.
	Types []TypeSpec `json:"types,omitempty" yaml:"types,omitempty"`
	// Root groups, in declaration order.
	Groups []GroupSpec `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// TypeSpec describes the shape of the objects a group produces.
type TypeSpec struct {
	Name string `json:"name" yaml:"name"`
	// Properties maps output names to source field names, in output order.
	// A nil slice means no properties were declared: every source field is copied.
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
	// ObjectClass selects the output strategy: "hash" (default), "open_struct",
	// or the name of a registered constructor.
	ObjectClass string `json:"object_class,omitempty" yaml:"object_class,omitempty"`
}

// Property renames one source field.
type Property struct {
	Name string `json:"name" yaml:"name"`
	From string `json:"from" yaml:"from"`
}

// GroupSpec describes one node of the group tree.
type GroupSpec struct {
	Name string `json:"name" yaml:"name"`
	// By lists the fields whose values identify a member of this group.
	By []string `json:"by" yaml:"by"`
	// IncludeBlank keeps rows whose By fields are all empty.
	IncludeBlank bool `json:"include_blank,omitempty" yaml:"include_blank,omitempty"`
	// Type names a TypeSpec. Unknown or empty names use the null type.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Groups nested under this one, in declaration order.
	Groups []GroupSpec `json:"groups,omitempty" yaml:"groups,omitempty"`
}
