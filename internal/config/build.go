package config

import (
	"fmt"

	"github.com/agentic-research/regroup/api"
	"github.com/agentic-research/regroup/internal/graph"
	"github.com/agentic-research/regroup/internal/key"
	"github.com/agentic-research/regroup/internal/shape"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Option customizes Build.
type Option func(*builder)

// WithConstructors registers named constructors for object_class values.
func WithConstructors(r shape.Registry) Option {
	return func(b *builder) {
		for name, fn := range r {
			b.constructors[name] = fn
		}
	}
}

// WithInterner shares an existing key interner instead of creating one.
func WithInterner(in *key.Interner) Option {
	return func(b *builder) {
		b.keys = in
	}
}

type builder struct {
	keys         *key.Interner
	constructors shape.Registry
	types        map[string]*shape.Type
}

// Build resolves cfg into its forest of root groups, in declaration order.
func Build(cfg *api.Config, opts ...Option) ([]*graph.Group, error) {
	b := &builder{
		keys:         key.NewInterner(),
		constructors: shape.Registry{},
		types:        make(map[string]*shape.Type),
	}
	for _, opt := range opts {
		opt(b)
	}

	for _, ts := range cfg.Types {
		t, err := b.buildType(ts)
		if err != nil {
			return nil, err
		}
		b.types[ts.Name] = t
	}
	return b.buildGroups(cfg.Groups, nil)
}

// NewGraph builds a graph from cfg and ingests rows into it.
func NewGraph(cfg *api.Config, rows []any, opts ...Option) (*graph.Graph, error) {
	groups, err := Build(cfg, opts...)
	if err != nil {
		return nil, err
	}
	g, err := graph.New(groups...)
	if err != nil {
		return nil, err
	}
	return g.Add(rows...), nil
}

func (b *builder) buildType(ts api.TypeSpec) (*shape.Type, error) {
	out, ok := b.constructors.Resolve(ts.ObjectClass)
	if !ok {
		return nil, fmt.Errorf("type %q: %q: %w", ts.Name, ts.ObjectClass, ErrUnknownObjectClass)
	}
	var props shape.Properties
	if ts.Properties != nil {
		props = orderedmap.New[string, string]()
		for _, p := range ts.Properties {
			props.Set(p.Name, p.From)
		}
	}
	return shape.New(ts.Name, props, out), nil
}

func (b *builder) buildGroups(specs []api.GroupSpec, parentParts []string) ([]*graph.Group, error) {
	groups := make([]*graph.Group, 0, len(specs))
	for _, gs := range specs {
		cat, err := graph.NewCategory(b.keys.Get(gs.By...), b.keys.Get(parentParts...), gs.IncludeBlank)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", gs.Name, err)
		}

		childParts := make([]string, 0, len(parentParts)+len(gs.By))
		childParts = append(childParts, parentParts...)
		childParts = append(childParts, gs.By...)
		children, err := b.buildGroups(gs.Groups, childParts)
		if err != nil {
			return nil, err
		}

		// Unknown type names fall back to the null type.
		typ := b.types[gs.Type]
		g, err := graph.NewGroup(gs.Name, cat, typ, children...)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}
