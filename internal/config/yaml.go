package config

import (
	"fmt"
	"strings"

	"github.com/agentic-research/regroup/api"
	"gopkg.in/yaml.v3"
)

// Recognized specification keys.
const (
	keyTypes        = "types"
	keyGroups       = "groups"
	keyProperties   = "properties"
	keyObjectClass  = "object_class"
	keyBy           = "by"
	keyIncludeBlank = "include_blank"
	keyType         = "type"
)

// ParseYAML reads a YAML specification. Mapping order is significant: it
// fixes the order of root groups, child groups and type properties.
func ParseYAML(data []byte) (*api.Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return fromNode(&doc)
}

func fromNode(doc *yaml.Node) (*api.Config, error) {
	root := resolve(doc)
	if root != nil && root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &api.Config{}, nil
		}
		root = resolve(root.Content[0])
	}
	cfg := &api.Config{}
	if isNull(root) {
		return cfg, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: specification must be a mapping", root.Line)
	}

	err := eachPair(root, func(name string, v *yaml.Node) error {
		var err error
		switch name {
		case keyTypes:
			cfg.Types, err = parseTypes(v)
		case keyGroups:
			cfg.Groups, err = parseGroups(v)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseTypes(n *yaml.Node) ([]api.TypeSpec, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %s must be a mapping", n.Line, keyTypes)
	}
	var types []api.TypeSpec
	err := eachPair(n, func(name string, v *yaml.Node) error {
		ts := api.TypeSpec{Name: name}
		if isNull(v) {
			types = append(types, ts)
			return nil
		}
		if v.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: type %q must be a mapping", v.Line, name)
		}
		err := eachPair(v, func(opt string, o *yaml.Node) error {
			var err error
			switch opt {
			case keyProperties:
				ts.Properties, err = parseProperties(o)
			case keyObjectClass:
				ts.ObjectClass, err = symbol(o)
			}
			return err
		})
		if err != nil {
			return fmt.Errorf("type %q: %w", name, err)
		}
		types = append(types, ts)
		return nil
	})
	return types, err
}

// parseProperties accepts a mapping of output name to source field, or a
// list or scalar of field names copied under their own names.
func parseProperties(n *yaml.Node) ([]api.Property, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		names, err := scalars(n)
		if err != nil {
			return nil, err
		}
		props := make([]api.Property, len(names))
		for i, name := range names {
			props[i] = api.Property{Name: keyName(name), From: name}
		}
		return props, nil
	}
	props := []api.Property{}
	err := eachPair(n, func(name string, v *yaml.Node) error {
		from, err := scalar(v)
		if err != nil {
			return err
		}
		props = append(props, api.Property{Name: name, From: from})
		return nil
	})
	return props, err
}

func parseGroups(n *yaml.Node) ([]api.GroupSpec, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %s must be a mapping", n.Line, keyGroups)
	}
	var groups []api.GroupSpec
	seen := make(map[string]bool)
	err := eachPair(n, func(name string, v *yaml.Node) error {
		if seen[name] {
			return fmt.Errorf("line %d: group %q declared twice", v.Line, name)
		}
		seen[name] = true

		gs, err := parseGroup(name, v)
		if err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
		groups = append(groups, gs)
		return nil
	})
	return groups, err
}

func parseGroup(name string, n *yaml.Node) (api.GroupSpec, error) {
	gs := api.GroupSpec{Name: name}
	if n.Kind != yaml.MappingNode {
		// Shorthand: the value is the group's by key.
		by, err := scalars(n)
		gs.By = by
		return gs, err
	}
	err := eachPair(n, func(opt string, o *yaml.Node) error {
		var err error
		switch opt {
		case keyBy:
			gs.By, err = scalars(o)
		case keyIncludeBlank:
			if !isNull(o) {
				err = o.Decode(&gs.IncludeBlank)
			}
		case keyType:
			gs.Type, err = symbol(o)
		case keyGroups:
			gs.Groups, err = parseGroups(o)
		}
		return err
	})
	return gs, err
}

func eachPair(n *yaml.Node, fn func(name string, v *yaml.Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolve(n.Content[i]), resolve(n.Content[i+1])
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		if err := fn(keyName(k.Value), v); err != nil {
			return err
		}
	}
	return nil
}

// keyName tolerates symbol-style keys such as ":by". Field references are
// left alone, so a column that really starts with ":" stays reachable.
func keyName(s string) string {
	return strings.TrimPrefix(s, ":")
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func scalar(n *yaml.Node) (string, error) {
	if isNull(n) {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: expected a scalar", n.Line)
	}
	return n.Value, nil
}

// symbol reads a scalar that names a declared type or class.
func symbol(n *yaml.Node) (string, error) {
	s, err := scalar(n)
	return keyName(s), err
}

func scalars(n *yaml.Node) ([]string, error) {
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.ScalarNode:
		return []string{n.Value}, nil
	case n.Kind == yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			s, err := scalar(resolve(c))
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: expected a scalar or a list", n.Line)
	}
}
