// Package node converts documents into order-preserving trees.
//
// Both YAML and JSON documents are read into yaml.Node so that mapping
// order survives; Value then turns a node into plain Go values with every
// mapping as an ordered map.
package node

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Map is the ordered mapping produced by Value.
type Map = *orderedmap.OrderedMap[string, any]

// FromJSON decodes the next JSON value of dec into a yaml.Node, keeping
// object member order. Call dec.UseNumber first to keep integers exact.
func FromJSON(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				k, err := dec.Token()
				if err != nil {
					return nil, err
				}
				name, ok := k.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", k)
				}
				v, err := FromJSON(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, scalar("!!str", name), v)
			}
			_, err := dec.Token()
			return n, err
		case '[':
			n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				v, err := FromJSON(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, v)
			}
			_, err := dec.Token()
			return n, err
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case nil:
		return scalar("!!null", "null"), nil
	case bool:
		return scalar("!!bool", strconv.FormatBool(t)), nil
	case json.Number:
		return number(t.String()), nil
	case float64:
		return number(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case string:
		return scalar("!!str", t), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func number(s string) *yaml.Node {
	if strings.ContainsAny(s, ".eE") {
		return scalar("!!float", s)
	}
	return scalar("!!int", s)
}

// Value converts n into Go values: mappings become ordered maps, sequences
// []any, and scalars the type their tag resolves to.
func Value(n *yaml.Node) (any, error) {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return Value(n.Content[0])
	case yaml.MappingNode:
		m := orderedmap.New[string, any]()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v, err := Value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			if k.Kind == yaml.ScalarNode && k.Tag == "!!merge" {
				if src, ok := v.(Map); ok {
					for p := src.Oldest(); p != nil; p = p.Next() {
						if _, present := m.Get(p.Key); !present {
							m.Set(p.Key, p.Value)
						}
					}
				}
				continue
			}
			m.Set(k.Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := Value(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, nil
	}
}
