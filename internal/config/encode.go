package config

import (
	"bytes"

	"github.com/agentic-research/regroup/api"
	"gopkg.in/yaml.v3"
)

// MarshalYAML renders cfg in the same mapping form ParseYAML reads, so the
// output loads back into an equal Config.
func MarshalYAML(cfg *api.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toNode(cfg)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toNode(cfg *api.Config) *yaml.Node {
	root := mapping()
	if len(cfg.Types) > 0 {
		types := mapping()
		for _, ts := range cfg.Types {
			body := mapping()
			if ts.Properties != nil {
				props := mapping()
				for _, p := range ts.Properties {
					appendPair(props, p.Name, str(p.From))
				}
				appendPair(body, keyProperties, props)
			}
			if ts.ObjectClass != "" {
				appendPair(body, keyObjectClass, str(ts.ObjectClass))
			}
			appendPair(types, ts.Name, body)
		}
		appendPair(root, keyTypes, types)
	}
	if len(cfg.Groups) > 0 {
		appendPair(root, keyGroups, groupsNode(cfg.Groups))
	}
	return root
}

func groupsNode(specs []api.GroupSpec) *yaml.Node {
	n := mapping()
	for _, gs := range specs {
		body := mapping()
		if len(gs.By) == 1 {
			appendPair(body, keyBy, str(gs.By[0]))
		} else {
			by := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
			for _, b := range gs.By {
				by.Content = append(by.Content, str(b))
			}
			appendPair(body, keyBy, by)
		}
		if gs.IncludeBlank {
			appendPair(body, keyIncludeBlank, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
		}
		if gs.Type != "" {
			appendPair(body, keyType, str(gs.Type))
		}
		if len(gs.Groups) > 0 {
			appendPair(body, keyGroups, groupsNode(gs.Groups))
		}
		appendPair(n, gs.Name, body)
	}
	return n
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func appendPair(m *yaml.Node, k string, v *yaml.Node) {
	m.Content = append(m.Content, str(k), v)
}
