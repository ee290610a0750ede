package config

import (
	"fmt"

	"github.com/agentic-research/regroup/api"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclFile mirrors the YAML layout with blocks:
//
//	type "person" {
//	  object_class = "open_struct"
//	  property "id" { from = "ID #" }
//	}
//
//	group "people" {
//	  by   = ["ID #"]
//	  type = "person"
//	  group "cars" { by = ["Car ID #"] }
//	}
type hclFile struct {
	Types  []hclType  `hcl:"type,block"`
	Groups []hclGroup `hcl:"group,block"`
}

type hclType struct {
	Name        string        `hcl:"name,label"`
	Properties  []string      `hcl:"properties,optional"`
	ObjectClass string        `hcl:"object_class,optional"`
	Renames     []hclProperty `hcl:"property,block"`
}

type hclProperty struct {
	Name string `hcl:"name,label"`
	From string `hcl:"from"`
}

type hclGroup struct {
	Name         string     `hcl:"name,label"`
	By           []string   `hcl:"by"`
	IncludeBlank bool       `hcl:"include_blank,optional"`
	Type         string     `hcl:"type,optional"`
	Groups       []hclGroup `hcl:"group,block"`
}

// ParseHCL reads an HCL specification. Identity properties listed in
// "properties" come first, followed by "property" blocks in file order.
func ParseHCL(data []byte, filename string) (*api.Config, error) {
	f, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse hcl: %w", diags)
	}
	var file hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("decode hcl: %w", diags)
	}

	cfg := &api.Config{}
	for _, t := range file.Types {
		ts := api.TypeSpec{Name: t.Name, ObjectClass: t.ObjectClass}
		if t.Properties != nil || len(t.Renames) > 0 {
			ts.Properties = []api.Property{}
			for _, p := range t.Properties {
				ts.Properties = append(ts.Properties, api.Property{Name: p, From: p})
			}
			for _, r := range t.Renames {
				ts.Properties = append(ts.Properties, api.Property{Name: r.Name, From: r.From})
			}
		}
		cfg.Types = append(cfg.Types, ts)
	}
	cfg.Groups = hclGroups(file.Groups)
	return cfg, nil
}

func hclGroups(in []hclGroup) []api.GroupSpec {
	if len(in) == 0 {
		return nil
	}
	out := make([]api.GroupSpec, len(in))
	for i, g := range in {
		out[i] = api.GroupSpec{
			Name:         g.Name,
			By:           g.By,
			IncludeBlank: g.IncludeBlank,
			Type:         g.Type,
			Groups:       hclGroups(g.Groups),
		}
	}
	return out
}
