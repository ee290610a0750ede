package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/agentic-research/regroup/internal/node"
	"gopkg.in/yaml.v3"
)

// LoadJSON reads rows from a JSON document or a stream of JSON values
// (JSON Lines). Each top-level array contributes its elements and each other
// value contributes itself. Objects become ordered maps.
func LoadJSON(r io.Reader, selector string) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rows []any
	for {
		n, err := node.FromJSON(dec)
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		more, err := documentRows(n, selector)
		if err != nil {
			return nil, err
		}
		rows = append(rows, more...)
	}
}

// LoadYAML reads rows from a YAML stream. Multiple documents separated by
// "---" are concatenated.
func LoadYAML(r io.Reader, selector string) ([]any, error) {
	dec := yaml.NewDecoder(r)

	var rows []any
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		more, err := documentRows(&doc, selector)
		if err != nil {
			return nil, err
		}
		rows = append(rows, more...)
	}
}

// LoadDocument is LoadJSON or LoadYAML over an in-memory document.
func LoadDocument(data []byte, isJSON bool, selector string) ([]any, error) {
	if isJSON {
		return LoadJSON(bytes.NewReader(data), selector)
	}
	return LoadYAML(bytes.NewReader(data), selector)
}

func documentRows(n *yaml.Node, selector string) ([]any, error) {
	v, err := node.Value(n)
	if err != nil {
		return nil, err
	}
	if selector != "" {
		return Select(v, selector)
	}
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return t, nil
	default:
		return []any{t}, nil
	}
}
