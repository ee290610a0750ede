package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/agentic-research/regroup/api"
	"github.com/agentic-research/regroup/internal/node"
)

// ParseJSON reads a JSON specification. Object member order is kept, so it
// carries the same meaning as in YAML.
func ParseJSON(data []byte) (*api.Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := node.FromJSON(dec)
	if errors.Is(err, io.EOF) {
		return &api.Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return fromNode(n)
}
