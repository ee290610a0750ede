package ingest

import (
	"fmt"

	"github.com/agentic-research/regroup/internal/field"
	"github.com/ohler55/ojg/jp"
)

// Select runs a JSONPath selector against a decoded document and returns the
// matched values as rows. A single match that is itself a list (e.g. "$.items")
// is expanded into its elements. Ordered maps are flattened into plain maps
// first, so selected rows lose their key order.
func Select(root any, selector string) ([]any, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}

	results := x.Get(field.Plain(root))
	if len(results) == 1 {
		if list, ok := results[0].([]any); ok {
			return list, nil
		}
	}
	return results, nil
}
