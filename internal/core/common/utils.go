package common

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agenthands/gbif-reconcile/internal/core/model"
)

// ParseJSON unmarshals a JSON document into a type T.
func ParseJSON[T any](data string) (T, error) {
	var result T
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}

// ParseQuery accepts either a plain query string or a JSON query object.
func ParseQuery(raw string) (model.Query, error) {
	if !strings.HasPrefix(raw, "{") {
		return model.Query{Query: raw}, nil
	}
	q, err := ParseJSON[model.Query](raw)
	if err != nil {
		return model.Query{}, fmt.Errorf("invalid query object: %w", err)
	}
	return q, nil
}

// ParseQueries decodes a batch of the form {"q0": {"query": "..."}, ...}.
func ParseQueries(raw string) (map[string]model.Query, error) {
	queries, err := ParseJSON[map[string]model.Query](raw)
	if err != nil {
		return nil, fmt.Errorf("invalid queries object: %w", err)
	}
	if queries == nil {
		queries = map[string]model.Query{}
	}
	return queries, nil
}
