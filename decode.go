package ormql

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Decode reads one JSON document as an AST. Numbers are kept as json.Number
// so they reach the SQL text exactly as written.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var node any
	if err := dec.Decode(&node); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode json: unexpected data after document")
	}
	return node, nil
}

// DecodeYAML reads one YAML document as an AST. Mappings are normalised to
// map[string]any.
func DecodeYAML(r io.Reader) (any, error) {
	var node any
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return normalizeYAML(node), nil
}

func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, el := range x {
			x[k] = normalizeYAML(el)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, el := range x {
			out[fmt.Sprint(k)] = normalizeYAML(el)
		}
		return out
	case []any:
		for i, el := range x {
			x[i] = normalizeYAML(el)
		}
		return x
	default:
		return x
	}
}
