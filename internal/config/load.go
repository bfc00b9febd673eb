package config

import (
	"fmt"
	"os"

	yamlv3 "gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

// LoadFile reads one override file. Unknown keys and malformed YAML are
// rejected as a SchemaError before any resolution happens.
func LoadFile(path string) (Values, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return Values{}, fmt.Errorf("failed to read values file: %w", err)
	}

	v, err := Decode(data)
	if err != nil {
		if se, ok := err.(*SchemaError); ok {
			se.File = path
		}
		return Values{}, err
	}
	return v, nil
}

// Decode strictly parses override YAML into Values. The raw pass catches
// malformed documents with the friendlier yaml.v3 error positions; the strict
// pass rejects keys the schema does not know about. Passthrough fields
// (env bindings, volumes, tolerations) accept their full Kubernetes shape.
func Decode(data []byte) (Values, error) {
	var raw map[string]any
	if err := yamlv3.Unmarshal(data, &raw); err != nil {
		return Values{}, &SchemaError{Err: err}
	}

	var v Values
	if err := sigsyaml.UnmarshalStrict(data, &v); err != nil {
		return Values{}, &SchemaError{Err: err}
	}
	return v, nil
}

// LoadFiles decodes and pre-merges several override files in order; later
// files win over earlier ones with the same merge semantics as Resolve.
func LoadFiles(paths []string) (Values, error) {
	var merged Values
	for _, path := range paths {
		v, err := LoadFile(path)
		if err != nil {
			return Values{}, err
		}
		if err := mergeValues(&merged, v); err != nil {
			return Values{}, err
		}
	}
	return merged, nil
}
