package layeredconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLFile is a structured-markup source backed by a YAML document. Nesting
// is arbitrary and typing is complete: YAML natively distinguishes strings,
// integers, booleans, sequences, and timestamps, so every value round-trips
// through its native representation.
//
// A missing file yields an empty, writable source. Write rewrites the whole
// document; yaml.v3 serializes map keys alphabetically.
type YAMLFile struct {
	treeNode
}

// NewYAMLFile creates a YAMLFile source for the given path. The file is read
// once at construction; a missing file is not an error, a malformed one is.
func NewYAMLFile(path string) (*YAMLFile, error) {
	data := make(map[string]any)
	if raw, ok := readFileIfPresent(path); ok {
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
		}
		normalizeTree(data)
	}

	return &YAMLFile{treeNode{src: &treeSource{
		name:     "yamlfile",
		data:     data,
		writable: true,
		kindOf:   KindOfValue,
		persist: func(m map[string]any) error {
			out, err := yaml.Marshal(m)
			if err != nil {
				return fmt.Errorf("failed to marshal YAML config: %w", err)
			}
			return atomicWriteFile(path, out)
		},
	}}}, nil
}
