package layeredconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// JSONFile is a structured-markup source backed by a JSON document. Nesting
// is arbitrary; typing follows what JSON natively distinguishes, so integers,
// booleans, and arrays are typed while strings are not. JSON has no date or
// datetime, so those are stored and read back as ISO strings and recover
// their type only through another source's type information.
//
// A missing file yields an empty, writable source. Write rewrites the whole
// document in canonical form: keys sorted alphabetically, four-space indent.
type JSONFile struct {
	treeNode
}

// NewJSONFile creates a JSONFile source for the given path. The file is read
// once at construction; a missing file is not an error, a malformed one is.
func NewJSONFile(path string) (*JSONFile, error) {
	data := make(map[string]any)
	if raw, ok := readFileIfPresent(path); ok {
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config file '%s': %w", path, err)
		}
		normalizeTree(data)
	}

	return &JSONFile{treeNode{src: &treeSource{
		name:     "jsonfile",
		data:     data,
		writable: true,
		store:    jsonStore,
		kindOf:   jsonKindOf,
		persist: func(m map[string]any) error {
			out, err := json.MarshalIndent(m, "", "    ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON config: %w", err)
			}
			return atomicWriteFile(path, out)
		},
	}}}, nil
}

func jsonStore(v any) any {
	if t, ok := v.(time.Time); ok {
		return Format(t)
	}
	return v
}

func jsonKindOf(v any) (Kind, bool) {
	k, ok := KindOfValue(v)
	if !ok {
		return KindString, false
	}
	switch k {
	case KindInt, KindBool, KindList:
		return k, true
	}
	return KindString, false
}
