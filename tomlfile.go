package layeredconfig

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// TOMLFile is a structured-markup source backed by a TOML document. Nesting
// is arbitrary (tables) and typing is complete: TOML natively distinguishes
// strings, integers, booleans, arrays, and dates/datetimes.
//
// A missing file yields an empty, writable source. Write rewrites the whole
// document with keys sorted alphabetically.
type TOMLFile struct {
	treeNode
}

// NewTOMLFile creates a TOMLFile source for the given path. The file is read
// once at construction; a missing file is not an error, a malformed one is.
func NewTOMLFile(path string) (*TOMLFile, error) {
	data := make(map[string]any)
	if raw, ok := readFileIfPresent(path); ok {
		if err := toml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config file '%s': %w", path, err)
		}
		liftLocalTimes(data)
		normalizeTree(data)
	}

	return &TOMLFile{treeNode{src: &treeSource{
		name:     "tomlfile",
		data:     data,
		writable: true,
		kindOf:   KindOfValue,
		persist: func(m map[string]any) error {
			var buf bytes.Buffer
			if err := toml.NewEncoder(&buf).Encode(m); err != nil {
				return fmt.Errorf("failed to marshal TOML config: %w", err)
			}
			return atomicWriteFile(path, buf.Bytes())
		},
	}}}, nil
}

// liftLocalTimes rebuilds every datetime on its wall-clock components in UTC.
// The TOML decoder marks zone-less dates and datetimes with sentinel
// locations; pinning the wall time to UTC gives all of them one comparable
// representation.
func liftLocalTimes(m map[string]any) {
	for k, v := range m {
		switch t := v.(type) {
		case map[string]any:
			liftLocalTimes(t)
		case time.Time:
			m[k] = time.Date(t.Year(), t.Month(), t.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		}
	}
}
