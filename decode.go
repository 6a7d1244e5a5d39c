package layeredconfig

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the effective configuration at this node into a struct.
// Fields map by lower-cased name or by the "config" tag, subsections map to
// nested structs, and string values convert weakly into numeric and boolean
// fields.
func (lc *LayeredConfig) Scan(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(dateTimeLayout),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(lc.flatten()); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}

// flatten materializes the merged view as one nested map, resolving every
// visible key. Keys whose declared type rejects their raw value are skipped.
func (lc *LayeredConfig) flatten() map[string]any {
	out := make(map[string]any)
	for _, key := range lc.Keys() {
		if value, err := lc.resolve(key); err == nil {
			out[key] = value
		}
	}
	for _, name := range lc.Subsections() {
		out[name] = lc.Subsection(name).flatten()
	}
	return out
}
