package layeredconfig

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Quick creates a fully assembled layered config with a single call: the
// given defaults, a discovered config file if any, environment variables
// prefixed with the upper-cased app name, and command-line arguments, in
// rising priority. This is the recommended initialization for most
// applications.
func Quick(appName string, defaults map[string]any, args []string) (*LayeredConfig, error) {
	b := NewBuilder().
		WithDefaults(defaults).
		WithFileDiscovery(DefaultDiscoveryOptions(appName, args)).
		WithEnvironment(strings.ToUpper(appName) + "_").
		WithArgs(args)
	return b.Build()
}

// MustQuick is like Quick but panics on error.
func MustQuick(appName string, defaults map[string]any, args []string) *LayeredConfig {
	lc, err := Quick(appName, defaults, args)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return lc
}

// Validate checks that every required key resolves to a value.
func (lc *LayeredConfig) Validate(required ...string) error {
	var missing []string
	for _, key := range required {
		if !lc.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Debug returns a formatted listing of every visible key with the value each
// source contributes, highest priority first.
func (lc *LayeredConfig) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	for _, key := range lc.Keys() {
		effective, err := lc.resolve(key)
		if err != nil {
			b.WriteString(fmt.Sprintf("  %s: <%v>\n", key, err))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %v\n", key, effective))
		for node := lc; node != nil; node = node.up() {
			for i := len(node.sources) - 1; i >= 0; i-- {
				src := node.sources[i]
				if !src.Has(key) {
					continue
				}
				if v, err := src.Get(key); err == nil {
					b.WriteString(fmt.Sprintf("    %s: %v\n", src.Name(), v))
				}
			}
		}
	}
	return b.String()
}

// Dump writes the effective configuration to w in TOML format.
func (lc *LayeredConfig) Dump(w io.Writer) error {
	return toml.NewEncoder(w).Encode(lc.flatten())
}
