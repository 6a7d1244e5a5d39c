package layeredconfig

import (
	"errors"
	"fmt"
	"time"
)

// Options controls resolution behavior shared by a config and all of its
// subsection views.
type Options struct {
	// Cascade makes a subsection inherit any key it does not define from
	// the nearest ancestor that does.
	Cascade bool
}

// LayeredConfig is a merged read/write view over an ordered stack of
// configuration sources. The last source passed to New has the highest
// priority. Lookups are lazy: nothing is merged up front, every read walks
// the stack at call time, so a Set through any layer is visible immediately.
type LayeredConfig struct {
	sources []ConfigSource
	parent  *LayeredConfig
	cascade bool
	subs    map[string]*LayeredConfig
}

// New builds a layered config over the given sources, lowest priority first.
func New(sources ...ConfigSource) *LayeredConfig {
	return NewWithOptions(Options{}, sources...)
}

// NewWithOptions is New with explicit resolution options.
func NewWithOptions(opts Options, sources ...ConfigSource) *LayeredConfig {
	return &LayeredConfig{
		sources: sources,
		cascade: opts.Cascade,
		subs:    make(map[string]*LayeredConfig),
	}
}

// Resolve returns the effective typed value of key, or ErrNotFound when no
// source carries it, or ErrCoerce when a declared type rejects the raw value.
func (lc *LayeredConfig) Resolve(key string) (any, error) {
	return lc.resolve(key)
}

// Get resolves key to its effective value, or to a *LayeredConfig when key
// names a subsection rather than a leaf.
func (lc *LayeredConfig) Get(key string) (any, error) {
	value, err := lc.resolve(key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	for _, name := range lc.Subsections() {
		if name == key {
			return lc.Subsection(key), nil
		}
	}
	return nil, notFound(key)
}

// GetDefault resolves key and falls back to the given value when the key is
// absent or unusable.
func (lc *LayeredConfig) GetDefault(key string, fallback any) any {
	value, err := lc.resolve(key)
	if err != nil {
		return fallback
	}
	return value
}

// Has reports whether any visible source holds a value for key, walking the
// same source-major order resolve uses.
func (lc *LayeredConfig) Has(key string) bool {
	for i := len(lc.sources) - 1; i >= 0; i-- {
		for node := lc; node != nil; node = node.up() {
			if node.sources[i].Has(key) {
				return true
			}
		}
	}
	return false
}

// Keys lists every key visible at this node exactly once, in first-seen
// order walking the sources lowest priority first, then cascading ancestors.
func (lc *LayeredConfig) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	for node := lc; node != nil; node = node.up() {
		for _, src := range node.sources {
			for _, k := range src.Keys() {
				if !seen[k] {
					seen[k] = true
					keys = append(keys, k)
				}
			}
		}
	}
	return keys
}

// Subsections lists every subsection name any source defines at this node,
// first-seen order, lowest priority source first.
func (lc *LayeredConfig) Subsections() []string {
	var names []string
	seen := make(map[string]bool)
	for _, src := range lc.sources {
		for _, n := range src.Subsections() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// Subsection returns the merged view over the named subsection. The view is
// built even when no source defines the section yet, so writes can create
// it, and repeated calls return the same view.
func (lc *LayeredConfig) Subsection(name string) *LayeredConfig {
	if sub, ok := lc.subs[name]; ok {
		return sub
	}
	views := make([]ConfigSource, len(lc.sources))
	for i, src := range lc.sources {
		views[i] = src.Subsection(name)
	}
	sub := &LayeredConfig{
		sources: views,
		parent:  lc,
		cascade: lc.cascade,
		subs:    make(map[string]*LayeredConfig),
	}
	lc.subs[name] = sub
	return sub
}

// Set stores value for a key some visible source already carries, routing
// the write to the highest-priority writable source at this node. Keys no
// source has ever heard of fail with ErrNoWriteTarget; introducing a new key
// takes SetIn with an explicit target.
func (lc *LayeredConfig) Set(key string, value any) error {
	if !lc.knows(key) {
		return fmt.Errorf("%w: %s", ErrNoWriteTarget, key)
	}
	for i := len(lc.sources) - 1; i >= 0; i-- {
		if src := lc.sources[i]; src.Writable() {
			src.Set(key, value)
			return nil
		}
	}
	return fmt.Errorf("%w: no writable source for %s", ErrNoWriteTarget, key)
}

// SetIn stores value for key directly in the named source, creating the key
// if needed. Unknown source names fail with ErrUnknownSource.
func (lc *LayeredConfig) SetIn(source, key string, value any) error {
	for _, src := range lc.sources {
		if src.Name() == source {
			src.Set(key, value)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownSource, source)
}

// Write persists every dirty source in the stack. Clean sources and sources
// without a persistent form are skipped.
func (lc *LayeredConfig) Write() error {
	for _, src := range lc.sources {
		if err := src.Write(); err != nil {
			return fmt.Errorf("failed to write source %s: %w", src.Name(), err)
		}
	}
	return nil
}

// String resolves key and returns its canonical string form.
func (lc *LayeredConfig) String(key string) (string, error) {
	value, err := lc.resolve(key)
	if err != nil {
		return "", err
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return Format(value), nil
}

// Int resolves key as an integer.
func (lc *LayeredConfig) Int(key string) (int, error) {
	value, err := lc.resolve(key)
	if err != nil {
		return 0, err
	}
	switch v := value.(type) {
	case int:
		return v, nil
	case string:
		c, err := Coerce(v, KindInt)
		if err != nil {
			return 0, err
		}
		return c.(int), nil
	}
	return 0, fmt.Errorf("%w: key %s holds %T, want int", ErrCoerce, key, value)
}

// Bool resolves key as a boolean.
func (lc *LayeredConfig) Bool(key string) (bool, error) {
	value, err := lc.resolve(key)
	if err != nil {
		return false, err
	}
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		c, err := Coerce(v, KindBool)
		if err != nil {
			return false, err
		}
		return c.(bool), nil
	}
	return false, fmt.Errorf("%w: key %s holds %T, want bool", ErrCoerce, key, value)
}

// List resolves key as a list of strings.
func (lc *LayeredConfig) List(key string) ([]string, error) {
	value, err := lc.resolve(key)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case []string:
		return v, nil
	case string:
		c, err := Coerce(v, KindList)
		if err != nil {
			return nil, err
		}
		return c.([]string), nil
	}
	return nil, fmt.Errorf("%w: key %s holds %T, want list", ErrCoerce, key, value)
}

// Date resolves key as a calendar day.
func (lc *LayeredConfig) Date(key string) (time.Time, error) {
	return lc.timeValue(key, KindDate)
}

// DateTime resolves key as a timestamp.
func (lc *LayeredConfig) DateTime(key string) (time.Time, error) {
	return lc.timeValue(key, KindDateTime)
}

func (lc *LayeredConfig) timeValue(key string, kind Kind) (time.Time, error) {
	value, err := lc.resolve(key)
	if err != nil {
		return time.Time{}, err
	}
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		c, err := Coerce(v, kind)
		if err != nil {
			return time.Time{}, err
		}
		return c.(time.Time), nil
	}
	return time.Time{}, fmt.Errorf("%w: key %s holds %T, want %v", ErrCoerce, key, value, kind)
}
