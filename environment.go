package layeredconfig

import (
	"os"
	"sort"
	"strings"
)

// Environment is a source over an environment-variable namespace. Variable
// names are matched case-insensitively against a configured prefix; the
// remainder is lower-cased to form the key, with "_" read as a subsection
// separator: PREFIX_MODULE_KEY is key "key" in subsection "module". A name
// whose remainder still contains "_" therefore never surfaces as a leaf key
// at the current level.
//
// Environment values are always strings and carry no type information. The
// source is read-only in practice: Set mutates the in-memory snapshot, but
// there is no standard persistence target, so Write is a no-op and the
// resolver never routes writes here.
type Environment struct {
	vars   map[string]string
	prefix string
}

// NewEnvironment creates an Environment source over the given variables,
// considering only names starting with prefix. A nil map snapshots the
// process environment.
func NewEnvironment(vars map[string]string, prefix string) *Environment {
	if vars == nil {
		vars = make(map[string]string)
		for _, entry := range os.Environ() {
			if name, value, ok := strings.Cut(entry, "="); ok {
				vars[name] = value
			}
		}
	}
	return &Environment{vars: vars, prefix: prefix}
}

// rest returns the portion of name after the prefix, or false when the name
// does not belong to this namespace.
func (e *Environment) rest(name string) (string, bool) {
	if len(name) < len(e.prefix) {
		return "", false
	}
	if !strings.EqualFold(name[:len(e.prefix)], e.prefix) {
		return "", false
	}
	return name[len(e.prefix):], true
}

func (e *Environment) lookup(key string) (string, bool) {
	for name, value := range e.vars {
		if rest, ok := e.rest(name); ok && strings.EqualFold(rest, key) {
			return value, true
		}
	}
	return "", false
}

func (e *Environment) Name() string { return "environment" }

func (e *Environment) Get(key string) (any, error) {
	if !strings.Contains(key, "_") {
		if value, ok := e.lookup(key); ok {
			return value, nil
		}
	}
	return nil, notFound(key)
}

func (e *Environment) Keys() []string {
	var keys []string
	for name := range e.vars {
		rest, ok := e.rest(name)
		if !ok || rest == "" || strings.Contains(rest, "_") {
			continue
		}
		keys = append(keys, strings.ToLower(rest))
	}
	sort.Strings(keys)
	return keys
}

func (e *Environment) Subsections() []string {
	seen := make(map[string]bool)
	var names []string
	for name := range e.vars {
		rest, ok := e.rest(name)
		if !ok {
			continue
		}
		if head, _, found := strings.Cut(rest, "_"); found && head != "" {
			sub := strings.ToLower(head)
			if !seen[sub] {
				seen[sub] = true
				names = append(names, sub)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Has reports a value for key at this level. Underscores in a key name are
// indistinguishable from subsection separators, so such keys never resolve
// at leaf level.
func (e *Environment) Has(key string) bool {
	if strings.Contains(key, "_") {
		return false
	}
	_, ok := e.lookup(key)
	return ok
}

func (e *Environment) Typed(string) bool          { return false }
func (e *Environment) KindOf(string) (Kind, bool) { return KindString, false }

func (e *Environment) Subsection(name string) ConfigSource {
	return &Environment{
		vars:   e.vars,
		prefix: e.prefix + strings.ToUpper(name) + "_",
	}
}

func (e *Environment) Set(key string, value any) {
	e.vars[e.prefix+strings.ToUpper(key)] = Format(value)
}

func (e *Environment) Write() error { return nil }

func (e *Environment) Dirty() bool           { return false }
func (e *Environment) Writable() bool        { return false }
func (e *Environment) SupportsNesting() bool { return true }
func (e *Environment) CarriesTypes() bool    { return false }
