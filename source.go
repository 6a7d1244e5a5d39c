package layeredconfig

// ConfigSource is one ranked backend supplying configuration data. The five
// built-in variants (Defaults, INIFile, JSONFile/YAMLFile/TOMLFile,
// Environment, Commandline) have asymmetric capabilities in nesting depth,
// carried typing, and writability, which they report through explicit flags
// rather than through errors, so the resolver can query instead of probe.
//
// Within one source a key is either a leaf value or a subsection, never both.
type ConfigSource interface {
	// Name identifies the source variant ("defaults", "inifile", ...) for
	// explicit write targeting.
	Name() string

	// Get returns the most specific representation the backend can produce:
	// a native typed value if the backend carries typing, else a string.
	// Absent keys, including placeholder-only keys, return ErrNotFound.
	Get(key string) (any, error)

	// Keys lists the leaf keys holding values directly at this node, in the
	// source's own order. Type-placeholder-only keys are not listed.
	Keys() []string

	// Subsections lists the direct child subsection names at this node.
	Subsections() []string

	// Has reports whether key holds a value at this node.
	Has(key string) bool

	// Typed reports whether the backend itself carries type information for
	// key, either as a natively typed value or a declared type placeholder.
	// It is independent of whether Coerce could infer a type.
	Typed(key string) bool

	// KindOf returns the declared or derived semantic kind for key. The
	// second return is false exactly when Typed is false.
	KindOf(key string) (Kind, bool)

	// Subsection returns a view over the named child subsection, creating an
	// empty one if the backend has no such section. It never fails, and must
	// support depth beyond one level (sources that cannot nest return views
	// that are empty below their supported depth).
	Subsection(name string) ConfigSource

	// Set stores a value at this node, creating the key if necessary, and
	// marks the owning source dirty. Backends without carried typing store
	// the canonical string encoding and lose the type.
	Set(key string, value any)

	// Write persists the source if it is dirty and a no-op otherwise; it
	// never fails when there is nothing to persist.
	Write() error

	// Dirty reports whether the source holds unsaved writes.
	Dirty() bool

	// Writable reports whether the resolver may route writes to this source.
	Writable() bool

	// SupportsNesting reports whether the backend represents subsections
	// deeper than one level.
	SupportsNesting() bool

	// CarriesTypes reports whether the backend can carry type information
	// for any key at all.
	CarriesTypes() bool
}
