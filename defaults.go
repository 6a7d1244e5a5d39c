package layeredconfig

// Defaults is the in-memory source of code-supplied default values. It is
// fully typed: native Go values (string, int, bool, []string, time.Time)
// keep their types, and nested map[string]any values form subsections.
//
// A Kind constant used as a value declares a type placeholder: the key has a
// known expected type but no value, so reads treat it as absent while other
// sources' string values for the same key coerce to the declared kind.
//
// Defaults has no persistent backing; it is never dirty and Write is a no-op.
type Defaults struct {
	treeNode
}

// NewDefaults creates a Defaults source over the given nested mapping. The
// mapping is held by reference, not copied.
func NewDefaults(values map[string]any) *Defaults {
	if values == nil {
		values = make(map[string]any)
	}
	return &Defaults{treeNode{src: &treeSource{
		name:     "defaults",
		data:     values,
		writable: true,
		kindOf:   KindOfValue,
	}}}
}
