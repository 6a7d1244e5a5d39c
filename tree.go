package layeredconfig

import "sort"

// treeSource is the shared backing state of one map-based source: the nested
// data map, the dirty flag, and the format hooks. Every subsection view of
// the source points back at the same treeSource, so a write through any view
// is a write to the one underlying mapping.
type treeSource struct {
	name     string
	data     map[string]any
	dirty    bool
	writable bool

	// store lowers a typed value to what the format can keep natively
	// (nil means identity).
	store func(any) any
	// kindOf implements the format's typing rules; nil means the format
	// carries no type information at all.
	kindOf func(any) (Kind, bool)
	// persist rewrites the whole backing document; nil means the source has
	// no persistent form and Write is a no-op.
	persist func(map[string]any) error
}

// treeNode is a ConfigSource view over one subsection path of a treeSource.
// It holds no data of its own.
type treeNode struct {
	src  *treeSource
	path []string
}

// node returns the mapping at this view's path, or false if no source data
// exists there yet.
func (n *treeNode) node() (map[string]any, bool) {
	m := n.src.data
	for _, seg := range n.path {
		child, ok := m[seg].(map[string]any)
		if !ok {
			return nil, false
		}
		m = child
	}
	return m, true
}

// ensure returns the mapping at this view's path, creating intermediate maps
// as needed. A leaf value in the way is replaced by a map.
func (n *treeNode) ensure() map[string]any {
	m := n.src.data
	for _, seg := range n.path {
		child, ok := m[seg].(map[string]any)
		if !ok {
			child = make(map[string]any)
			m[seg] = child
		}
		m = child
	}
	return m
}

func isPlaceholder(v any) bool {
	_, ok := v.(Kind)
	return ok
}

func (n *treeNode) Name() string { return n.src.name }

func (n *treeNode) Get(key string) (any, error) {
	if m, ok := n.node(); ok {
		v, exists := m[key]
		if exists && !isPlaceholder(v) {
			if _, isMap := v.(map[string]any); !isMap {
				return normalizeValue(v), nil
			}
		}
	}
	return nil, notFound(key)
}

func (n *treeNode) Keys() []string {
	m, ok := n.node()
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if _, isMap := v.(map[string]any); isMap || isPlaceholder(v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (n *treeNode) Subsections() []string {
	m, ok := n.node()
	if !ok {
		return nil
	}
	var names []string
	for k, v := range m {
		if _, isMap := v.(map[string]any); isMap {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

func (n *treeNode) Has(key string) bool {
	m, ok := n.node()
	if !ok {
		return false
	}
	v, exists := m[key]
	if !exists || isPlaceholder(v) {
		return false
	}
	_, isMap := v.(map[string]any)
	return !isMap
}

func (n *treeNode) Typed(key string) bool {
	_, ok := n.KindOf(key)
	return ok
}

func (n *treeNode) KindOf(key string) (Kind, bool) {
	m, ok := n.node()
	if !ok {
		return KindString, false
	}
	v, exists := m[key]
	if !exists {
		return KindString, false
	}
	if k, isKind := v.(Kind); isKind {
		return k, true
	}
	if _, isMap := v.(map[string]any); isMap {
		return KindString, false
	}
	if n.src.kindOf == nil {
		return KindString, false
	}
	return n.src.kindOf(normalizeValue(v))
}

func (n *treeNode) Subsection(name string) ConfigSource {
	path := make([]string, len(n.path), len(n.path)+1)
	copy(path, n.path)
	return &treeNode{src: n.src, path: append(path, name)}
}

func (n *treeNode) Set(key string, value any) {
	if n.src.store != nil {
		value = n.src.store(value)
	}
	n.ensure()[key] = value
	if n.src.persist != nil {
		n.src.dirty = true
	}
}

func (n *treeNode) Write() error {
	if n.src.persist == nil || !n.src.dirty {
		return nil
	}
	if err := n.src.persist(n.src.data); err != nil {
		return err
	}
	n.src.dirty = false
	return nil
}

func (n *treeNode) Dirty() bool           { return n.src.dirty }
func (n *treeNode) Writable() bool        { return n.src.writable }
func (n *treeNode) SupportsNesting() bool { return true }
func (n *treeNode) CarriesTypes() bool    { return n.src.kindOf != nil }

// normalizeTree canonicalizes every leaf of a freshly parsed document in
// place, so later reads need no per-call conversion of backend types.
func normalizeTree(m map[string]any) {
	for k, v := range m {
		if child, isMap := v.(map[string]any); isMap {
			normalizeTree(child)
			continue
		}
		m[k] = normalizeValue(v)
	}
}
