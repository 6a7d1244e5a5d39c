package layeredconfig

// up returns the ancestor this node falls back to, or nil when cascading is
// disabled or the node is the root.
func (lc *LayeredConfig) up() *LayeredConfig {
	if lc.cascade {
		return lc.parent
	}
	return nil
}

// resolve looks key up across the layered sources, highest priority first.
// With cascading enabled, each source is exhausted along the ancestor chain
// (this subsection first, then its enclosing sections) before the next-lower
// source is consulted, so a value inherited from the root of a high source
// beats a value defined locally in a low one.
func (lc *LayeredConfig) resolve(key string) (any, error) {
	for i := len(lc.sources) - 1; i >= 0; i-- {
		for node := lc; node != nil; node = node.up() {
			src := node.sources[i]
			if !src.Has(key) {
				continue
			}
			value, err := src.Get(key)
			if err != nil {
				continue
			}
			if src.Typed(key) {
				return value, nil
			}
			raw, ok := value.(string)
			if !ok {
				return value, nil
			}
			return lc.coerceHinted(key, raw)
		}
	}
	return nil, notFound(key)
}

// coerceHinted converts raw through the first kind hint found by the same
// walk resolve uses: sources highest priority first, each exhausting its
// ancestor chain. A hint inferred from an actual boolean value is advisory:
// a string that does not parse as a boolean passes through unchanged. A hint
// declared as a bare type placeholder is a contract, and a string that does
// not parse fails with ErrCoerce. Without any hint the raw string stands.
func (lc *LayeredConfig) coerceHinted(key, raw string) (any, error) {
	for i := len(lc.sources) - 1; i >= 0; i-- {
		for node := lc; node != nil; node = node.up() {
			src := node.sources[i]
			kind, ok := src.KindOf(key)
			if !ok {
				continue
			}
			value, err := Coerce(raw, kind)
			if err != nil {
				if kind == KindBool && src.Has(key) {
					return raw, nil
				}
				return nil, err
			}
			return value, nil
		}
	}
	return raw, nil
}

// knows reports whether any visible source carries key, as a value or as a
// declared type placeholder. It gates write routing.
func (lc *LayeredConfig) knows(key string) bool {
	for i := len(lc.sources) - 1; i >= 0; i-- {
		for node := lc; node != nil; node = node.up() {
			src := node.sources[i]
			if src.Has(key) || src.Typed(key) {
				return true
			}
		}
	}
	return false
}
