package layeredconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Commandline is a source over command-line arguments. Dash-joined
// multi-part flag names express subsection nesting: --mymodule-key=value is
// key "key" in subsection "mymodule", exactly parallel to the environment
// namespace convention.
//
// Unconfigured (NewCommandline), arguments are parsed generically:
// --key=value yields an untyped string, a bare --key yields boolean true,
// and repeated --key=value occurrences accumulate into a typed list.
//
// Configured (NewCommandlineFlags), a caller-supplied pflag.FlagSet is the
// argument-parser specification: every flag set on the command line carries
// the type its declaration converts to, giving typing parity with Defaults.
// Unknown flags are tolerated and ignored.
//
// The source is read-only in practice: Set mutates the in-memory parse tree
// only, Write is a no-op, and the resolver never routes writes here.
type Commandline struct {
	root *clNode
	rest []string
}

// clNode is one level of the parsed argument tree, preserving first-seen
// order of keys and subsections.
type clNode struct {
	order      []string
	values     map[string]any
	typed      map[string]bool
	childOrder []string
	children   map[string]*clNode
}

func newCLNode() *clNode {
	return &clNode{
		values:   make(map[string]any),
		typed:    make(map[string]bool),
		children: make(map[string]*clNode),
	}
}

func (n *clNode) child(name string, create bool) *clNode {
	if c, ok := n.children[name]; ok {
		return c
	}
	if !create {
		return nil
	}
	c := newCLNode()
	n.children[name] = c
	n.childOrder = append(n.childOrder, name)
	return c
}

func (n *clNode) put(key string, value any, typed bool) {
	if _, exists := n.values[key]; !exists {
		n.order = append(n.order, key)
	}
	n.values[key] = value
	n.typed[key] = typed
}

// NewCommandline parses arguments generically, without a flag specification.
// Arguments that do not start with "--" are kept aside as positional rest.
func NewCommandline(args []string) *Commandline {
	c := &Commandline{root: newCLNode()}
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			c.rest = append(c.rest, arg)
			continue
		}
		content := strings.TrimPrefix(arg, "--")
		if content == "" {
			continue
		}

		name, value, hasValue := strings.Cut(content, "=")
		segments := strings.Split(name, "-")
		node := c.root
		for _, seg := range segments[:len(segments)-1] {
			node = node.child(seg, true)
		}
		key := segments[len(segments)-1]

		if !hasValue {
			// A value-less flag is an implicitly typed boolean.
			node.put(key, true, true)
			continue
		}

		switch prev := node.values[key].(type) {
		case string:
			// Repetition turns the accumulated values into a typed list.
			node.put(key, []string{prev, value}, true)
		case []string:
			node.put(key, append(prev, value), true)
		default:
			node.put(key, value, false)
		}
	}
	return c
}

// NewCommandlineFlags parses arguments against a caller-defined FlagSet and
// takes each changed flag's value with its declared type.
func NewCommandlineFlags(args []string, flags *pflag.FlagSet) (*Commandline, error) {
	flags.ParseErrorsWhitelist.UnknownFlags = true
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse command-line arguments: %w", err)
	}

	c := &Commandline{root: newCLNode(), rest: flags.Args()}
	var flagErr error
	flags.Visit(func(f *pflag.Flag) {
		value, err := flagValue(flags, f)
		if err != nil {
			if flagErr == nil {
				flagErr = err
			}
			return
		}
		segments := strings.Split(f.Name, "-")
		node := c.root
		for _, seg := range segments[:len(segments)-1] {
			node = node.child(seg, true)
		}
		node.put(segments[len(segments)-1], value, true)
	})
	if flagErr != nil {
		return nil, flagErr
	}
	return c, nil
}

// flagValue extracts a flag's value in its declared native type.
func flagValue(flags *pflag.FlagSet, f *pflag.Flag) (any, error) {
	switch f.Value.Type() {
	case "bool":
		return flags.GetBool(f.Name)
	case "int":
		return flags.GetInt(f.Name)
	case "int64":
		v, err := flags.GetInt64(f.Name)
		return int(v), err
	case "stringSlice":
		return flags.GetStringSlice(f.Name)
	case "stringArray":
		return flags.GetStringArray(f.Name)
	case "date", "datetime":
		if tv, ok := f.Value.(*timeValue); ok {
			return *tv.t, nil
		}
		return nil, fmt.Errorf("flag %q declares %s but is not a time value", f.Name, f.Value.Type())
	default:
		return f.Value.String(), nil
	}
}

// Rest returns the positional arguments left over after flag parsing.
func (c *Commandline) Rest() []string { return c.rest }

func (c *Commandline) Name() string                   { return "commandline" }
func (c *Commandline) Get(key string) (any, error)    { return clView{c.root}.Get(key) }
func (c *Commandline) Keys() []string                 { return clView{c.root}.Keys() }
func (c *Commandline) Subsections() []string          { return clView{c.root}.Subsections() }
func (c *Commandline) Has(key string) bool            { return clView{c.root}.Has(key) }
func (c *Commandline) Typed(key string) bool          { return clView{c.root}.Typed(key) }
func (c *Commandline) KindOf(key string) (Kind, bool) { return clView{c.root}.KindOf(key) }
func (c *Commandline) Subsection(name string) ConfigSource {
	return clView{c.root}.Subsection(name)
}
func (c *Commandline) Set(key string, value any) { clView{c.root}.Set(key, value) }
func (c *Commandline) Write() error              { return nil }
func (c *Commandline) Dirty() bool               { return false }
func (c *Commandline) Writable() bool            { return false }
func (c *Commandline) SupportsNesting() bool     { return true }
func (c *Commandline) CarriesTypes() bool        { return true }

// clView is a ConfigSource view over one node of the parsed tree.
type clView struct {
	node *clNode
}

func (v clView) Name() string { return "commandline" }

func (v clView) Get(key string) (any, error) {
	if value, ok := v.node.values[key]; ok {
		return value, nil
	}
	return nil, notFound(key)
}

func (v clView) Keys() []string {
	return append([]string(nil), v.node.order...)
}

func (v clView) Subsections() []string {
	return append([]string(nil), v.node.childOrder...)
}

func (v clView) Has(key string) bool {
	_, ok := v.node.values[key]
	return ok
}

func (v clView) Typed(key string) bool {
	return v.node.typed[key]
}

func (v clView) KindOf(key string) (Kind, bool) {
	if !v.node.typed[key] {
		return KindString, false
	}
	return KindOfValue(v.node.values[key])
}

func (v clView) Subsection(name string) ConfigSource {
	return clView{v.node.child(name, true)}
}

func (v clView) Set(key string, value any) {
	v.node.put(key, value, true)
}

func (v clView) Write() error          { return nil }
func (v clView) Dirty() bool           { return false }
func (v clView) Writable() bool        { return false }
func (v clView) SupportsNesting() bool { return true }
func (v clView) CarriesTypes() bool    { return true }

// timeValue adapts a date or datetime to the pflag.Value interface.
type timeValue struct {
	t      *time.Time
	layout string
	kind   string
}

func (v *timeValue) Set(s string) error {
	t, err := time.ParseInLocation(v.layout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid %s %q (want %s)", v.kind, s, v.layout)
	}
	*v.t = t
	return nil
}

func (v *timeValue) Type() string { return v.kind }

func (v *timeValue) String() string {
	if v.t == nil || v.t.IsZero() {
		return ""
	}
	return v.t.Format(v.layout)
}

// DateVar defines a date-typed flag ("2006-01-02") on a FlagSet and returns
// a pointer to the parsed value.
func DateVar(flags *pflag.FlagSet, name, usage string) *time.Time {
	t := new(time.Time)
	flags.Var(&timeValue{t: t, layout: dateLayout, kind: "date"}, name, usage)
	return t
}

// DateTimeVar defines a datetime-typed flag ("2006-01-02 15:04:05") on a
// FlagSet and returns a pointer to the parsed value.
func DateTimeVar(flags *pflag.FlagSet, name, usage string) *time.Time {
	t := new(time.Time)
	flags.Var(&timeValue{t: t, layout: dateTimeLayout, kind: "datetime"}, name, usage)
	return t
}
