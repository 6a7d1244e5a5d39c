package layeredconfig

import (
	"bytes"
	"fmt"

	"gopkg.in/ini.v1"
)

// DefaultRootSection is the section name holding the top-level keys of an
// INIFile when no other name is configured.
const DefaultRootSection = "__root__"

// INIFile is the delimited-text source: `key = value` lines grouped into one
// root section plus zero or more named sections. The format is flat (exactly
// two levels), so subsections of subsections are always empty. INI text
// carries no type information; every value reads as a string and recovers its
// type only through other sources.
//
// A missing file yields an empty source that still accepts writes and creates
// the file on Write. Write rewrites the whole file deterministically: the
// root section first, then the other sections in document order, one key per
// line, a blank line after each section.
//
// Naming the root section "DEFAULT" collides with the format's reserved
// default-section concept and makes its values cascade into every other
// section, the way INI defaults traditionally do. The collision is kept as a
// documented quirk, not corrected.
type INIFile struct {
	path     string
	rootName string
	file     *ini.File
	dirty    bool
}

// INIOption adjusts how an INIFile is constructed.
type INIOption func(*INIFile)

// WithRootSection overrides the section name holding top-level keys.
func WithRootSection(name string) INIOption {
	return func(f *INIFile) { f.rootName = name }
}

// NewINIFile creates an INIFile source for the given path. An empty path
// gives a memory-only source whose Write is a no-op. The file is read once
// at construction; a missing file is not an error, a malformed one is.
func NewINIFile(path string, opts ...INIOption) (*INIFile, error) {
	f := &INIFile{
		path:     path,
		rootName: DefaultRootSection,
		file:     ini.Empty(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if raw, ok := readFileIfPresent(path); ok {
		loaded, err := ini.Load(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse INI config file '%s': %w", path, err)
		}
		f.file = loaded
	}
	return f, nil
}

// rootCascades reports whether the configured root section is the format's
// own default section, which makes root keys visible in every section.
func (f *INIFile) rootCascades() bool {
	return f.rootName == ini.DefaultSection
}

func (f *INIFile) section(name string) (*ini.Section, bool) {
	sec, err := f.file.GetSection(name)
	if err != nil {
		return nil, false
	}
	return sec, true
}

func (f *INIFile) Name() string { return "inifile" }

func (f *INIFile) Get(key string) (any, error) {
	if sec, ok := f.section(f.rootName); ok && sec.HasKey(key) {
		return sec.Key(key).Value(), nil
	}
	return nil, notFound(key)
}

func (f *INIFile) Keys() []string {
	sec, ok := f.section(f.rootName)
	if !ok {
		return nil
	}
	return sec.KeyStrings()
}

func (f *INIFile) Subsections() []string {
	var names []string
	for _, name := range f.file.SectionStrings() {
		if name == f.rootName || name == ini.DefaultSection {
			continue
		}
		names = append(names, name)
	}
	return names
}

func (f *INIFile) Has(key string) bool {
	sec, ok := f.section(f.rootName)
	return ok && sec.HasKey(key)
}

func (f *INIFile) Typed(string) bool          { return false }
func (f *INIFile) KindOf(string) (Kind, bool) { return KindString, false }

func (f *INIFile) Subsection(name string) ConfigSource {
	return &iniSection{owner: f, name: name}
}

func (f *INIFile) Set(key string, value any) {
	f.file.Section(f.rootName).Key(key).SetValue(Format(value))
	f.dirty = true
}

func (f *INIFile) Write() error {
	if !f.dirty || f.path == "" {
		return nil
	}
	if err := atomicWriteFile(f.path, f.render()); err != nil {
		return err
	}
	f.dirty = false
	return nil
}

func (f *INIFile) Dirty() bool           { return f.dirty }
func (f *INIFile) Writable() bool        { return true }
func (f *INIFile) SupportsNesting() bool { return false }
func (f *INIFile) CarriesTypes() bool    { return false }

// render serializes the whole document: root section first, then named
// sections in document order, skipping empty ones.
func (f *INIFile) render() []byte {
	var buf bytes.Buffer

	writeSection := func(header string, sec *ini.Section) {
		fmt.Fprintf(&buf, "[%s]\n", header)
		for _, key := range sec.KeyStrings() {
			fmt.Fprintf(&buf, "%s = %s\n", key, sec.Key(key).Value())
		}
		buf.WriteString("\n")
	}

	if sec, ok := f.section(f.rootName); ok && len(sec.KeyStrings()) > 0 {
		writeSection(f.rootName, sec)
	}
	for _, name := range f.file.SectionStrings() {
		if name == f.rootName || name == ini.DefaultSection {
			continue
		}
		sec, ok := f.section(name)
		if !ok || len(sec.KeyStrings()) == 0 {
			continue
		}
		writeSection(name, sec)
	}
	return buf.Bytes()
}

// iniSection is a view over one named section of an INIFile.
type iniSection struct {
	owner *INIFile
	name  string
}

func (s *iniSection) Name() string { return "inifile" }

func (s *iniSection) Get(key string) (any, error) {
	if sec, ok := s.owner.section(s.name); ok && sec.HasKey(key) {
		return sec.Key(key).Value(), nil
	}
	if s.owner.rootCascades() {
		return s.owner.Get(key)
	}
	return nil, notFound(key)
}

func (s *iniSection) Keys() []string {
	var keys []string
	if sec, ok := s.owner.section(s.name); ok {
		keys = sec.KeyStrings()
	}
	if s.owner.rootCascades() {
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			seen[k] = true
		}
		for _, k := range s.owner.Keys() {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Subsections is always empty: the INI format is flat below section level.
func (s *iniSection) Subsections() []string { return nil }

func (s *iniSection) Has(key string) bool {
	if sec, ok := s.owner.section(s.name); ok && sec.HasKey(key) {
		return true
	}
	return s.owner.rootCascades() && s.owner.Has(key)
}

func (s *iniSection) Typed(string) bool          { return false }
func (s *iniSection) KindOf(string) (Kind, bool) { return KindString, false }

func (s *iniSection) Subsection(name string) ConfigSource {
	return &inertSource{name: "inifile"}
}

func (s *iniSection) Set(key string, value any) {
	s.owner.file.Section(s.name).Key(key).SetValue(Format(value))
	s.owner.dirty = true
}

func (s *iniSection) Write() error          { return s.owner.Write() }
func (s *iniSection) Dirty() bool           { return s.owner.dirty }
func (s *iniSection) Writable() bool        { return true }
func (s *iniSection) SupportsNesting() bool { return false }
func (s *iniSection) CarriesTypes() bool    { return false }

// inertSource stands in for subsection depths a backend cannot represent.
// It is empty, unwritable, and satisfies navigation without ever failing.
type inertSource struct {
	name string
}

func (s *inertSource) Name() string                { return s.name }
func (s *inertSource) Get(key string) (any, error) { return nil, notFound(key) }
func (s *inertSource) Keys() []string              { return nil }
func (s *inertSource) Subsections() []string       { return nil }
func (s *inertSource) Has(string) bool             { return false }
func (s *inertSource) Typed(string) bool           { return false }
func (s *inertSource) KindOf(string) (Kind, bool)  { return KindString, false }
func (s *inertSource) Subsection(string) ConfigSource {
	return s
}
func (s *inertSource) Set(string, any)       {}
func (s *inertSource) Write() error          { return nil }
func (s *inertSource) Dirty() bool           { return false }
func (s *inertSource) Writable() bool        { return false }
func (s *inertSource) SupportsNesting() bool { return false }
func (s *inertSource) CarriesTypes() bool    { return false }
