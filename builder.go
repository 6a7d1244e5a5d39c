package layeredconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

// Builder assembles a layered config fluently, lowest-priority source first.
// Source construction errors are collected and surfaced together by Build,
// so a chain never needs intermediate error checks.
type Builder struct {
	opts     Options
	sources  []ConfigSource
	errs     []error
	validate func(*LayeredConfig) error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithDefaults appends a Defaults source over the given values.
func (b *Builder) WithDefaults(values map[string]any) *Builder {
	b.sources = append(b.sources, NewDefaults(values))
	return b
}

// WithFile appends a file source chosen by extension: .ini, .json, .yaml,
// .yml or .toml. Unknown extensions fail at Build.
func (b *Builder) WithFile(path string) *Builder {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		return b.WithINIFile(path)
	case ".json":
		return b.WithJSONFile(path)
	case ".yaml", ".yml":
		return b.WithYAMLFile(path)
	case ".toml":
		return b.WithTOMLFile(path)
	default:
		b.errs = append(b.errs, fmt.Errorf("unsupported config file extension: %s", path))
		return b
	}
}

// WithINIFile appends an INI file source.
func (b *Builder) WithINIFile(path string, opts ...INIOption) *Builder {
	src, err := NewINIFile(path, opts...)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.sources = append(b.sources, src)
	return b
}

// WithJSONFile appends a JSON file source.
func (b *Builder) WithJSONFile(path string) *Builder {
	src, err := NewJSONFile(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.sources = append(b.sources, src)
	return b
}

// WithYAMLFile appends a YAML file source.
func (b *Builder) WithYAMLFile(path string) *Builder {
	src, err := NewYAMLFile(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.sources = append(b.sources, src)
	return b
}

// WithTOMLFile appends a TOML file source.
func (b *Builder) WithTOMLFile(path string) *Builder {
	src, err := NewTOMLFile(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.sources = append(b.sources, src)
	return b
}

// WithEnvironment appends an Environment source scoped to prefix.
func (b *Builder) WithEnvironment(prefix string) *Builder {
	b.sources = append(b.sources, NewEnvironment(nil, prefix))
	return b
}

// WithArgs appends a generically parsed Commandline source.
func (b *Builder) WithArgs(args []string) *Builder {
	b.sources = append(b.sources, NewCommandline(args))
	return b
}

// WithFlagSet appends a Commandline source parsed against a flag
// specification, giving command-line values carried types.
func (b *Builder) WithFlagSet(args []string, flags *pflag.FlagSet) *Builder {
	src, err := NewCommandlineFlags(args, flags)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.sources = append(b.sources, src)
	return b
}

// WithSource appends an arbitrary source.
func (b *Builder) WithSource(src ConfigSource) *Builder {
	b.sources = append(b.sources, src)
	return b
}

// WithCascade enables subsection inheritance from ancestor sections.
func (b *Builder) WithCascade() *Builder {
	b.opts.Cascade = true
	return b
}

// WithValidator registers a check run against the assembled config before
// Build returns it.
func (b *Builder) WithValidator(fn func(*LayeredConfig) error) *Builder {
	b.validate = fn
	return b
}

// Build returns the layered config, or every error the chain accumulated.
func (b *Builder) Build() (*LayeredConfig, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	lc := NewWithOptions(b.opts, b.sources...)
	if b.validate != nil {
		if err := b.validate(lc); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}
	return lc, nil
}
