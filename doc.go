// Package layeredconfig resolves a single logical configuration tree from
// several ranked sources: in-code defaults, configuration files in multiple
// formats (INI, JSON, YAML, TOML), environment variables, and command-line
// arguments.
//
// Features:
//   - Ordered source layering with well-defined precedence (last source wins)
//   - Semantic typing (string, int, bool, list, date, datetime) recovered even
//     from untyped text backends, driven by type information in other sources
//   - Nested subsections of arbitrary depth, each an independently resolvable
//     configuration view
//   - Optional cascade mode, where a subsection inherits unset keys from its
//     ancestors
//   - Writes routed back to the correct originating source, persisted with
//     atomic whole-file rewrites
//   - Struct decoding of the merged tree via mapstructure
//   - Builder pattern and config-file discovery for easy initialization
//
// Quick Start:
//
//	ini, _ := layeredconfig.NewINIFile("myapp.ini")
//	cfg := layeredconfig.New(
//	    layeredconfig.NewDefaults(map[string]any{
//	        "home":      "/var/lib/myapp",
//	        "processes": 4,
//	    }),
//	    ini,
//	    layeredconfig.NewEnvironment(nil, "MYAPP_"),
//	    layeredconfig.NewCommandline(os.Args[1:]),
//	)
//
//	home, err := cfg.String("home")
//	procs, err := cfg.Int("processes")
//
// Values set through any view are visible through every other view over the
// same configuration, since the sources are shared by reference. The library
// assumes single-threaded use; it provides no internal locking.
package layeredconfig
