package layeredconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder tests fluent assembly of source stacks
func TestBuilder(t *testing.T) {
	t.Run("FullStack", func(t *testing.T) {
		iniPath := writeTempFile(t, "app.ini", "[__root__]\nhome = filedata\nprocesses = 4\n")
		lc, err := NewBuilder().
			WithDefaults(map[string]any{"home": "mydata", "processes": KindInt, "force": KindBool}).
			WithFile(iniPath).
			WithEnvironment("MYAPP_").
			WithArgs([]string{"--force"}).
			Build()
		require.NoError(t, err)

		v, err := lc.Resolve("home")
		require.NoError(t, err)
		assert.Equal(t, "filedata", v)

		i, err := lc.Int("processes")
		require.NoError(t, err)
		assert.Equal(t, 4, i)

		b, err := lc.Bool("force")
		require.NoError(t, err)
		assert.True(t, b)
	})

	t.Run("ExtensionDispatch", func(t *testing.T) {
		jsonPath := writeTempFile(t, "app.json", `{"processes": 4}`)
		yamlPath := writeTempFile(t, "app.yml", "force: true\n")
		tomlPath := writeTempFile(t, "app.toml", "home = \"tomldata\"\n")
		lc, err := NewBuilder().WithFile(jsonPath).WithFile(yamlPath).WithFile(tomlPath).Build()
		require.NoError(t, err)
		assert.True(t, lc.Has("processes"))
		assert.True(t, lc.Has("force"))
		assert.True(t, lc.Has("home"))
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		_, err := NewBuilder().WithFile("app.xml").Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config file extension")
	})

	t.Run("ErrorsAccumulate", func(t *testing.T) {
		badJSON := writeTempFile(t, "bad.json", "{")
		_, err := NewBuilder().WithFile("app.xml").WithJSONFile(badJSON).Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config file extension")
		assert.Contains(t, err.Error(), "failed to parse JSON config file")
	})

	t.Run("WithFlagSet", func(t *testing.T) {
		fs := pflag.NewFlagSet("app", pflag.ContinueOnError)
		fs.Int("processes", 0, "worker count")
		lc, err := NewBuilder().
			WithDefaults(map[string]any{"processes": 2}).
			WithFlagSet([]string{"--processes=8"}, fs).
			Build()
		require.NoError(t, err)
		v, err := lc.Resolve("processes")
		require.NoError(t, err)
		assert.Equal(t, 8, v)
	})

	t.Run("WithCascade", func(t *testing.T) {
		lc, err := NewBuilder().
			WithDefaults(map[string]any{"home": "mydata", "mymodule": map[string]any{}}).
			WithCascade().
			Build()
		require.NoError(t, err)
		v, err := lc.Subsection("mymodule").Resolve("home")
		require.NoError(t, err)
		assert.Equal(t, "mydata", v)
	})

	t.Run("Validator", func(t *testing.T) {
		boom := errors.New("port is required")
		_, err := NewBuilder().
			WithDefaults(map[string]any{"home": "mydata"}).
			WithValidator(func(lc *LayeredConfig) error {
				if !lc.Has("port") {
					return boom
				}
				return nil
			}).
			Build()
		assert.ErrorIs(t, err, boom)
	})
}

// TestFileDiscovery tests the config file search order
func TestFileDiscovery(t *testing.T) {
	dir := t.TempDir()
	probed := filepath.Join(dir, "myapp.json")
	require.NoError(t, os.WriteFile(probed, []byte(`{"home": "probed"}`), 0644))

	base := FileDiscoveryOptions{
		Name:       "myapp",
		Extensions: []string{".ini", ".json"},
		Paths:      []string{dir},
		EnvVar:     "MYAPP_CONFIG",
		CLIFlag:    "--config",
	}

	t.Run("CLIFlagWins", func(t *testing.T) {
		opts := base
		opts.Args = []string{"--config=/explicit/path.ini"}
		path, ok := DiscoverFile(opts)
		require.True(t, ok)
		assert.Equal(t, "/explicit/path.ini", path)

		opts.Args = []string{"--config", "/spaced/path.ini"}
		path, ok = DiscoverFile(opts)
		require.True(t, ok)
		assert.Equal(t, "/spaced/path.ini", path)
	})

	t.Run("EnvVarBeatsProbing", func(t *testing.T) {
		t.Setenv("MYAPP_CONFIG", "/env/path.ini")
		path, ok := DiscoverFile(base)
		require.True(t, ok)
		assert.Equal(t, "/env/path.ini", path)
	})

	t.Run("PathProbe", func(t *testing.T) {
		path, ok := DiscoverFile(base)
		require.True(t, ok)
		assert.Equal(t, probed, path)
	})

	t.Run("NothingFound", func(t *testing.T) {
		opts := base
		opts.Name = "nonexistent"
		_, ok := DiscoverFile(opts)
		assert.False(t, ok)
	})

	t.Run("BuilderIntegration", func(t *testing.T) {
		lc, err := NewBuilder().
			WithDefaults(map[string]any{"home": "mydata"}).
			WithFileDiscovery(base).
			Build()
		require.NoError(t, err)
		v, err := lc.Resolve("home")
		require.NoError(t, err)
		assert.Equal(t, "probed", v)
	})
}

// TestQuick tests one-call initialization with the conventional stack
func TestQuick(t *testing.T) {
	t.Setenv("MYAPP_PROCESSES", "4")
	lc, err := Quick("myapp", map[string]any{
		"home":      "mydata",
		"processes": KindInt,
	}, []string{"--home=argdata"})
	require.NoError(t, err)

	v, err := lc.Resolve("home")
	require.NoError(t, err)
	assert.Equal(t, "argdata", v)

	i, err := lc.Int("processes")
	require.NoError(t, err)
	assert.Equal(t, 4, i)

	t.Run("MustQuickPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustQuick("myapp", nil, []string{"--config=/nonexistent/app.xml"})
		})
	})
}
