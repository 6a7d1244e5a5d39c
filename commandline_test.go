package layeredconfig

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommandlineGeneric tests specification-free argument parsing
func TestCommandlineGeneric(t *testing.T) {
	src := NewCommandline([]string{
		"--home=thisdata",
		"--force",
		"--extra=foo",
		"--extra=bar",
		"--mymodule-expires=2014-10-24",
		"--mymodule-arbitrary-nesting-depth=works",
		"positional",
	})

	t.Run("StringValue", func(t *testing.T) {
		v, err := src.Get("home")
		require.NoError(t, err)
		assert.Equal(t, "thisdata", v)
		assert.False(t, src.Typed("home"))
	})

	t.Run("BareFlagIsTypedBool", func(t *testing.T) {
		v, err := src.Get("force")
		require.NoError(t, err)
		assert.Equal(t, true, v)
		assert.True(t, src.Typed("force"))
	})

	t.Run("RepeatsAccumulate", func(t *testing.T) {
		v, err := src.Get("extra")
		require.NoError(t, err)
		assert.Equal(t, []string{"foo", "bar"}, v)
		kind, ok := src.KindOf("extra")
		require.True(t, ok)
		assert.Equal(t, KindList, kind)
	})

	t.Run("DashNesting", func(t *testing.T) {
		assert.Equal(t, []string{"mymodule"}, src.Subsections())
		sub := src.Subsection("mymodule")
		v, err := sub.Get("expires")
		require.NoError(t, err)
		assert.Equal(t, "2014-10-24", v)

		deep := sub.Subsection("arbitrary").Subsection("nesting")
		v, err = deep.Get("depth")
		require.NoError(t, err)
		assert.Equal(t, "works", v)
	})

	t.Run("ArgOrderPreserved", func(t *testing.T) {
		assert.Equal(t, []string{"home", "force", "extra"}, src.Keys())
	})

	t.Run("Rest", func(t *testing.T) {
		assert.Equal(t, []string{"positional"}, src.Rest())
	})
}

// TestCommandlineFlags tests parsing against a pflag specification
func TestCommandlineFlags(t *testing.T) {
	newFlags := func() (*pflag.FlagSet, *time.Time) {
		fs := pflag.NewFlagSet("app", pflag.ContinueOnError)
		fs.String("home", "", "data directory")
		fs.Int("processes", 0, "worker count")
		fs.Bool("mymodule-force", false, "force the module")
		fs.StringSlice("extra", nil, "extra items")
		expires := DateVar(fs, "expires", "expiry day")
		return fs, expires
	}

	t.Run("DeclaredTypes", func(t *testing.T) {
		fs, _ := newFlags()
		src, err := NewCommandlineFlags([]string{
			"--home=thisdata", "--processes=4", "--mymodule-force",
			"--extra=foo,bar", "--expires=2014-10-24",
		}, fs)
		require.NoError(t, err)

		v, err := src.Get("processes")
		require.NoError(t, err)
		assert.Equal(t, 4, v)
		assert.True(t, src.Typed("processes"))

		v, err = src.Subsection("mymodule").Get("force")
		require.NoError(t, err)
		assert.Equal(t, true, v)

		v, err = src.Get("extra")
		require.NoError(t, err)
		assert.Equal(t, []string{"foo", "bar"}, v)

		v, err = src.Get("expires")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2014, 10, 24, 0, 0, 0, 0, time.UTC), v)
		kind, ok := src.KindOf("expires")
		require.True(t, ok)
		assert.Equal(t, KindDate, kind)
	})

	t.Run("UnsetFlagsAbsent", func(t *testing.T) {
		fs, _ := newFlags()
		src, err := NewCommandlineFlags([]string{"--home=thisdata"}, fs)
		require.NoError(t, err)
		assert.False(t, src.Has("processes"))
		assert.Equal(t, []string{"home"}, src.Keys())
	})

	t.Run("UnknownFlagsTolerated", func(t *testing.T) {
		fs, _ := newFlags()
		src, err := NewCommandlineFlags([]string{"--home=thisdata", "--unknown=x"}, fs)
		require.NoError(t, err)
		v, err := src.Get("home")
		require.NoError(t, err)
		assert.Equal(t, "thisdata", v)
	})

	t.Run("BadDateRejected", func(t *testing.T) {
		fs, _ := newFlags()
		_, err := NewCommandlineFlags([]string{"--expires=tomorrow"}, fs)
		assert.Error(t, err)
	})

	t.Run("DateTimeFlag", func(t *testing.T) {
		fs := pflag.NewFlagSet("app", pflag.ContinueOnError)
		lastrun := DateTimeVar(fs, "lastrun", "last run instant")
		src, err := NewCommandlineFlags([]string{"--lastrun=2014-10-15 14:32:07"}, fs)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2014, 10, 15, 14, 32, 7, 0, time.UTC), *lastrun)
		v, err := src.Get("lastrun")
		require.NoError(t, err)
		assert.Equal(t, *lastrun, v)
	})
}
