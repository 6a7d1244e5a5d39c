package layeredconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultsTypedValues tests that native values keep their types
func TestDefaultsTypedValues(t *testing.T) {
	d := NewDefaults(map[string]any{
		"home":      "mydata",
		"processes": 4,
		"force":     true,
		"extra":     []string{"foo", "bar"},
		"expires":   time.Date(2014, 10, 24, 0, 0, 0, 0, time.UTC),
	})

	v, err := d.Get("processes")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	assert.True(t, d.Typed("force"))
	kind, ok := d.KindOf("expires")
	require.True(t, ok)
	assert.Equal(t, KindDate, kind)

	assert.Equal(t, []string{"expires", "extra", "force", "home", "processes"}, d.Keys())
}

// TestDefaultsPlaceholders tests bare Kind values as type declarations
func TestDefaultsPlaceholders(t *testing.T) {
	d := NewDefaults(map[string]any{
		"port":  KindInt,
		"home":  "mydata",
		"force": KindBool,
	})

	t.Run("NotAValue", func(t *testing.T) {
		assert.False(t, d.Has("port"))
		_, err := d.Get("port")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []string{"home"}, d.Keys())
	})

	t.Run("StillTyped", func(t *testing.T) {
		assert.True(t, d.Typed("port"))
		kind, ok := d.KindOf("port")
		require.True(t, ok)
		assert.Equal(t, KindInt, kind)
	})
}

// TestDefaultsSubsections tests nested mappings and writes through views
func TestDefaultsSubsections(t *testing.T) {
	d := NewDefaults(map[string]any{
		"home": "mydata",
		"mymodule": map[string]any{
			"force": false,
			"inner": map[string]any{"lastrun": "never"},
		},
	})

	assert.Equal(t, []string{"mymodule"}, d.Subsections())

	sub := d.Subsection("mymodule")
	v, err := sub.Get("force")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	inner := sub.Subsection("inner")
	v, err = inner.Get("lastrun")
	require.NoError(t, err)
	assert.Equal(t, "never", v)

	t.Run("SetCreatesPath", func(t *testing.T) {
		fresh := d.Subsection("newmodule").Subsection("deep")
		fresh.Set("count", 3)
		v, err := fresh.Get("count")
		require.NoError(t, err)
		assert.Equal(t, 3, v)
		assert.False(t, d.Dirty())
	})
}
