package layeredconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTOMLFileRead tests native typing, tables, and local dates
func TestTOMLFileRead(t *testing.T) {
	content := `home = "mydata"
processes = 4
force = true
extra = ["foo", "bar"]
expires = 2014-10-24

[mymodule]
force = false
lastrun = 2014-10-15 14:32:07
`
	src, err := NewTOMLFile(writeTempFile(t, "app.toml", content))
	require.NoError(t, err)

	t.Run("FullTyping", func(t *testing.T) {
		v, err := src.Get("processes")
		require.NoError(t, err)
		assert.Equal(t, 4, v)

		v, err = src.Get("extra")
		require.NoError(t, err)
		assert.Equal(t, []string{"foo", "bar"}, v)

		assert.True(t, src.Typed("home"))
	})

	t.Run("LocalDatesLandInUTC", func(t *testing.T) {
		v, err := src.Get("expires")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2014, 10, 24, 0, 0, 0, 0, time.UTC), v)

		v, err = src.Subsection("mymodule").Get("lastrun")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2014, 10, 15, 14, 32, 7, 0, time.UTC), v)
	})
}

// TestTOMLFileRoundTrip tests that written values read back typed
func TestTOMLFileRoundTrip(t *testing.T) {
	path := writeTempFile(t, "app.toml", "home = \"mydata\"\n")
	src, err := NewTOMLFile(path)
	require.NoError(t, err)

	src.Set("force", true)
	src.Subsection("mymodule").Set("processes", 4)
	require.NoError(t, src.Write())
	assert.False(t, src.Dirty())

	reread, err := NewTOMLFile(path)
	require.NoError(t, err)
	v, err := reread.Get("force")
	require.NoError(t, err)
	assert.Equal(t, true, v)
	v, err = reread.Subsection("mymodule").Get("processes")
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}
