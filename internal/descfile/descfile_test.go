package descfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
converters:
  - type: int
    impl: int
  - type: " time.Time "
    impl: time
  - type: broken.Type
    impl: ""
  - type: int
    impl: int64
`
	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	require.Len(t, f.Converters, 4)
	assert.Equal(t, "time.Time", f.Converters[1].Type)

	idx := f.Index()
	assert.Equal(t, "int64", idx["int"])
	assert.Equal(t, "", idx["broken.Type"])
	_, ok := idx["missing"]
	assert.False(t, ok)

	assert.Equal(t, []string{"int"}, f.Duplicates())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("converters: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse descriptor YAML")
}

func TestWriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "converters.yaml")
	f := &File{
		Version:    "1",
		Converters: []Entry{{Type: "bool", Impl: "bool"}},
	}

	require.NoError(t, WriteFile(f, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
