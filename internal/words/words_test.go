package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	src, err := Load("")
	require.NoError(t, err)
	assert.Greater(t, src.Count(), 50)
	assert.True(t, src.Contains("ocean"))
	assert.True(t, src.Contains("OCEAN"))
}

func TestLoad_Files(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "list.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`["Ocean", "tiger", "tiger", "two words", ""]`), 0o644))
	src, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 2, src.Count())
	assert.True(t, src.Contains("ocean"))
	assert.False(t, src.Contains("two words"))

	txtPath := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("# comment\nriver\n\n  Castle  \n"), 0o644))
	src, err = Load(txtPath)
	require.NoError(t, err)
	assert.Equal(t, 2, src.Count())
	assert.Equal(t, "river", src.At(0))
	assert.Equal(t, "castle", src.At(1))
	assert.Equal(t, "river", src.At(2))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not":"an array"}`), 0o644))
	_, err = Load(bad)
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n123\n"), 0o644))
	_, err = Load(empty)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestRandom(t *testing.T) {
	src, err := New([]string{"ocean", "river", "lake"})
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		w := src.Random()
		require.True(t, src.Contains(w))
		seen[w] = true
	}
	assert.Len(t, seen, 3)
}
