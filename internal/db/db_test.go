package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/gptgolf/assets"
)

func TestOpenAndMigrateEmbedded(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "golf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	migrations, err := assets.Migrations()
	require.NoError(t, err)
	require.NoError(t, Migrate(conn, migrations))
	// second run is a no-op
	require.NoError(t, Migrate(conn, migrations))

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)

	for _, table := range []string{"users", "games"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrate_OrderAndFailure(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "golf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	fsys := fstest.MapFS{
		"002_seed.sql":  {Data: []byte(`INSERT INTO notes(body) VALUES ('hello');`)},
		"001_notes.sql": {Data: []byte(`CREATE TABLE notes (body TEXT);`)},
		"README.md":     {Data: []byte(`ignored`)},
	}
	require.NoError(t, Migrate(conn, fsys))

	var body string
	require.NoError(t, conn.QueryRow(`SELECT body FROM notes`).Scan(&body))
	assert.Equal(t, "hello", body)

	fsys["003_broken.sql"] = &fstest.MapFile{Data: []byte(`NOT SQL AT ALL;`)}
	err = Migrate(conn, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "003_broken.sql")

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM _migrations WHERE name='003_broken.sql'`).Scan(&n))
	assert.Zero(t, n)
}
