package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesMetadataTable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "pubkeeper.db")

	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO metadata (key, value) VALUES ('token', 'x')`)
	require.NoError(t, err)

	var value string
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key = 'token'`).Scan(&value))
	require.Equal(t, "x", value)
}

func TestOpen_Idempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "pubkeeper.db")
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
