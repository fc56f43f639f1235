package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMigrations(t *testing.T) {
	dir := t.TempDir()
	write := func(name, sql string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644))
	}
	write("0002_bank_transactions.sql", "CREATE TABLE bank_transactions (id UUID);")
	write("0001_init.sql", "CREATE TABLE tenants (id UUID);")
	write("001_bad_version.sql", "SELECT 1;")
	write("README.md", "not a migration")

	old := *migrationsDir
	*migrationsDir = dir
	defer func() { *migrationsDir = old }()

	migrations, err := readMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	// Sorted by version regardless of directory order
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "init", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Equal(t, "bank_transactions", migrations[1].Name)

	assert.NotEmpty(t, migrations[0].Checksum)
	assert.NotEqual(t, migrations[0].Checksum, migrations[1].Checksum)
}

func TestReadMigrations_ChecksumStable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_init.sql"), []byte("CREATE TABLE t (id UUID);"), 0o644))

	old := *migrationsDir
	*migrationsDir = dir
	defer func() { *migrationsDir = old }()

	first, err := readMigrations()
	require.NoError(t, err)
	second, err := readMigrations()
	require.NoError(t, err)

	assert.Equal(t, first[0].Checksum, second[0].Checksum)
}

func TestReadMigrations_MissingDirectory(t *testing.T) {
	old := *migrationsDir
	*migrationsDir = filepath.Join(t.TempDir(), "does-not-exist")
	defer func() { *migrationsDir = old }()

	_, err := readMigrations()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory not found")
}
