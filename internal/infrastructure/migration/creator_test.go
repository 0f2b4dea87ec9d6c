package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates up and down files", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add order tables")
		require.NoError(t, err)

		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "add order tables")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "revert add order tables")
	})

	t.Run("sanitizes names into file-safe form", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "Add Cart-Lines Table!")
		require.NoError(t, err)

		assert.Contains(t, mf.UpPath, "add_cart_lines_table.up.sql")
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add users", "add_users"},
		{"Add-Users", "add_users"},
		{"add__users__", "add_users"},
		{"Add Users 2", "add_users_2"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sanitizeName(tt.input), tt.input)
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("lists migration base names once", func(t *testing.T) {
		dir := t.TempDir()

		_, err := CreateMigration(dir, "first")
		require.NoError(t, err)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Len(t, migrations, 1)
	})

	t.Run("missing directory yields empty list", func(t *testing.T) {
		migrations, err := ListMigrations("/nonexistent/path")
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
