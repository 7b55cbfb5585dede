package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add clients table", "add_clients_table"},
		{"Add-Clients-Table", "add_clients_table"},
		{"ADD_CLIENTS_TABLE", "add_clients_table"},
		{"add__clients__table", "add_clients_table"},
		{"Create Projects 2", "create_projects_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreate(t *testing.T) {
	tmpDir := t.TempDir()

	p, err := Create(tmpDir, "add clients table", "Client directory tables")
	require.NoError(t, err)
	require.NotNil(t, p)

	// Version is a 14-digit timestamp so files sort chronologically
	assert.Len(t, p.Version, 14)
	assert.True(t, strings.HasSuffix(p.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(p.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(p.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(p.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	upContent, err := os.ReadFile(p.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add clients table")
	assert.Contains(t, string(upContent), "Client directory tables")

	downContent, err := os.ReadFile(p.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "rollback")
}

func TestList(t *testing.T) {
	tmpDir := t.TempDir()

	names, err := List(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, names)

	files := []string{
		"20250101000000_first.up.sql",
		"20250101000000_first.down.sql",
		"20250102000000_second.up.sql",
		"20250102000000_second.down.sql",
		"notes.txt",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, f), []byte("--"), 0644))
	}

	names, err = List(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"20250101000000_first", "20250102000000_second"}, names)
}

func TestList_MissingDirectory(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, names)
}
