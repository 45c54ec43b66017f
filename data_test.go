package snaptmpl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadDataFiles(t *testing.T) {
	dir := t.TempDir()

	base := writeFile(t, dir, "base.yaml", "title: Base\nuser:\n  name: alice\n  role: dev\nitems: [1, 2]\n")
	override := writeFile(t, dir, "override.json", `{"title": "Override", "user": {"role": "admin"}}`)

	data, err := LoadDataFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, "Override", data["title"])
	assert.Equal(t, map[string]any{"name": "alice", "role": "admin"}, data["user"])
	assert.Len(t, data["items"], 2)
}

func TestLoadDataFilesErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDataFiles(writeFile(t, dir, "data.toml", "a = 1"))
	assert.True(t, errors.Is(err, ErrUnsupportedDataFile))

	_, err = LoadDataFiles(writeFile(t, dir, "list.yaml", "- a\n- b\n"))
	assert.True(t, errors.Is(err, ErrDataNotMapping))

	_, err = LoadDataFiles(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.env", "APP_NAME=demo\nAPP_PORT=8080\n")

	data, err := LoadEnvFiles(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"APP_NAME": "demo", "APP_PORT": "8080"}, data[EnvKey])

	out, err := RenderString("env", "{{ env.APP_NAME }}:{{ env.APP_PORT }}", data)
	require.NoError(t, err)
	assert.Equal(t, "demo:8080", out)

	empty, err := LoadEnvFiles()
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseAssignments(t *testing.T) {
	data, err := ParseAssignments([]string{"name=Bob", "count=3", "admin=true", "user.email=bob@example.com", "empty=", "text=a=b"})
	require.NoError(t, err)

	assert.Equal(t, "Bob", data["name"])
	assert.EqualValues(t, 3, data["count"])
	assert.Equal(t, true, data["admin"])
	assert.Equal(t, map[string]any{"email": "bob@example.com"}, data["user"])
	assert.Equal(t, "", data["empty"])
	assert.Equal(t, "a=b", data["text"])

	for _, bad := range []string{"novalue", "=x", "a.b.c=1", ".x=1"} {
		_, err := ParseAssignments([]string{bad})
		assert.True(t, errors.Is(err, ErrInvalidAssignment), bad)
	}
}

func TestMergeData(t *testing.T) {
	left := map[string]any{"a": 1, "user": map[string]any{"name": "x", "age": 3}}
	right := map[string]any{"b": 2, "user": map[string]any{"name": "y"}}

	merged := MergeData(left, right)

	assert.Equal(t, map[string]any{
		"a":    1,
		"b":    2,
		"user": map[string]any{"name": "y", "age": 3},
	}, merged)
	assert.Equal(t, "x", left["user"].(map[string]any)["name"], "inputs are not modified")
}
