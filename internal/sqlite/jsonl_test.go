package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONLSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"a\":1}\n\n{broken\n[2]\n"), 0o644))

	records, skipped, err := readJSONL(path)
	require.NoError(t, err)

	assert.Equal(t, []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`[2]`)}, records)
	assert.Equal(t, 1, skipped)
}

func TestReadJSONLMissingFile(t *testing.T) {
	_, _, err := readJSONL(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestWriteJSONLAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	require.NoError(t, writeJSONL(path, []json.RawMessage{json.RawMessage(`{"x":1}`), json.RawMessage(`{"x":2}`)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"x\":1}\n{\"x\":2}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file left behind")
}

func TestInitJSONLFilesKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, contactsJSONL), []byte("{}\n"), 0o644))

	require.NoError(t, initJSONLFiles(dir))

	data, err := os.ReadFile(filepath.Join(dir, contactsJSONL))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
	_, err = os.Stat(filepath.Join(dir, participantsJSONL))
	assert.NoError(t, err)
}

func TestTagsAndDates(t *testing.T) {
	s, err := encodeTags(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", s)

	tags, err := decodeTags("[]")
	require.NoError(t, err)
	assert.Nil(t, tags)

	_, err = decodeTags("nope")
	assert.Error(t, err)

	d, err := parseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", formatDate(d))
	assert.Equal(t, "", formatDate(time.Time{}))

	zero, err := parseDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = parseDate("31/12/2026")
	assert.Error(t, err)
}
