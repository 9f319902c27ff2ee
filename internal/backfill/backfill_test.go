package backfill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesFillsMissingIDsByPosition(t *testing.T) {
	out, result, err := Bytes([]byte(`[{"title":"A"},{"title":"B","id":"5"}]`))
	require.NoError(t, err)

	assert.JSONEq(t, `[{"title":"A","id":"1"},{"title":"B","id":"5"}]`, string(out))
	assert.Equal(t, 2, result.Records)
	assert.Equal(t, 1, result.Filled)
	assert.Empty(t, result.Duplicates)
}

func TestBytesTreatsFalsyIDsAsMissing(t *testing.T) {
	out, result, err := Bytes([]byte(`[{"id":null},{"id":""},{"id":0},{"id":false},{"id":7},{"id":"x"}]`))
	require.NoError(t, err)

	assert.JSONEq(t, `[{"id":"1"},{"id":"2"},{"id":"3"},{"id":"4"},{"id":7},{"id":"x"}]`, string(out))
	assert.Equal(t, 4, result.Filled)
}

func TestBytesKeepsUnknownFieldsAndOrder(t *testing.T) {
	out, _, err := Bytes([]byte(`[{"zeta":1,"title":{"text":"A","link":null},"alpha":[1,2]}]`))
	require.NoError(t, err)

	expected := "[\n" +
		"  {\n" +
		"    \"zeta\": 1,\n" +
		"    \"title\": {\n" +
		"      \"text\": \"A\",\n" +
		"      \"link\": null\n" +
		"    },\n" +
		"    \"alpha\": [\n" +
		"      1,\n" +
		"      2\n" +
		"    ],\n" +
		"    \"id\": \"1\"\n" +
		"  }\n" +
		"]\n"
	assert.Equal(t, expected, string(out))
}

func TestBytesReportsDuplicates(t *testing.T) {
	_, result, err := Bytes([]byte(`[{"title":"A"},{"title":"B","id":"1"}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, result.Duplicates)
}

func TestBytesRejectsNonArrays(t *testing.T) {
	_, _, err := Bytes([]byte(`{"id":"1"}`))
	assert.Error(t, err)

	_, _, err = Bytes([]byte(`["not an object"]`))
	assert.Error(t, err)
}

func TestFileRewritesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"A"},{"title":"B"}]`), 0600))

	result, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Filled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"A","id":"1"},{"title":"B","id":"2"}]`, string(data))

	// A second run finds nothing to do
	result, err = File(path)
	require.NoError(t, err)
	assert.Zero(t, result.Filled)
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
