package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTreeAcceptsBothShapes(t *testing.T) {
	bare := `{"big_lessons": [{"id": 1, "weight": 60}], "post_test": {"id": "pt", "weight": 40}}`
	wrapped := `{"success": true, "scoreStructure": ` + bare + `}`

	for name, data := range map[string]string{"bare": bare, "wrapped": wrapped} {
		t.Run(name, func(t *testing.T) {
			tree, err := decodeTree([]byte(data))
			require.NoError(t, err)
			require.Len(t, tree.Units, 1)
			assert.Equal(t, "1", string(tree.Units[0].ID))
			require.NotNil(t, tree.PostTest)
			assert.Equal(t, 40.0, tree.PostTest.Weight)
		})
	}
}

func TestValidateFileJSON(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"big_lessons": [{"id": "u1", "weight": 100}]}`), 0o644))
	assert.NoError(t, validateFile(good))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"big_lessons": [{"id": "u1", "weight": 90}]}`), 0o644))
	assert.ErrorIs(t, validateFile(bad), errInvalid)

	_, err := decodeTree([]byte(`not json`))
	assert.Error(t, err)
}
