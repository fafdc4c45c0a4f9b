package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shantanugsharp/chatbot-be/internal/core/catalog"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSource_Load(t *testing.T) {
	path := writeFile(t, `{"data":[{"id":1,"title":"One","bpm":98.5}]}`)

	raw, err := Source{Path: path}.Load(context.Background())
	require.NoError(t, err)

	tracks := catalog.Normalize(raw)
	require.Len(t, tracks, 1)
	assert.Equal(t, "1", tracks[0].TrackCode)
	assert.Equal(t, "98.5", tracks[0].BPM)
}

func TestSource_LoadErrors(t *testing.T) {
	_, err := Source{Path: filepath.Join(t.TempDir(), "missing.json")}.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Source{Path: writeFile(t, `{"tracks": [`)}.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")

	_, err = Source{Path: writeFile(t, `[{"name":"a"}] garbage`)}.Load(context.Background())
	assert.ErrorIs(t, err, catalog.ErrTrailingData)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Source{Path: writeFile(t, `[]`)}.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_Describe(t *testing.T) {
	assert.Equal(t, "json:/data/tracks.json", Source{Path: "/data/tracks.json"}.Describe())
}
