package assets

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(&Config{
		Dir:     t.TempDir(),
		BaseURL: "http://localhost:5000/",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store
}

func TestNewStore_RequiresDir(t *testing.T) {
	_, err := NewStore(&Config{BaseURL: "http://localhost"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}

func TestStore_Publish(t *testing.T) {
	store := newStore(t)

	published, err := store.Publish("job-1", []byte(`{"breathingRate":16}`))
	require.NoError(t, err)

	// Trailing slash on the base URL must not double up.
	assert.Equal(t, "http://localhost:5000/assets/job-1/model.glb", published.ModelURL)
	assert.Equal(t, "http://localhost:5000/assets/job-1/texture.jpg", published.TextureURL)
	assert.Equal(t, "http://localhost:5000/assets/job-1/animations.json", published.AnimationData)

	path, err := store.Path("job-1", AnimationFilename)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"breathingRate":16}`, string(data))
}

func TestStore_Path_MissingAsset(t *testing.T) {
	store := newStore(t)

	_, err := store.Path("job-1", ModelFilename)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_Path_RejectsTraversal(t *testing.T) {
	store := newStore(t)

	_, err := store.Publish("job-1", []byte("{}"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		jobID    string
		filename string
	}{
		{"dotdot filename", "job-1", "../job-1/model.glb"},
		{"nested filename", "job-1", "sub/model.glb"},
		{"slash in job id", "job-1/..", "model.glb"},
		{"empty filename", "job-1", ""},
		{"empty job id", "", "model.glb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Path(tt.jobID, tt.filename)
			assert.Error(t, err)
		})
	}
}

func TestStore_Path_RejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(&Config{
		Dir:     dir,
		BaseURL: "http://localhost:5000",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "job-1", "nested"), 0o755))

	_, err = store.Path("job-1", "nested")
	assert.Error(t, err)
}
