package manifest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/apidocgen/internal/storage"
)

func TestAddSnapshot(t *testing.T) {
	t.Parallel()

	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "api", Version: "v1", RunID: "a"})
	assert.Equal(t, "v1", m.CurrentVersion)
	assert.Empty(t, m.PreviousVersion)

	m.AddSnapshot(Snapshot{Name: "api", Version: "v2", RunID: "b"})
	assert.Equal(t, "v2", m.CurrentVersion)
	assert.Equal(t, "v1", m.PreviousVersion)

	// re-recording the current version replaces it in place
	m.AddSnapshot(Snapshot{Name: "api", Version: "v2", RunID: "c"})
	assert.Equal(t, "v1", m.PreviousVersion)
	require.Len(t, m.Snapshots, 2)

	s, ok := m.Snapshot("v2")
	require.True(t, ok)
	assert.Equal(t, "c", s.RunID)

	_, ok = m.Snapshot("v9")
	assert.False(t, ok)
}

func TestLoadSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	locs := storage.NewLocations(nil)
	path := filepath.Join(t.TempDir(), "sub", "manifest.yaml")

	m, err := Load(ctx, locs, path)
	require.NoError(t, err)
	assert.Empty(t, m.Snapshots)

	m.AddSnapshot(Snapshot{Name: "api", Version: "v1", RunID: "id", Classes: "c.json", Endpoints: "e.json"})
	require.NoError(t, m.Save(ctx, locs, path))

	loaded, err := Load(ctx, locs, path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
}
