package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/apidocgen/internal/storage"
	"github.com/cmmoran/apidocgen/pkg/manifest"
	ir "github.com/cmmoran/apidocgen/pkg/model"
	"github.com/cmmoran/apidocgen/pkg/parser"
)

func writeSnapshot(t *testing.T, dir, version string, doc ir.Document) manifest.Snapshot {
	t.Helper()
	s := manifest.Snapshot{
		Name:      "api",
		Version:   version,
		RunID:     "run-" + version,
		Classes:   filepath.Join(dir, version+"-classes.json"),
		Endpoints: filepath.Join(dir, version+"-endpoints.json"),
	}
	data, err := ir.MarshalClasses(doc.Classes)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Classes, data, 0o644))
	data, err = ir.MarshalMethods(doc.Methods)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Endpoints, data, 0o644))
	return s
}

func TestDiffCurrentWithPrevious(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	locs := storage.NewLocations(nil)
	manifestPath := filepath.Join(dir, "manifest.yaml")

	v1 := ir.Document{
		Classes: map[string]*ir.TransferClass{"a.Widget": {Members: []*ir.TransferMember{{Name: "id", Type: ir.NewType("string")}}}},
		Methods: []*ir.ResourceMethod{{Name: "get", Method: "GET", Path: "/widgets", ReturnType: ir.NewType("a.Widget")}},
	}
	v2 := ir.Document{
		Classes: map[string]*ir.TransferClass{"a.Widget": {Members: []*ir.TransferMember{{Name: "uuid", Type: ir.NewType("string")}}}},
		Methods: v1.Methods,
	}

	m := &manifest.Manifest{}
	m.AddSnapshot(writeSnapshot(t, dir, "v1", v1))
	m.AddSnapshot(writeSnapshot(t, dir, "v2", v2))
	require.NoError(t, m.Save(ctx, locs, manifestPath))

	diff, err := DiffCurrentWithPrevious(ctx, locs, manifestPath)
	require.NoError(t, err)
	assert.Contains(t, diff, "classes (-v1 +v2)")
	assert.Contains(t, diff, `"uuid"`)
	assert.NotContains(t, diff, "endpoints (")

	listed, err := List(ctx, locs, manifestPath)
	require.NoError(t, err)
	assert.Len(t, listed.Snapshots, 2)
}

func TestDiffNeedsTwoSnapshots(t *testing.T) {
	t.Parallel()

	_, err := DiffCurrentWithPrevious(context.Background(), nil, filepath.Join(t.TempDir(), "manifest.yaml"))
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	opts := parser.NewOptions()
	parser.WithInDir("../../../internal/parser/testdata/api")(opts)
	parser.WithOutDir(dir)(opts)
	opts.Patterns = []string{"."}
	manifestPath := filepath.Join(dir, "manifest.yaml")

	s, err := Generate(ctx, opts, nil, manifestPath, "api", "v1", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, s.RunID)
	assert.Equal(t, filepath.Join(dir, "snapshots", "v1", "classes.json"), s.Classes)
	assert.Equal(t, dir, opts.OutDir, "caller options are not modified")

	_, err = Generate(ctx, opts, nil, manifestPath, "api", "v2", nil)
	require.NoError(t, err)

	diff, err := DiffCurrentWithPrevious(ctx, nil, manifestPath)
	require.NoError(t, err)
	assert.Empty(t, diff)
}
