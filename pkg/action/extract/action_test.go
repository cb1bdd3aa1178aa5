package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/apidocgen/internal/storage"
	ir "github.com/cmmoran/apidocgen/pkg/model"
	"github.com/cmmoran/apidocgen/pkg/parser"
)

const fixtureDir = "../../../internal/parser/testdata/api"

func TestGenerate(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	opts := parser.NewOptions()
	parser.WithInDir(fixtureDir)(opts)
	parser.WithOutDir(out)(opts)
	opts.Patterns = []string{"."}

	got, err := Generate(context.Background(), opts, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "classes.json"), got.Classes)
	assert.Equal(t, filepath.Join(out, "endpoints.json"), got.Endpoints)
	assert.Equal(t, filepath.Join(out, "debug.json"), got.Debug)

	data, err := os.ReadFile(got.Endpoints)
	require.NoError(t, err)
	methods, err := ir.DecodeMethods(data)
	require.NoError(t, err)
	require.NotEmpty(t, methods)

	var titles []string
	for _, m := range methods {
		titles = append(titles, m.Title())
	}
	assert.Contains(t, titles, "GET /widgets/{id}")

	data, err = os.ReadFile(got.Classes)
	require.NoError(t, err)
	classes, err := ir.DecodeClasses(data)
	require.NoError(t, err)
	assert.Contains(t, classes, "github.com/cmmoran/apidocgen/internal/parser/testdata/api.Widget")

	_, err = os.Stat(got.Debug)
	require.NoError(t, err)
}

func TestGenerateWritesNothingOnFailure(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	opts := parser.NewOptions()
	parser.WithInDir(t.TempDir())(opts)
	parser.WithOutDir(out)(opts)

	_, err := Generate(context.Background(), opts, nil, nil)
	require.Error(t, err)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateRemovesPartialOutput(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	// a directory where endpoints.json belongs makes the second write fail
	require.NoError(t, os.Mkdir(filepath.Join(out, "endpoints.json"), 0o755))

	opts := parser.NewOptions()
	parser.WithInDir(fixtureDir)(opts)
	parser.WithOutDir(out)(opts)
	opts.Patterns = []string{"."}

	_, err := Generate(context.Background(), opts, nil, nil)
	require.ErrorIs(t, err, storage.ErrOpenLocation)

	_, err = os.Stat(filepath.Join(out, "classes.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(filepath.Join(out, "debug.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerateWithoutDebug(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	opts := parser.NewOptions()
	parser.WithInDir(fixtureDir)(opts)
	parser.WithOutDir(out)(opts)
	opts.Patterns = []string{"."}
	opts.DebugFile = parser.NoDebugFile

	got, err := Generate(context.Background(), opts, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Debug)
	_, err = os.Stat(filepath.Join(out, "debug.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
