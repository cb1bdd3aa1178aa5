package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/cmmoran/apidocgen/internal/storage"
	"github.com/cmmoran/apidocgen/pkg/action/extract"
	"github.com/cmmoran/apidocgen/pkg/manifest"
	ir "github.com/cmmoran/apidocgen/pkg/model"
	"github.com/cmmoran/apidocgen/pkg/parser"
)

// Generate extracts the IR of the current sources into a per-version
// directory under opts.OutDir and records it in the manifest.
func Generate(ctx context.Context, opts *parser.Options, locs *storage.Locations, manifestPath, snapshotName, snapshotVersion string, log *slog.Logger) (manifest.Snapshot, error) {
	if locs == nil {
		locs = storage.NewLocations(nil)
	}
	m, err := manifest.Load(ctx, locs, manifestPath)
	if err != nil {
		return manifest.Snapshot{}, err
	}

	runID := uuid.NewString()
	snapOpts := *opts
	if snapOpts.OutDir == "" {
		snapOpts.OutDir = parser.NewOptions().OutDir
	}
	snapOpts.OutDir = storage.Join(snapOpts.OutDir, "snapshots/"+snapshotVersion)

	out, err := extract.Generate(ctx, &snapOpts, locs, log)
	if err != nil {
		return manifest.Snapshot{}, err
	}

	s := manifest.Snapshot{
		Name:      snapshotName,
		Version:   snapshotVersion,
		RunID:     runID,
		Classes:   out.Classes,
		Endpoints: out.Endpoints,
	}
	m.AddSnapshot(s)

	if err := m.Save(ctx, locs, manifestPath); err != nil {
		return manifest.Snapshot{}, err
	}

	return s, nil
}

// List returns all snapshots recorded in the manifest.
func List(ctx context.Context, locs *storage.Locations, manifestPath string) (*manifest.Manifest, error) {
	if locs == nil {
		locs = storage.NewLocations(nil)
	}
	return manifest.Load(ctx, locs, manifestPath)
}

// DiffCurrentWithPrevious loads the IR documents of the current and previous
// snapshots and returns a textual diff of their decoded contents. An empty
// string means the snapshots are equivalent.
func DiffCurrentWithPrevious(ctx context.Context, locs *storage.Locations, manifestPath string) (string, error) {
	if locs == nil {
		locs = storage.NewLocations(nil)
	}
	m, err := manifest.Load(ctx, locs, manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous snapshots recorded")
	}

	current, ok := m.Snapshot(m.CurrentVersion)
	if !ok {
		return "", fmt.Errorf("snapshot %s not found in manifest", m.CurrentVersion)
	}
	previous, ok := m.Snapshot(m.PreviousVersion)
	if !ok {
		return "", fmt.Errorf("snapshot %s not found in manifest", m.PreviousVersion)
	}

	cur, err := load(ctx, locs, current)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}
	prev, err := load(ctx, locs, previous)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	var b strings.Builder
	if d := cmp.Diff(prev.Classes, cur.Classes); d != "" {
		b.WriteString("classes (-" + previous.Version + " +" + current.Version + "):\n" + d)
	}
	if d := cmp.Diff(prev.Methods, cur.Methods); d != "" {
		b.WriteString("endpoints (-" + previous.Version + " +" + current.Version + "):\n" + d)
	}
	return b.String(), nil
}

func load(ctx context.Context, locs *storage.Locations, s manifest.Snapshot) (ir.Document, error) {
	var doc ir.Document
	data, err := locs.Read(ctx, s.Classes)
	if err != nil {
		return doc, err
	}
	if doc.Classes, err = ir.DecodeClasses(data); err != nil {
		return doc, err
	}
	data, err = locs.Read(ctx, s.Endpoints)
	if err != nil {
		return doc, err
	}
	if doc.Methods, err = ir.DecodeMethods(data); err != nil {
		return doc, err
	}
	return doc, nil
}
