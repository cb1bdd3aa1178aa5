package extract

import (
	"context"
	"log/slog"

	"github.com/cmmoran/apidocgen/internal/action/extract"
	"github.com/cmmoran/apidocgen/internal/storage"
	ir "github.com/cmmoran/apidocgen/pkg/model"
	"github.com/cmmoran/apidocgen/pkg/parser"
)

// Output lists the locations written by Generate.
type Output struct {
	Classes   string `yaml:"classes" json:"classes"`
	Endpoints string `yaml:"endpoints" json:"endpoints"`
	Debug     string `yaml:"debug,omitempty" json:"debug,omitempty"`
}

// Generate extracts the packages selected by p and writes the classes,
// endpoints and debug documents under p.OutDir. Nothing is written when
// extraction fails.
func Generate(ctx context.Context, p *parser.Options, locs *storage.Locations, log *slog.Logger) (Output, error) {
	if log == nil {
		log = slog.Default()
	}
	if locs == nil {
		locs = storage.NewLocations(nil)
	}

	res, err := extract.Run(ctx, p, log)
	if err != nil {
		return Output{}, err
	}

	classes, err := ir.MarshalClasses(res.Document.Classes)
	if err != nil {
		return Output{}, err
	}
	methods, err := ir.MarshalMethods(res.Document.Methods)
	if err != nil {
		return Output{}, err
	}

	out := Output{
		Classes:   storage.Join(p.OutDir, p.ClassesFile),
		Endpoints: storage.Join(p.OutDir, p.EndpointsFile),
	}
	docs := []document{{out.Classes, classes}, {out.Endpoints, methods}}
	if p.WritesDebug() {
		debug, err := ir.MarshalDebug(res.Debug)
		if err != nil {
			return Output{}, err
		}
		out.Debug = storage.Join(p.OutDir, p.DebugFile)
		docs = append(docs, document{out.Debug, debug})
	}
	if err = write(ctx, locs, docs, log); err != nil {
		return Output{}, err
	}

	log.Info("wrote IR documents", "classes", out.Classes, "endpoints", out.Endpoints, "debug", out.Debug)
	return out, nil
}

type document struct {
	location string
	data     []byte
}

// write stores every document. When one fails, the documents already
// written are removed so no partial IR set is left behind. Removal is best
// effort: its failures are logged, not returned.
func write(ctx context.Context, locs *storage.Locations, docs []document, log *slog.Logger) error {
	for i, d := range docs {
		err := locs.Write(ctx, d.location, d.data)
		if err == nil {
			continue
		}
		for _, done := range docs[:i] {
			if rmErr := locs.Delete(ctx, done.location); rmErr != nil {
				log.Warn("failed to remove partial output", "location", done.location, "error", rmErr)
			}
		}
		return err
	}
	return nil
}
