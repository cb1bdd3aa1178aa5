package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/cmmoran/apidocgen/internal/render"
	"github.com/cmmoran/apidocgen/internal/resolver"
	"github.com/cmmoran/apidocgen/internal/storage"
	ir "github.com/cmmoran/apidocgen/pkg/model"
	options "github.com/cmmoran/apidocgen/pkg/render"
	"github.com/cmmoran/apidocgen/pkg/sink"
)

// Result describes a written document.
type Result struct {
	Output  string `yaml:"output" json:"output"`
	Summary string `yaml:"summary" json:"summary"`
}

// Generate loads every IR document named by opts, renders them and writes
// the result to opts.Output. The document is rendered into memory first so
// a failed render writes nothing.
func Generate(ctx context.Context, opts *options.Options, locs *storage.Locations, log *slog.Logger) (Result, error) {
	if log == nil {
		log = slog.Default()
	}
	if locs == nil {
		locs = storage.NewLocations(nil)
	}
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	sources, err := Load(ctx, locs, opts.ClassesFiles, opts.EndpointsFiles)
	if err != nil {
		return Result{}, err
	}
	res, err := NewResolver(ctx, locs, opts, log)
	if err != nil {
		return Result{}, err
	}

	r := render.New(opts, res, log)
	doc, err := r.Merge(sources...)
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	var s sink.Sink
	switch opts.Format {
	case options.FormatMarkdown:
		s = sink.NewMarkdown(&buf)
	default:
		s = sink.NewHTML(&buf, sink.WithPage(opts.Title))
	}
	if err = r.Render(ctx, s, doc); err != nil {
		return Result{}, err
	}

	if err = locs.Write(ctx, opts.Output, buf.Bytes()); err != nil {
		return Result{}, err
	}
	log.Info("wrote document", "output", opts.Output, "format", opts.Format, "bytes", buf.Len())
	return Result{Output: opts.Output, Summary: render.Summary(doc)}, nil
}

// Load reads classes and endpoints documents, in that order, as merge
// sources. Any unreadable or undecodable location is fatal.
func Load(ctx context.Context, locs *storage.Locations, classesFiles, endpointsFiles []string) ([]ir.Source, error) {
	sources := make([]ir.Source, 0, len(classesFiles)+len(endpointsFiles))
	for _, loc := range classesFiles {
		data, err := locs.Read(ctx, loc)
		if err != nil {
			return nil, err
		}
		classes, err := ir.DecodeClasses(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", loc, err)
		}
		sources = append(sources, ir.Source{Location: loc, Document: ir.Document{Classes: classes}})
	}
	for _, loc := range endpointsFiles {
		data, err := locs.Read(ctx, loc)
		if err != nil {
			return nil, err
		}
		methods, err := ir.DecodeMethods(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", loc, err)
		}
		sources = append(sources, ir.Source{Location: loc, Document: ir.Document{Methods: methods}})
	}
	return sources, nil
}

// NewResolver chains the static registries and Go module directories of
// opts, in that order, behind an LRU cache. With neither configured every
// lookup is not found.
func NewResolver(ctx context.Context, locs *storage.Locations, opts *options.Options, log *slog.Logger) (resolver.Resolver, error) {
	var chain resolver.Chain
	for _, loc := range opts.RegistryFiles {
		data, err := locs.Read(ctx, loc)
		if err != nil {
			return nil, err
		}
		static, err := resolver.LoadStatic(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", loc, err)
		}
		chain = append(chain, static)
	}
	if len(opts.ResolverDirs) > 0 {
		chain = append(chain, resolver.NewPackages(log, opts.ResolverDirs...))
	}
	if len(chain) == 0 {
		return resolver.Nop{}, nil
	}
	return resolver.NewCached(chain, opts.CacheSize)
}
