package extract

import (
	"context"
	"log/slog"

	"github.com/cmmoran/apidocgen/internal/extractor"
	"github.com/cmmoran/apidocgen/internal/parser"
	options "github.com/cmmoran/apidocgen/pkg/parser"
)

// Run parses the packages selected by p and extracts their IR without
// writing anything.
func Run(ctx context.Context, p *options.Options, log *slog.Logger) (extractor.Result, error) {
	if log == nil {
		log = slog.Default()
	}
	par, err := parser.NewWithOpts(p)
	if err != nil {
		return extractor.Result{}, err
	}
	if err = par.WithLogger(log).Parse(ctx); err != nil {
		return extractor.Result{}, err
	}

	ex := extractor.New(log)
	if err = ex.Process(par.Decls); err != nil {
		return extractor.Result{}, err
	}
	res := ex.Result()
	log.Debug("extracted",
		"classes", len(res.Document.Classes),
		"endpoints", len(res.Document.Methods),
		"messages", len(res.Debug))
	return res, nil
}
