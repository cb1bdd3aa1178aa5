// Package render turns merged IR documents into a cross-linked document on a
// sink.Sink: the endpoint sections first, then one section per reachable type.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/cmmoran/apidocgen/internal/example"
	"github.com/cmmoran/apidocgen/internal/resolver"
	ir "github.com/cmmoran/apidocgen/pkg/model"
	options "github.com/cmmoran/apidocgen/pkg/render"
	"github.com/cmmoran/apidocgen/pkg/sink"
)

type Renderer struct {
	Opts options.Options

	resolver resolver.Resolver
	log      *slog.Logger
}

// New returns a Renderer. A nil resolver renders every undocumented type as
// not found.
func New(opts *options.Options, res resolver.Resolver, log *slog.Logger) *Renderer {
	if opts == nil {
		opts = options.NewOptions()
	}
	if res == nil {
		res = resolver.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{Opts: *opts, resolver: res, log: log}
}

// Merge unions sources. Conflicting class definitions are logged and the
// first one kept, unless StrictMerge is set.
func (r *Renderer) Merge(sources ...ir.Source) (ir.Document, error) {
	doc, conflicts := ir.Merge(sources...)
	for _, c := range conflicts {
		if r.Opts.StrictMerge && !c.Identical {
			return ir.Document{}, fmt.Errorf("%w: %s defined in %s and %s", ErrConflictingClass, c.Name, c.Kept, c.Dropped)
		}
		r.log.Warn("class defined more than once, keeping first",
			"class", c.Name, "kept", c.Kept, "dropped", c.Dropped, "identical", c.Identical)
	}
	return doc, nil
}

// Render writes doc to s, then flushes and closes s. Any error aborts the
// render; callers that must not leave partial output should render into
// memory first.
func (r *Renderer) Render(ctx context.Context, s sink.Sink, doc ir.Document) error {
	methods := SortMethods(doc.Methods)
	if err := r.writeEndpoints(s, methods); err != nil {
		return err
	}
	types := DocumentedTypes(doc.Classes)
	if err := r.writeTypes(ctx, s, doc.Classes, types); err != nil {
		return err
	}

	r.log.Info("rendered document", "summary", summary(len(methods), len(types)))

	if err := s.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// SortMethods returns methods ordered by path, then HTTP method. Equal keys
// keep their input order.
func SortMethods(methods []*ir.ResourceMethod) []*ir.ResourceMethod {
	sorted := append([]*ir.ResourceMethod(nil), methods...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Method < sorted[j].Method
	})
	return sorted
}

// DocumentedTypes returns every class name plus every type name reachable
// from class members, without primitives and container names, sorted.
func DocumentedTypes(classes map[string]*ir.TransferClass) []string {
	seen := make(map[string]struct{}, len(classes))
	for name, tc := range classes {
		seen[name] = struct{}{}
		if tc == nil {
			continue
		}
		for _, m := range tc.Members {
			m.Type.Walk(func(t ir.TypeDescriptor) { seen[t.Name] = struct{}{} })
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		if !skipped(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func heading(s sink.Sink, level int, text string) {
	s.Section(level)
	s.SectionTitle(level)
	s.Text(text)
	s.SectionTitleEnd(level)
	s.SectionEnd(level)
}

func anchoredHeading(s sink.Sink, level int, anchor, text string) {
	s.Section(level)
	s.SectionTitle(level)
	s.Anchor(anchor)
	s.AnchorEnd()
	s.Text(text)
	s.SectionTitleEnd(level)
	s.SectionEnd(level)
}

func bold(s sink.Sink, text string) {
	s.Bold()
	s.Text(text)
	s.BoldEnd()
}

// Summary describes the rendered size of doc, such as "1 endpoint, 2 types".
func Summary(doc ir.Document) string {
	return summary(len(doc.Methods), len(DocumentedTypes(doc.Classes)))
}

func summary(methods, types int) string {
	return count(methods, "endpoint") + ", " + count(types, "type")
}

func count(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

func (r *Renderer) writeEndpoints(s sink.Sink, methods []*ir.ResourceMethod) error {
	heading(s, 1, "REST Endpoints")
	heading(s, 2, "Table Of Contents")

	s.List()
	for _, m := range methods {
		path := r.Opts.EndpointPrefix + m.Path
		s.ListItem()
		s.Link("#" + EndpointAnchor(m.Method, path))
		s.Text(strings.ToUpper(m.Method) + " " + path)
		s.LinkEnd()
		s.ListItemEnd()
	}
	s.ListEnd()

	for _, m := range methods {
		if err := r.writeEndpoint(s, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writeEndpoint(s sink.Sink, m *ir.ResourceMethod) error {
	path := r.Opts.EndpointPrefix + m.Path
	anchoredHeading(s, 3, EndpointAnchor(m.Method, path), strings.ToUpper(m.Method)+" "+path)
	writeDoc(s, m.Javadoc)

	if m.ConsumesContentType != nil {
		s.Paragraph()
		bold(s, "Request Content-Type: ")
		s.Text(*m.ConsumesContentType)
		s.ParagraphEnd()
	}

	if len(m.Arguments) > 0 {
		bold(s, "Arguments:")
		s.DefinitionList()
		for _, arg := range m.Arguments {
			s.DefinedTerm()
			s.Text(arg.Name)
			if arg.Location != "" {
				s.Text(" (" + string(arg.Location) + ")")
			}
			s.Text(" type ")
			writeType(s, arg.Type)
			s.DefinedTermEnd()
			if arg.Doc != nil {
				s.Definition()
				s.Text(*arg.Doc)
				s.DefinitionEnd()
			}
		}
		s.DefinitionListEnd()
	}

	bold(s, "Returns:")
	s.List()
	if m.ReturnContentType != nil {
		s.ListItem()
		bold(s, "Content-Type:")
		s.Text(" " + *m.ReturnContentType)
		s.ListItemEnd()
	}
	s.ListItem()
	bold(s, "Object-Type:")
	s.Text(" ")
	writeType(s, m.ReturnType)
	s.ListItemEnd()
	s.ListEnd()

	if r.Opts.Examples && (m.ExampleResponse != nil || m.ExampleArgs != nil) {
		return r.writeExample(s, m)
	}
	return nil
}

func (r *Renderer) writeExample(s sink.Sink, m *ir.ResourceMethod) error {
	target := example.Target{
		SSL:      r.Opts.ExamplesSSL,
		HostPort: r.Opts.ExampleHostPort,
		Prefix:   r.Opts.EndpointPrefix,
	}
	request, err := example.RequestBlock(m, target)
	if err != nil {
		return err
	}
	response, ok, err := example.ResponseBlock(m)
	if err != nil {
		return err
	}

	s.Paragraph()
	bold(s, "Example Request:")
	s.ParagraphEnd()
	s.Verbatim()
	s.Text(request)
	s.VerbatimEnd()

	if ok {
		s.Paragraph()
		bold(s, "Example Response:")
		s.ParagraphEnd()
		s.Verbatim()
		s.Text(response)
		s.VerbatimEnd()
	}
	return nil
}

func (r *Renderer) writeTypes(ctx context.Context, s sink.Sink, classes map[string]*ir.TransferClass, types []string) error {
	heading(s, 1, "Transfer Classes")
	heading(s, 2, "Table Of Contents")

	s.List()
	for _, name := range types {
		s.ListItem()
		s.Link("#" + TypeAnchor(name))
		s.Text(name)
		s.LinkEnd()
		s.ListItemEnd()
	}
	s.ListEnd()

	for _, name := range types {
		if err := ctx.Err(); err != nil {
			return err
		}
		if tc, ok := classes[name]; ok && tc != nil {
			writeClass(s, name, tc)
			continue
		}
		r.writeResolved(ctx, s, name)
	}
	return nil
}

func classHeading(s sink.Sink, name string) {
	anchoredHeading(s, 3, TypeAnchor(name), "Type: "+name)
}

func writeClass(s sink.Sink, name string, tc *ir.TransferClass) {
	classHeading(s, name)
	writeDoc(s, tc.Javadoc)

	if tc.Members != nil {
		s.Paragraph()
		s.Monospaced()
		s.Text("{")
		s.LineBreak()
		for _, m := range tc.Members {
			for range 4 {
				s.NonBreakingSpace()
			}
			s.Text(`"` + m.Name + `" : `)
			writeType(s, m.Type)
			s.LineBreak()
		}
		s.Text("}")
		s.MonospacedEnd()
		s.ParagraphEnd()
	}

	if tc.Values != nil {
		s.DefinitionList()
		for _, v := range tc.Values {
			s.DefinedTerm()
			s.Text(`"` + v.Name + `"`)
			s.DefinedTermEnd()
			s.Definition()
			writeDoc(s, v.Doc)
			s.DefinitionEnd()
		}
		s.DefinitionListEnd()
	}
}

// writeResolved documents a type that has no class entry by asking the
// resolver. Every outcome renders something; none of them is an error.
func (r *Renderer) writeResolved(ctx context.Context, s sink.Sink, name string) {
	t, err := resolver.Lookup(ctx, r.resolver, name)
	switch {
	case errors.Is(err, resolver.ErrNotFound):
		r.log.Debug("unable to resolve type", "type", name)
		s.Text("Was not able to find class: " + name)
		s.LineBreak()
	case err != nil:
		r.log.Warn("type resolution failed", "type", name, "error", err)
		s.Text(" -- can't resolve " + name + ": " + err.Error())
		s.LineBreak()
	case t.IsEnum():
		classHeading(s, name)
		quoted := make([]string, 0, len(t.EnumConstants()))
		for _, c := range t.EnumConstants() {
			quoted = append(quoted, `"`+c+`"`)
		}
		s.Text("Enumerated Type.  Valid values are: ")
		s.Monospaced()
		s.Text(strings.Join(quoted, ", "))
		s.MonospacedEnd()
		s.LineBreak()
	default:
		s.Text("!??!?!!? " + name + " is not an enumerated type")
		s.LineBreak()
	}
}
