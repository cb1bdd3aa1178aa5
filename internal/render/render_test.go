package render

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/apidocgen/internal/example"
	"github.com/cmmoran/apidocgen/internal/resolver"
	ir "github.com/cmmoran/apidocgen/pkg/model"
	options "github.com/cmmoran/apidocgen/pkg/render"
	"github.com/cmmoran/apidocgen/pkg/sink"
)

func strp(s string) *string { return &s }

func TestWriteType(t *testing.T) {
	t.Parallel()

	named := ir.NewType
	tests := []struct {
		name      string
		in        ir.TypeDescriptor
		wantText  string
		wantLinks []string
	}{
		{name: "primitive", in: named("string"), wantText: "string"},
		{name: "go integer", in: named("int64"), wantText: "integer"},
		{name: "jvm integer", in: named("java.lang.Integer"), wantText: "integer"},
		{name: "time", in: named("time.Time"), wantText: "date"},
		{name: "named", in: named("example.com/api.Widget"), wantText: "example.com/api.Widget", wantLinks: []string{"#example-com-api-Widget"}},
		{name: "list", in: named("List", named("bool")), wantText: "[boolean, ]"},
		{name: "iterable", in: named("Iterable", named("Foo")), wantText: "[Foo, ]", wantLinks: []string{"#Foo"}},
		{name: "map", in: named("Map", named("string"), named("float64")), wantText: "{string : double, }"},
		{name: "jvm map", in: named("java.util.Map", named("java.lang.String"), named("long")), wantText: "{string : integer, }"},
		{name: "optional", in: named("Optional", named("Foo")), wantText: "Foo", wantLinks: []string{"#Foo"}},
		{
			name:      "nested generics",
			in:        named("List", named("Map", named("string"), named("Optional", named("a.Foo")))),
			wantText:  "[{string : a.Foo, }, ]",
			wantLinks: []string{"#a-Foo"},
		},
		{name: "unknown container", in: named("Pair", named("A"), named("B")), wantText: "<??Pair??>"},
		{name: "map arity", in: named("Map", named("string")), wantText: "<??Map??>"},
		{name: "list arity", in: named("List", named("A"), named("B")), wantText: "<??List??>"},
		{
			name:     "unknown nested deep",
			in:       named("List", named("List", named("Weird", named("x")))),
			wantText: "[[<??Weird??>, ], ]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := sink.NewRecorder()
			writeType(rec, tt.in)
			assert.Equal(t, tt.wantText, rec.String())

			var links []string
			for _, e := range rec.Events {
				if e.Op == "link" {
					links = append(links, e.Arg)
				}
			}
			assert.Equal(t, tt.wantLinks, links)
		})
	}
}

func TestAnchors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GET--v1-widgets--id-", EndpointAnchor("GET", "/v1/widgets/{id}"))
	assert.Equal(t, "com-example-Status", TypeAnchor("com.example.Status"))
	assert.Equal(t, "example-com-api-Widget", TypeAnchor("example.com/api.Widget"))
}

func TestSortMethods(t *testing.T) {
	t.Parallel()

	in := []*ir.ResourceMethod{
		{Name: "b1", Method: "POST", Path: "/b"},
		{Name: "a2", Method: "GET", Path: "/a"},
		{Name: "b2", Method: "GET", Path: "/b"},
		{Name: "a1", Method: "DELETE", Path: "/a"},
		{Name: "b3", Method: "GET", Path: "/b"},
	}
	var names []string
	for _, m := range SortMethods(in) {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"a1", "a2", "b2", "b3", "b1"}, names)
	assert.Equal(t, "b1", in[0].Name, "input is not reordered")
}

func TestDocumentedTypes(t *testing.T) {
	t.Parallel()

	classes := map[string]*ir.TransferClass{
		"a.Widget": {Members: []*ir.TransferMember{
			{Name: "id", Type: ir.NewType("string")},
			{Name: "parts", Type: ir.NewType("List", ir.NewType("a.Part"))},
			{Name: "index", Type: ir.NewType("Map", ir.NewType("string"), ir.NewType("Optional", ir.NewType("a.Status")))},
			{Name: "legacy", Type: ir.NewType("java.util.List", ir.NewType("java.lang.String"))},
		}},
		"a.Empty": {},
	}
	want := []string{"a.Empty", "a.Part", "a.Status", "a.Widget"}
	if diff := cmp.Diff(want, DocumentedTypes(classes)); diff != "" {
		t.Errorf("DocumentedTypes mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDoc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  *string
		want []string
	}{
		{name: "nil", doc: nil, want: []string{"p", "p_"}},
		{name: "plain", doc: strp("Hello."), want: []string{"p", "raw(Hello.)", "p_"}},
		{
			name: "link",
			doc:  strp("See {@link #Widget} and {@link a.B}."),
			want: []string{"p", "raw(See )", "code", "raw(Widget)", "code_", "raw( and )", "code", "raw(a.B)", "code_", "raw(.)", "p_"},
		},
		{
			name: "paragraphs",
			doc:  strp("One.\n  \nTwo."),
			want: []string{"p", "raw(One.)", "p_", "p", "raw(Two.)", "p_"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := sink.NewRecorder()
			writeDoc(rec, tt.doc)
			if diff := cmp.Diff(tt.want, rec.Ops()); diff != "" {
				t.Errorf("writeDoc mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func widgetDocument() ir.Document {
	return ir.Document{
		Classes: map[string]*ir.TransferClass{
			"com.example.Widget": {
				Javadoc: strp("A widget."),
				Members: []*ir.TransferMember{
					{Name: "id", Type: ir.NewType("string")},
					{Name: "status", Type: ir.NewType("com.example.Status")},
				},
			},
			"com.example.Color": {
				Values: []*ir.TransferEnumValue{
					{Name: "RED", Doc: strp("Warm.")},
					{Name: "BLUE"},
				},
			},
		},
		Methods: []*ir.ResourceMethod{
			{
				Name:              "get",
				Method:            "GET",
				Path:              "/widgets/{id}",
				Javadoc:           strp("Fetch one widget."),
				ReturnContentType: strp("application/json"),
				ReturnType:        ir.NewType("com.example.Widget"),
				Arguments: []*ir.ResourceArgument{
					{Name: "id", Type: ir.NewType("string"), Location: ir.LocationPath, Doc: strp("Widget id.")},
				},
				ExampleArgs:     map[string]string{"id": "7"},
				ExampleResponse: strp(`{"status":"OK","id":"7"}`),
			},
			{
				Name:       "list",
				Method:     "GET",
				Path:       "/widgets",
				ReturnType: ir.NewType("List", ir.NewType("com.example.Widget")),
			},
		},
	}
}

func statusRegistry() resolver.Resolver {
	return resolver.NewStatic(&resolver.StaticType{TypeName: "com.example.Status", Constants: []string{"OK", "ERROR"}})
}

func newRenderer(t *testing.T, res resolver.Resolver, opts ...options.Option) *Renderer {
	t.Helper()
	o := options.NewOptions()
	o.ExampleHostPort = "api.example.com:443"
	o.EndpointPrefix = "/v1"
	for _, opt := range opts {
		opt(o)
	}
	return New(o, res, nil)
}

func TestRenderWidgetScenario(t *testing.T) {
	t.Parallel()

	rec := sink.NewRecorder()
	r := newRenderer(t, statusRegistry())
	require.NoError(t, r.Render(context.Background(), rec, widgetDocument()))
	assert.True(t, rec.Closed)

	out := rec.String()
	assert.Contains(t, out, "GET /v1/widgets/{id}")
	assert.Contains(t, out, "https://api.example.com:443/v1/widgets/7")
	assert.Contains(t, out, "-E certinfo --cacert cacerts_file")
	assert.Contains(t, out, "{\n  \"id\": \"7\",\n  \"status\": \"OK\"\n}")
	assert.Contains(t, out, "id (PATH) type string")
	assert.Contains(t, out, "Enumerated Type.  Valid values are: \"OK\", \"ERROR\"")
	assert.Contains(t, out, `"id" : string`)

	// table of contents entry and heading both carry the prefixed anchor
	assert.Equal(t, 1, rec.Count("link", "#GET--v1-widgets--id-"))
	assert.Equal(t, 1, rec.Count("anchor", "GET--v1-widgets--id-"))
	assert.Equal(t, 1, rec.Count("anchor", "com-example-Status"))
	// list endpoint sorts first and has no example block
	assert.Less(t, indexOf(rec, "anchor", "GET--v1-widgets"), indexOf(rec, "anchor", "GET--v1-widgets--id-"))
	assert.Equal(t, 2, rec.Count("pre", ""), "request and response blocks")
	assert.Equal(t, 8, rec.Count("nbsp", ""), "four per member")
}

func indexOf(rec *sink.Recorder, op, arg string) int {
	for i, e := range rec.Events {
		if e.Op == op && e.Arg == arg {
			return i
		}
	}
	return -1
}

func TestRenderTypeSections(t *testing.T) {
	t.Parallel()

	rec := sink.NewRecorder()
	r := newRenderer(t, statusRegistry(), options.WithoutExamples())
	require.NoError(t, r.Render(context.Background(), rec, widgetDocument()))

	var titles []string
	for i, e := range rec.Events {
		if e.Op == "title" && e.Arg == "3" && i+3 < len(rec.Events) {
			titles = append(titles, rec.Events[i+3].Arg)
		}
	}
	want := []string{
		"GET /v1/widgets",
		"GET /v1/widgets/{id}",
		"Type: com.example.Color",
		"Type: com.example.Status",
		"Type: com.example.Widget",
	}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("section titles mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, rec.Count("text", `"RED"`))
	assert.Equal(t, 1, rec.Count("raw", "Warm."))
	assert.Zero(t, rec.Count("pre", ""))
}

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, string) (resolver.Type, error) {
	return nil, errors.New("registry offline")
}

func TestRenderFallbackNotices(t *testing.T) {
	t.Parallel()

	doc := ir.Document{Classes: map[string]*ir.TransferClass{
		"com.example.Holder": {Members: []*ir.TransferMember{
			{Name: "plain", Type: ir.NewType("com.example.Plain")},
			{Name: "missing", Type: ir.NewType("com.example.Missing")},
		}},
	}}

	tests := []struct {
		name string
		res  resolver.Resolver
		want []string
	}{
		{
			name: "static",
			res:  resolver.NewStatic(&resolver.StaticType{TypeName: "com.example.Plain"}),
			want: []string{
				"!??!?!!? com.example.Plain is not an enumerated type",
				"Was not able to find class: com.example.Missing",
			},
		},
		{
			name: "nop",
			res:  nil,
			want: []string{
				"Was not able to find class: com.example.Plain",
				"Was not able to find class: com.example.Missing",
			},
		},
		{
			name: "error",
			res:  failingResolver{},
			want: []string{" -- can't resolve com.example.Plain: registry offline"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := sink.NewRecorder()
			require.NoError(t, newRenderer(t, tt.res).Render(context.Background(), rec, doc))
			for _, w := range tt.want {
				assert.Equal(t, 1, rec.Count("text", w), w)
			}
		})
	}
}

func TestRenderMissingExampleArgAborts(t *testing.T) {
	t.Parallel()

	doc := ir.Document{Methods: []*ir.ResourceMethod{{
		Method:      "DELETE",
		Path:        "/widgets/{id}",
		ExampleArgs: map[string]string{"name": "x"},
		ReturnType:  ir.NewType("void"),
	}}}
	rec := sink.NewRecorder()
	err := newRenderer(t, nil).Render(context.Background(), rec, doc)
	require.ErrorIs(t, err, example.ErrMissingExampleArg)
	assert.False(t, rec.Closed)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	first := ir.Source{Location: "a.json", Document: ir.Document{Classes: map[string]*ir.TransferClass{
		"x.A": {Members: []*ir.TransferMember{{Name: "one", Type: ir.NewType("string")}}},
	}}}
	second := ir.Source{Location: "b.json", Document: ir.Document{Classes: map[string]*ir.TransferClass{
		"x.A": {Members: []*ir.TransferMember{{Name: "two", Type: ir.NewType("string")}}},
	}}}

	doc, err := newRenderer(t, nil).Merge(first, second)
	require.NoError(t, err)
	assert.Equal(t, "one", doc.Classes["x.A"].Members[0].Name)

	_, err = newRenderer(t, nil, options.WithStrictMerge()).Merge(first, second)
	require.ErrorIs(t, err, ErrConflictingClass)
	assert.Contains(t, err.Error(), "b.json")

	_, err = newRenderer(t, nil, options.WithStrictMerge()).Merge(first, first)
	require.NoError(t, err, "identical definitions are not a conflict")
}

func TestRenderHTMLAndMarkdown(t *testing.T) {
	t.Parallel()

	var html bytes.Buffer
	require.NoError(t, newRenderer(t, statusRegistry()).Render(context.Background(), sink.NewHTML(&html), widgetDocument()))
	assert.Contains(t, html.String(), `<a id="GET--v1-widgets--id-">`)
	assert.Contains(t, html.String(), `<a href="#com-example-Widget">com.example.Widget</a>`)

	var md bytes.Buffer
	require.NoError(t, newRenderer(t, statusRegistry()).Render(context.Background(), sink.NewMarkdown(&md), widgetDocument()))
	assert.Contains(t, md.String(), "# REST Endpoints")
	assert.Contains(t, md.String(), "](#GET--v1-widgets--id-)")
	assert.Contains(t, md.String(), "https://api.example.com:443/v1/widgets/7")
}

func TestSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2 endpoints, 3 types", Summary(widgetDocument()))
	assert.Equal(t, "0 endpoints, 1 type", Summary(ir.Document{Classes: map[string]*ir.TransferClass{"a.B": {}}}))
	assert.Equal(t, "1 endpoint, 0 types", summary(1, 0))
}

func TestRenderMarkdownValueParagraphs(t *testing.T) {
	t.Parallel()

	doc := ir.Document{Classes: map[string]*ir.TransferClass{
		"a.Status": {Values: []*ir.TransferEnumValue{
			{Name: "OK", Doc: strp("First paragraph.\n\nSecond paragraph.")},
		}},
	}}
	var md bytes.Buffer
	require.NoError(t, newRenderer(t, nil).Render(context.Background(), sink.NewMarkdown(&md), doc))
	assert.Contains(t, md.String(), "- \"OK\": First paragraph.\n\n  Second paragraph.\n")
}
