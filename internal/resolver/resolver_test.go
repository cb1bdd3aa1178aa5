package resolver

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryYAML = `
types:
  - name: com.example.Outer
    nested:
      - name: com.example.Outer.Inner
        enum: [A, B]
        nested:
          - name: com.example.Outer.Inner.Deep
            enum: [X]
  - name: com.example.Status
    enum: [OK, ERROR]
  - name: com.example.Plain
`

func loadRegistry(t *testing.T) *Static {
	t.Helper()
	s, err := LoadStatic([]byte(registryYAML))
	require.NoError(t, err)
	return s
}

func TestLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := loadRegistry(t)

	tests := []struct {
		name      string
		lookup    string
		wantEnum  bool
		wantConst []string
		notFound  bool
	}{
		{name: "direct enum", lookup: "com.example.Status", wantEnum: true, wantConst: []string{"OK", "ERROR"}},
		{name: "direct plain", lookup: "com.example.Plain"},
		{name: "nested", lookup: "com.example.Outer.Inner", wantEnum: true, wantConst: []string{"A", "B"}},
		{name: "nested twice", lookup: "com.example.Outer.Inner.Deep", wantEnum: true, wantConst: []string{"X"}},
		{name: "missing nested", lookup: "com.example.Outer.Nope", notFound: true},
		{name: "missing", lookup: "org.nowhere.Thing", notFound: true},
		{name: "no dots", lookup: "Thing", notFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Lookup(ctx, s, tt.lookup)
			if tt.notFound {
				require.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lookup, got.Name())
			assert.Equal(t, tt.wantEnum, got.IsEnum())
			assert.Equal(t, tt.wantConst, got.EnumConstants())
		})
	}
}

type errResolver struct{ err error }

func (e errResolver) Resolve(context.Context, string) (Type, error) { return nil, e.err }

func TestLookupPropagatesOtherErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Lookup(context.Background(), errResolver{err: boom}, "a.b.C")
	require.ErrorIs(t, err, boom)
}

func TestChainAndNop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, err := Nop{}.Resolve(ctx, "a.B")
	require.ErrorIs(t, err, ErrNotFound)

	c := Chain{Nop{}, loadRegistry(t)}
	got, err := c.Resolve(ctx, "com.example.Status")
	require.NoError(t, err)
	assert.True(t, got.IsEnum())

	_, err = c.Resolve(ctx, "com.example.Missing")
	require.ErrorIs(t, err, ErrNotFound)
}

type countingResolver struct {
	next  Resolver
	calls map[string]int
}

func (c *countingResolver) Resolve(ctx context.Context, name string) (Type, error) {
	c.calls[name]++
	return c.next.Resolve(ctx, name)
}

func TestCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	counter := &countingResolver{next: loadRegistry(t), calls: map[string]int{}}
	c, err := NewCached(counter, 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = c.Resolve(ctx, "com.example.Status")
		require.NoError(t, err)
		_, err = c.Resolve(ctx, "com.example.Missing")
		require.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 1, counter.calls["com.example.Status"])
	assert.Equal(t, 1, counter.calls["com.example.Missing"])
}

func TestLoadStaticRejectsBadYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadStatic([]byte("types: ["))
	require.ErrorIs(t, err, ErrOpenLocation)
}

func TestPackagesResolver(t *testing.T) {
	t.Parallel()

	const pkg = "github.com/cmmoran/apidocgen/internal/resolver/testdata/status"
	ctx := context.Background()
	r := NewPackages(nil, "testdata/status")

	status, err := r.Resolve(ctx, pkg+".Status")
	require.NoError(t, err)
	assert.True(t, status.IsEnum())
	assert.Equal(t, []string{"OK", "ERROR"}, status.EnumConstants())

	level, err := r.Resolve(ctx, pkg+".Level")
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low"}, level.EnumConstants())

	job, err := r.Resolve(ctx, pkg+".Job")
	require.NoError(t, err)
	assert.False(t, job.IsEnum())

	_, err = r.Resolve(ctx, pkg+".Missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = r.Resolve(ctx, "example.org/elsewhere.Thing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPackagesResolverBadLocation(t *testing.T) {
	t.Parallel()

	r := NewPackages(nil, "/")
	_, err := r.Resolve(context.Background(), "a.B")
	require.ErrorIs(t, err, ErrOpenLocation)
}

func TestGenerateRegistry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, GenerateRegistry(&buf, "registry", "Types", loadRegistry(t).Types()))

	out := buf.String()
	assert.Contains(t, out, "// Code generated by apidocgen registry. DO NOT EDIT.")
	assert.Contains(t, out, "package registry")
	assert.Contains(t, out, `"github.com/cmmoran/apidocgen/internal/resolver"`)
	assert.Contains(t, out, "var Types = resolver.NewStatic(")
	assert.Contains(t, out, `"com.example.Status"`)
	assert.Contains(t, out, `[]string{"OK", "ERROR"}`)
	assert.Contains(t, out, `"com.example.Outer.Inner.Deep"`)
}
