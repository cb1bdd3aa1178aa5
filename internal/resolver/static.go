package resolver

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StaticType is one entry of a static registry. A type with constants is
// an enum.
type StaticType struct {
	TypeName  string        `json:"name" yaml:"name"`
	Constants []string      `json:"enum,omitempty" yaml:"enum,omitempty"`
	Nested    []*StaticType `json:"nested,omitempty" yaml:"nested,omitempty"`
}

func (t *StaticType) Name() string            { return t.TypeName }
func (t *StaticType) IsEnum() bool            { return len(t.Constants) > 0 }
func (t *StaticType) EnumConstants() []string { return t.Constants }
func (t *StaticType) NestedTypes() []Type {
	out := make([]Type, len(t.Nested))
	for i, n := range t.Nested {
		out[i] = n
	}
	return out
}

// Static resolves top-level names from a fixed table. Nested entries are
// reachable through Lookup.
type Static struct {
	types map[string]*StaticType
}

func NewStatic(types ...*StaticType) *Static {
	s := &Static{types: make(map[string]*StaticType, len(types))}
	for _, t := range types {
		s.types[t.TypeName] = t
	}
	return s
}

// registryFile is the YAML layout of a static registry.
type registryFile struct {
	Types []*StaticType `yaml:"types"`
}

// LoadStatic parses a YAML registry of the form
//
//	types:
//	  - name: example.com/api.Status
//	    enum: [OK, ERROR]
func LoadStatic(data []byte) (*Static, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenLocation, err)
	}
	return NewStatic(f.Types...), nil
}

func (s *Static) Resolve(_ context.Context, name string) (Type, error) {
	if t, ok := s.types[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Types returns the top-level entries.
func (s *Static) Types() []*StaticType {
	out := make([]*StaticType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	return out
}
