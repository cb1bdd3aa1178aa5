// Package resolver looks up types that are referenced by the IR but were
// never documented by an extractor, so enums can still be listed.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a name does not resolve to a type.
	ErrNotFound = errors.New("type not found")
	// ErrOpenLocation is returned when a resolver location cannot be read.
	ErrOpenLocation = errors.New("open resolver location")
)

// Type is a resolved type.
type Type interface {
	// Name is the fully qualified name.
	Name() string
	IsEnum() bool
	// EnumConstants lists the constants in declaration order.
	EnumConstants() []string
	NestedTypes() []Type
}

// Resolver maps a fully qualified name to a Type.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Type, error)
}

// Lookup resolves name directly, and failing that treats name as a nested
// type: the last dot-separated segment is stripped until a candidate
// enclosing type resolves, whose nested types are then searched for name.
// The first enclosing candidate that resolves decides the outcome.
func Lookup(ctx context.Context, r Resolver, name string) (Type, error) {
	t, err := r.Resolve(ctx, name)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	enclosing := name
	for {
		i := strings.LastIndex(enclosing, ".")
		if i <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		enclosing = enclosing[:i]

		outer, err := r.Resolve(ctx, enclosing)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if nested := findNested(outer, name); nested != nil {
			return nested, nil
		}
		return nil, fmt.Errorf("%w: %s (no nested type in %s)", ErrNotFound, name, enclosing)
	}
}

func findNested(t Type, name string) Type {
	for _, n := range t.NestedTypes() {
		if n.Name() == name {
			return n
		}
		if found := findNested(n, name); found != nil {
			return found
		}
	}
	return nil
}

// Chain tries each resolver in order until one finds the name.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context, name string) (Type, error) {
	for _, r := range c {
		t, err := r.Resolve(ctx, name)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Nop never resolves anything.
type Nop struct{}

func (Nop) Resolve(_ context.Context, name string) (Type, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}
