package parser

import (
	"go/types"

	ir "github.com/cmmoran/apidocgen/pkg/model"
)

// Describe maps a go/types type onto a TypeDescriptor. Maps, slices,
// arrays, iter.Seq and pointers become the Map, List, Iterable and Optional
// containers; named types are qualified with their import path and carry
// their type arguments.
func Describe(t types.Type) ir.TypeDescriptor {
	switch tt := t.(type) {
	case *types.Alias:
		return Describe(types.Unalias(tt))
	case *types.Basic:
		return ir.NewType(tt.Name())
	case *types.Pointer:
		return ir.NewType(ir.ContainerOptional, Describe(tt.Elem()))
	case *types.Slice:
		if isByte(tt.Elem()) {
			return ir.NewType("[]byte")
		}
		return ir.NewType(ir.ContainerList, Describe(tt.Elem()))
	case *types.Array:
		if isByte(tt.Elem()) {
			return ir.NewType("[]byte")
		}
		return ir.NewType(ir.ContainerList, Describe(tt.Elem()))
	case *types.Map:
		return ir.NewType(ir.ContainerMap, Describe(tt.Key()), Describe(tt.Elem()))
	case *types.Named:
		return describeNamed(tt)
	case *types.TypeParam:
		return ir.NewType(tt.Obj().Name())
	case *types.Interface:
		return ir.NewType("any")
	case *types.Struct:
		return ir.NewType("object")
	default:
		return ir.NewType(types.TypeString(t, nil))
	}
}

func describeNamed(n *types.Named) ir.TypeDescriptor {
	obj := n.Obj()
	if obj.Pkg() == nil {
		// universe scope: error, comparable
		return ir.NewType(obj.Name())
	}
	name := QualifiedName(obj)

	targs := n.TypeArgs()
	if name == "iter.Seq" && targs.Len() == 1 {
		return ir.NewType(ir.ContainerIterable, Describe(targs.At(0)))
	}

	args := make([]ir.TypeDescriptor, 0, targs.Len())
	for i := 0; i < targs.Len(); i++ {
		args = append(args, Describe(targs.At(i)))
	}
	return ir.NewType(name, args...)
}

// QualifiedName returns "import/path.Name" for a package-level object.
func QualifiedName(obj types.Object) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).(*types.Basic)
	return ok && b.Kind() == types.Uint8
}

// isNamed reports whether t (or *t) is the named type pkgPath.name.
func isNamed(t types.Type, pkgPath, name string) bool {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	n, ok := types.Unalias(t).(*types.Named)
	if !ok || n.Obj().Pkg() == nil {
		return false
	}
	return n.Obj().Pkg().Path() == pkgPath && n.Obj().Name() == name
}

// isContextParam reports whether a parameter of type t is bound from the
// request context rather than the request itself.
func isContextParam(t types.Type) bool {
	return isNamed(t, "context", "Context") ||
		isNamed(t, "net/http", "Request") ||
		isNamed(t, "net/http", "ResponseWriter")
}

// isError reports whether t is the predeclared error type.
func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}
