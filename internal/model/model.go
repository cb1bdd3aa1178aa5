package model

import (
	ir "github.com/cmmoran/apidocgen/pkg/model"
)

// Kind classifies a Declaration.
type Kind int

const (
	KindInvalid      Kind = iota
	KindPackage           // package clause, encloses free functions
	KindStruct            // struct type
	KindEnum              // named type with basic underlying and typed constants
	KindEnumConstant      // one constant of an enum
	KindNamed             // any other named type
	KindProperty          // serializable property (json-tagged field)
	KindMethod            // function or method
	KindParameter         // function parameter
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "PACKAGE"
	case KindStruct:
		return "STRUCT"
	case KindEnum:
		return "ENUM"
	case KindEnumConstant:
		return "ENUM_CONSTANT"
	case KindNamed:
		return "NAMED"
	case KindProperty:
		return "PROPERTY"
	case KindMethod:
		return "METHOD"
	case KindParameter:
		return "PARAMETER"
	default:
		return "INVALID"
	}
}

// Annotation names understood by the extractor.
const (
	AnnotationProperty        = "docgen.Property"
	AnnotationSerialize       = "docgen.Serialize"
	AnnotationEnum            = "docgen.Enum"
	AnnotationGET             = "docgen.GET"
	AnnotationPOST            = "docgen.POST"
	AnnotationPUT             = "docgen.PUT"
	AnnotationPATCH           = "docgen.PATCH"
	AnnotationDELETE          = "docgen.DELETE"
	AnnotationPath            = "docgen.Path"
	AnnotationProduces        = "docgen.Produces"
	AnnotationConsumes        = "docgen.Consumes"
	AnnotationExampleRequest  = "docgen.ExampleRequest"
	AnnotationExampleResponse = "docgen.ExampleResponse"
	AnnotationExampleArgs     = "docgen.ExampleArgs"
	AnnotationPathParam       = "docgen.PathParam"
	AnnotationQueryParam      = "docgen.QueryParam"
	AnnotationContext         = "docgen.Context"
	AnnotationArgumentDoc     = "docgen.ArgumentDoc"
)

// MethodAnnotations are the HTTP method markers, in lookup order.
var MethodAnnotations = []string{
	AnnotationGET,
	AnnotationPOST,
	AnnotationPUT,
	AnnotationDELETE,
	AnnotationPATCH,
}

// Annotation is a marker attached to a declaration, with optional values.
type Annotation struct {
	Name   string
	Values []string
}

// Value returns the first value or "".
func (a Annotation) Value() string {
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

// Declaration is a named, typed, possibly documented, possibly annotated
// program element.
type Declaration struct {
	Kind          Kind
	Name          string // simple name
	QualifiedName string // "import/path.Name" for types, "import/path" for packages
	Doc           *string
	Type          ir.TypeDescriptor // declared type, or return type for methods
	Annotations   []Annotation
	Enclosing     *Declaration
	Enclosed      []*Declaration // parameters of a method, constants of an enum
	Pos           string         // file:line:col, for diagnostics
}

// Annotation returns the named annotation, if present.
func (d *Declaration) Annotation(name string) (Annotation, bool) {
	for _, a := range d.Annotations {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}

// HasAnnotation reports whether the named annotation is present.
func (d *Declaration) HasAnnotation(name string) bool {
	_, ok := d.Annotation(name)
	return ok
}

// Annotate appends an annotation.
func (d *Declaration) Annotate(name string, values ...string) {
	d.Annotations = append(d.Annotations, Annotation{Name: name, Values: values})
}

func (d *Declaration) String() string {
	if d.QualifiedName != "" {
		return d.QualifiedName
	}
	if d.Enclosing != nil {
		return d.Enclosing.String() + "." + d.Name
	}
	return d.Name
}
