package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/cmmoran/apidocgen/internal/model"
)

const directivePrefix = "//docgen:"

var (
	// ErrUnknownDirective is returned for a //docgen: comment with an unrecognized name.
	ErrUnknownDirective = errors.New("unknown directive")
	// ErrMisplacedDirective is returned for a directive that cannot apply to its declaration.
	ErrMisplacedDirective = errors.New("misplaced directive")
	// ErrUnknownParameter is returned when a parameter directive names a missing parameter.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// directive is one //docgen: line.
type directive struct {
	name string
	args string // raw remainder of the line, trimmed
	pos  token.Position
}

// fields splits args on whitespace.
func (d directive) fields() []string { return strings.Fields(d.args) }

func (d directive) String() string { return directivePrefix + d.name }

// declaration-level directives and the annotation each produces
var declDirectives = map[string]string{
	"serialize":        model.AnnotationSerialize,
	"enum":             model.AnnotationEnum,
	"get":              model.AnnotationGET,
	"post":             model.AnnotationPOST,
	"put":              model.AnnotationPUT,
	"patch":            model.AnnotationPATCH,
	"delete":           model.AnnotationDELETE,
	"path":             model.AnnotationPath,
	"produces":         model.AnnotationProduces,
	"consumes":         model.AnnotationConsumes,
	"example-request":  model.AnnotationExampleRequest,
	"example-response": model.AnnotationExampleResponse,
	"example-args":     model.AnnotationExampleArgs,
}

// parameter directives; the first field names the parameter
var paramDirectives = map[string]string{
	"pathparam":  model.AnnotationPathParam,
	"queryparam": model.AnnotationQueryParam,
	"context":    model.AnnotationContext,
	"argdoc":     model.AnnotationArgumentDoc,
}

// funcOnly lists directives that only make sense on functions.
var funcOnly = map[string]bool{
	"produces":         true,
	"consumes":         true,
	"example-request":  true,
	"example-response": true,
	"example-args":     true,
}

// parseDirectives extracts every //docgen: line of cg. Unknown names are
// reported with their position.
func parseDirectives(fset *token.FileSet, cg *ast.CommentGroup) ([]directive, error) {
	if cg == nil {
		return nil, nil
	}
	var out []directive
	for _, c := range cg.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		text := strings.TrimPrefix(c.Text, directivePrefix)
		name, args, _ := strings.Cut(text, " ")
		name = strings.TrimSpace(name)
		pos := fset.Position(c.Pos())

		_, isDecl := declDirectives[name]
		_, isParam := paramDirectives[name]
		if !isDecl && !isParam {
			return nil, fmt.Errorf("%s: %w %s%s", pos, ErrUnknownDirective, directivePrefix, name)
		}
		out = append(out, directive{name: name, args: strings.TrimSpace(args), pos: pos})
	}
	return out, nil
}

// applyTypeDirectives annotates a type or package declaration.
func applyTypeDirectives(d *model.Declaration, dirs []directive) error {
	for _, dir := range dirs {
		if _, ok := paramDirectives[dir.name]; ok || funcOnly[dir.name] {
			return fmt.Errorf("%s: %w: %s on %s", dir.pos, ErrMisplacedDirective, dir, d)
		}
		if d.Kind == model.KindPackage && dir.name != "path" {
			return fmt.Errorf("%s: %w: %s on package %s", dir.pos, ErrMisplacedDirective, dir, d)
		}
		applyDeclDirective(d, dir)
	}
	return nil
}

// applyFuncDirectives annotates a method declaration and its parameters.
func applyFuncDirectives(d *model.Declaration, dirs []directive) error {
	for _, dir := range dirs {
		if _, ok := declDirectives[dir.name]; ok {
			if dir.name == "serialize" || dir.name == "enum" {
				return fmt.Errorf("%s: %w: %s on func %s", dir.pos, ErrMisplacedDirective, dir, d.Name)
			}
			applyDeclDirective(d, dir)
			continue
		}

		f := dir.fields()
		if len(f) == 0 {
			return fmt.Errorf("%s: %w: %s needs a parameter name", dir.pos, ErrUnknownParameter, dir)
		}
		param := findParam(d, f[0])
		if param == nil {
			return fmt.Errorf("%s: %w %q in %s of func %s", dir.pos, ErrUnknownParameter, f[0], dir, d.Name)
		}
		annotation := paramDirectives[dir.name]
		switch dir.name {
		case "argdoc":
			_, text, _ := strings.Cut(dir.args, f[0])
			appendValue(param, annotation, strings.TrimSpace(text))
		case "pathparam":
			param.Annotate(annotation, f[1:]...)
		default:
			param.Annotate(annotation)
		}
	}
	return nil
}

func applyDeclDirective(d *model.Declaration, dir directive) {
	annotation := declDirectives[dir.name]
	switch dir.name {
	case "path", "example-request", "example-response":
		appendValue(d, annotation, dir.args)
	case "produces", "consumes":
		var values []string
		for _, v := range strings.Split(dir.args, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		appendValue(d, annotation, values...)
	case "example-args":
		mergeValue(d, annotation, dir.args, "|")
	default:
		if !d.HasAnnotation(annotation) {
			d.Annotate(annotation)
		}
	}
}

// appendValue adds values to an existing annotation or creates it.
func appendValue(d *model.Declaration, name string, values ...string) {
	for i := range d.Annotations {
		if d.Annotations[i].Name == name {
			d.Annotations[i].Values = append(d.Annotations[i].Values, values...)
			return
		}
	}
	d.Annotate(name, values...)
}

// mergeValue keeps a single value, joining repeats with sep.
func mergeValue(d *model.Declaration, name, value, sep string) {
	for i := range d.Annotations {
		if d.Annotations[i].Name == name {
			d.Annotations[i].Values = []string{d.Annotations[i].Value() + sep + value}
			return
		}
	}
	d.Annotate(name, value)
}

func findParam(d *model.Declaration, name string) *model.Declaration {
	for _, p := range d.Enclosed {
		if p.Kind == model.KindParameter && p.Name == name {
			return p
		}
	}
	return nil
}

// docText returns the comment text of cg without directive lines, trimmed
// per line with blank lines kept as paragraph breaks.
func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range cg.List {
		if strings.HasPrefix(c.Text, directivePrefix) || strings.HasPrefix(c.Text, "//go:") {
			continue
		}
		txt := strings.TrimPrefix(strings.TrimPrefix(c.Text, "//"), "/*")
		txt = strings.TrimSuffix(txt, "*/")
		for _, line := range strings.Split(txt, "\n") {
			b.WriteString(strings.TrimSpace(line))
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}
