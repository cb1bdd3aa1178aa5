package extractor

import (
	"strings"

	"github.com/cmmoran/apidocgen/internal/model"
	ir "github.com/cmmoran/apidocgen/pkg/model"
)

// httpMethod scans the declaration's annotations for an HTTP method marker
// and returns its method name, or "" when none matches. Markers match by
// suffix so qualified names from other vocabularies are recognized too.
func httpMethod(d *model.Declaration) string {
	for _, a := range d.Annotations {
		for _, marker := range model.MethodAnnotations {
			suffix := marker[strings.LastIndexByte(marker, '.'):]
			if strings.HasSuffix(a.Name, suffix) {
				return suffix[1:]
			}
		}
	}
	return ""
}

// binding is the classification of one parameter: where it is bound from
// and under which name.
type binding struct {
	name     string
	location ir.Location
	doc      *string
}

// classifyParameter decides a parameter's location once. A path annotation
// wins and supplies the binding name, then query, then context; anything
// else is the request body.
func classifyParameter(p *model.Declaration) binding {
	b := binding{name: p.Name, location: ir.LocationBody}

	if a, ok := p.Annotation(model.AnnotationArgumentDoc); ok {
		b.doc = ir.StringPtr(strings.Join(a.Values, " "))
	}

	if a, ok := p.Annotation(model.AnnotationPathParam); ok {
		b.location = ir.LocationPath
		if v := a.Value(); v != "" {
			b.name = v
		}
		return b
	}
	if p.HasAnnotation(model.AnnotationQueryParam) {
		b.location = ir.LocationQuery
		return b
	}
	if p.HasAnnotation(model.AnnotationContext) {
		b.location = ir.LocationContext
	}
	return b
}

// joinedValues joins all values of an annotation with sep, nil when absent.
func joinedValues(d *model.Declaration, name, sep string) *string {
	a, ok := d.Annotation(name)
	if !ok {
		return nil
	}
	s := strings.Join(a.Values, sep)
	return &s
}
