package extractor

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/cmmoran/apidocgen/internal/model"
	ir "github.com/cmmoran/apidocgen/pkg/model"
)

// Extractor accumulates transfer classes and resource classes from a set of
// declarations and flattens them into an ir.Document. An Extractor is owned
// by one extraction pass and is not safe for concurrent use.
type Extractor struct {
	log *slog.Logger

	classes   map[string]*ir.TransferClass
	resources map[string]*model.ResourceClass
	debug     []string
}

// Result is the output of an extraction pass.
type Result struct {
	Document ir.Document
	Debug    []string
}

// New returns an empty Extractor. A nil logger falls back to slog.Default().
func New(log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{
		log:       log,
		classes:   make(map[string]*ir.TransferClass),
		resources: make(map[string]*model.ResourceClass),
	}
}

// Process runs every extraction step over decls: serializable properties,
// serialization-enabled classes, documented enums and finally HTTP methods.
// It may be called more than once; results accumulate.
func (e *Extractor) Process(decls []*model.Declaration) error {
	for _, d := range decls {
		if d.HasAnnotation(model.AnnotationProperty) {
			e.processProperty(d)
		}
	}
	for _, d := range decls {
		if d.HasAnnotation(model.AnnotationSerialize) {
			e.processSerialize(d)
		}
	}
	for _, d := range decls {
		if d.HasAnnotation(model.AnnotationEnum) {
			e.processEnum(d)
		}
	}
	for _, d := range decls {
		if httpMethod(d) == "" {
			continue
		}
		if err := e.processMethod(d); err != nil {
			return err
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Transfer classes
// -----------------------------------------------------------------------------

func (e *Extractor) processProperty(d *model.Declaration) {
	parent := d.Enclosing
	if parent == nil || parent.QualifiedName == "" {
		e.debugf("property %s has no enclosing type", d.Name)
		return
	}
	a, _ := d.Annotation(model.AnnotationProperty)
	name := a.Value()
	if name == "" {
		name = d.Name
	}
	e.getOrCreateClass(parent.QualifiedName, parent.Doc).AddMember(name, d.Type)
}

func (e *Extractor) processSerialize(d *model.Declaration) {
	if d.Kind != model.KindStruct {
		e.debugf("kind for %s is not STRUCT, but %s", d, d.Kind)
		return
	}
	if _, ok := e.classes[d.QualifiedName]; ok {
		// already documented through its properties
		return
	}
	e.getOrCreateClass(d.QualifiedName, d.Doc)
}

func (e *Extractor) processEnum(d *model.Declaration) {
	if d.Kind != model.KindEnum {
		e.warnf("kind for %s is not ENUM like we expected", d.Name)
		return
	}
	tc := e.getOrCreateClass(d.QualifiedName, d.Doc)
	for _, inner := range d.Enclosed {
		if inner.Kind != model.KindEnumConstant {
			e.warnf("element %s in enum %s is %s, not ENUM_CONSTANT", inner.Name, d.QualifiedName, inner.Kind)
			continue
		}
		tc.AddValue(inner.Name, inner.Doc)
	}
}

func (e *Extractor) getOrCreateClass(name string, doc *string) *ir.TransferClass {
	if tc, ok := e.classes[name]; ok {
		return tc
	}
	tc := &ir.TransferClass{Javadoc: doc}
	e.classes[name] = tc
	return tc
}

// -----------------------------------------------------------------------------
// Resource methods
// -----------------------------------------------------------------------------

func (e *Extractor) processMethod(d *model.Declaration) error {
	if d.Kind != model.KindMethod {
		e.debugf("%s carries an HTTP method marker but is %s", d, d.Kind)
		return nil
	}

	var exampleArgs map[string]string
	if a, ok := d.Annotation(model.AnnotationExampleArgs); ok {
		parsed, err := ParseExampleArgs(a.Value())
		if err != nil {
			return fmt.Errorf("%s (%s): %w", d, d.Pos, err)
		}
		exampleArgs = parsed
	}

	args := make([]*ir.ResourceArgument, 0, len(d.Enclosed))
	for _, p := range d.Enclosed {
		if p.Kind != model.KindParameter {
			continue
		}
		b := classifyParameter(p)
		args = append(args, &ir.ResourceArgument{
			Name:     b.name,
			Type:     p.Type,
			Doc:      b.doc,
			Location: b.location,
		})
	}

	var path *string
	if a, ok := d.Annotation(model.AnnotationPath); ok {
		v := a.Value()
		path = &v
	}

	method := &ir.ResourceMethod{
		Name:                d.Name,
		Method:              httpMethod(d),
		ReturnContentType:   joinedValues(d, model.AnnotationProduces, ","),
		ConsumesContentType: joinedValues(d, model.AnnotationConsumes, ","),
		ReturnType:          d.Type,
		Arguments:           args,
		Javadoc:             d.Doc,
		ExampleResponse:     joinedValues(d, model.AnnotationExampleResponse, "\n"),
		ExampleRequest:      joinedValues(d, model.AnnotationExampleRequest, "\n"),
		ExampleArgs:         exampleArgs,
	}
	if path != nil {
		method.Path = *path
	}

	rc := e.parentResourceClass(d)
	rc.Members = append(rc.Members, method)
	e.log.Debug("found endpoint", "method", method.Method, "name", d.String(), "path", method.Path)
	return nil
}

// parentResourceClass returns the cached ResourceClass of d's enclosing
// declaration or creates it, reading the base path from the enclosing
// declaration's own path annotation.
func (e *Extractor) parentResourceClass(d *model.Declaration) *model.ResourceClass {
	parentName := ""
	if d.Enclosing != nil {
		parentName = d.Enclosing.String()
	}
	if rc, ok := e.resources[parentName]; ok {
		return rc
	}

	rc := &model.ResourceClass{Name: parentName}
	if d.Enclosing != nil {
		if a, ok := d.Enclosing.Annotation(model.AnnotationPath); ok {
			v := a.Value()
			rc.BasePath = &v
		}
	}
	e.resources[parentName] = rc
	return rc
}

// -----------------------------------------------------------------------------
// Output
// -----------------------------------------------------------------------------

// Result flattens every resource class into methods whose path is the joined
// base and method path. Resource classes are emitted in name order, methods
// in discovery order.
func (e *Extractor) Result() Result {
	names := make([]string, 0, len(e.resources))
	for name := range e.resources {
		names = append(names, name)
	}
	sort.Strings(names)

	methods := make([]*ir.ResourceMethod, 0)
	for _, name := range names {
		rc := e.resources[name]
		for _, m := range rc.Members {
			flat := *m
			var methodPath *string
			if m.Path != "" {
				p := m.Path
				methodPath = &p
			}
			flat.Path = JoinPath(ir.Deref(rc.BasePath), methodPath)
			methods = append(methods, &flat)
		}
	}

	classes := make(map[string]*ir.TransferClass, len(e.classes))
	for k, v := range e.classes {
		classes[k] = v
	}

	return Result{
		Document: ir.Document{Classes: classes, Methods: methods},
		Debug:    append([]string(nil), e.debug...),
	}
}

func (e *Extractor) debugf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.log.Debug(msg)
	e.debug = append(e.debug, msg)
}

func (e *Extractor) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.log.Warn(msg)
	e.debug = append(e.debug, "[WARN] "+msg)
}
