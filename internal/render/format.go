package render

import (
	"strings"

	ir "github.com/cmmoran/apidocgen/pkg/model"
	"github.com/cmmoran/apidocgen/pkg/sink"
)

// primitives maps source type names to the display name used in documents.
// Go names come first, then the names emitted by JVM extractors.
var primitives = map[string]string{
	"string":                   "string",
	"int":                      "integer",
	"int8":                     "integer",
	"int16":                    "integer",
	"int32":                    "integer",
	"int64":                    "integer",
	"uint":                     "integer",
	"uint8":                    "integer",
	"uint16":                   "integer",
	"uint32":                   "integer",
	"uint64":                   "integer",
	"uintptr":                  "integer",
	"byte":                     "integer",
	"rune":                     "integer",
	"float32":                  "double",
	"float64":                  "double",
	"bool":                     "boolean",
	"time.Time":                "date",
	"[]byte":                   "string",
	"any":                      "object",
	"object":                   "object",
	"encoding/json.RawMessage": "object",

	"java.lang.String":  "string",
	"java.lang.Integer": "integer",
	"long":              "integer",
	"double":            "double",
	"boolean":           "boolean",
	"java.util.Date":    "date",
}

const (
	jvmMap      = "java.util.Map"
	jvmList     = "java.util.List"
	jvmIterable = "java.lang.Iterable"
	jvmOptional = "com.google.common.base.Optional"
)

// skipped reports whether a type name is never given its own type section.
func skipped(name string) bool {
	if _, ok := primitives[name]; ok {
		return true
	}
	switch name {
	case ir.ContainerMap, ir.ContainerList, ir.ContainerIterable, ir.ContainerOptional,
		jvmMap, jvmList, jvmIterable, jvmOptional:
		return true
	}
	return false
}

// EndpointAnchor is the anchor of the endpoint section for method and path.
func EndpointAnchor(method, path string) string {
	return method + "-" + endpointAnchorReplacer.Replace(path)
}

var endpointAnchorReplacer = strings.NewReplacer("/", "-", "{", "-", "}", "-")

// TypeAnchor is the anchor of the type section for name.
func TypeAnchor(name string) string {
	return typeAnchorReplacer.Replace(name)
}

var typeAnchorReplacer = strings.NewReplacer(".", "-", "/", "-")

// writeType renders t into s. It never fails: shapes it does not understand
// render as an unknown-type placeholder.
func writeType(s sink.Sink, t ir.TypeDescriptor) {
	if display, ok := primitives[t.Name]; ok {
		s.Text(display)
		return
	}

	if len(t.TypeArguments) == 0 {
		s.Link("#" + TypeAnchor(t.Name))
		s.Text(t.Name)
		s.LinkEnd()
		return
	}

	args := t.TypeArguments
	switch t.Name {
	case ir.ContainerMap, jvmMap:
		if len(args) == 2 {
			s.Text("{")
			writeType(s, args[0])
			s.Text(" : ")
			writeType(s, args[1])
			s.Text(", }")
			return
		}
	case ir.ContainerList, ir.ContainerIterable, jvmList, jvmIterable:
		if len(args) == 1 {
			s.Text("[")
			writeType(s, args[0])
			s.Text(", ]")
			return
		}
	case ir.ContainerOptional, jvmOptional:
		if len(args) == 1 {
			writeType(s, args[0])
			return
		}
	}
	s.Text("<??" + t.Name + "??>")
}
