package model

import (
	ir "github.com/cmmoran/apidocgen/pkg/model"
)

// ResourceClass groups the methods of one enclosing declaration while
// extraction is in progress. It is flattened into ir.ResourceMethod entries
// and never serialized.
type ResourceClass struct {
	Name     string  // enclosing declaration's qualified name
	BasePath *string // from a path annotation on the enclosing declaration
	Members  []*ir.ResourceMethod
}
