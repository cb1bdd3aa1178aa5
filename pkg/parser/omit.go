package parser

import (
	"reflect"
	"strings"
)

// ShouldOmitField determines whether a struct field should be left out of
// the documented properties based on configured tag filters. A `docgen:"-"`
// tag always omits the field.
func ShouldOmitField(tag reflect.StructTag, opts *Options) bool {
	tagMap := structTagToMap(tag)
	if len(tagMap) == 0 {
		return false
	}

	if containsTagPart(tagMap["docgen"], "-") {
		return true
	}

	if opts == nil {
		return false
	}
	for _, f := range opts.ExcludeByTags {
		v, ok := tagMap[f.Key]
		if !ok {
			continue
		}
		if containsTagPart(v, f.Value) {
			return true
		}
	}

	return false
}

// JSONName returns the property name of a field from its json tag. ok is
// false when the field has no json tag or is tagged "-".
func JSONName(tag reflect.StructTag, fieldName string) (name string, ok bool) {
	v, found := tag.Lookup("json")
	if !found {
		return "", false
	}
	name, _, _ = strings.Cut(v, ",")
	if name == "-" {
		return "", false
	}
	if name == "" {
		name = fieldName
	}
	return name, true
}

// structTagToMap converts a reflect.StructTag into a key/value map.
func structTagToMap(tag reflect.StructTag) map[string]string {
	m := map[string]string{}
	if tag == "" {
		return m
	}

	raw := string(tag)
	for raw != "" {
		parts := strings.SplitN(raw, ":\"", 2)
		if len(parts) != 2 {
			break
		}

		key := strings.TrimSpace(parts[0])
		rest := parts[1]
		end := strings.Index(rest, "\"")
		if end < 0 {
			break
		}

		val := rest[:end]
		m[key] = val

		raw = strings.TrimSpace(rest[end+1:])
	}

	return m
}

// containsTagPart splits a tag value on common delimiters and reports whether
// any fragment matches the expected value.
func containsTagPart(tagVal, expected string) bool {
	if tagVal == "" {
		return false
	}

	for _, part := range strings.FieldsFunc(tagVal, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		if part == expected {
			return true
		}
	}

	return false
}
