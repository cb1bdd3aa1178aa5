package model

import "sort"

// Source pairs a Document with the location it was loaded from.
type Source struct {
	Location string
	Document Document
}

// Conflict records a class name defined by more than one source.
type Conflict struct {
	Name      string
	Kept      string
	Dropped   string
	Identical bool
}

// Merge unions the class mappings of all sources and concatenates their
// methods in order. The first source to define a class name wins; later
// definitions are reported as conflicts.
func Merge(sources ...Source) (Document, []Conflict) {
	out := Document{Classes: make(map[string]*TransferClass)}
	owner := make(map[string]string)
	var conflicts []Conflict

	for _, src := range sources {
		names := make([]string, 0, len(src.Document.Classes))
		for name := range src.Document.Classes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			tc := src.Document.Classes[name]
			if kept, ok := out.Classes[name]; ok {
				conflicts = append(conflicts, Conflict{
					Name:      name,
					Kept:      owner[name],
					Dropped:   src.Location,
					Identical: sameClass(kept, tc),
				})
				continue
			}
			out.Classes[name] = tc
			owner[name] = src.Location
		}
		out.Methods = append(out.Methods, src.Document.Methods...)
	}

	return out, conflicts
}

func sameClass(a, b *TransferClass) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Members) != len(b.Members) || len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Members {
		if a.Members[i].Name != b.Members[i].Name || a.Members[i].Type.String() != b.Members[i].Type.String() {
			return false
		}
	}
	for i := range a.Values {
		if a.Values[i].Name != b.Values[i].Name {
			return false
		}
	}
	return true
}
