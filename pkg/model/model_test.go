package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMethodsSortedKeys(t *testing.T) {
	t.Parallel()

	methods := []*ResourceMethod{{
		Name:   "get",
		Method: "GET",
		Path:   "/widgets/{id}",
		Arguments: []*ResourceArgument{{
			Name:     "id",
			Type:     NewType("string"),
			Location: LocationPath,
		}},
		ReturnType:  NewType("example.com/api.Widget"),
		ExampleArgs: map[string]string{"z": "1", "id": "7"},
	}}

	got, err := MarshalMethods(methods)
	require.NoError(t, err)

	want := `[
  {
    "exampleArgs": {
      "id": "7",
      "z": "1"
    },
    "method": "GET",
    "name": "get",
    "path": "/widgets/{id}",
    "resourceArgument": [
      {
        "location": "PATH",
        "name": "id",
        "type": {
          "name": "string"
        }
      }
    ],
    "returnType": {
      "name": "example.com/api.Widget"
    }
  }
]
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("encoded methods mismatch (-want +got):\n%s", diff)
	}
}

func TestClassesRoundTripIsStable(t *testing.T) {
	t.Parallel()

	doc := "A widget."
	classes := map[string]*TransferClass{
		"b.Widget": {
			Javadoc: &doc,
			Members: []*TransferMember{{Name: "tags", Type: NewType(ContainerList, NewType("string"))}},
		},
		"a.Color": {
			Values: []*TransferEnumValue{{Name: "RED"}, {Name: "BLUE"}},
		},
	}

	first, err := MarshalClasses(classes)
	require.NoError(t, err)

	decoded, err := DecodeClasses(first)
	require.NoError(t, err)

	second, err := MarshalClasses(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
	assert.Less(t, strings.Index(string(first), `"a.Color"`), strings.Index(string(first), `"b.Widget"`))
}

func TestDecodeErrorsWrapSentinels(t *testing.T) {
	t.Parallel()

	_, err := DecodeClasses([]byte("[1,2]"))
	require.ErrorIs(t, err, ErrDecodeClasses)

	_, err = DecodeMethods([]byte("{"))
	require.ErrorIs(t, err, ErrDecodeMethods)
}

func TestTypeDescriptorString(t *testing.T) {
	t.Parallel()

	td := NewType(ContainerList, NewType(ContainerMap, NewType("string"), NewType(ContainerOptional, NewType("pkg.Foo"))))
	assert.Equal(t, "List<Map<string, Optional<pkg.Foo>>>", td.String())

	var names []string
	td.Walk(func(d TypeDescriptor) { names = append(names, d.Name) })
	assert.Equal(t, []string{"List", "Map", "string", "Optional", "pkg.Foo"}, names)
}

func TestMergeFirstWriterWins(t *testing.T) {
	t.Parallel()

	first := &TransferClass{Members: []*TransferMember{{Name: "a", Type: NewType("string")}}}
	second := &TransferClass{Members: []*TransferMember{{Name: "b", Type: NewType("string")}}}

	merged, conflicts := Merge(
		Source{Location: "one.json", Document: Document{
			Classes: map[string]*TransferClass{"x.T": first},
			Methods: []*ResourceMethod{{Name: "m1"}},
		}},
		Source{Location: "two.json", Document: Document{
			Classes: map[string]*TransferClass{"x.T": second, "x.U": {}},
			Methods: []*ResourceMethod{{Name: "m2"}},
		}},
	)

	require.Len(t, merged.Classes, 2)
	assert.Same(t, first, merged.Classes["x.T"])
	require.Len(t, merged.Methods, 2)
	assert.Equal(t, "m1", merged.Methods[0].Name)
	assert.Equal(t, "m2", merged.Methods[1].Name)
	require.Len(t, conflicts, 1)
	assert.Equal(t, Conflict{Name: "x.T", Kept: "one.json", Dropped: "two.json"}, conflicts[0])
}
