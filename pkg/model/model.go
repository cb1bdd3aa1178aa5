package model

// Container identifiers understood by renderers. The JVM spellings are
// accepted as aliases so IR produced by other extractors renders the same.
const (
	ContainerMap      = "Map"
	ContainerList     = "List"
	ContainerIterable = "Iterable"
	ContainerOptional = "Optional"
)

// TypeDescriptor is a type name plus its ordered type arguments.
type TypeDescriptor struct {
	Name          string           `json:"name"`
	TypeArguments []TypeDescriptor `json:"typeArguments,omitempty"`
}

// NewType builds a TypeDescriptor.
func NewType(name string, args ...TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Name: name, TypeArguments: args}
}

// Walk calls fn for t and every nested type argument, depth first.
func (t TypeDescriptor) Walk(fn func(TypeDescriptor)) {
	fn(t)
	for _, arg := range t.TypeArguments {
		arg.Walk(fn)
	}
}

func (t TypeDescriptor) String() string {
	if len(t.TypeArguments) == 0 {
		return t.Name
	}
	s := t.Name + "<"
	for i, arg := range t.TypeArguments {
		if i > 0 {
			s += ", "
		}
		s += arg.String()
	}
	return s + ">"
}

// Location is where an endpoint argument is bound from.
type Location string

const (
	LocationPath    Location = "PATH"
	LocationQuery   Location = "QUERY"
	LocationContext Location = "CONTEXT"
	LocationBody    Location = "BODY"
)

// ResourceArgument is one argument of an endpoint operation.
type ResourceArgument struct {
	Doc      *string        `json:"doc,omitempty"`
	Location Location       `json:"location,omitempty"`
	Name     string         `json:"name"`
	Type     TypeDescriptor `json:"type"`
}

// ResourceMethod is the documented shape of one endpoint operation.
//
// Fields are declared in JSON key order so encoded documents are sorted.
// The argument list is stored under "resourceArgument".
type ResourceMethod struct {
	ConsumesContentType *string             `json:"consumesContentType,omitempty"`
	ExampleArgs         map[string]string   `json:"exampleArgs,omitempty"`
	ExampleRequest      *string             `json:"exampleRequest,omitempty"`
	ExampleResponse     *string             `json:"exampleResponse,omitempty"`
	Javadoc             *string             `json:"javadoc,omitempty"`
	Method              string              `json:"method,omitempty"`
	Name                string              `json:"name"`
	Path                string              `json:"path"`
	Arguments           []*ResourceArgument `json:"resourceArgument,omitempty"`
	ReturnContentType   *string             `json:"returnContentType,omitempty"`
	ReturnType          TypeDescriptor      `json:"returnType"`
}

// Title is the "METHOD path" label of the operation.
func (m *ResourceMethod) Title() string {
	return m.Method + " " + m.Path
}

// TransferMember is one serialized property of a transfer class.
type TransferMember struct {
	Name string         `json:"name"`
	Type TypeDescriptor `json:"type"`
}

// TransferEnumValue is one documented enum constant.
type TransferEnumValue struct {
	Doc  *string `json:"doc,omitempty"`
	Name string  `json:"name"`
}

// TransferClass is the documented shape of one data type.
type TransferClass struct {
	Javadoc *string              `json:"javadoc,omitempty"`
	LogInfo *string              `json:"logInfo,omitempty"`
	Members []*TransferMember    `json:"members,omitempty"`
	Values  []*TransferEnumValue `json:"values,omitempty"`
}

// AddMember appends a member built from name and type.
func (c *TransferClass) AddMember(name string, t TypeDescriptor) {
	c.Members = append(c.Members, &TransferMember{Name: name, Type: t})
}

// AddValue appends an enum value.
func (c *TransferClass) AddValue(name string, doc *string) {
	c.Values = append(c.Values, &TransferEnumValue{Name: name, Doc: doc})
}

// Document is one extraction's output: the class mapping and the method list.
type Document struct {
	Classes map[string]*TransferClass
	Methods []*ResourceMethod
}

// StringPtr returns nil for an empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
