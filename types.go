package yamp

// Tag identifies the variant of a type. Types form a closed set; matching
// on a value's variant is done by comparing tags, never by reflection.
type Tag int8

// Value variants. TagAny and TagNumeric are abstract and have no instances.
const (
	TagAny Tag = iota
	TagNumeric
	TagNumber
	TagMatrix
	TagRange
	TagString
	TagTuple
	TagFunction
	TagMap
	TagExtension // types created with NewType
)

// Type is a node in the type lattice. Every type but the root has exactly one
// parent; a value of type T may be used wherever a parent of T is expected.
type Type struct {
	tag      Tag
	name     string
	parent   *Type
	weight   int
	abstract bool
}

// Built-in types. The lattice is
//
//     Value
//       ├── Numeric
//       │     ├── Number
//       │     └── Matrix
//       │           └── Range
//       ├── String
//       ├── Tuple
//       ├── Function
//       └── Map
//
var (
	AnyType      = &Type{tag: TagAny, name: "Value", weight: 8, abstract: true}
	NumericType  = &Type{tag: TagNumeric, name: "Numeric", parent: AnyType, weight: 4, abstract: true}
	NumberType   = &Type{tag: TagNumber, name: "Number", parent: NumericType, weight: 1}
	MatrixType   = &Type{tag: TagMatrix, name: "Matrix", parent: NumericType, weight: 2}
	RangeType    = &Type{tag: TagRange, name: "Range", parent: MatrixType, weight: 1}
	StringType   = &Type{tag: TagString, name: "String", parent: AnyType, weight: 1}
	TupleType    = &Type{tag: TagTuple, name: "Tuple", parent: AnyType, weight: 2}
	FunctionType = &Type{tag: TagFunction, name: "Function", parent: AnyType, weight: 1}
	MapType      = &Type{tag: TagMap, name: "Map", parent: AnyType, weight: 1}
)

var builtinTypes = []*Type{AnyType, NumericType, NumberType, MatrixType, RangeType,
	StringType, TupleType, FunctionType, MapType}

// NewType creates an extension type below parent. Extension types take part
// in dispatch and overload resolution, but the value codec does not know
// them. weight orders overloads: the lower the weight, the more specific the
// type. If abstract is true, no value may report this type.
func NewType(name string, parent *Type, weight int, abstract bool) *Type {
	if parent == nil {
		parent = AnyType
	}
	return &Type{
		tag:      TagExtension,
		name:     name,
		parent:   parent,
		weight:   weight,
		abstract: abstract,
	}
}

// TypeByName returns the built-in type with the given name.
func TypeByName(name string) (*Type, bool) {
	for _, t := range builtinTypes {
		if t.name == name {
			return t, true
		}
	}
	return nil, false
}

// Tag returns the variant tag of a type.
func (t *Type) Tag() Tag {
	return t.tag
}

// Name returns the type name. The name doubles as the type tag in serialized
// form.
func (t *Type) Name() string {
	return t.name
}

func (t *Type) String() string {
	return t.name
}

// Parent returns the supertype, or nil for the root type.
func (t *Type) Parent() *Type {
	return t.parent
}

// Weight returns the specificity weight of a type. General types weigh more.
func (t *Type) Weight() int {
	return t.weight
}

// IsAbstract is a predicate: may no value have exactly this type?
func (t *Type) IsAbstract() bool {
	return t.abstract
}

// IsA is a predicate: is t equal to super or a descendant of it?
func (t *Type) IsA(super *Type) bool {
	for x := t; x != nil; x = x.parent {
		if x == super {
			return true
		}
	}
	return false
}

// TypeOf returns the type of a value. A nil value has no type.
func TypeOf(v Value) *Type {
	if v == nil {
		return nil
	}
	return v.Type()
}

// TypeName returns the name of the type of v, or "void" for nil.
func TypeName(v Value) string {
	if v == nil {
		return "void"
	}
	return v.Type().Name()
}
