package types

// Kind identifies the shape of a static type.
type Kind uint8

const (
	KindVoid Kind = iota
	KindNum
	KindBool
	KindArray
	KindType // values produced by type() and ltype()
)

// ElementType is the element type of an array type.
// ElemAny is only produced by the empty array literal.
type ElementType uint8

const (
	ElemAny ElementType = iota
	ElemNum
	ElemBool
)

// Type is a static Stokhos type.
type Type struct {
	Kind Kind
	Elem ElementType // only meaningful when Kind == KindArray
}

// Predeclared types.
var (
	Void     = Type{Kind: KindVoid}
	Num      = Type{Kind: KindNum}
	Bool     = Type{Kind: KindBool}
	TypeT    = Type{Kind: KindType}
	NumArr   = Type{Kind: KindArray, Elem: ElemNum}
	BoolArr  = Type{Kind: KindArray, Elem: ElemBool}
	AnyArray = Type{Kind: KindArray, Elem: ElemAny}
)

// ArrayOf returns the array type whose elements have type t.
// t must be Num or Bool.
func ArrayOf(t Type) Type {
	switch t.Kind {
	case KindNum:
		return NumArr
	case KindBool:
		return BoolArr
	}
	return AnyArray
}

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool { return t.Kind == KindArray }

// IsPrimitive reports whether t is num or bool.
func (t Type) IsPrimitive() bool { return t.Kind == KindNum || t.Kind == KindBool }

// Unresolved reports whether t is the array type of an empty literal whose
// element type has not been pinned down.
func (t Type) Unresolved() bool { return t.Kind == KindArray && t.Elem == ElemAny }

// ElemType returns the element type of an array type as a Type.
// The result is Void for non-array types and for unresolved arrays.
func (t Type) ElemType() Type {
	if t.Kind != KindArray {
		return Void
	}
	switch t.Elem {
	case ElemNum:
		return Num
	case ElemBool:
		return Bool
	}
	return Void
}

// Equal reports whether t and u are the same type.
// An unresolved array compares equal to any array type.
func (t Type) Equal(u Type) bool {
	if t.Kind != u.Kind {
		return false
	}
	if t.Kind != KindArray {
		return true
	}
	return t.Elem == u.Elem || t.Elem == ElemAny || u.Elem == ElemAny
}

// Resolve returns whichever of t and u carries more information.
// Both must already be Equal.
func (t Type) Resolve(u Type) Type {
	if t.Unresolved() {
		return u
	}
	return t
}

func (t Type) String() string {
	switch t.Kind {
	case KindNum:
		return "num"
	case KindBool:
		return "bool"
	case KindType:
		return "type"
	case KindArray:
		switch t.Elem {
		case ElemNum:
			return "[num]"
		case ElemBool:
			return "[bool]"
		}
		return "[]"
	}
	return "void"
}
