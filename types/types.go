// Package types implements the type model.
//
// Grounded on src/typing/typing.c's variant constructors and equality
// rules, adapted to a tagged Go struct instead of a C union, and on the
// teacher's preference for small value-ish types passed by pointer
// (lang/ast's node shapes). Size/align fields are informational only
// and mirror the original's assumptions: ints/floats/refs are
// 8 bytes, bool is 1, strings are two-word, void is zero.
package types

import "github.com/muyoamon/morphl/interner"

// Kind tags which variant a Type is.
type Kind int

const (
	Unknown Kind = iota
	Void
	Int
	Float
	String
	Ident
	Bool
	Func
	Ref
	Group
	Block
	Trait
)

// Type is one arena-allocated type value. Only the fields
// relevant to Kind are meaningful; the rest are zero.
type Type struct {
	Kind Kind
	Size int
	Align int

	// Func
	Params []*Type
	Ret    *Type

	// Ref
	Target  *Type
	Mutable bool
	Inline  bool

	// Group
	Elems []*Type

	// Block
	FieldNames []interner.Symbol
	FieldTypes []*Type
}

func NewUnknown() *Type { return &Type{Kind: Unknown, Size: 0, Align: 1} }
func NewVoid() *Type    { return &Type{Kind: Void, Size: 0, Align: 1} }
func NewInt() *Type     { return &Type{Kind: Int, Size: 8, Align: 8} }
func NewFloat() *Type   { return &Type{Kind: Float, Size: 8, Align: 8} }
func NewString() *Type  { return &Type{Kind: String, Size: 16, Align: 8} }
func NewIdent() *Type   { return &Type{Kind: Ident, Size: 8, Align: 8} }
func NewBool() *Type    { return &Type{Kind: Bool, Size: 1, Align: 1} }
func NewTrait() *Type   { return &Type{Kind: Trait, Size: 0, Align: 1} }

// NewFunc builds a function type from a slice of parameter types,
// generalizing the original's single-parameter MorphlType.data.func (src/
// typing/typing.c morphl_type_func only ever stores one param) to
// `params: [Type]`.
func NewFunc(params []*Type, ret *Type) *Type {
	return &Type{Kind: Func, Size: 8, Align: 8, Params: params, Ret: ret}
}

func NewRef(target *Type, mutable, inline bool) *Type {
	return &Type{Kind: Ref, Size: 8, Align: 8, Target: target, Mutable: mutable, Inline: inline}
}

func NewGroup(elems []*Type) *Type {
	return &Type{Kind: Group, Size: 0, Align: 1, Elems: elems}
}

func NewBlock(names []interner.Symbol, fieldTypes []*Type) *Type {
	return &Type{Kind: Block, Size: 0, Align: 1, FieldNames: names, FieldTypes: fieldTypes}
}

// Equals implements structural equality: function types match iff
// parameter count and every parameter are equal and return types are
// equal; groups by element-wise equality; blocks by field-by-field symbol
// and type equality in order; refs by target and both flags; primitives by
// kind.
func Equals(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Func:
		if len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equals(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equals(a.Ret, b.Ret)
	case Ref:
		return a.Mutable == b.Mutable && a.Inline == b.Inline && Equals(a.Target, b.Target)
	case Group:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equals(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case Block:
		if len(a.FieldNames) != len(b.FieldNames) {
			return false
		}
		for i := range a.FieldNames {
			if a.FieldNames[i] != b.FieldNames[i] {
				return false
			}
			if !Equals(a.FieldTypes[i], b.FieldTypes[i]) {
				return false
			}
		}
		return true
	default:
		// Primitive kinds (Unknown, Void, Int, Float, String, Ident, Bool, Trait)
		// match by kind alone.
		return true
	}
}
