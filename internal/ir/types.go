// Package ir implements the typed SSA-style mid-level intermediate
// representation: arena-indexed functions, blocks, instructions and a
// separately-interned Type set, mirroring mid/ir.rs's Program.
package ir

import (
	"fmt"

	"github.com/nyxlang/nyxc/internal/arena"
)

// Type is a handle into Program's interned type set. It is distinct
// from internal/types.Type: the IR has its own, smaller type algebra
// (no Struct/Placeholder/Wildcard — those are erased or rejected during
// lowering).
type Type arena.Idx

// TypeKind discriminates TypeInfo variants.
type TypeKind int

const (
	TVoid TypeKind = iota
	TInteger
	TPointer
	TFunc
	TTuple
	TArray
)

type FunctionType struct {
	Params []Type
	Ret    Type
}

type TupleType struct {
	Fields []Type
}

type ArrayType struct {
	Inner  Type
	Length int
}

// TypeInfo is the structural description backing an interned Type
// handle. Only the fields relevant to Kind are meaningful.
type TypeInfo struct {
	Kind TypeKind

	Bits int // TInteger

	Pointee Type // TPointer

	Func FunctionType // TFunc

	Tuple TupleType // TTuple

	Array ArrayType // TArray
}

type typeKey struct {
	Kind    TypeKind
	Bits    int
	Pointee Type
	Params  string
	Ret     Type
	Fields  string
	Inner   Type
	Length  int
}

func encodeTypes(ts []Type) string {
	s := ""
	for _, t := range ts {
		s += fmt.Sprintf("%d,", t)
	}
	return s
}

func keyOf(info TypeInfo) typeKey {
	return typeKey{
		Kind: info.Kind, Bits: info.Bits, Pointee: info.Pointee,
		Params: encodeTypes(info.Func.Params), Ret: info.Func.Ret,
		Fields: encodeTypes(info.Tuple.Fields),
		Inner:  info.Array.Inner, Length: info.Array.Length,
	}
}
