// Package types implements the source-level (pre-IR) type representation:
// a closed set of TypeInfo variants interned in a structural-equality
// arena, exactly as internal/ir interns its own, separate IR type set.
package types

import (
	"fmt"

	"github.com/nyxlang/nyxc/internal/arena"
)

// Type is a handle into a Store, analogous to arena.Idx but named
// distinctly so it can't be confused with an ir.Type handle.
type Type arena.Idx

// Kind discriminates the TypeInfo variants.
type Kind int

const (
	KVoid Kind = iota
	KBool
	KByte
	KInt
	KPointer
	KTuple
	KFunction
	KStruct
	KArray
	KPlaceholder
	KWildcard
)

// Info is the structural description backing an interned Type handle.
// Only the fields relevant to Kind are meaningful.
type Info struct {
	Kind Kind

	Pointee Type // KPointer

	Fields []Type // KTuple

	Params []Type // KFunction
	Ret    Type   // KFunction

	StructName string  // KStruct
	StructDecl uintptr // KStruct: identity of the ast.Struct declaration
	StructFields []Type // KStruct, in declaration order

	Inner  Type // KArray
	Length int  // KArray

	PlaceholderID int // KPlaceholder: distinguishes unresolved solver slots
}

// key is the structural-equality key used by the interning arena.
type key struct {
	Kind         Kind
	Pointee      Type
	Fields       string // encoded
	Params       string
	Ret          Type
	StructDecl   uintptr
	Inner        Type
	Length       int
	PlaceholderID int
}

func encode(ts []Type) string {
	s := ""
	for _, t := range ts {
		s += fmt.Sprintf("%d,", t)
	}
	return s
}

// Store interns every Type by structural equality, mirroring the IR
// program's own ArenaSet-style type interning.
type Store struct {
	arena *arena.InternArena[key, Info]

	tyVoid  Type
	tyBool  Type
	tyByte  Type
	tyInt   Type
	nextPlaceholder int
}

// NewStore creates a Store with Void/Bool/Byte/Int pre-interned.
func NewStore() *Store {
	s := &Store{arena: arena.NewInternArena[key, Info]()}
	s.tyVoid = s.intern(Info{Kind: KVoid})
	s.tyBool = s.intern(Info{Kind: KBool})
	s.tyByte = s.intern(Info{Kind: KByte})
	s.tyInt = s.intern(Info{Kind: KInt})
	return s
}

func (s *Store) intern(info Info) Type {
	k := key{
		Kind: info.Kind, Pointee: info.Pointee, Fields: encode(info.Fields),
		Params: encode(info.Params), Ret: info.Ret, StructDecl: info.StructDecl,
		Inner: info.Inner, Length: info.Length, PlaceholderID: info.PlaceholderID,
	}
	return Type(s.arena.Intern(k, info))
}

func (s *Store) Void() Type { return s.tyVoid }
func (s *Store) Bool() Type { return s.tyBool }
func (s *Store) Byte() Type { return s.tyByte }
func (s *Store) Int() Type  { return s.tyInt }

func (s *Store) Pointer(inner Type) Type {
	return s.intern(Info{Kind: KPointer, Pointee: inner})
}

func (s *Store) Tuple(fields []Type) Type {
	return s.intern(Info{Kind: KTuple, Fields: fields})
}

func (s *Store) Function(params []Type, ret Type) Type {
	return s.intern(Info{Kind: KFunction, Params: params, Ret: ret})
}

func (s *Store) Struct(declIdentity uintptr, name string, fields []Type) Type {
	return s.intern(Info{Kind: KStruct, StructDecl: declIdentity, StructName: name, StructFields: fields})
}

func (s *Store) Array(inner Type, length int) Type {
	return s.intern(Info{Kind: KArray, Inner: inner, Length: length})
}

// Placeholder allocates a fresh, never-unified placeholder type used
// as the pointee of the pointer type given to `null` (a null literal,
// or a null constant without a declared type); distinct calls always
// produce distinct handles.
func (s *Store) Placeholder() Type {
	id := s.nextPlaceholder
	s.nextPlaceholder++
	return s.intern(Info{Kind: KPlaceholder, PlaceholderID: id})
}

var wildcardSingleton = -1

// Wildcard returns the handle for `_` used in type position.
func (s *Store) Wildcard() Type {
	return s.intern(Info{Kind: KWildcard, PlaceholderID: wildcardSingleton})
}

// Get returns the structural Info for a handle.
func (s *Store) Get(t Type) Info {
	return s.arena.Get(arena.Idx(t))
}

// String renders a type for diagnostics and debug dumps.
func (s *Store) String(t Type) string {
	info := s.Get(t)
	switch info.Kind {
	case KVoid:
		return "void"
	case KBool:
		return "bool"
	case KByte:
		return "byte"
	case KInt:
		return "int"
	case KPointer:
		return "&" + s.String(info.Pointee)
	case KTuple:
		out := "("
		for i, f := range info.Fields {
			if i > 0 {
				out += ", "
			}
			out += s.String(f)
		}
		return out + ")"
	case KFunction:
		out := "("
		for i, p := range info.Params {
			if i > 0 {
				out += ", "
			}
			out += s.String(p)
		}
		return out + ") -> " + s.String(info.Ret)
	case KStruct:
		return info.StructName
	case KArray:
		return fmt.Sprintf("[%s; %d]", s.String(info.Inner), info.Length)
	case KPlaceholder:
		return "_"
	case KWildcard:
		return "_"
	default:
		return "?"
	}
}
