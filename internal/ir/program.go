package ir

import "github.com/nyxlang/nyxc/internal/arena"

type (
	Function  = arena.Idx
	Parameter = arena.Idx
	StackSlot = arena.Idx
	Block     = arena.Idx
	Phi       = arena.Idx
	Instr     = arena.Idx
	Extern    = arena.Idx
	Data      = arena.Idx
)

type FunctionInfo struct {
	Ty         Type // TFunc type of this function
	FuncTy     FunctionType
	GlobalName *string // set when the function is extern (exported/globally-named)
	DebugName  *string // always set, for pretty-printing and diagnostics
	Entry      Block
	Params     []Parameter
	Slots      []StackSlot
}

type ParameterInfo struct {
	Ty Type
}

type StackSlotInfo struct {
	InnerTy Type // the type of the value stored at this slot
	Ty      Type // Pointer(InnerTy), this slot's own IR type
}

type BlockInfo struct {
	Phis         []Phi
	Instructions []Instr
	Terminator   Terminator
}

type PhiInfo struct {
	Ty Type
}

type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNeq
	BinGt
	BinGte
	BinLt
	BinLte
)

func (b BinaryOp) String() string {
	switch b {
	case BinAdd:
		return "add"
	case BinSub:
		return "sub"
	case BinMul:
		return "mul"
	case BinDiv:
		return "div"
	case BinMod:
		return "mod"
	case BinEq:
		return "eq"
	case BinNeq:
		return "neq"
	case BinGt:
		return "gt"
	case BinGte:
		return "gte"
	case BinLt:
		return "lt"
	case BinLte:
		return "lte"
	default:
		return "?"
	}
}

// InstructionInfo is a tagged union over the five instruction shapes
// this IR supports. Exactly one of the embedded payloads is meaningful,
// selected by Kind.
type InstructionKind int

const (
	InstrLoad InstructionKind = iota
	InstrStore
	InstrCall
	InstrBinary
	InstrStructSubPtr
)

type InstructionInfo struct {
	Kind InstructionKind

	// InstrLoad
	LoadAddr Value

	// InstrStore
	StoreAddr  Value
	StoreValue Value

	// InstrCall
	CallTarget Value
	CallArgs   []Value

	// InstrBinary
	BinOp    BinaryOp
	BinLeft  Value
	BinRight Value

	// InstrStructSubPtr
	SubPtrTarget   Value
	SubPtrIndex    int
	SubPtrResultTy Type
}

// Ty derives this instruction's result type, exactly mirroring
// InstructionInfo::ty in the original: Load yields its address's
// pointee type, Store yields void, Call yields the callee's declared
// return type, arithmetic Binary yields its operand type while the
// comparisons (Eq/Neq/Gt/Gte/Lt/Lte) yield bool, and StructSubPtr
// yields its stored result type.
func (i InstructionInfo) Ty(p *Program) Type {
	switch i.Kind {
	case InstrLoad:
		return p.unwrapPointer(p.ValueType(i.LoadAddr))
	case InstrStore:
		return p.TyVoid
	case InstrCall:
		fnTy := p.ValueType(i.CallTarget)
		info := p.GetType(fnTy)
		if info.Kind != TFunc {
			panic("call target is not a function type")
		}
		return info.Func.Ret
	case InstrBinary:
		switch i.BinOp {
		case BinEq, BinNeq, BinGt, BinGte, BinLt, BinLte:
			return p.TyBool
		default:
			return p.ValueType(i.BinLeft)
		}
	case InstrStructSubPtr:
		return i.SubPtrResultTy
	default:
		panic("unhandled instruction kind")
	}
}

type TerminatorKind int

const (
	TermUnreachable TerminatorKind = iota
	TermJump
	TermBranch
	TermReturn
)

// Target is a jump/branch destination: the block plus the values fed
// into that block's phis, in phi-declaration order.
type Target struct {
	Block     Block
	PhiValues []Value
}

type Terminator struct {
	Kind TerminatorKind

	JumpTarget Target

	BranchCond  Value
	BranchTrue  Target
	BranchFalse Target

	ReturnValue Value
}

// ForEachSuccessor calls f with every block this terminator can jump
// to, used by the reachability walk and the verifier.
func (t Terminator) ForEachSuccessor(f func(Target)) {
	switch t.Kind {
	case TermJump:
		f(t.JumpTarget)
	case TermBranch:
		f(t.BranchTrue)
		f(t.BranchFalse)
	case TermReturn, TermUnreachable:
		// no successors
	}
}

type ValueKind int

const (
	ValUndef ValueKind = iota
	ValConst
	ValFunc
	ValParam
	ValSlot
	ValPhi
	ValInstr
	ValExtern
	ValData
)

// Value is the tagged union referenced by every instruction operand.
type Value struct {
	Kind ValueKind

	UndefTy Type

	ConstTy    Type
	ConstValue int32

	Func  Function
	Param Parameter
	Slot  StackSlot
	Phi   Phi
	Instr Instr
	Ext   Extern
	Dat   Data
}

type ExternInfo struct {
	Name string
	Ty   Type
}

type DataInfo struct {
	Ty      Type // the pointer type this data decays to (byte_ptr)
	InnerTy Type // the element type (byte)
	Bytes   []byte
}

// Program is the full lowered unit: every function/param/slot/block/
// phi/instruction/extern/data lives in its own arena, plus a separately
// interned Type set.
type Program struct {
	funcs   arena.Arena[FunctionInfo]
	params  arena.Arena[ParameterInfo]
	slots   arena.Arena[StackSlotInfo]
	blocks  arena.Arena[BlockInfo]
	phis    arena.Arena[PhiInfo]
	instrs  arena.Arena[InstructionInfo]
	externs arena.Arena[ExternInfo]
	datas   arena.Arena[DataInfo]

	types *arena.InternArena[typeKey, TypeInfo]

	TyBool Type
	TyVoid Type
	TyPtr  Type

	Main Function
}

// NewProgram creates an empty Program with its built-in types
// pre-interned: Bool is modeled as Integer{1}, Void as its own variant,
// and a single canonical pointer type (a pointer to Void).
func NewProgram() *Program {
	p := &Program{types: arena.NewInternArena[typeKey, TypeInfo]()}
	p.TyVoid = p.defineType(TypeInfo{Kind: TVoid})
	p.TyBool = p.defineType(TypeInfo{Kind: TInteger, Bits: 1})
	p.TyPtr = p.defineType(TypeInfo{Kind: TPointer, Pointee: p.TyVoid})
	return p
}

func (p *Program) defineType(info TypeInfo) Type {
	return Type(p.types.Intern(keyOf(info), info))
}

func (p *Program) GetType(t Type) TypeInfo { return p.types.Get(arena.Idx(t)) }

func (p *Program) DefineTypeInteger(bits int) Type {
	return p.defineType(TypeInfo{Kind: TInteger, Bits: bits})
}

func (p *Program) DefineTypePointer(inner Type) Type {
	return p.defineType(TypeInfo{Kind: TPointer, Pointee: inner})
}

func (p *Program) DefineTypeFunc(params []Type, ret Type) Type {
	return p.defineType(TypeInfo{Kind: TFunc, Func: FunctionType{Params: params, Ret: ret}})
}

func (p *Program) DefineTypeTuple(fields []Type) Type {
	return p.defineType(TypeInfo{Kind: TTuple, Tuple: TupleType{Fields: fields}})
}

func (p *Program) DefineTypeArray(inner Type, length int) Type {
	return p.defineType(TypeInfo{Kind: TArray, Array: ArrayType{Inner: inner, Length: length}})
}

func (p *Program) unwrapPointer(t Type) Type {
	info := p.GetType(t)
	if info.Kind != TPointer {
		panic("expected a pointer type")
	}
	return info.Pointee
}

// ---- node definition/access ----

func (p *Program) DefineFunction(info FunctionInfo) Function { return p.funcs.Push(info) }
func (p *Program) GetFunction(f Function) FunctionInfo        { return p.funcs.Get(f) }
func (p *Program) GetFunctionPtr(f Function) *FunctionInfo    { return p.funcs.GetPtr(f) }

// Functions returns every function handle defined in this program, in
// definition order; used by the verifier and the CLI's debug dump to
// walk the whole program without tracking handles separately.
func (p *Program) Functions() []Function { return p.funcs.Indices() }

func (p *Program) DefineParameter(info ParameterInfo) Parameter { return p.params.Push(info) }
func (p *Program) GetParameter(x Parameter) ParameterInfo        { return p.params.Get(x) }

func (p *Program) DefineStackSlot(innerTy Type) StackSlot {
	return p.slots.Push(StackSlotInfo{InnerTy: innerTy, Ty: p.DefineTypePointer(innerTy)})
}
func (p *Program) GetStackSlot(x StackSlot) StackSlotInfo { return p.slots.Get(x) }

func (p *Program) DefineBlock(info BlockInfo) Block { return p.blocks.Push(info) }
func (p *Program) GetBlock(b Block) BlockInfo        { return p.blocks.Get(b) }
func (p *Program) GetBlockPtr(b Block) *BlockInfo    { return p.blocks.GetPtr(b) }

func (p *Program) DefinePhi(info PhiInfo) Phi { return p.phis.Push(info) }
func (p *Program) GetPhi(x Phi) PhiInfo        { return p.phis.Get(x) }

func (p *Program) DefineInstruction(info InstructionInfo) Instr { return p.instrs.Push(info) }
func (p *Program) GetInstruction(x Instr) InstructionInfo        { return p.instrs.Get(x) }

func (p *Program) DefineExtern(info ExternInfo) Extern { return p.externs.Push(info) }
func (p *Program) GetExtern(x Extern) ExternInfo        { return p.externs.Get(x) }

func (p *Program) DefineData(info DataInfo) Data { return p.datas.Push(info) }
func (p *Program) GetData(x Data) DataInfo        { return p.datas.Get(x) }

// ValueType derives a Value's IR type; this is the Go analogue of
// matching on `Value` in the original to get each variant's Type.
func (p *Program) ValueType(v Value) Type {
	switch v.Kind {
	case ValUndef:
		return v.UndefTy
	case ValConst:
		return v.ConstTy
	case ValFunc:
		return p.GetFunction(v.Func).Ty
	case ValParam:
		return p.GetParameter(v.Param).Ty
	case ValSlot:
		return p.GetStackSlot(v.Slot).Ty
	case ValPhi:
		return p.GetPhi(v.Phi).Ty
	case ValInstr:
		return p.GetInstruction(v.Instr).Ty(p)
	case ValExtern:
		return p.GetExtern(v.Ext).Ty
	case ValData:
		return p.GetData(v.Dat).Ty
	default:
		panic("unhandled value kind")
	}
}
