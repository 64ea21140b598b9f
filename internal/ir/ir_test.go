package ir

import (
	"strings"
	"testing"
)

func TestVisitBlocksWalksEachReachableBlockOnce(t *testing.T) {
	p := NewProgram()
	b2 := p.DefineBlock(BlockInfo{Terminator: Terminator{Kind: TermReturn}})
	b1 := p.DefineBlock(BlockInfo{Terminator: Terminator{Kind: TermJump, JumpTarget: Target{Block: b2}}})
	b0 := p.DefineBlock(BlockInfo{Terminator: Terminator{Kind: TermBranch,
		BranchTrue:  Target{Block: b1},
		BranchFalse: Target{Block: b2},
	}})

	var visited []Block
	p.VisitBlocks(b0, func(b Block) { visited = append(visited, b) })

	if len(visited) != 3 {
		t.Fatalf("expected each of the 3 reachable blocks visited exactly once, got %v", visited)
	}
	if visited[0] != b0 {
		t.Fatalf("expected BFS to start at the entry block, got %v", visited[0])
	}
}

func TestVerifyRejectsPhiArityMismatch(t *testing.T) {
	p := NewProgram()
	target := p.DefineBlock(BlockInfo{
		Phis:       []Phi{p.DefinePhi(PhiInfo{Ty: p.TyBool})},
		Terminator: Terminator{Kind: TermReturn},
	})
	entry := p.DefineBlock(BlockInfo{
		Terminator: Terminator{Kind: TermJump, JumpTarget: Target{Block: target /* no PhiValues supplied */}},
	})
	fn := p.DefineFunction(FunctionInfo{Entry: entry})

	if err := p.Verify(fn); err == nil {
		t.Fatalf("expected Verify to reject a target that supplies 0 phi values for a block expecting 1")
	}
}

func TestVerifyRejectsPhiTypeMismatch(t *testing.T) {
	p := NewProgram()
	target := p.DefineBlock(BlockInfo{
		Phis:       []Phi{p.DefinePhi(PhiInfo{Ty: p.TyBool})},
		Terminator: Terminator{Kind: TermReturn},
	})
	badValue := Value{Kind: ValConst, ConstTy: p.DefineTypeInteger(32), ConstValue: 1}
	entry := p.DefineBlock(BlockInfo{
		Terminator: Terminator{Kind: TermJump, JumpTarget: Target{Block: target, PhiValues: []Value{badValue}}},
	})
	fn := p.DefineFunction(FunctionInfo{Entry: entry})

	if err := p.Verify(fn); err == nil {
		t.Fatalf("expected Verify to reject a phi value whose type disagrees with the phi's declared type")
	}
}

func TestVerifyAcceptsMatchingPhi(t *testing.T) {
	p := NewProgram()
	target := p.DefineBlock(BlockInfo{
		Phis:       []Phi{p.DefinePhi(PhiInfo{Ty: p.TyBool})},
		Terminator: Terminator{Kind: TermReturn},
	})
	goodValue := Value{Kind: ValConst, ConstTy: p.TyBool, ConstValue: 1}
	entry := p.DefineBlock(BlockInfo{
		Terminator: Terminator{Kind: TermJump, JumpTarget: Target{Block: target, PhiValues: []Value{goodValue}}},
	})
	fn := p.DefineFunction(FunctionInfo{Entry: entry})

	if err := p.Verify(fn); err != nil {
		t.Fatalf("expected a matching phi to verify cleanly, got %v", err)
	}
}

func TestStringRendersExpectedShapeForEveryBinaryOp(t *testing.T) {
	p := NewProgram()
	i32 := p.DefineTypeInteger(32)
	left := Value{Kind: ValConst, ConstTy: i32, ConstValue: 1}
	right := Value{Kind: ValConst, ConstTy: i32, ConstValue: 2}

	for _, op := range []BinaryOp{BinAdd, BinSub, BinMul, BinDiv, BinMod, BinEq, BinNeq, BinGt, BinGte, BinLt, BinLte} {
		instr := p.DefineInstruction(InstructionInfo{Kind: InstrBinary, BinOp: op, BinLeft: left, BinRight: right})
		block := p.DefineBlock(BlockInfo{
			Instructions: []Instr{instr},
			Terminator:   Terminator{Kind: TermReturn, ReturnValue: Value{Kind: ValInstr, Instr: instr}},
		})
		p.DefineFunction(FunctionInfo{Entry: block, Ty: p.DefineTypeFunc(nil, i32)})
	}

	out := p.String()
	for _, want := range []string{"add", "sub", "mul", "div", "mod", "eq", "neq", "gt", "gte", "lt", "lte"} {
		if !strings.Contains(out, "= "+want+" ") {
			t.Fatalf("expected rendered op %q in output:\n%s", want, out)
		}
	}
}

func TestFormatTypeNestsPointersAndFunctions(t *testing.T) {
	p := NewProgram()
	i32 := p.DefineTypeInteger(32)
	ptrToInt := p.DefineTypePointer(i32)
	fnTy := p.DefineTypeFunc([]Type{ptrToInt}, p.TyVoid)

	if got := p.FormatType(ptrToInt); got != "&i32" {
		t.Fatalf("expected &i32, got %q", got)
	}
	if got := p.FormatType(fnTy); got != "(&i32) -> void" {
		t.Fatalf("expected (&i32) -> void, got %q", got)
	}
}

func TestDefineTypeIsStructurallyInterned(t *testing.T) {
	p := NewProgram()
	a := p.DefineTypeInteger(32)
	b := p.DefineTypeInteger(32)
	if a != b {
		t.Fatalf("expected re-defining the same integer width to return the same handle")
	}
}
