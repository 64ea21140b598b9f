package ir

import (
	"fmt"
	"strings"
)

// FormatType renders a Type for debug output.
func (p *Program) FormatType(t Type) string {
	info := p.GetType(t)
	switch info.Kind {
	case TVoid:
		return "void"
	case TInteger:
		return fmt.Sprintf("i%d", info.Bits)
	case TPointer:
		return "&" + p.FormatType(info.Pointee)
	case TFunc:
		parts := make([]string, len(info.Func.Params))
		for i, pt := range info.Func.Params {
			parts[i] = p.FormatType(pt)
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), p.FormatType(info.Func.Ret))
	case TTuple:
		parts := make([]string, len(info.Tuple.Fields))
		for i, ft := range info.Tuple.Fields {
			parts[i] = p.FormatType(ft)
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case TArray:
		return fmt.Sprintf("[%s; %d]", p.FormatType(info.Array.Inner), info.Array.Length)
	default:
		return "?"
	}
}

func (p *Program) formatValue(v Value) string {
	switch v.Kind {
	case ValUndef:
		return fmt.Sprintf("undef(%s)", p.FormatType(v.UndefTy))
	case ValConst:
		return fmt.Sprintf("const(%d: %s)", v.ConstValue, p.FormatType(v.ConstTy))
	case ValFunc:
		return fmt.Sprintf("func%d", v.Func)
	case ValParam:
		return fmt.Sprintf("param%d", v.Param)
	case ValSlot:
		return fmt.Sprintf("slot%d", v.Slot)
	case ValPhi:
		return fmt.Sprintf("phi%d", v.Phi)
	case ValInstr:
		return fmt.Sprintf("instr%d", v.Instr)
	case ValExtern:
		return fmt.Sprintf("extern%d", v.Ext)
	case ValData:
		return fmt.Sprintf("data%d", v.Dat)
	default:
		return "?"
	}
}

// String renders the entire program for debugging: every function's
// parameters, stack slots, and reachable blocks with their phis,
// instructions and terminator.
func (p *Program) String() string {
	var sb strings.Builder
	for i := 0; i < p.funcs.Len(); i++ {
		fn := Function(i)
		info := p.GetFunction(fn)
		name := fmt.Sprintf("func%d", fn)
		if info.DebugName != nil {
			name = *info.DebugName
		}
		fmt.Fprintf(&sb, "fn %s: %s {\n", name, p.FormatType(info.Ty))
		for _, slot := range info.Slots {
			si := p.GetStackSlot(slot)
			fmt.Fprintf(&sb, "  slot%d: %s\n", slot, p.FormatType(si.InnerTy))
		}
		p.VisitBlocks(info.Entry, func(b Block) {
			bi := p.GetBlock(b)
			fmt.Fprintf(&sb, "  block%d:\n", b)
			for _, phi := range bi.Phis {
				fmt.Fprintf(&sb, "    phi%d: %s\n", phi, p.FormatType(p.GetPhi(phi).Ty))
			}
			for _, instr := range bi.Instructions {
				fmt.Fprintf(&sb, "    %s\n", p.formatInstruction(instr))
			}
			fmt.Fprintf(&sb, "    %s\n", p.formatTerminator(bi.Terminator))
		})
		sb.WriteString("}\n")
	}
	return sb.String()
}

func (p *Program) formatInstruction(x Instr) string {
	info := p.GetInstruction(x)
	switch info.Kind {
	case InstrLoad:
		return fmt.Sprintf("instr%d = load %s", x, p.formatValue(info.LoadAddr))
	case InstrStore:
		return fmt.Sprintf("instr%d = store %s, %s", x, p.formatValue(info.StoreAddr), p.formatValue(info.StoreValue))
	case InstrCall:
		args := make([]string, len(info.CallArgs))
		for i, a := range info.CallArgs {
			args[i] = p.formatValue(a)
		}
		return fmt.Sprintf("instr%d = call %s(%s)", x, p.formatValue(info.CallTarget), strings.Join(args, ", "))
	case InstrBinary:
		return fmt.Sprintf("instr%d = %v %s, %s", x, info.BinOp, p.formatValue(info.BinLeft), p.formatValue(info.BinRight))
	case InstrStructSubPtr:
		return fmt.Sprintf("instr%d = subptr %s[%d]", x, p.formatValue(info.SubPtrTarget), info.SubPtrIndex)
	default:
		return "?"
	}
}

func (p *Program) formatTerminator(t Terminator) string {
	switch t.Kind {
	case TermJump:
		return fmt.Sprintf("jump block%d", t.JumpTarget.Block)
	case TermBranch:
		return fmt.Sprintf("branch %s, block%d, block%d", p.formatValue(t.BranchCond), t.BranchTrue.Block, t.BranchFalse.Block)
	case TermReturn:
		return fmt.Sprintf("return %s", p.formatValue(t.ReturnValue))
	case TermUnreachable:
		return "unreachable"
	default:
		return "?"
	}
}
