package ir

import "fmt"

// Verify checks the structural invariants every lowered function must
// satisfy: every Target supplies exactly as many phi values as its
// destination block declares phis, and each supplied value's type
// matches the corresponding phi's declared type. This makes explicit
// what the original left as an invariant comment on Target/Value.
func (p *Program) Verify(fn Function) error {
	info := p.GetFunction(fn)
	var err error
	p.VisitBlocks(info.Entry, func(b Block) {
		if err != nil {
			return
		}
		term := p.GetBlock(b).Terminator
		term.ForEachSuccessor(func(t Target) {
			if err != nil {
				return
			}
			if verr := p.verifyTarget(t); verr != nil {
				err = verr
			}
		})
	})
	return err
}

func (p *Program) verifyTarget(t Target) error {
	destPhis := p.GetBlock(t.Block).Phis
	if len(destPhis) != len(t.PhiValues) {
		return fmt.Errorf("target supplies %d phi values, block expects %d", len(t.PhiValues), len(destPhis))
	}
	for i, phi := range destPhis {
		want := p.GetPhi(phi).Ty
		got := p.ValueType(t.PhiValues[i])
		if want != got {
			return fmt.Errorf("phi %d: expected type %d, value has type %d", i, want, got)
		}
	}
	return nil
}
