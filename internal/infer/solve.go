package infer

import "github.com/nyxlang/nyxc/internal/diagnostics"
import "github.com/nyxlang/nyxc/internal/types"

// Solution maps every Var in a solved Problem to its final concrete
// type, after defaulting.
type Solution struct {
	store *types.Store
	final []types.Type
}

// Type returns the concrete type assigned to v.
func (s *Solution) Type(v Var) types.Type {
	return s.final[v]
}

// Solve runs composite constraints to a fixed point in deterministic,
// insertion order, applies the int/void defaulting rules to any
// variable still unconstrained, and runs one final pass to catch
// constraints that only the defaulting pass unblocked. Any variable
// still unknown after that is a TypeNotFullyKnown error.
func (p *Problem) Solve() (*Solution, error) {
	if err := p.runPending(); err != nil {
		return nil, err
	}

	for v := range p.nodes {
		root := p.find(Var(v))
		if p.nodes[root].known != nil {
			continue
		}
		switch p.nodes[root].deflt {
		case defaultInt:
			if !p.allowIntDefaulting {
				continue
			}
			ty := p.store.Int()
			p.nodes[root].known = &ty
		case defaultVoid:
			ty := p.store.Void()
			p.nodes[root].known = &ty
		}
	}

	if err := p.runPending(); err != nil {
		return nil, err
	}

	final := make([]types.Type, len(p.nodes))
	for v := range p.nodes {
		root := p.find(Var(v))
		known := p.nodes[root].known
		if known == nil {
			return nil, diagnostics.Newf(diagnostics.TypeNotFullyKnown, p.nodes[v].origin,
				"type could not be fully inferred")
		}
		final[v] = *known
	}

	return &Solution{store: p.store, final: final}, nil
}

// runPending retries every composite constraint until none make
// further progress, in the deterministic order they were added.
func (p *Problem) runPending() error {
	for {
		progress := false
		remaining := p.pending[:0:0]
		for _, c := range p.pending {
			done, err := c.try(p)
			if err != nil {
				return err
			}
			if done {
				progress = true
				continue
			}
			remaining = append(remaining, c)
		}
		p.pending = remaining
		if !progress {
			return nil
		}
	}
}
