package nfa

import (
	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/internal/conv"
	"github.com/OlegKalashnikov2001/lexergen/internal/sparse"
	"github.com/OlegKalashnikov2001/lexergen/key"
)

// computeClosures freezes every state's epsilon/omega closure (every
// state reachable without consuming input, itself included) and marks
// the automaton closed. Omega edges participate in closure alongside
// epsilon: both fire without reading new input, and subset construction
// needs a just-matched state's accept (reached via omega) visible in the
// closure of whatever state led into it.
func (n *Nfa) computeClosures() {
	universe := conv.IntToUint32(len(n.states))
	for i := range n.states {
		set := sparse.NewSet(universe)
		n.closureInto(StateID(i), set)
		sorted := set.SortedValues()
		closure := make([]StateID, len(sorted))
		for j, v := range sorted {
			closure[j] = StateID(v)
		}
		n.states[i].closure = closure
		n.states[i].closed = true
	}
}

func (n *Nfa) closureInto(start StateID, set *sparse.Set) {
	if set.Contains(uint32(start)) {
		return
	}
	set.Insert(uint32(start))
	for _, e := range n.states[start].edges {
		if e.Key.IsEpsilon() || e.Key.IsOmega() {
			if e.Target != InvalidState {
				n.closureInto(e.Target, set)
			}
		}
	}
}

// rewriteCatchAll resolves every residual Unique(catch_all) edge to the
// concrete inverse of every other reachable composite key in the
// automaton — the action written for a rule's "catch_all" clause fires
// on whatever no explicit rule already claims. If that inverse is empty
// (every code point is already claimed elsewhere), the edge is rewritten
// to Unique(no_match) instead: the catch-all can never fire.
func (n *Nfa) rewriteCatchAll(enc *encoding.Encoding) error {
	var composite []key.Key
	seen := map[string]bool{}
	for i := range n.states {
		for _, e := range n.states[i].edges {
			if e.Key.Kind() == key.KindComposite {
				sig := e.Key.String()
				if !seen[sig] {
					seen[sig] = true
					composite = append(composite, e.Key)
				}
			}
		}
	}

	inverse := key.Key{}
	haveInverse := false
	for i := range n.states {
		for j := range n.states[i].edges {
			e := &n.states[i].edges[j]
			if e.Key.Kind() != key.KindUnique || e.Key.Tag() != key.CatchAll {
				continue
			}
			if !haveInverse {
				var err error
				inverse, err = key.InverseKey(enc, composite)
				if err != nil {
					return err
				}
				haveInverse = true
			}
			if inverse.IsEmptyComposite() {
				e.Key = key.Unique(key.NoMatch)
			} else {
				e.Key = inverse
			}
		}
	}
	return nil
}
