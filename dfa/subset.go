package dfa

import (
	"github.com/OlegKalashnikov2001/lexergen/internal/conv"
	"github.com/OlegKalashnikov2001/lexergen/internal/sparse"
	"github.com/OlegKalashnikov2001/lexergen/key"
	"github.com/OlegKalashnikov2001/lexergen/nfa"
	"github.com/OlegKalashnikov2001/lexergen/term"
)

// builder drives subset construction over n: a worklist of NFA state
// subsets, memoized by the sparse.Set hash of their canonical
// (sorted, closure-complete) member IDs, so each distinct subset becomes
// exactly one DfaState.
type builder struct {
	n      *nfa.Nfa
	cache  map[uint64]StateID
	states []DfaState
}

// Build performs subset construction over n: seeding the start state
// with the epsilon/omega closure of n.Start(), then for every pending
// subset computing the disjoint-key cover of its outgoing edges and
// moving on each atom until no new subset appears. Aborts with
// *EmptyAutomatonError if the result has no terminal state at all (the
// rule file n was built from declared no match action anywhere).
func Build(n *nfa.Nfa) (*Dfa, error) {
	b := &builder{n: n, cache: map[uint64]StateID{}}

	startSet := sparse.NewSet(conv.IntToUint32(n.Len()))
	for _, c := range n.State(n.Start()).Closure() {
		startSet.Insert(uint32(c))
	}
	startID, _, err := b.intern(startSet)
	if err != nil {
		return nil, err
	}

	queue := []StateID{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		newIDs, err := b.expand(id)
		if err != nil {
			return nil, err
		}
		queue = append(queue, newIDs...)
	}

	d := &Dfa{states: b.states, start: startID}
	if len(d.Terminals()) == 0 {
		return nil, &EmptyAutomatonError{States: d.Len()}
	}
	return d, nil
}

// expand computes state id's outgoing edges, interning any newly
// discovered target subsets, and returns the IDs of those that are new
// (so the caller's worklist can visit them).
func (b *builder) expand(id StateID) ([]StateID, error) {
	members := toStateIDs(b.states[id].members)

	alphabet := collectAlphabet(b.n, members)
	disjoint := key.DisjointKeys(alphabet)
	key.Sort(disjoint)

	var newIDs []StateID
	edges := make([]Edge, 0, len(disjoint))
	for _, k := range disjoint {
		var raw []nfa.StateID
		for _, m := range members {
			for _, e := range b.n.State(m).Edges() {
				if e.Key.IsEpsilon() || e.Key.IsOmega() {
					continue
				}
				if e.Key.IsSupersetOf(k) {
					raw = append(raw, e.Target)
				}
			}
		}
		if len(raw) == 0 {
			continue
		}

		target := b.unionClosures(raw)
		if target.IsEmpty() {
			continue
		}
		targetID, isNew, err := b.intern(target)
		if err != nil {
			return nil, err
		}
		edges = append(edges, Edge{Key: k, Target: targetID})
		if isNew {
			newIDs = append(newIDs, targetID)
		}
	}

	b.states[id].edges = edges
	return newIDs, nil
}

// unionClosures computes the epsilon/omega closure of a set of NFA
// states reached by one move, as the union of each reached state's own
// precomputed closure (closure distributes over union, so no fresh
// traversal is needed here).
func (b *builder) unionClosures(raw []nfa.StateID) *sparse.Set {
	set := sparse.NewSet(conv.IntToUint32(b.n.Len()))
	for _, r := range raw {
		for _, c := range b.n.State(r).Closure() {
			set.Insert(uint32(c))
		}
	}
	return set
}

// intern returns the DfaState for a member set, building and memoizing
// a new one if this exact set hasn't been seen before. The bool result
// reports whether a new state was built.
func (b *builder) intern(set *sparse.Set) (StateID, bool, error) {
	h := set.Key()
	if id, ok := b.cache[h]; ok {
		return id, false, nil
	}

	members := set.SortedValues()
	action, transition, terminal, err := b.deriveState(members)
	if err != nil {
		return InvalidState, false, err
	}

	id := StateID(len(b.states))
	b.states = append(b.states, DfaState{
		id:         id,
		terminal:   terminal,
		action:     action,
		transition: transition,
		members:    members,
	})
	b.cache[h] = id
	return id, true, nil
}

// deriveState computes a subset's terminality and dominant action: the
// state is terminal iff it contains the NFA's shared end state, and its
// action is the dominant action among every member state's own action
// (spec: ties are valid only between structurally equal actions).
func (b *builder) deriveState(members []uint32) (term.Action, string, bool, error) {
	terminal := false
	var actions []term.Action
	var transitions []string
	for _, m := range members {
		sid := nfa.StateID(m)
		if sid == b.n.End() {
			terminal = true
		}
		ns := b.n.State(sid)
		if a := ns.Action(); !a.IsEmpty() {
			actions = append(actions, a)
			transitions = append(transitions, ns.Transition())
		}
	}

	dominant, err := term.Dominant(actions...)
	if err != nil {
		if ce, ok := err.(*term.ConflictError); ok {
			return term.Action{}, "", false, &ActionConflictError{First: ce.First, Second: ce.Second}
		}
		return term.Action{}, "", false, err
	}

	transition := ""
	for i, a := range actions {
		if a.Equal(dominant) {
			transition = transitions[i]
			break
		}
	}
	return dominant, transition, terminal, nil
}

// collectAlphabet gathers every distinct real (non-epsilon, non-omega,
// non-dead) key across a subset's member states, as DisjointKeys' input.
// A Unique(no_match) key is never a real alphabet symbol: it marks a
// catch-all edge that can never fire, not an input a driver ever feeds
// in (unlike Unique(eos), which the driver does feed explicitly at
// end-of-input, so it remains in the alphabet).
func collectAlphabet(n *nfa.Nfa, members []nfa.StateID) []key.Key {
	var keys []key.Key
	seen := map[string]bool{}
	for _, m := range members {
		for _, e := range n.State(m).Edges() {
			if e.Key.IsEpsilon() || e.Key.IsOmega() {
				continue
			}
			if e.Key.Kind() == key.KindUnique && e.Key.Tag() == key.NoMatch {
				continue
			}
			sig := e.Key.String()
			if !seen[sig] {
				seen[sig] = true
				keys = append(keys, e.Key)
			}
		}
	}
	return keys
}

func toStateIDs(members []uint32) []nfa.StateID {
	out := make([]nfa.StateID, len(members))
	for i, m := range members {
		out[i] = nfa.StateID(m)
	}
	return out
}
