package shape

import (
	"sort"

	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/key"
	"github.com/OlegKalashnikov2001/lexergen/term"
	"github.com/pkg/errors"
)

// rawTransition is one pre-transform outgoing edge, atoms decomposed but
// still targeting the original dfa.StateID (reorder hasn't run yet).
type rawTransition struct {
	atoms  []key.EmitAtom
	target dfa.StateID
}

// node is the working representation of one shaped state, threaded
// through pretransform, reorder, split and inline before being frozen
// into an exported State.
type node struct {
	originalID dfa.StateID
	index      int // position in the final States slice; -1 until reorder runs

	terminal   bool
	action     term.Action
	transition string
	members    []uint32

	rawTransitions []rawTransition
	eosTarget      *dfa.StateID
	omegaTarget    *dfa.StateID

	classKeys        int
	distinctKeys     int
	ranges           int
	totalTransitions int
	elideRead        bool

	// combined holds rawTransitions with targets remapped to final node
	// indices; populated once reorder assigns every reachable node an
	// index. ifTransitions/switchTransitions/deferredOut are split's
	// output, still carrying remapped-but-not-yet-jump-table indices as
	// their transition targets.
	combined          []transition
	ifTransitions     []transition
	switchTransitions []transition
	deferredWork      []transition // pre-rewrite class atoms, grouped like combined
	deferredOut       []deferredTransition
	noSwitch          bool

	// eosIndex/omegaIndex hold a remapped node index until jump.go
	// rewrites them in place to hold a jump-table index instead; -1
	// means "no such transition" throughout.
	eosIndex   int
	omegaIndex int

	isEOSHandler  bool
	mustNotInline bool
	// inline is true both for an original state eligible to be inlined
	// (computed once, before any clone exists) and for every clone
	// generated from one, since a clone is a byte-for-byte copy of its
	// eligible template.
	inline bool

	justGeneratedInline bool
}

type transition struct {
	atoms  []key.EmitAtom
	target int
}

type deferredAtom struct {
	call     string
	catchAll bool
}

type deferredTransition struct {
	atoms  []deferredAtom
	target int
}

// pretransform decomposes every state's outgoing keys into atoms, tallies
// the counts split/inline classification needs later, and splits a
// from-zero primary range into its own trailing transition (the 0 code
// unit is reserved for an eos/sentinel check by the emitter).
func pretransform(d *dfa.Dfa) (map[dfa.StateID]*node, error) {
	byOriginal := make(map[dfa.StateID]*node, d.Len())
	for i := 0; i < d.Len(); i++ {
		id := dfa.StateID(i)
		n, err := transformState(id, d.State(id))
		if err != nil {
			return nil, err
		}
		byOriginal[id] = n
	}
	return byOriginal, nil
}

func transformState(id dfa.StateID, s *dfa.DfaState) (*node, error) {
	edges := append([]dfa.Edge(nil), s.Edges()...)
	sort.Slice(edges, func(i, j int) bool { return key.Compare(edges[i].Key, edges[j].Key) < 0 })

	n := &node{
		originalID: id,
		index:      -1,
		terminal:   s.Terminal(),
		action:     s.Action(),
		transition: s.Transition(),
		members:    s.Members(),
		eosIndex:   -1,
		omegaIndex: -1,
	}

	var zeroTarget *dfa.StateID
	for _, e := range edges {
		atoms, err := e.Key.RangeIter()
		if err != nil {
			return nil, errors.Wrapf(err, "shape: state %d edge %s", id, e.Key.String())
		}
		kept := make([]key.EmitAtom, 0, len(atoms))
		for _, a := range atoms {
			switch a.Kind {
			case key.EmitClass:
				n.classKeys++
				kept = append(kept, a)
			case key.EmitPrimaryRange:
				n.distinctKeys += int(a.Hi-a.Lo) + 1
				n.ranges++
				if a.Lo == 0 {
					t := e.Target
					zeroTarget = &t
					if a.Hi == 0 {
						continue
					}
					a.Lo++
				}
				kept = append(kept, a)
			case key.EmitUnique:
				if a.Tag == key.EOS {
					target := e.Target
					n.eosTarget = &target
					n.totalTransitions++
				}
			case key.EmitOmega:
				target := e.Target
				n.omegaTarget = &target
				n.totalTransitions++
			}
		}
		if len(kept) > 0 {
			n.rawTransitions = append(n.rawTransitions, rawTransition{atoms: kept, target: e.Target})
		}
	}
	if zeroTarget != nil {
		n.rawTransitions = append(n.rawTransitions, rawTransition{
			atoms:  []key.EmitAtom{{Kind: key.EmitPrimaryRange, Lo: 0, Hi: 0}},
			target: *zeroTarget,
		})
		n.ranges++
	}
	n.totalTransitions += len(n.rawTransitions)
	n.elideRead = n.totalTransitions == 0 || (n.totalTransitions == 1 && n.omegaTarget != nil)
	return n, nil
}
