package nfa

import (
	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/key"
	"github.com/OlegKalashnikov2001/lexergen/term"
	"github.com/pkg/errors"
)

// openEdge names one not-yet-targeted edge: the index-th edge of the
// named state, added with a key already fixed but a target still to be
// patched in once the next fragment's start is known.
type openEdge struct {
	state StateID
	index int
}

// fragment is the result of building one Term: a start state to enter,
// and the open edges a caller still needs to patch onward. A fragment
// whose construction fully closed (e.g. a completed match action) has a
// nil ends slice.
type fragment struct {
	start StateID
	ends  []openEdge
}

type stackEntry struct {
	name  string
	start StateID
}

// Builder performs Thompson construction over term.Term trees, plus the
// named-subgraph bookkeeping JOIN and CONTINUE need (build-once
// memoization for cross-subgraph references, a depth-indexed stack of
// in-progress subgraph starts for self-referencing loops).
type Builder struct {
	enc    *encoding.Encoding
	states []NfaState
	end    StateID

	subgraphTerms map[string]term.Term
	subgraphCache map[string]fragment
	expanding     map[string]bool
	stack         []stackEntry
}

// NewBuilder creates a Builder over enc and allocates the automaton's
// single shared end state.
func NewBuilder(enc *encoding.Encoding) *Builder {
	b := &Builder{
		enc:           enc,
		subgraphTerms: map[string]term.Term{},
		subgraphCache: map[string]fragment{},
		expanding:     map[string]bool{},
	}
	b.end = b.newState()
	return b
}

// End returns the automaton's shared end state: every completed match
// closes here via an epsilon edge.
func (b *Builder) End() StateID { return b.end }

func (b *Builder) newState() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, NfaState{id: id})
	return id
}

func (b *Builder) addOpenEdge(s StateID, k key.Key) openEdge {
	idx := len(b.states[s].edges)
	b.states[s].edges = append(b.states[s].edges, Edge{Key: k, Target: InvalidState})
	return openEdge{state: s, index: idx}
}

func (b *Builder) addEdge(from StateID, k key.Key, to StateID) {
	b.states[from].edges = append(b.states[from].edges, Edge{Key: k, Target: to})
}

func (b *Builder) addEpsilon(from, to StateID) { b.addEdge(from, key.Epsilon(), to) }

func (b *Builder) patchEnds(ends []openEdge, target StateID) {
	for _, e := range ends {
		b.states[e.state].edges[e.index].Target = target
	}
}

// RegisterSubgraph binds name to the Term a JOIN or CONTINUE referencing
// it should expand. Every state block is registered this way before any
// of them is built, so forward references resolve regardless of file
// order.
func (b *Builder) RegisterSubgraph(name string, t term.Term) {
	b.subgraphTerms[name] = t
}

// BuildNamedSubgraph builds (or returns the memoized build of) the
// subgraph registered under name, as JOIN does.
func (b *Builder) BuildNamedSubgraph(name string) (StateID, []StateID, error) {
	f, err := b.buildNamedSubgraph(name)
	if err != nil {
		return InvalidState, nil, err
	}
	return f.start, endStates(f.ends), nil
}

func endStates(ends []openEdge) []StateID {
	out := make([]StateID, len(ends))
	for i, e := range ends {
		out[i] = e.state
	}
	return out
}

func (b *Builder) buildNamedSubgraph(name string) (fragment, error) {
	if f, ok := b.subgraphCache[name]; ok {
		return f, nil
	}
	if b.expanding[name] {
		// A JOIN reaching back into a subgraph still being expanded is an
		// ordinary cross-state reference (e.g. state A transitions into
		// state B which transitions back into A) — not a fault. Link
		// straight to its already-reserved entry state instead of trying
		// to rebuild it; the eventual full build still registers the
		// memoized fragment once its own buildNamedSubgraph call unwinds.
		for _, e := range b.stack {
			if e.name == name {
				return fragment{start: e.start, ends: nil}, nil
			}
		}
	}
	t, ok := b.subgraphTerms[name]
	if !ok {
		return fragment{}, errors.Errorf("nfa: unknown subgraph %q", name)
	}

	// Reserve the subgraph's entry state before descending into its body
	// so a nested CONTINUE can reference it immediately, then alias it to
	// the body's real start once known.
	reserved := b.newState()
	b.expanding[name] = true
	b.stack = append(b.stack, stackEntry{name: name, start: reserved})
	start, ends, err := b.buildTerm(t)
	b.stack = b.stack[:len(b.stack)-1]
	delete(b.expanding, name)
	if err != nil {
		return fragment{}, err
	}
	b.addEpsilon(reserved, start)

	f := fragment{start: reserved, ends: ends}
	b.subgraphCache[name] = f
	return f, nil
}

// buildTerm implements the Thompson construction operator table: one
// case per regex/action combinator, each returning a fragment (start
// state, dangling ends still to patch onward).
func (b *Builder) buildTerm(t term.Term) (StateID, []openEdge, error) {
	switch t.Name() {
	case "LITERAL":
		runes := []rune(t.StringArg(0))
		if len(runes) != 1 {
			return InvalidState, nil, &BuildError{Op: "LITERAL", Message: "expected exactly one code point"}
		}
		s := b.newState()
		e := b.addOpenEdge(s, key.SingleChar(runes[0]))
		return s, []openEdge{e}, nil

	case "ANY":
		lo, hi := b.enc.PrimaryRange()
		s := b.newState()
		e := b.addOpenEdge(s, key.Any(lo, hi))
		return s, []openEdge{e}, nil

	case "CLASS":
		k, err := b.classKey(t.TermArg(0))
		if err != nil {
			return InvalidState, nil, err
		}
		s := b.newState()
		e := b.addOpenEdge(s, k)
		return s, []openEdge{e}, nil

	case "NOT_CLASS":
		positive, err := b.classKey(t.TermArg(0))
		if err != nil {
			return InvalidState, nil, err
		}
		inverse, err := key.InverseKey(b.enc, []key.Key{positive})
		if err != nil {
			return InvalidState, nil, errors.Wrap(err, "nfa: NOT_CLASS")
		}
		s := b.newState()
		e := b.addOpenEdge(s, inverse)
		return s, []openEdge{e}, nil

	case "UNIQUE_KEY":
		s := b.newState()
		e := b.addOpenEdge(s, key.Unique(key.UniqueTag(t.StringArg(0))))
		return s, []openEdge{e}, nil

	case "EMPTY":
		s := b.newState()
		e := b.addOpenEdge(s, key.Epsilon())
		return s, []openEdge{e}, nil

	case "CAT":
		startA, endsA, err := b.buildTerm(t.TermArg(0))
		if err != nil {
			return InvalidState, nil, err
		}
		startB, endsB, err := b.buildTerm(t.TermArg(1))
		if err != nil {
			return InvalidState, nil, err
		}
		b.patchEnds(endsA, startB)
		return startA, endsB, nil

	case "OR":
		startA, endsA, err := b.buildTerm(t.TermArg(0))
		if err != nil {
			return InvalidState, nil, err
		}
		startB, endsB, err := b.buildTerm(t.TermArg(1))
		if err != nil {
			return InvalidState, nil, err
		}
		s := b.newState()
		b.addEpsilon(s, startA)
		b.addEpsilon(s, startB)
		return s, append(endsA, endsB...), nil

	case "ONE_OR_MORE":
		start, ends, err := b.buildTerm(t.TermArg(0))
		if err != nil {
			return InvalidState, nil, err
		}
		loop := b.newState()
		b.addEpsilon(loop, start)
		exit := b.addOpenEdge(loop, key.Epsilon())
		b.patchEnds(ends, loop)
		return start, []openEdge{exit}, nil

	case "ZERO_OR_MORE":
		start, ends, err := b.buildTerm(t.TermArg(0))
		if err != nil {
			return InvalidState, nil, err
		}
		s := b.newState()
		b.addEpsilon(s, start)
		exit := b.addOpenEdge(s, key.Epsilon())
		b.patchEnds(ends, s)
		return s, []openEdge{exit}, nil

	case "ZERO_OR_ONE":
		start, ends, err := b.buildTerm(t.TermArg(0))
		if err != nil {
			return InvalidState, nil, err
		}
		s := b.newState()
		b.addEpsilon(s, start)
		exit := b.addOpenEdge(s, key.Epsilon())
		return s, append(ends, exit), nil

	case "REPEAT":
		return b.buildRepeat(t.IntArg(0), t.IntArg(1), t.TermArg(2))

	case "ENTRY_ACTION":
		entryTerm := t.TermArg(0)
		precedence := t.IntArg(1)
		start, ends, err := b.buildTerm(t.TermArg(2))
		if err != nil {
			return InvalidState, nil, err
		}
		rec := b.newState()
		b.patchEnds(ends, rec)
		b.states[rec].action = term.NewAction(entryTerm, precedence)
		exit := b.addOpenEdge(rec, key.Epsilon())
		return start, []openEdge{exit}, nil

	case "MATCH_ACTION":
		matchTerm := t.TermArg(0)
		precedence := t.IntArg(1)
		start, ends, err := b.buildTerm(t.TermArg(2))
		if err != nil {
			return InvalidState, nil, err
		}
		transition := ""
		if len(t.Args()) > 3 {
			transition = t.StringArg(3)
		}
		mid := b.newState()
		b.patchEnds(ends, mid)
		accept := b.newState()
		b.states[accept].action = term.NewAction(matchTerm, precedence)
		b.states[accept].transition = transition
		b.addEdge(mid, key.Omega(), accept)
		b.addEpsilon(accept, b.end)
		return start, nil, nil

	case "CONTINUE":
		start, ends, err := b.buildTerm(t.TermArg(0))
		if err != nil {
			return InvalidState, nil, err
		}
		depth := t.IntArg(1)
		if depth < 0 || depth >= len(b.stack) {
			return InvalidState, nil, &BuildError{Op: "CONTINUE", Message: "depth out of range"}
		}
		target := b.stack[len(b.stack)-1-depth].start
		b.patchEnds(ends, target)
		return start, nil, nil

	case "JOIN":
		name := t.StringArg(1)
		if b.expanding[name] && len(b.stack) > 0 && b.stack[len(b.stack)-1].name == name &&
			t.TermArg(0).Name() == "EMPTY" {
			// The subgraph's own definition joins straight back to itself
			// with nothing consumed in between: an unconditional epsilon
			// self-loop that can never progress or terminate.
			return InvalidState, nil, &RecursiveSubgraphError{Name: name}
		}
		start, ends, err := b.buildTerm(t.TermArg(0))
		if err != nil {
			return InvalidState, nil, err
		}
		sub, err := b.buildNamedSubgraph(name)
		if err != nil {
			return InvalidState, nil, err
		}
		b.patchEnds(ends, sub.start)
		return start, sub.ends, nil

	default:
		return InvalidState, nil, &BuildError{Op: t.Name(), Message: "unknown term operator"}
	}
}

// buildRepeat implements REPEAT(m,n,a): m mandatory copies chained via
// CAT, followed by (n-m) optional copies chained via nested
// ZERO_OR_ONE-style midpoints, so a{2,4} behaves like aa(a(a)?)?.
func (b *Builder) buildRepeat(m, n int, a term.Term) (StateID, []openEdge, error) {
	if n < m || m < 0 {
		return InvalidState, nil, &BuildError{Op: "REPEAT", Message: "invalid bounds"}
	}

	var start StateID = InvalidState
	var prevEnds []openEdge
	var allEnds []openEdge

	chain := func(s StateID, ends []openEdge) {
		if start == InvalidState {
			start = s
		} else {
			b.patchEnds(prevEnds, s)
		}
		prevEnds = ends
	}

	for i := 0; i < m; i++ {
		s, ends, err := b.buildTerm(a)
		if err != nil {
			return InvalidState, nil, err
		}
		chain(s, ends)
	}

	if m == 0 && n == 0 {
		s := b.newState()
		exit := b.addOpenEdge(s, key.Epsilon())
		return s, []openEdge{exit}, nil
	}

	for i := 0; i < n-m; i++ {
		bodyStart, bodyEnds, err := b.buildTerm(a)
		if err != nil {
			return InvalidState, nil, err
		}
		mid := b.newState()
		b.addEpsilon(mid, bodyStart)
		skip := b.addOpenEdge(mid, key.Epsilon())
		allEnds = append(allEnds, skip)
		chain(mid, bodyEnds)
	}

	allEnds = append(allEnds, prevEnds...)
	return start, allEnds, nil
}

// classKey folds a class body (a CAT-chain of LITERAL/RANGE/CHARACTER_CLASS
// nodes, as regexsyntax produces for "[...]" content) into one composite
// Key.
func (b *Builder) classKey(t term.Term) (key.Key, error) {
	switch t.Name() {
	case "CAT":
		left, err := b.classKey(t.TermArg(0))
		if err != nil {
			return key.Key{}, err
		}
		right, err := b.classKey(t.TermArg(1))
		if err != nil {
			return key.Key{}, err
		}
		return key.MergedKey(left, right)
	case "LITERAL":
		runes := []rune(t.StringArg(0))
		if len(runes) != 1 {
			return key.Key{}, &BuildError{Op: "CLASS", Message: "expected exactly one code point"}
		}
		return key.SingleChar(runes[0]), nil
	case "RANGE":
		lo := []rune(t.StringArg(0))
		hi := []rune(t.StringArg(1))
		if len(lo) != 1 || len(hi) != 1 {
			return key.Key{}, &BuildError{Op: "CLASS", Message: "malformed range bounds"}
		}
		return key.RangeKey(lo[0], hi[0]), nil
	case "CHARACTER_CLASS":
		name := t.StringArg(0)
		if err := b.enc.RequireClass(name); err != nil {
			return key.Key{}, err
		}
		return key.Class(name), nil
	default:
		return key.Key{}, &BuildError{Op: t.Name(), Message: "not valid inside a character class"}
	}
}
