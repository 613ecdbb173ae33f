package shape

import (
	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/key"
)

// splitTransitions decides, per outgoing transition, whether its atoms
// belong to an if-chain, a switch dispatch, or the deferred class
// checks run after both: class atoms always defer; the atom holding the
// 0 code unit always goes to the if-chain (it doubles as an eos/sentinel
// check), and so does everything else once the state's alphabet is too
// sparse for a jump table to pay for itself.
func splitTransitions(n *node) {
	noSwitch := n.distinctKeys <= 7 || (n.ranges > 0 && float64(n.distinctKeys)/float64(n.ranges) >= 7.0)
	n.noSwitch = noSwitch

	for _, t := range n.combined {
		var ifAtoms, switchAtoms, deferredAtoms []key.EmitAtom
		for _, a := range t.atoms {
			switch {
			case a.Kind == key.EmitClass:
				deferredAtoms = append(deferredAtoms, a)
			case noSwitch || (a.Kind == key.EmitPrimaryRange && a.Lo == 0):
				ifAtoms = append(ifAtoms, a)
			default:
				switchAtoms = append(switchAtoms, a)
			}
		}
		if len(ifAtoms) > 0 {
			n.ifTransitions = append(n.ifTransitions, transition{atoms: ifAtoms, target: t.target})
		}
		if len(switchAtoms) > 0 {
			n.switchTransitions = append(n.switchTransitions, transition{atoms: switchAtoms, target: t.target})
		}
		if len(deferredAtoms) > 0 {
			n.deferredWork = append(n.deferredWork, transition{atoms: deferredAtoms, target: t.target})
		}
	}
}

// rewriteDeferred turns a state's deferred class atoms into call/catch-all
// dispatch atoms: every named class becomes a call into its predicate,
// and the encoding's catch-all class (if this state transitions on it at
// all) is pulled out and moved to the very end. A catch-all transition
// is only valid once every other declared class has been explicitly
// accounted for somewhere in this state's deferred transitions — it
// stands for "everything else", not "every class I forgot to mention".
func rewriteDeferred(stateIndex int, n *node, enc *encoding.Encoding) error {
	if len(n.deferredWork) == 0 {
		return nil
	}

	catchAllName, hasCatchAll := enc.CatchAllClass()
	seen := make(map[string]bool)

	var callTransitions []deferredTransition
	var catchAllTransition *deferredTransition

	for _, t := range n.deferredWork {
		var calls []deferredAtom
		groupHasCatchAll := false
		for _, a := range t.atoms {
			seen[a.Class] = true
			if hasCatchAll && a.Class == catchAllName {
				groupHasCatchAll = true
				continue
			}
			calls = append(calls, deferredAtom{call: a.Class})
		}
		switch {
		case groupHasCatchAll:
			dt := deferredTransition{atoms: calls, target: t.target}
			catchAllTransition = &dt
		case len(calls) > 0:
			callTransitions = append(callTransitions, deferredTransition{atoms: calls, target: t.target})
		}
	}

	if catchAllTransition != nil {
		var missing []string
		for _, c := range enc.ClassNames() {
			if !seen[c] {
				missing = append(missing, c)
			}
		}
		if len(missing) > 0 {
			return &CatchAllCoverageError{StateIndex: stateIndex, Missing: missing}
		}
		catchAllTransition.atoms = []deferredAtom{{catchAll: true}}
		n.deferredOut = append(callTransitions, *catchAllTransition)
		return nil
	}

	n.deferredOut = callTransitions
	return nil
}
