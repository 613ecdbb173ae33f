// Package minimize shrinks a dfa.Dfa by Hopcroft partition refinement:
// states that are indistinguishable by any input string (same acceptance,
// same action, and transitions that always land in the same partition)
// are merged into one. The refinement starts from the coarsest partition
// that can possibly be correct — states grouped by their own action
// signature — and repeatedly splits any partition whose members disagree
// on where some input leads, until no partition can be split further.
package minimize
