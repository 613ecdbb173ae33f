// Package shape prepares a minimized dfa.Dfa for downstream code
// emission: it decomposes each state's outgoing keys into concrete
// character atoms, renumbers states in a deterministic traversal order,
// classifies transitions as switch/if/deferred-class dispatch, inlines
// small terminal states into their callers, and builds the jump table a
// generated scanner dispatches through. It stops short of emitting any
// text; its output, a Program, is a structured description a template
// or code-writing back end renders from.
//
// Two synthetic keys never survive to a Program. Unique(key.NoMatch)
// never appears as a real dfa.Edge in the first place — subset
// construction excludes it from the alphabet entirely — so there is
// nothing for the pre-transform step to see; it is mentioned here only
// because an encoding's absent coverage is conceptually "everything
// no_match would have claimed." Key.Omega likewise never reaches a
// finished Dfa as an edge key: it is absorbed into epsilon/omega closure
// during subset construction (see dfa.Build), so RangeIter's EmitOmega
// branch is handled defensively but is unreachable in practice for any
// Dfa this package is actually given.
package shape
