// Package lexergen compiles a rule-definition source into a shaped state
// machine ready for a code-emitting back end.
//
// It wires the full pipeline: rules are parsed into a term tree
// (ruledef), compiled into a Thompson NFA over the chosen character
// encoding (nfa), determinized into a DFA with action-precedence
// conflict resolution (dfa), minimized with Hopcroft partition
// refinement (minimize), and finally shaped into dispatch-ready states
// and a jump table (shape). Generate runs all five stages and returns
// the final shape.Program, or the first error any stage reports — there
// is no partial result and no recovery.
//
// Example:
//
//	prog, err := lexergen.Generate(src, encoding.Latin1(), lexergen.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
package lexergen
