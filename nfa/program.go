package nfa

import (
	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/ruledef"
	"github.com/OlegKalashnikov2001/lexergen/term"
	"github.com/pkg/errors"
)

// buildProgram wires a whole ruledef.File into one Nfa. Every state
// block's rules are wrapped into a Term reflecting their entry/match
// actions and transition wiring, the block's rules are OR'd together
// into one subgraph Term, and every block is registered before any of
// them is built so forward references (a "start" rule transitioning
// into "string" before "string" is declared) resolve regardless of file
// order.
func buildProgram(file *ruledef.File, enc *encoding.Encoding) (*Nfa, error) {
	if len(file.States) == 0 {
		return nil, errors.New("nfa: rule file declares no state blocks")
	}

	b := NewBuilder(enc)

	for _, blk := range file.States {
		combined, err := combineBlock(blk)
		if err != nil {
			return nil, errors.Wrapf(err, "state %q", blk.Name)
		}
		b.RegisterSubgraph(blk.Name, combined)
	}

	var defaultStart StateID = InvalidState
	for _, blk := range file.States {
		frag, err := b.buildNamedSubgraph(blk.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "state %q", blk.Name)
		}
		if blk.Name == "default" {
			defaultStart = frag.start
		}
	}
	if defaultStart == InvalidState {
		return nil, errors.New(`nfa: rule file has no "default" state block`)
	}

	n := &Nfa{states: b.states, start: defaultStart, end: b.end}
	if err := n.rewriteCatchAll(enc); err != nil {
		return nil, err
	}
	n.computeClosures()
	return n, nil
}

// combineBlock folds a state block's rules into one Term: each rule
// wrapped per wrapRule, OR'd together left to right.
func combineBlock(blk ruledef.StateBlock) (term.Term, error) {
	if len(blk.Rules) == 0 {
		return term.Term{}, errors.Errorf("state %q declares no rules", blk.Name)
	}
	var acc term.Term
	for i, rule := range blk.Rules {
		wrapped, err := wrapRule(blk.Name, rule)
		if err != nil {
			return term.Term{}, err
		}
		if i == 0 {
			acc = wrapped
			continue
		}
		acc = term.New("OR", acc, wrapped)
	}
	return acc, nil
}

// wrapRule builds the Term a single rule compiles to: its regex (or, for
// the three distinguished kinds, a synthetic base), wrapped with
// ENTRY_ACTION when it declares an entry action, then either
// MATCH_ACTION (when it declares a match action — the rule completes a
// token here, and Transition becomes metadata on the resulting accept
// state) or CONTINUE/JOIN (when it doesn't — the rule only moves state,
// so its dangling end is patched straight into the named target).
func wrapRule(stateName string, rule ruledef.Rule) (term.Term, error) {
	base, err := baseTerm(rule)
	if err != nil {
		return term.Term{}, err
	}

	if !rule.Action.Entry.IsEmpty() {
		base = term.New("ENTRY_ACTION", rule.Action.Entry, rule.Precedence, base)
	}

	if !rule.Action.Match.IsEmpty() {
		return term.New("MATCH_ACTION", rule.Action.Match, rule.Precedence, base, rule.Action.Transition), nil
	}

	target := rule.Action.Transition
	switch target {
	case "continue":
		target = stateName
	case "":
		target = "default"
	}
	if target == stateName {
		return term.New("CONTINUE", base, 0), nil
	}
	return term.New("JOIN", base, target), nil
}

// baseTerm returns the regex Term a rule consumes before any action
// wrapping: the parsed regex for an ordinary rule, or a synthetic marker
// for the three distinguished kinds.
func baseTerm(rule ruledef.Rule) (term.Term, error) {
	switch rule.Kind {
	case ruledef.RuleRegex:
		return rule.Regex, nil
	case ruledef.RuleDefaultAction:
		return term.New("EMPTY"), nil
	case ruledef.RuleEOS:
		return term.New("UNIQUE_KEY", "eos"), nil
	case ruledef.RuleCatchAll:
		return term.New("UNIQUE_KEY", "catch_all"), nil
	default:
		return term.Term{}, errors.Errorf("nfa: unknown rule kind %v", rule.Kind)
	}
}
