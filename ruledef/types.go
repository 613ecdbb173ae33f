// Package ruledef parses a rule file: alias bindings, per-state rule
// blocks, and the distinguished default_action/eos/catch_all rules,
// layering on top of regexsyntax for the regex portion of each rule.
// Every matched rule is tagged with a monotonically increasing
// precedence counter (lower wins) in file order.
package ruledef

import "github.com/OlegKalashnikov2001/lexergen/term"

// RuleKind discriminates the four rule shapes the grammar allows.
type RuleKind uint8

const (
	// RuleRegex is an ordinary "regex action" rule.
	RuleRegex RuleKind = iota
	// RuleDefaultAction is the distinguished "default_action action" rule.
	RuleDefaultAction
	// RuleEOS is the distinguished "eos action" rule.
	RuleEOS
	// RuleCatchAll is the distinguished "catch_all action" rule.
	RuleCatchAll
)

func (k RuleKind) String() string {
	switch k {
	case RuleRegex:
		return "regex"
	case RuleDefaultAction:
		return "default_action"
	case RuleEOS:
		return "eos"
	case RuleCatchAll:
		return "catch_all"
	default:
		return "rule(?)"
	}
}

// Action is the «entry | match | transition» block following a rule's
// pattern. Entry and Match are term.Empty() when absent. Transition is
// "" for "nothing" (default re-enter at the top-level default state),
// "continue" for the continue keyword, or a subgraph name.
type Action struct {
	Entry      term.Term
	Match      term.Term
	Transition string
}

// IsEmpty reports whether the action carries no entry action, no match
// action, and no explicit transition.
func (a Action) IsEmpty() bool {
	return a.Entry.IsEmpty() && a.Match.IsEmpty() && a.Transition == ""
}

// Rule is one parsed rule entry, already assigned its file-order
// precedence.
type Rule struct {
	Kind       RuleKind
	Regex      term.Term // zero value for non-RuleRegex kinds
	Action     Action
	Precedence int
}

// StateBlock is one "<name> rule*" section.
type StateBlock struct {
	Name  string
	Rules []Rule
}

// Alias is one "name = regex;" binding. Pattern is kept alongside Term
// so later aliases can textually reference this one via "$name".
type Alias struct {
	Name    string
	Pattern string
	Term    term.Term
}

// File is a fully parsed rule file.
type File struct {
	Aliases []Alias
	States  []StateBlock
}

// AliasTerm looks up an alias's parsed Term by name.
func (f *File) AliasTerm(name string) (term.Term, bool) {
	for _, a := range f.Aliases {
		if a.Name == name {
			return a.Term, true
		}
	}
	return term.Term{}, false
}
