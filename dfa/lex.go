package dfa

import (
	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/term"
)

// Token is one lexical token produced by Lex: the dominant action of the
// state the automaton was in when the token ended, and its byte-offset
// span over the input.
type Token struct {
	Action term.Action
	Start  int
	End    int
}

// Lex greedily replays d over input, one rune at a time, splitting it
// into a sequence of maximal-munch tokens. It is verification/debug
// support for exercising a built Dfa end-to-end (accept/reject alone,
// via a terminal-state check, does not confirm token boundaries land
// where a rule file intends); it is not a code-emission back end.
//
// Matching follows exactly one transition per rune (d is deterministic,
// so at most one edge can match); when the current state has none, the
// run ends there: the state's dominant action closes out the token
// covering [lastPos, pos), matching re-starts from d's start state on
// the same rune, and the rune is retried against it. A state with no
// matching transition and no action to fall back on is a built Dfa that
// cannot lex this input and reports a *NoDefaultActionError; a rune the
// start state itself cannot match reports *UnmatchedCharError.
func (d *Dfa) Lex(enc *encoding.Encoding, input string) ([]Token, error) {
	var tokens []Token
	cur := d.State(d.start)
	lastPos := 0

	for pos, c := range input {
		next := matchChar(d, cur, enc, c)
		if next == nil {
			if cur.Action().IsEmpty() {
				return nil, &NoDefaultActionError{State: cur.ID(), Position: pos}
			}
			tokens = append(tokens, Token{Action: cur.Action(), Start: lastPos, End: pos})
			lastPos = pos

			next = matchChar(d, d.State(d.start), enc, c)
			if next == nil {
				return nil, &UnmatchedCharError{Char: c, Position: pos}
			}
		}
		cur = next
	}

	if cur.Action().IsEmpty() {
		return nil, &NoDefaultActionError{State: cur.ID(), Position: len(input)}
	}
	tokens = append(tokens, Token{Action: cur.Action(), Start: lastPos, End: len(input)})
	return tokens, nil
}

func matchChar(d *Dfa, s *DfaState, enc *encoding.Encoding, c rune) *DfaState {
	for _, e := range s.Edges() {
		if e.Key.MatchesChar(enc, c) {
			return d.State(e.Target)
		}
	}
	return nil
}
