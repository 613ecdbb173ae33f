package debug

import (
	"fmt"
	"io"
	"strings"

	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/nfa"
	"github.com/OlegKalashnikov2001/lexergen/term"
)

// DumpNfa writes n as Graphviz `dot` source: one S_<id> node per state
// (the end state drawn as a double circle, the start state filled), one
// labeled edge per transition, with an action's term and transition
// target appended to the label when the edge's source state carries
// one.
func DumpNfa(w io.Writer, n *nfa.Nfa) error {
	var edges []string
	for i := 0; i < n.Len(); i++ {
		s := n.State(nfa.StateID(i))
		for _, e := range s.Edges() {
			edges = append(edges, edgeLine(uint32(s.ID()), uint32(e.Target), e.Key.String(), s.Action(), s.Transition()))
		}
	}
	terminals := []string{fmt.Sprintf("S_%d", n.End())}
	return writeDigraph(w, uint32(n.Start()), terminals, edges)
}

// DumpDfa writes d as Graphviz `dot` source, in the same form as
// DumpNfa: a state is a double circle when DfaState.Terminal() is true.
func DumpDfa(w io.Writer, d *dfa.Dfa) error {
	var edges []string
	var terminals []string
	for i := 0; i < d.Len(); i++ {
		s := d.State(dfa.StateID(i))
		if s.Terminal() {
			terminals = append(terminals, fmt.Sprintf("S_%d", s.ID()))
		}
		for _, e := range s.Edges() {
			edges = append(edges, edgeLine(uint32(s.ID()), uint32(e.Target), e.Key.String(), s.Action(), s.Transition()))
		}
	}
	return writeDigraph(w, uint32(d.Start()), terminals, edges)
}

func edgeLine(from, to uint32, key string, action term.Action, transition string) string {
	label := strings.ReplaceAll(key, `\`, `\\`)
	if !action.IsEmpty() {
		label = fmt.Sprintf("%s {%s} -> %s", label, action.Term(), transition)
	}
	return fmt.Sprintf("  S_%d -> S_%d [ label = %q ];", from, to, label)
}

func writeDigraph(w io.Writer, start uint32, terminals, edges []string) error {
	startShape := "circle"
	for _, t := range terminals {
		if t == fmt.Sprintf("S_%d", start) {
			startShape = "doublecircle"
		}
	}
	_, err := fmt.Fprintf(w, `digraph finite_state_machine {
  rankdir=LR;
  node [shape = %s, style=filled, bgcolor=lightgrey]; S_%d
  node [shape = doublecircle, style=unfilled]; %s
  node [shape = circle];
%s
}
`, startShape, start, strings.Join(terminals, " "), strings.Join(edges, "\n"))
	return err
}
