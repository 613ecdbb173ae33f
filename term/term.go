// Package term implements the immutable (name, args...) tree used to
// represent parsed regex fragments and user actions throughout the
// automaton pipeline, plus the Action value that pairs a Term with a
// dominance precedence.
//
// A Term is an uninterpreted function application whose arguments are
// themselves integers, strings or nested Terms. A regex parser builds
// Terms like CAT(LITERAL('a'), ONE_OR_MORE(LITERAL('b'))); an NFA builder
// consumes them by dispatching on Name().
package term

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Term is an immutable function application. The zero value is the empty
// term (Name() == "", no args), the distinguished value used for
// "no action" throughout the pipeline.
type Term struct {
	name string
	args []any // each element is int, string, or Term
}

// New constructs a Term, validating that every argument is an int, string
// or Term. It panics on a malformed argument list: this indicates a
// programming error in a parser or builder, never bad user input (bad
// user input is rejected earlier, at the regex/rule grammar level).
func New(name string, args ...any) Term {
	if name == "" && len(args) != 0 {
		panic("term: empty term must not have args")
	}
	for i, a := range args {
		switch a.(type) {
		case int, string, Term:
		default:
			panic(fmt.Sprintf("term: argument %d of %q has unsupported type %T", i, name, a))
		}
	}
	cp := make([]any, len(args))
	copy(cp, args)
	return Term{name: name, args: cp}
}

// Empty returns the distinguished empty term.
func Empty() Term { return Term{} }

// IsEmpty reports whether t is the empty term.
func (t Term) IsEmpty() bool { return t.name == "" }

// Name returns the term's function name ("" for the empty term).
func (t Term) Name() string { return t.name }

// Args returns the term's arguments. The returned slice must not be
// mutated by the caller.
func (t Term) Args() []any { return t.args }

// Arg returns the i-th argument.
func (t Term) Arg(i int) any { return t.args[i] }

// IntArg returns the i-th argument as an int, panicking if it is not one.
func (t Term) IntArg(i int) int {
	v, ok := t.args[i].(int)
	if !ok {
		panic(fmt.Sprintf("term: argument %d of %q is not an int", i, t.name))
	}
	return v
}

// StringArg returns the i-th argument as a string, panicking if it is not one.
func (t Term) StringArg(i int) string {
	v, ok := t.args[i].(string)
	if !ok {
		panic(fmt.Sprintf("term: argument %d of %q is not a string", i, t.name))
	}
	return v
}

// TermArg returns the i-th argument as a Term, panicking if it is not one.
func (t Term) TermArg(i int) Term {
	v, ok := t.args[i].(Term)
	if !ok {
		panic(fmt.Sprintf("term: argument %d of %q is not a term", i, t.name))
	}
	return v
}

// Equal reports structural equality: same name, same argument count, and
// each argument equal (recursively, for nested Terms).
func (t Term) Equal(other Term) bool {
	if t.name != other.name || len(t.args) != len(other.args) {
		return false
	}
	for i, a := range t.args {
		b := other.args[i]
		switch av := a.(type) {
		case Term:
			bv, ok := b.(Term)
			if !ok || !av.Equal(bv) {
				return false
			}
		default:
			if a != b {
				return false
			}
		}
	}
	return true
}

// String renders a canonical, deterministic textual form, e.g.
// `(CAT,(LITERAL,"a"),(ONE_OR_MORE,(LITERAL,"b")))`. Used both for debugging
// and as the basis of Key(), the map-key form.
func (t Term) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Term) write(b *strings.Builder) {
	if t.IsEmpty() {
		b.WriteString("()")
		return
	}
	b.WriteByte('(')
	b.WriteString(t.name)
	for _, a := range t.args {
		b.WriteByte(',')
		switch v := a.(type) {
		case int:
			b.WriteString(strconv.Itoa(v))
		case string:
			b.WriteString(strconv.Quote(v))
		case Term:
			v.write(b)
		}
	}
	b.WriteByte(')')
}

// Key returns a value suitable for use as a map key that is equal iff two
// Terms are Equal. Terms themselves are not comparable with == because
// they hold a slice, so callers that need Term-keyed maps (e.g.
// deduplicating subgraph bodies) should key on Key() instead.
func (t Term) Key() string { return t.String() }

// ErrMalformedTerm is wrapped by parsers that build Terms from
// syntactically invalid fragments (callers should prefer returning a
// parser-specific SyntaxError; this exists for the rare internal
// consistency check).
var ErrMalformedTerm = errors.New("term: malformed term")
