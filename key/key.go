// Package key implements TransitionKey, the character-predicate algebra
// that labels every edge in the automaton pipeline: NFA epsilon/consuming
// edges, DFA transitions, and the disjoint partitions a code shaper
// emits as if/switch comparisons.
//
// A Key is one of: the epsilon marker (no input consumed), the omega
// marker (the edge from a matched prefix to its accept state, taken
// without consuming input), a
// unique marker (eos, catch_all, no_match — synthetic pseudo-symbols that
// never correspond to a real input character), or a composite predicate
// built from primary-range intervals and host-defined named classes.
package key

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Kind discriminates the variants of Key.
type Kind uint8

const (
	// KindEpsilon is the empty-input marker used on NFA epsilon edges.
	KindEpsilon Kind = iota
	// KindOmega is the marker on the edge from a matched prefix to its
	// accept state; it consumes no input.
	KindOmega
	// KindUnique carries a synthetic pseudo-symbol (see UniqueTag).
	KindUnique
	// KindComposite is a union of range/class/not-class atoms.
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindEpsilon:
		return "epsilon"
	case KindOmega:
		return "omega"
	case KindUnique:
		return "unique"
	case KindComposite:
		return "composite"
	default:
		return "kind(?)"
	}
}

// UniqueTag names a synthetic pseudo-symbol: one that labels a
// transition without corresponding to any real input character.
type UniqueTag string

const (
	// EOS labels the transition taken at end of input.
	EOS UniqueTag = "eos"
	// CatchAll labels a rule's explicit "anything not otherwise matched"
	// transition, before it is rewritten to a concrete InverseKey.
	CatchAll UniqueTag = "catch_all"
	// NoMatch labels the implicit transition into the dead/error state.
	NoMatch UniqueTag = "no_match"
)

type atomKind uint8

const (
	atomRange atomKind = iota
	atomClass
	atomNotClass
)

// atom is one primitive predicate. Composite Keys hold a canonically
// sorted, normalized slice of atoms whose union is the key's domain.
type atom struct {
	kind atomKind
	lo   rune
	hi   rune
	name string
}

func (a atom) String() string {
	switch a.kind {
	case atomRange:
		if a.lo == a.hi {
			return fmt.Sprintf("char(%d)", a.lo)
		}
		return fmt.Sprintf("range(%d,%d)", a.lo, a.hi)
	case atomClass:
		return "class(" + a.name + ")"
	case atomNotClass:
		return "notclass(" + a.name + ")"
	default:
		return "atom(?)"
	}
}

// Key is an immutable character-predicate. The zero value is invalid;
// use Epsilon, Omega, Unique, SingleChar, RangeKey, Class, NotClass or
// Any to construct one.
type Key struct {
	kind  Kind
	tag   UniqueTag
	atoms []atom
}

// Epsilon returns the epsilon marker.
func Epsilon() Key { return Key{kind: KindEpsilon} }

// Omega returns the omega (matched-prefix to accept) marker.
func Omega() Key { return Key{kind: KindOmega} }

// Unique returns a synthetic pseudo-symbol marker for tag.
func Unique(tag UniqueTag) Key {
	if tag == "" {
		panic("key: unique tag must not be empty")
	}
	return Key{kind: KindUnique, tag: tag}
}

// SingleChar returns the key matching exactly the code point c.
func SingleChar(c rune) Key { return RangeKey(c, c) }

// RangeKey returns the key matching every code point in [lo, hi].
func RangeKey(lo, hi rune) Key {
	if hi < lo {
		panic("key: empty range")
	}
	return Key{kind: KindComposite, atoms: []atom{{kind: atomRange, lo: lo, hi: hi}}}
}

// Class returns the key matching every code point the named class
// claims, as defined by an Encoding at match time.
func Class(name string) Key {
	if name == "" {
		panic("key: class name must not be empty")
	}
	return Key{kind: KindComposite, atoms: []atom{{kind: atomClass, name: name}}}
}

// NotClass returns the key matching every code point NOT claimed by the
// named class.
func NotClass(name string) Key {
	if name == "" {
		panic("key: class name must not be empty")
	}
	return Key{kind: KindComposite, atoms: []atom{{kind: atomNotClass, name: name}}}
}

// Any returns the key matching the whole primary range of enc. Any is
// not a distinct Kind: it is resolved eagerly into a RangeKey because
// every call site that can construct a Key already knows its encoding.
func Any(lo, hi rune) Key { return RangeKey(lo, hi) }

// Kind returns k's variant.
func (k Key) Kind() Kind { return k.kind }

// Tag returns k's unique tag. Only meaningful when Kind() == KindUnique.
func (k Key) Tag() UniqueTag { return k.tag }

// IsEpsilon, IsOmega and IsUnique are convenience predicates over Kind().
func (k Key) IsEpsilon() bool { return k.kind == KindEpsilon }
func (k Key) IsOmega() bool   { return k.kind == KindOmega }
func (k Key) IsUnique() bool  { return k.kind == KindUnique }

// IsEmptyComposite reports whether k is a composite key with no atoms —
// the result of InverseKey when the operand keys already cover the whole
// domain, signaling that a catch-all transition can never fire.
func (k Key) IsEmptyComposite() bool { return k.kind == KindComposite && len(k.atoms) == 0 }

// Equal reports whether k and other describe the same predicate.
func (k Key) Equal(other Key) bool {
	if k.kind != other.kind {
		return false
	}
	switch k.kind {
	case KindEpsilon, KindOmega:
		return true
	case KindUnique:
		return k.tag == other.tag
	case KindComposite:
		if len(k.atoms) != len(other.atoms) {
			return false
		}
		for i, a := range k.atoms {
			b := other.atoms[i]
			if a.kind != b.kind || a.lo != b.lo || a.hi != b.hi || a.name != b.name {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders a canonical debug form.
func (k Key) String() string {
	switch k.kind {
	case KindEpsilon:
		return "epsilon"
	case KindOmega:
		return "omega"
	case KindUnique:
		return "unique(" + string(k.tag) + ")"
	case KindComposite:
		parts := make([]string, len(k.atoms))
		for i, a := range k.atoms {
			parts[i] = a.String()
		}
		return "key[" + strings.Join(parts, "|") + "]"
	default:
		return "key(?)"
	}
}

// ErrIncompatibleKinds is returned by operations (MergedKey) that
// require their operands to share a Kind they cannot reconcile.
var ErrIncompatibleKinds = errors.New("key: incompatible key kinds")

func normalizeAtoms(atoms []atom) []atom {
	var ranges []atom
	classSeen := map[string]bool{}
	notClassSeen := map[string]bool{}
	var classes, notClasses []atom
	for _, a := range atoms {
		switch a.kind {
		case atomRange:
			ranges = append(ranges, a)
		case atomClass:
			if !classSeen[a.name] {
				classSeen[a.name] = true
				classes = append(classes, a)
			}
		case atomNotClass:
			if !notClassSeen[a.name] {
				notClassSeen[a.name] = true
				notClasses = append(notClasses, a)
			}
		}
	}
	ranges = mergeRanges(ranges)
	sort.Slice(classes, func(i, j int) bool { return classes[i].name < classes[j].name })
	sort.Slice(notClasses, func(i, j int) bool { return notClasses[i].name < notClasses[j].name })
	out := make([]atom, 0, len(ranges)+len(classes)+len(notClasses))
	out = append(out, ranges...)
	out = append(out, classes...)
	out = append(out, notClasses...)
	return out
}

// mergeRanges sorts and coalesces overlapping or adjacent ranges.
func mergeRanges(ranges []atom) []atom {
	if len(ranges) == 0 {
		return nil
	}
	cp := make([]atom, len(ranges))
	copy(cp, ranges)
	sort.Slice(cp, func(i, j int) bool {
		if cp[i].lo != cp[j].lo {
			return cp[i].lo < cp[j].lo
		}
		return cp[i].hi < cp[j].hi
	})
	out := []atom{cp[0]}
	for _, r := range cp[1:] {
		last := &out[len(out)-1]
		if r.lo <= last.hi+1 {
			if r.hi > last.hi {
				last.hi = r.hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// MergedKey unions one or more keys into a single Key covering their
// combined domain, for the common case of several original transition
// keys collapsing onto one destination state. All operands must share
// the same Kind (and, for KindUnique, the same tag); mismatched operands
// return ErrIncompatibleKinds.
func MergedKey(keys ...Key) (Key, error) {
	if len(keys) == 0 {
		return Key{}, errors.New("key: MergedKey requires at least one key")
	}
	first := keys[0]
	switch first.kind {
	case KindEpsilon, KindOmega:
		for _, k := range keys[1:] {
			if k.kind != first.kind {
				return Key{}, errors.Wrapf(ErrIncompatibleKinds, "%s vs %s", first.kind, k.kind)
			}
		}
		return first, nil
	case KindUnique:
		for _, k := range keys[1:] {
			if k.kind != KindUnique || k.tag != first.tag {
				return Key{}, errors.Wrapf(ErrIncompatibleKinds, "unique(%s) vs %s", first.tag, k)
			}
		}
		return first, nil
	case KindComposite:
		var atoms []atom
		for _, k := range keys {
			if k.kind != KindComposite {
				return Key{}, errors.Wrapf(ErrIncompatibleKinds, "composite vs %s", k.kind)
			}
			atoms = append(atoms, k.atoms...)
		}
		return Key{kind: KindComposite, atoms: normalizeAtoms(atoms)}, nil
	default:
		return Key{}, errors.Errorf("key: unknown kind %d", first.kind)
	}
}
