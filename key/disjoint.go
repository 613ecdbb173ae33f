package key

import (
	"sort"

	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/pkg/errors"
)

// DisjointKeys takes a set of (possibly overlapping) keys and returns an
// equivalent set of pairwise-disjoint keys whose union matches exactly
// the same code points. It is the alphabet-reduction step shared by
// subset construction (computing move-sets over a state's outgoing
// edges) and the code shaper (deciding how many branches a dispatch
// needs). Epsilon, omega and unique keys pass through unchanged (each is
// already atomic); composite keys are split at every range boundary and
// every distinct class name.
func DisjointKeys(keys []Key) []Key {
	var ranges []atom
	classNames := map[string]bool{}
	notClassNames := map[string]bool{}
	var specials []Key
	seen := map[string]bool{}
	for _, k := range keys {
		switch k.kind {
		case KindEpsilon, KindOmega:
			sig := k.kind.String()
			if !seen[sig] {
				seen[sig] = true
				specials = append(specials, k)
			}
		case KindUnique:
			sig := "u:" + string(k.tag)
			if !seen[sig] {
				seen[sig] = true
				specials = append(specials, k)
			}
		case KindComposite:
			for _, a := range k.atoms {
				switch a.kind {
				case atomRange:
					ranges = append(ranges, a)
				case atomClass:
					classNames[a.name] = true
				case atomNotClass:
					notClassNames[a.name] = true
				}
			}
		}
	}

	out := append([]Key{}, specials...)
	out = append(out, disjointRanges(ranges)...)

	names := sortedKeys(classNames)
	for _, n := range names {
		out = append(out, Class(n))
	}
	notNames := sortedKeys(notClassNames)
	for _, n := range notNames {
		out = append(out, NotClass(n))
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// disjointRanges computes the minimal set of disjoint sub-ranges such
// that every input range is exactly a union of some of them. This is a
// boundary-sweep over rune values: every range contributes a "starts
// here" boundary at lo and a "stops here" boundary at hi+1, sub-ranges
// between consecutive boundaries are tested against every input range,
// and kept when at least one input range fully covers them.
func disjointRanges(ranges []atom) []Key {
	if len(ranges) == 0 {
		return nil
	}
	boundarySet := map[rune]bool{}
	for _, r := range ranges {
		boundarySet[r.lo] = true
		boundarySet[r.hi+1] = true
	}
	bounds := make([]rune, 0, len(boundarySet))
	for b := range boundarySet {
		bounds = append(bounds, b)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

	var out []Key
	for i := 0; i+1 < len(bounds); i++ {
		segLo, segHi := bounds[i], bounds[i+1]-1
		if segHi < segLo {
			continue
		}
		for _, r := range ranges {
			if r.lo <= segLo && segHi <= r.hi {
				out = append(out, RangeKey(segLo, segHi))
				break
			}
		}
	}
	return out
}

// MergedKey lives in key.go; InverseKey lives here because it
// needs the Encoding to know the primary range and the closed universe
// of declared class names.

// InverseKey returns the key matching every code point NOT matched by
// any of keys, over the domain [enc's primary range] union [enc's
// declared classes]. It is used to rewrite a rule's explicit catch-all
// action into a concrete key, and to lower a negated character class
// ([^...]) into a composite key.
func InverseKey(enc *encoding.Encoding, keys []Key) (Key, error) {
	var ranges []atom
	usedClasses := map[string]bool{}
	for _, k := range keys {
		if k.kind != KindComposite {
			return Key{}, errors.Errorf("key: InverseKey operand must be composite, got %s", k.kind)
		}
		for _, a := range k.atoms {
			switch a.kind {
			case atomRange:
				ranges = append(ranges, a)
			case atomClass:
				usedClasses[a.name] = true
				// A class may also claim code points inside the primary
				// range; those are covered by the key too.
				plo, phi := enc.PrimaryRange()
				for c := plo; c <= phi; c++ {
					if !enc.ClassMatches(a.name, c) {
						continue
					}
					start := c
					for c < phi && enc.ClassMatches(a.name, c+1) {
						c++
					}
					ranges = append(ranges, atom{kind: atomRange, lo: start, hi: c})
				}
			case atomNotClass:
				lo, hi := enc.PrimaryRange()
				ranges = append(ranges, atom{kind: atomRange, lo: lo, hi: hi})
				for _, n := range enc.ClassNames() {
					if n != a.name {
						usedClasses[n] = true
					}
				}
			}
		}
	}

	lo, hi := enc.PrimaryRange()
	merged := mergeRanges(ranges)
	gaps := complementRanges(lo, hi, merged)

	atoms := make([]atom, 0, len(gaps)+len(enc.ClassNames()))
	for _, g := range gaps {
		atoms = append(atoms, atom{kind: atomRange, lo: g.lo, hi: g.hi})
	}
	for _, n := range enc.ClassNames() {
		if !usedClasses[n] {
			atoms = append(atoms, atom{kind: atomClass, name: n})
		}
	}
	return Key{kind: KindComposite, atoms: normalizeAtoms(atoms)}, nil
}

type runeRange struct{ lo, hi rune }

// complementRanges computes the gaps in [lo, hi] left uncovered by the
// sorted, disjoint ranges in covered.
func complementRanges(lo, hi rune, covered []atom) []runeRange {
	var out []runeRange
	cur := lo
	for _, c := range covered {
		if c.lo > cur {
			out = append(out, runeRange{lo: cur, hi: c.lo - 1})
		}
		if c.hi+1 > cur {
			cur = c.hi + 1
		}
	}
	if cur <= hi {
		out = append(out, runeRange{lo: cur, hi: hi})
	}
	return out
}
