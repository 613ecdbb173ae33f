package key

import "github.com/OlegKalashnikov2001/lexergen/encoding"

// MatchesChar reports whether k matches the code point c under enc.
// KindEpsilon, KindOmega and KindUnique never match a real character:
// they are consumed specially by the NFA/DFA walker (epsilon closure,
// the matched-prefix to accept edge and end-of-input/error dispatch,
// respectively).
func (k Key) MatchesChar(enc *encoding.Encoding, c rune) bool {
	switch k.kind {
	case KindEpsilon, KindOmega, KindUnique:
		return false
	case KindComposite:
		for _, a := range k.atoms {
			switch a.kind {
			case atomRange:
				if c >= a.lo && c <= a.hi {
					return true
				}
			case atomClass:
				if enc.ClassMatches(a.name, c) {
					return true
				}
			case atomNotClass:
				if !enc.ClassMatches(a.name, c) {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}

// IsSupersetOf reports whether every code point matched by other is also
// matched by k. It is used during subset construction to test whether an
// NFA edge's original key still applies after the alphabet has been
// refined into disjoint atoms by DisjointKeys.
func (k Key) IsSupersetOf(other Key) bool {
	if k.kind != other.kind {
		return false
	}
	switch k.kind {
	case KindEpsilon, KindOmega:
		return true
	case KindUnique:
		return k.tag == other.tag
	case KindComposite:
		for _, oa := range other.atoms {
			if !atomCovered(k.atoms, oa) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func atomCovered(kAtoms []atom, oa atom) bool {
	for _, ka := range kAtoms {
		if ka.kind != oa.kind {
			continue
		}
		switch ka.kind {
		case atomRange:
			if oa.lo >= ka.lo && oa.hi <= ka.hi {
				return true
			}
		case atomClass, atomNotClass:
			if ka.name == oa.name {
				return true
			}
		}
	}
	return false
}
