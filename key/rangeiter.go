package key

import "github.com/pkg/errors"

// EmitKind discriminates the atoms RangeIter yields.
type EmitKind uint8

const (
	// EmitPrimaryRange is a contiguous sub-range of the primary range,
	// emitted as a numeric comparison (if/switch range test).
	EmitPrimaryRange EmitKind = iota
	// EmitClass is a named-class membership test.
	EmitClass
	// EmitUnique is a synthetic pseudo-symbol dispatch (eos, catch_all,
	// no_match).
	EmitUnique
	// EmitOmega is the matched-prefix to accept edge marker.
	EmitOmega
)

// EmitAtom is one code-shaper-ready dispatch unit.
type EmitAtom struct {
	Kind  EmitKind
	Lo    rune
	Hi    rune
	Class string
	Tag   UniqueTag
}

// ErrNotEmittable is returned by RangeIter for keys with no concrete
// emission form (the epsilon marker, and any NotClass atom that was not
// resolved to a concrete positive class set via InverseKey/DisjointKeys
// before code shaping).
var ErrNotEmittable = errors.New("key: not emittable")

// RangeIter decomposes k into the atoms a code shaper can turn into
// comparisons: contiguous primary-range intervals, named-class checks,
// unique-symbol dispatches, or the omega edge.
func (k Key) RangeIter() ([]EmitAtom, error) {
	switch k.kind {
	case KindOmega:
		return []EmitAtom{{Kind: EmitOmega}}, nil
	case KindUnique:
		return []EmitAtom{{Kind: EmitUnique, Tag: k.tag}}, nil
	case KindEpsilon:
		return nil, errors.Wrap(ErrNotEmittable, "epsilon")
	case KindComposite:
		out := make([]EmitAtom, 0, len(k.atoms))
		for _, a := range k.atoms {
			switch a.kind {
			case atomRange:
				out = append(out, EmitAtom{Kind: EmitPrimaryRange, Lo: a.lo, Hi: a.hi})
			case atomClass:
				out = append(out, EmitAtom{Kind: EmitClass, Class: a.name})
			case atomNotClass:
				return nil, errors.Wrapf(ErrNotEmittable, "unresolved notclass(%s)", a.name)
			}
		}
		return out, nil
	default:
		return nil, errors.Errorf("key: unknown kind %d", k.kind)
	}
}
