package key

// Compare imposes a total, deterministic order over Keys, used to sort
// a state's outgoing transitions before code shaping so that generated
// dispatch code (and any two independent runs over the same input) is
// byte-for-byte reproducible. Composite keys sort before Unique keys,
// which sort before Omega, which sorts before Epsilon; within a kind,
// keys are ordered by their canonical String() form.
func Compare(a, b Key) int {
	ra, rb := kindRank(a.kind), kindRank(b.kind)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	sa, sb := a.String(), b.String()
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

func kindRank(k Kind) int {
	switch k {
	case KindComposite:
		return 0
	case KindUnique:
		return 1
	case KindOmega:
		return 2
	case KindEpsilon:
		return 3
	default:
		return 4
	}
}

// Sort sorts keys in place according to Compare, using insertion sort:
// the slices this operates on (a state's transition alphabet) are small
// enough that the simpler algorithm's cache behavior wins, and it keeps
// equal elements in their original relative order.
func Sort(keys []Key) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && Compare(keys[j-1], keys[j]) > 0; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
}
