package shape

import "fmt"

// CatchAllCoverageError reports a state whose deferred transitions
// include the encoding's catch-all class alongside explicit named-class
// transitions that don't, between them, enumerate every declared class.
// The catch-all only stands in for code points outside the primary range
// and outside every other class; it cannot be used to infer coverage of
// a class that was never mentioned at all.
type CatchAllCoverageError struct {
	StateIndex int
	Missing    []string
}

func (e *CatchAllCoverageError) Error() string {
	return fmt.Sprintf("shape: state %d has a catch-all class transition but never mentions class(es) %v",
		e.StateIndex, e.Missing)
}
