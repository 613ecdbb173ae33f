// Package encoding describes the character domain a generated lexer reads
// from: a contiguous "primary range" of numeric code units addressed
// directly by range/switch comparisons, plus zero or more host-defined
// named classes that partition everything outside the primary range
// (and, for the distinguished catch-all class, everything the other
// classes don't cover).
//
// Three built-in encodings are provided (Latin1, UTF16, UTF8); a host can
// also assemble a custom Encoding, optionally loading its named classes
// from a YAML descriptor via LoadClasses.
package encoding

import (
	"sort"

	"github.com/pkg/errors"
)

// RuneRange is an inclusive, closed range of code points.
type RuneRange struct {
	Lo, Hi rune
}

// Contains reports whether c falls within the range.
func (r RuneRange) Contains(c rune) bool { return c >= r.Lo && c <= r.Hi }

// classDef holds one named class and its ranges. Which class is the
// distinguished catch-all is recorded on the Encoding (catchAll).
type classDef struct {
	name   string
	ranges []RuneRange
}

func (c classDef) matches(r rune) bool {
	for _, rg := range c.ranges {
		if rg.Contains(r) {
			return true
		}
	}
	return false
}

// Encoding is an immutable description of a character domain.
type Encoding struct {
	name       string
	primaryLo  rune
	primaryHi  rune
	classes    map[string]classDef
	classOrder []string // deterministic declaration order
	catchAll   string   // "" if none declared
}

// New creates an Encoding whose primary range is [lo, hi] (inclusive).
// Named classes are added afterward with AddClass / SetCatchAll.
func New(name string, lo, hi rune) *Encoding {
	if hi < lo {
		panic("encoding: empty primary range")
	}
	return &Encoding{
		name:      name,
		primaryLo: lo,
		primaryHi: hi,
		classes:   make(map[string]classDef),
	}
}

// Name returns the encoding's identifier ("latin1", "utf16", "utf8", ...).
func (e *Encoding) Name() string { return e.name }

// PrimaryRange returns the inclusive bounds of the primary range.
func (e *Encoding) PrimaryRange() (lo, hi rune) { return e.primaryLo, e.primaryHi }

// InPrimaryRange reports whether c falls inside the primary range.
func (e *Encoding) InPrimaryRange(c rune) bool { return c >= e.primaryLo && c <= e.primaryHi }

// AddClass declares a named class covering the given ranges. Ranges
// outside the primary range are the common case (a class conventionally
// covers code points the primary range doesn't address directly), but
// this is not enforced: a host may declare a class that overlaps the
// primary range when its encoding wants class dispatch there too.
func (e *Encoding) AddClass(name string, ranges []RuneRange) {
	if name == "" {
		panic("encoding: class name must not be empty")
	}
	if _, exists := e.classes[name]; exists {
		panic("encoding: duplicate class " + name)
	}
	cp := make([]RuneRange, len(ranges))
	copy(cp, ranges)
	e.classes[name] = classDef{name: name, ranges: cp}
	e.classOrder = append(e.classOrder, name)
}

// SetCatchAll marks name (already declared via AddClass) as the
// distinguished catch-all class: the class that matches every code point
// not covered by the primary range or any other declared class. Only one
// catch-all may be declared.
func (e *Encoding) SetCatchAll(name string) {
	if _, exists := e.classes[name]; !exists {
		panic("encoding: SetCatchAll on undeclared class " + name)
	}
	if e.catchAll != "" {
		panic("encoding: catch-all already set to " + e.catchAll)
	}
	e.catchAll = name
}

// CatchAllClass returns the name of the declared catch-all class and true,
// or ("", false) if none was declared.
func (e *Encoding) CatchAllClass() (string, bool) { return e.catchAll, e.catchAll != "" }

// ClassNames returns declared class names in declaration order.
func (e *Encoding) ClassNames() []string {
	out := make([]string, len(e.classOrder))
	copy(out, e.classOrder)
	return out
}

// HasClass reports whether name was declared.
func (e *Encoding) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

// ClassMatches reports whether c is a member of the named class. For the
// catch-all class this additionally matches every code point not claimed
// by the primary range or by any other declared class (the catch-all's
// own declared ranges, if any, are still honored first).
func (e *Encoding) ClassMatches(name string, c rune) bool {
	def, ok := e.classes[name]
	if !ok {
		panic("encoding: unknown class " + name)
	}
	if def.matches(c) {
		return true
	}
	if name != e.catchAll {
		return false
	}
	if e.InPrimaryRange(c) {
		return false
	}
	for _, other := range e.classOrder {
		if other == name {
			continue
		}
		if e.classes[other].matches(c) {
			return false
		}
	}
	return true
}

// sortedClassNamesExcept returns declared class names other than except,
// sorted for deterministic iteration independent of declaration order.
func (e *Encoding) sortedClassNamesExcept(except string) []string {
	names := make([]string, 0, len(e.classOrder))
	for _, n := range e.classOrder {
		if n != except {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// ErrUnknownClass is wrapped when a rule or regex references an undeclared
// named class.
var ErrUnknownClass = errors.New("encoding: unknown named class")

// RequireClass returns nil if name is declared, or a wrapped
// ErrUnknownClass otherwise.
func (e *Encoding) RequireClass(name string) error {
	if e.HasClass(name) {
		return nil
	}
	return errors.Wrapf(ErrUnknownClass, "%q", name)
}
