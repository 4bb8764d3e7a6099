// Package expr models the flat named value set consumed by the
// downstream parametric CAD system, and renders it in the NX
// expressions file format: one `name = value` entry per line, linear
// units tagged as `[Inch]`, strings double-quoted, groups introduced
// by `//` comment banners.
//
// A Set is append-only and fully ordered; rendering never consults an
// unordered container, so identical inputs always produce byte
// identical output.
package expr

import (
	"fmt"
	"strconv"

	"github.com/autocrate/autocrate/pkg/errors"
)

type lineKind int

const (
	kindBlank lineKind = iota
	kindComment
	kindEntry
)

type line struct {
	kind  lineKind
	unit  string
	name  string
	value string
}

// Set is an ordered collection of named scalar values.
type Set struct {
	lines []line
	names map[string]struct{}
	err   error
}

// NewSet creates an empty expression set.
func NewSet() *Set {
	return &Set{names: make(map[string]struct{})}
}

// Err returns the first construction error, if any. Appends after an
// error are dropped, so a single check after building suffices.
func (s *Set) Err() error { return s.err }

func (s *Set) add(unit, name, value string) {
	if s.err != nil {
		return
	}
	if _, dup := s.names[name]; dup {
		s.err = errors.New(errors.ErrCodeInternal, "duplicate expression name %q", name)
		return
	}
	s.names[name] = struct{}{}
	s.lines = append(s.lines, line{kind: kindEntry, unit: unit, name: name, value: value})
}

// Comment appends a `//` comment line.
func (s *Set) Comment(format string, args ...any) {
	if s.err != nil {
		return
	}
	s.lines = append(s.lines, line{kind: kindComment, value: fmt.Sprintf(format, args...)})
}

// Blank appends an empty separator line.
func (s *Set) Blank() {
	if s.err != nil {
		return
	}
	s.lines = append(s.lines, line{kind: kindBlank})
}

// Number appends a unit-tagged numeric entry with the given number of
// decimal places.
func (s *Set) Number(unit, name string, v float64, prec int) {
	s.add(unit, name, strconv.FormatFloat(v, 'f', prec, 64))
}

// Int appends a bare integer entry.
func (s *Set) Int(name string, v int) {
	s.add("", name, strconv.Itoa(v))
}

// Flag appends a 0/1 suppression-style flag entry.
func (s *Set) Flag(name string, on bool) {
	v := "0"
	if on {
		v = "1"
	}
	s.add("", name, v)
}

// String appends a double-quoted string entry.
func (s *Set) String(name, v string) {
	s.add("", name, strconv.Quote(v))
}

// Len returns the number of value entries (comments and blanks
// excluded).
func (s *Set) Len() int {
	n := 0
	for _, l := range s.lines {
		if l.kind == kindEntry {
			n++
		}
	}
	return n
}

// Lookup returns the rendered value of a named entry. Intended for
// tests and diagnostics; consumers read the rendered file.
func (s *Set) Lookup(name string) (string, bool) {
	for _, l := range s.lines {
		if l.kind == kindEntry && l.name == name {
			return l.value, true
		}
	}
	return "", false
}

// Names returns every entry name in output order.
func (s *Set) Names() []string {
	out := make([]string, 0, len(s.lines))
	for _, l := range s.lines {
		if l.kind == kindEntry {
			out = append(out, l.name)
		}
	}
	return out
}
