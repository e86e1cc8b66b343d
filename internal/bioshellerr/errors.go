// Package bioshellerr declares the closed set of error kinds named in
// spec.md §7. Parsing and construction errors are meant to surface to
// the caller (the binary exits with a message); sampling-time
// rejections are never represented as errors — see internal/movers.
package bioshellerr

import (
	"errors"
	"strconv"
)

// Kind identifies which of the named error categories a failure
// belongs to, so a caller building the single-line diagnostic in §7
// ("naming the error kind and the offending input") can do so without
// string-matching error text.
type Kind int

const (
	// KindParseError: malformed numeric field in a coordinate or
	// internal-definition file.
	KindParseError Kind = iota
	// KindMissingAtom: a residue is missing an atom referenced by an
	// internal definition.
	KindMissingAtom
	// KindMissingResidue: an index addresses a residue outside the chain.
	KindMissingResidue
	// KindMissingDihedral: a named dihedral was not registered on a residue.
	KindMissingDihedral
	// KindDegenerateGeometry: NeRF placement attempted with |a-b| = 0 or |b-c| = 0.
	KindDegenerateGeometry
	// KindIoError: underlying file-system failure.
	KindIoError
	// KindInvariantViolation: an internal assertion failed (neighbor-list
	// consistency, SURPASS bond-length drift). Reserved for debug builds.
	KindInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case KindParseError:
		return "ParseError"
	case KindMissingAtom:
		return "MissingAtom"
	case KindMissingResidue:
		return "MissingResidue"
	case KindMissingDihedral:
		return "MissingDihedral"
	case KindDegenerateGeometry:
		return "DegenerateGeometry"
	case KindIoError:
		return "IoError"
	case KindInvariantViolation:
		return "InvariantViolation"
	default:
		return "UnknownError"
	}
}

// Error is the concrete error type carrying a Kind, the offending
// input (file name, line number, or residue identifier — whichever
// applies), and an underlying cause.
type Error struct {
	Kind   Kind
	Subject string // file path, residue identifier, or similar locator
	Line    int    // 1-based line number, 0 if not applicable
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + ": " + e.Subject
	if e.Line > 0 {
		msg += ":" + strconv.Itoa(e.Line)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs an *Error of the given kind.
func New(kind Kind, subject string, line int, cause error) *Error {
	return &Error{Kind: kind, Subject: subject, Line: line, Cause: cause}
}

// Is reports whether err, or any error it wraps, is an *Error of the
// given Kind (found with errors.As), so callers can write
// `bioshellerr.Is(err, bioshellerr.KindDegenerateGeometry)` checks.
func Is(err error, kind Kind) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
