// Package importerr defines the closed set of error kinds the import core
// can fail with, and a small curated error type that keeps a causal chain
// without duplicating the kind's own description in that chain.
package importerr

import "fmt"

// Kind enumerates the terminal failure conditions of an import run.
type Kind int

const (
	// RomFull means the packer could not place every module.
	RomFull Kind = iota
	// OutOfSlots means a secondary map referenced a module-backed song
	// but the free primary-slot pool was exhausted.
	OutOfSlots
	// RangeError means a negative index/count, or index+count exceeding
	// a container's length, was requested.
	RangeError
	// Overflow means a write would extend past a backing buffer.
	Overflow
	// EndOfStream means a read would extend past a backing buffer.
	EndOfStream
	// RomUnsupported means the ROM Access contract could not snapshot
	// the ROM for readback.
	RomUnsupported
	// InvalidLayout means a BankLayout was built from overlapping,
	// inverted, or out-of-bounds free ranges.
	InvalidLayout
	// MalformedLibrary means the library JSON deserializer rejected its
	// input (unknown/invalid fields, bad base64, bad deflate stream).
	MalformedLibrary
)

func (k Kind) String() string {
	switch k {
	case RomFull:
		return "rom full"
	case OutOfSlots:
		return "out of slots"
	case RangeError:
		return "range error"
	case Overflow:
		return "overflow"
	case EndOfStream:
		return "end of stream"
	case RomUnsupported:
		return "rom unsupported"
	case InvalidLayout:
		return "invalid layout"
	case MalformedLibrary:
		return "malformed library"
	default:
		return "unknown error"
	}
}

// Error is a curated error: every import failure carries one of the Kind
// values above plus a human-readable detail, and optionally wraps an
// underlying cause.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an *Error with no wrapped cause.
func New(kind Kind, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

// Newf builds an *Error with a formatted detail message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that carries cause as its causal chain.
func Wrap(kind Kind, detail string, cause error) error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

// Is reports whether err is an *Error of the given kind, anywhere in its
// unwrap chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind == kind {
				return true
			}
			err = e.Cause
			continue
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
