package store

import "github.com/pkg/errors"

// Validation failures are rejected before any row is written and are
// distinguishable from engine errors with errors.Is. Absence of a row on a
// lookup is not an error; those methods return (nil, nil).
var (
	// ErrInvalid marks a payload that misses a required field or carries
	// an out-of-range value. Wrapped with field context at the call site.
	ErrInvalid = errors.New("invalid payload")

	// ErrDuplicateBook marks an insert that would duplicate an existing
	// book, either by non-empty ISBN or by (title, author) pair.
	ErrDuplicateBook = errors.New("book already exists")

	// ErrBookNotFound marks a child insert referencing a book id with no
	// backing row.
	ErrBookNotFound = errors.New("book not found")
)
