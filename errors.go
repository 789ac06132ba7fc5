package taxme

import "errors"

// Errors returned by the package. They are always wrapped with the context needed to
// locate the problem in the source file (line number, role or offending text), use
// errors.Is to test for them.
var (
	ErrUnknownLabel     = errors.New("unknown label")
	ErrIncompleteSchema = errors.New("incomplete label schema")
	ErrAmbiguousLabel   = errors.New("ambiguous label")
	ErrMalformedLabels  = errors.New("malformed labels")

	ErrEmptyRow = errors.New("empty row")

	ErrMissingHeader   = errors.New("missing header")
	ErrMissingColumn   = errors.New("missing column")
	ErrRowSizeMismatch = errors.New("row size mismatch")
	ErrInvalidYear     = errors.New("invalid year")
	ErrInvalidType     = errors.New("invalid type")
	ErrInvalidNumber   = errors.New("invalid number")

	ErrOversoldQuantity        = errors.New("more quantity sold than bought")
	ErrArithmeticInconsistency = errors.New("arithmetic inconsistency")
	ErrAlreadyMatched          = errors.New("ledger already matched")
)
