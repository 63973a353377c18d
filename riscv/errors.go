package riscv

import "fmt"

// EncodingError reports one of the three fatal encoder error kinds from
// spec.md §7: a relocation-range violation, an unsupported type passed
// to a typed helper (e.g. ExtU/ExtS on an unsupported width), or an
// unparseable constraint letter. All three are internal translator
// bugs; none are recoverable, matching the original tcg-target's
// tcg_abort()-on-mismatch behaviour.
type EncodingError struct {
	Message string // human-readable description
	Letter  byte   // set for unparseable-constraint errors, else 0
	Site    uint32 // code cursor at the relocation site, if applicable
	Wrapped error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	msg := e.Message
	if e.Letter != 0 {
		msg = fmt.Sprintf("%s: %q", msg, e.Letter)
	}
	if e.Site != 0 {
		msg = fmt.Sprintf("%s (site=0x%08x)", msg, e.Site)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return "riscv encoder: " + msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EncodingError) Unwrap() error {
	return e.Wrapped
}

// newRelocRangeError builds the relocation-range-violation error kind.
func newRelocRangeError(kind RelocKind, site uint32, offset int64) *EncodingError {
	return &EncodingError{
		Message: fmt.Sprintf("relocation %s offset %d out of range", kind, offset),
		Site:    site,
	}
}

// newUnsupportedTypeError builds the unsupported-type error kind.
func newUnsupportedTypeError(op string, width int) *EncodingError {
	return &EncodingError{
		Message: fmt.Sprintf("%s: unsupported type class for %d-bit operand", op, width),
	}
}
