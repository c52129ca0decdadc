// SPDX-License-Identifier: MIT

package algebra

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the algebra engine. Every message is prefixed with
// "algebra:"; callers match with errors.Is.
var (
	// ErrNoHandler is the sentinel behind every *DispatchError.
	ErrNoHandler = errors.New("algebra: no handler registered")

	// ErrParameterMismatch is the sentinel behind every *ParameterMismatchError.
	ErrParameterMismatch = errors.New("algebra: polynomial parameter mismatch")

	// ErrDivisionByZero indicates division by the zero polynomial.
	ErrDivisionByZero = errors.New("algebra: division by zero polynomial")

	// ErrShapeMismatch indicates a ratio whose numerator and denominator differ in kind.
	ErrShapeMismatch = errors.New("algebra: ratio parts have different shape")

	// ErrEmptyPolynomial indicates a polynomial constructed without terms.
	ErrEmptyPolynomial = errors.New("algebra: polynomial has no terms")

	// ErrEmptyParameter indicates a polynomial constructed without a parameter symbol.
	ErrEmptyParameter = errors.New("algebra: polynomial parameter is empty")

	// ErrNotNumeric indicates a numeric routine hit a non-real coefficient.
	ErrNotNumeric = errors.New("algebra: coefficient is not numeric")

	// ErrRootsFailed indicates the companion-matrix eigen decomposition failed.
	ErrRootsFailed = errors.New("algebra: root finding failed")

	// ErrDecode indicates a serialized value does not match the tagged shape.
	ErrDecode = errors.New("algebra: malformed serialized value")
)

// DispatchError reports an (operation, kinds) combination with no handler.
// It signals a gap in the operation table and is never recovered.
type DispatchError struct {
	Op    Operation
	Kinds []Kind
}

func (e *DispatchError) Error() string {
	names := make([]string, len(e.Kinds))
	for i, k := range e.Kinds {
		names[i] = k.String()
	}

	return fmt.Sprintf("algebra: no handler for %s(%s)", e.Op, strings.Join(names, ", "))
}

// Unwrap lets errors.Is(err, ErrNoHandler) match.
func (e *DispatchError) Unwrap() error { return ErrNoHandler }

// ParameterMismatchError reports two polynomials over different symbols.
type ParameterMismatchError struct {
	Op          Operation
	Left, Right string
}

func (e *ParameterMismatchError) Error() string {
	return fmt.Sprintf("algebra: %s of polynomials in %q and %q", e.Op, e.Left, e.Right)
}

// Unwrap lets errors.Is(err, ErrParameterMismatch) match.
func (e *ParameterMismatchError) Unwrap() error { return ErrParameterMismatch }
