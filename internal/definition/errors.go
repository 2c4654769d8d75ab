package definition

import (
	"errors"
	"fmt"
)

// ErrPassOrder is returned when Precompute or Preprocess is called out of
// order or more than once, or a module is added after Precompute.
var ErrPassOrder = errors.New("definition: pass run out of order")

// Precondition error codes (E200-E299).
const (
	ErrCodeSubsortArity     = "E201" // subsort attribute without two formal arguments
	ErrCodeOverloadShape    = "E202" // overload attribute arguments are not symbol applications
	ErrCodeUndeclaredSymbol = "E203" // pattern references a symbol with no declaration
	ErrCodeInstantiation    = "E204" // occurrence cannot be instantiated from its declaration
)

// PreconditionError reports a definition that violates an assumption the
// passes make about well-formed input. The pass that returns it stops
// immediately; the Definition must be discarded.
type PreconditionError struct {
	Code    string
	Subject string // attribute or symbol name
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Subject, e.Message)
}

// IsPreconditionError reports whether err is or wraps a PreconditionError.
func IsPreconditionError(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
