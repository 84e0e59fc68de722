package ibs

import (
	"errors"
	"fmt"
)

var (
	// ErrArithmetic is matched by every infrastructure failure, see ArithmeticError.
	ErrArithmetic = errors.New("ibs: arithmetic failure")

	ErrEmptyIdentity    = errors.New("ibs: empty identity")
	ErrInvalidKey       = errors.New("ibs: invalid key")
	ErrGroupMismatch    = errors.New("ibs: group mismatch")
	ErrInvalidSignature = errors.New("ibs: malformed signature")
	ErrNilGroup         = errors.New("ibs: nil group")
	ErrNilDigest        = errors.New("ibs: nil digest")
)

// ArithmeticError reports a failure of a collaborator during an operation:
// the randomness source, the group, the digest, or the encoding of a value.
//
// It never reports that a signature is invalid: Verify returns false for that.
type ArithmeticError struct {
	// Op is the operation that failed, e.g. "Scheme.Sign".
	Op  string
	Err error
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("ibs.%s: %v", e.Op, e.Err)
}

func (e *ArithmeticError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrArithmetic) hold for every ArithmeticError.
func (e *ArithmeticError) Is(target error) bool {
	return target == ErrArithmetic
}

func arithmeticError(op string, err error) error {
	return &ArithmeticError{Op: op, Err: err}
}

// recovered converts a panic value raised by a collaborator into an ArithmeticError.
func recovered(op string, r interface{}) error {
	if err, ok := r.(error); ok {
		return arithmeticError(op, fmt.Errorf("panic: %w", err))
	}
	return arithmeticError(op, fmt.Errorf("panic: %v", r))
}
