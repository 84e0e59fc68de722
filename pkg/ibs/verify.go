package ibs

import (
	"fmt"
)

// Verify reports whether sig is a valid signature of msg by identity id,
// under the master public key mpk.
//
// A signature that does not match returns false and a nil error. An error is
// only returned when the inputs cannot be processed at all, such as a nil
// field or a value from another group; it always matches ErrArithmetic.
func (s *Scheme) Verify(sig *Signature, id, msg []byte, mpk *MasterPublicKey) (ok bool, err error) {
	const op = "Scheme.Verify"
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, recovered(op, r)
		}
	}()

	if sig == nil {
		return false, arithmeticError(op, fmt.Errorf("sig: %w", ErrInvalidSignature))
	}
	if mpk == nil {
		return false, arithmeticError(op, fmt.Errorf("mpk: %w", ErrInvalidKey))
	}
	for _, check := range []error{
		s.checkPoint("R", sig.R, ErrInvalidSignature),
		s.checkScalar("z", sig.Z, ErrInvalidSignature),
		s.checkScalar("h", sig.H, ErrInvalidSignature),
		s.checkPoint("mpk", mpk.Point, ErrInvalidKey),
	} {
		if check != nil {
			return false, arithmeticError(op, check)
		}
	}
	// No identity was ever issued a key for the empty string.
	if len(id) == 0 {
		return false, nil
	}

	c, err := s.challenge(id, nil, sig.R)
	if err != nil {
		return false, arithmeticError(op, err)
	}

	// Z = z⋅G - h⋅(c⋅mpk + R)
	Z := sig.Z.ActOnBase().Sub(sig.H.Act(c.Act(mpk.Point).Add(sig.R)))

	hPrime, err := s.challenge(id, msg, sig.R, Z)
	if err != nil {
		return false, arithmeticError(op, err)
	}
	return hPrime.Equal(sig.H), nil
}
