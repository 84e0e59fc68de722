package ibs

import (
	"fmt"
	"io"

	"github.com/taurusgroup/vbnn-ibs/pkg/math/sample"
)

// Extract issues the signing key of identity id, using the master secret key msk.
//
// Every call draws a fresh ρ, so two keys issued for the same identity are
// independent of each other, and both valid.
func (s *Scheme) Extract(rand io.Reader, msk *MasterSecretKey, id []byte) (key *UserKey, err error) {
	const op = "Scheme.Extract"
	defer func() {
		if r := recover(); r != nil {
			key, err = nil, recovered(op, r)
		}
	}()

	if len(id) == 0 {
		return nil, fmt.Errorf("ibs.%s: %w", op, ErrEmptyIdentity)
	}
	if msk == nil {
		return nil, arithmeticError(op, fmt.Errorf("msk: %w", ErrInvalidKey))
	}
	if err = s.checkScalar("msk", msk.Secret, ErrInvalidKey); err != nil {
		return nil, arithmeticError(op, err)
	}

	rho, P, err := sample.ScalarPointPair(randomness(rand), s.group)
	if err != nil {
		return nil, arithmeticError(op, err)
	}

	c, err := s.challenge(id, nil, P)
	if err != nil {
		return nil, arithmeticError(op, err)
	}

	// sk = c⋅msk + ρ
	sk := c.Mul(msk.Secret).Add(rho)

	return &UserKey{Point: P, Secret: sk}, nil
}
