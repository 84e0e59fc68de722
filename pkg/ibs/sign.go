package ibs

import (
	"fmt"
	"io"

	"github.com/taurusgroup/vbnn-ibs/pkg/math/sample"
)

// Sign signs msg on behalf of identity id, with the key issued for it.
//
// Two signatures of the same message are unlinkable, since each draws a fresh nonce y.
func (s *Scheme) Sign(rand io.Reader, id, msg []byte, key *UserKey) (sig *Signature, err error) {
	const op = "Scheme.Sign"
	defer func() {
		if r := recover(); r != nil {
			sig, err = nil, recovered(op, r)
		}
	}()

	if len(id) == 0 {
		return nil, fmt.Errorf("ibs.%s: %w", op, ErrEmptyIdentity)
	}
	if key == nil {
		return nil, arithmeticError(op, fmt.Errorf("key: %w", ErrInvalidKey))
	}
	if err = s.checkPoint("P", key.Point, ErrInvalidKey); err != nil {
		return nil, arithmeticError(op, err)
	}
	if err = s.checkScalar("sk", key.Secret, ErrInvalidKey); err != nil {
		return nil, arithmeticError(op, err)
	}

	y, T, err := sample.ScalarPointPair(randomness(rand), s.group)
	if err != nil {
		return nil, arithmeticError(op, err)
	}

	h, err := s.challenge(id, msg, key.Point, T)
	if err != nil {
		return nil, arithmeticError(op, err)
	}

	// z = h⋅sk + y
	z := s.group.NewScalar().Set(h).Mul(key.Secret).Add(y)

	return &Signature{
		R: s.group.NewPoint().Set(key.Point),
		Z: z,
		H: h,
	}, nil
}
