package ibs

import (
	"io"

	"github.com/taurusgroup/vbnn-ibs/pkg/math/sample"
)

// Setup generates a master key pair: msk uniform in [1, n-1] and mpk = msk⋅G.
//
// A nil rand uses crypto/rand.Reader.
func (s *Scheme) Setup(rand io.Reader) (msk *MasterSecretKey, err error) {
	const op = "Scheme.Setup"
	defer func() {
		if r := recover(); r != nil {
			msk, err = nil, recovered(op, r)
		}
	}()

	secret, err := sample.ScalarUnit(randomness(rand), s.group)
	if err != nil {
		return nil, arithmeticError(op, err)
	}
	return &MasterSecretKey{
		Secret:          secret,
		MasterPublicKey: &MasterPublicKey{Point: secret.ActOnBase()},
	}, nil
}
