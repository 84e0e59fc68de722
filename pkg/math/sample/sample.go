package sample

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/vbnn-ibs/internal/params"
	"github.com/taurusgroup/vbnn-ibs/pkg/math/curve"
)

const maxIterations = params.MaxSampleIterations

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func readBits(rand io.Reader, buf []byte) error {
	if _, err := io.ReadFull(rand, buf); err != nil {
		return fmt.Errorf("sample: failed to read randomness: %w", err)
	}
	return nil
}

// Scalar returns a scalar uniformly distributed in [0, n-1], n being the order of group.
//
// group.SafeScalarBytes() bytes are read and reduced modulo n, which is
// statistically indistinguishable from uniform.
func Scalar(rand io.Reader, group curve.Curve) (curve.Scalar, error) {
	buf := make([]byte, group.SafeScalarBytes())
	if err := readBits(rand, buf); err != nil {
		return nil, err
	}
	s := new(saferith.Nat).SetBytes(buf)
	return group.NewScalar().SetNat(s), nil
}

// ScalarUnit returns a scalar uniformly distributed in [1, n-1].
func ScalarUnit(rand io.Reader, group curve.Curve) (curve.Scalar, error) {
	for i := 0; i < maxIterations; i++ {
		s, err := Scalar(rand, group)
		if err != nil {
			return nil, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
	return nil, ErrMaxIterations
}

// ScalarPointPair returns a uniform scalar s in [0, n-1] together with s⋅G.
func ScalarPointPair(rand io.Reader, group curve.Curve) (curve.Scalar, curve.Point, error) {
	s, err := Scalar(rand, group)
	if err != nil {
		return nil, nil, err
	}
	return s, s.ActOnBase(), nil
}
