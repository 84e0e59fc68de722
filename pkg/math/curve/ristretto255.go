package curve

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/gtank/ristretto255"
	"github.com/taurusgroup/vbnn-ibs/internal/params"
)

const ristretto255Bytes = 32

// Ristretto255 is the prime order group built on top of edwards25519.
//
// Unlike Edwards25519, every valid encoding decodes to an element of the prime
// order group, and every element has exactly one encoding.
type Ristretto255 struct{}

func (Ristretto255) NewPoint() Point {
	return &Ristretto255Point{value: ristretto255.NewElement()}
}

func (Ristretto255) NewBasePoint() Point {
	return &Ristretto255Point{value: ristretto255.NewElement().Base()}
}

func (Ristretto255) NewScalar() Scalar {
	return &Ristretto255Scalar{value: ristretto255.NewScalar()}
}

func (Ristretto255) Name() string {
	return "ristretto255"
}

func (Ristretto255) ScalarBits() int {
	return 253
}

func (Ristretto255) SafeScalarBytes() int {
	return ristretto255Bytes + params.OversampleBytes
}

func (Ristretto255) PointBytes() int {
	return ristretto255Bytes
}

func (Ristretto255) Order() *saferith.Modulus {
	return edwards25519Order
}

type Ristretto255Scalar struct {
	value *ristretto255.Scalar
}

func ristretto255CastScalar(generic Scalar) *Ristretto255Scalar {
	out, ok := generic.(*Ristretto255Scalar)
	if !ok {
		panic(fmt.Sprintf("failed to convert to ristretto255Scalar: %v", generic))
	}
	return out
}

func (*Ristretto255Scalar) Curve() Curve {
	return Ristretto255{}
}

func (s *Ristretto255Scalar) MarshalBinary() ([]byte, error) {
	return s.value.Encode(nil), nil
}

func (s *Ristretto255Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != ristretto255Bytes {
		return fmt.Errorf("invalid length for ristretto255 scalar: %d", len(data))
	}
	value := ristretto255.NewScalar()
	if err := value.Decode(data); err != nil {
		return fmt.Errorf("invalid bytes for ristretto255 scalar: %w", err)
	}
	s.value = value
	return nil
}

func (s *Ristretto255Scalar) Add(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value.Add(s.value, other.value)
	return s
}

func (s *Ristretto255Scalar) Sub(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value.Subtract(s.value, other.value)
	return s
}

func (s *Ristretto255Scalar) Mul(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value.Multiply(s.value, other.value)
	return s
}

func (s *Ristretto255Scalar) Invert() Scalar {
	s.value.Invert(s.value)
	return s
}

func (s *Ristretto255Scalar) Negate() Scalar {
	s.value.Negate(s.value)
	return s
}

func (s *Ristretto255Scalar) Equal(that Scalar) bool {
	other := ristretto255CastScalar(that)

	return s.value.Equal(other.value) == 1
}

func (s *Ristretto255Scalar) IsZero() bool {
	return s.value.Equal(ristretto255.NewScalar()) == 1
}

func (s *Ristretto255Scalar) Set(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	data := other.value.Encode(nil)
	if err := s.value.Decode(data); err != nil {
		panic(fmt.Sprintf("ristretto255Scalar.Set: %v", err))
	}
	return s
}

func (s *Ristretto255Scalar) SetNat(x *saferith.Nat) Scalar {
	data := reverse(reducedBytes(x, edwards25519Order, ristretto255Bytes))
	if err := s.value.Decode(data); err != nil {
		panic(fmt.Sprintf("ristretto255Scalar.SetNat: reduced value rejected: %v", err))
	}
	return s
}

func (s *Ristretto255Scalar) Act(that Point) Point {
	other := ristretto255CastPoint(that)
	return &Ristretto255Point{value: ristretto255.NewElement().ScalarMult(s.value, other.value)}
}

func (s *Ristretto255Scalar) ActOnBase() Point {
	return &Ristretto255Point{value: ristretto255.NewElement().ScalarBaseMult(s.value)}
}

type Ristretto255Point struct {
	value *ristretto255.Element
}

func ristretto255CastPoint(generic Point) *Ristretto255Point {
	out, ok := generic.(*Ristretto255Point)
	if !ok {
		panic(fmt.Sprintf("failed to convert to ristretto255Point: %v", generic))
	}
	return out
}

func (*Ristretto255Point) Curve() Curve {
	return Ristretto255{}
}

func (p *Ristretto255Point) MarshalBinary() ([]byte, error) {
	return p.value.Encode(nil), nil
}

func (p *Ristretto255Point) UnmarshalBinary(data []byte) error {
	if len(data) != ristretto255Bytes {
		return fmt.Errorf("invalid length for ristretto255Point: %d", len(data))
	}
	value := ristretto255.NewElement()
	if err := value.Decode(data); err != nil {
		return fmt.Errorf("ristretto255Point.UnmarshalBinary: %w", err)
	}
	p.value = value
	return nil
}

func (p *Ristretto255Point) Add(that Point) Point {
	other := ristretto255CastPoint(that)
	return &Ristretto255Point{value: ristretto255.NewElement().Add(p.value, other.value)}
}

func (p *Ristretto255Point) Sub(that Point) Point {
	other := ristretto255CastPoint(that)
	return &Ristretto255Point{value: ristretto255.NewElement().Subtract(p.value, other.value)}
}

func (p *Ristretto255Point) Negate() Point {
	return &Ristretto255Point{value: ristretto255.NewElement().Negate(p.value)}
}

func (p *Ristretto255Point) Set(that Point) Point {
	other := ristretto255CastPoint(that)

	p.value = ristretto255.NewElement().Add(ristretto255.NewElement(), other.value)
	return p
}

func (p *Ristretto255Point) Equal(that Point) bool {
	other := ristretto255CastPoint(that)

	return p.value.Equal(other.value) == 1
}

func (p *Ristretto255Point) IsIdentity() bool {
	return p.value.Equal(ristretto255.NewElement()) == 1
}
