package curve

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/vbnn-ibs/internal/params"
)

var (
	babyJubJubOrderBig *big.Int
	babyJubJubOrder    *saferith.Modulus
)

func init() {
	edwards := twistededwards.GetEdwardsCurve()
	babyJubJubOrderBig = new(big.Int).Set(&edwards.Order)
	babyJubJubOrder = saferith.ModulusFromBytes(babyJubJubOrderBig.Bytes())
}

const babyJubJubBytes = 32

// BabyJubJub is the prime order subgroup of the twisted Edwards curve defined
// over the scalar field of BN254, which makes it cheap to use inside SNARK circuits.
type BabyJubJub struct{}

func (BabyJubJub) NewPoint() Point {
	out := new(BabyJubJubPoint)
	out.value.X.SetZero()
	out.value.Y.SetOne()
	return out
}

func (BabyJubJub) NewBasePoint() Point {
	out := new(BabyJubJubPoint)
	out.value = twistededwards.GetEdwardsCurve().Base
	return out
}

func (BabyJubJub) NewScalar() Scalar {
	return &BabyJubJubScalar{value: new(big.Int)}
}

func (BabyJubJub) Name() string {
	return "babyjubjub"
}

func (BabyJubJub) ScalarBits() int {
	return babyJubJubOrderBig.BitLen()
}

func (BabyJubJub) SafeScalarBytes() int {
	return babyJubJubBytes + params.OversampleBytes
}

func (BabyJubJub) PointBytes() int {
	return babyJubJubBytes
}

func (BabyJubJub) Order() *saferith.Modulus {
	return babyJubJubOrder
}

// BabyJubJubScalar is an integer modulo the BabyJubJub subgroup order,
// encoded as 32 big-endian bytes.
type BabyJubJubScalar struct {
	value *big.Int
}

func babyJubJubCastScalar(generic Scalar) *BabyJubJubScalar {
	out, ok := generic.(*BabyJubJubScalar)
	if !ok {
		panic(fmt.Sprintf("failed to convert to babyJubJubScalar: %v", generic))
	}
	return out
}

func (s *BabyJubJubScalar) reduce() *BabyJubJubScalar {
	s.value.Mod(s.value, babyJubJubOrderBig)
	return s
}

func (*BabyJubJubScalar) Curve() Curve {
	return BabyJubJub{}
}

func (s *BabyJubJubScalar) MarshalBinary() ([]byte, error) {
	out := make([]byte, babyJubJubBytes)
	return s.value.FillBytes(out), nil
}

func (s *BabyJubJubScalar) UnmarshalBinary(data []byte) error {
	if len(data) != babyJubJubBytes {
		return fmt.Errorf("invalid length for babyjubjub scalar: %d", len(data))
	}
	value := new(big.Int).SetBytes(data)
	if value.Cmp(babyJubJubOrderBig) >= 0 {
		return fmt.Errorf("invalid bytes for babyjubjub scalar: value >= order")
	}
	s.value = value
	return nil
}

func (s *BabyJubJubScalar) Add(that Scalar) Scalar {
	other := babyJubJubCastScalar(that)

	s.value.Add(s.value, other.value)
	return s.reduce()
}

func (s *BabyJubJubScalar) Sub(that Scalar) Scalar {
	other := babyJubJubCastScalar(that)

	s.value.Sub(s.value, other.value)
	return s.reduce()
}

func (s *BabyJubJubScalar) Mul(that Scalar) Scalar {
	other := babyJubJubCastScalar(that)

	s.value.Mul(s.value, other.value)
	return s.reduce()
}

// Invert sets s to s⁻¹. The inverse of zero is left as zero.
func (s *BabyJubJubScalar) Invert() Scalar {
	if s.IsZero() {
		return s
	}
	s.value.ModInverse(s.value, babyJubJubOrderBig)
	return s
}

func (s *BabyJubJubScalar) Negate() Scalar {
	s.value.Neg(s.value)
	return s.reduce()
}

func (s *BabyJubJubScalar) Equal(that Scalar) bool {
	other := babyJubJubCastScalar(that)

	return s.value.Cmp(other.value) == 0
}

func (s *BabyJubJubScalar) IsZero() bool {
	return s.value.Sign() == 0
}

func (s *BabyJubJubScalar) Set(that Scalar) Scalar {
	other := babyJubJubCastScalar(that)

	s.value = new(big.Int).Set(other.value)
	return s
}

func (s *BabyJubJubScalar) SetNat(x *saferith.Nat) Scalar {
	s.value = new(big.Int).SetBytes(reducedBytes(x, babyJubJubOrder, babyJubJubBytes))
	return s
}

func (s *BabyJubJubScalar) Act(that Point) Point {
	other := babyJubJubCastPoint(that)
	out := new(BabyJubJubPoint)
	out.value.ScalarMultiplication(&other.value, s.value)
	return out
}

func (s *BabyJubJubScalar) ActOnBase() Point {
	base := twistededwards.GetEdwardsCurve().Base
	out := new(BabyJubJubPoint)
	out.value.ScalarMultiplication(&base, s.value)
	return out
}

// BabyJubJubPoint is a point in affine coordinates. The identity is (0, 1).
type BabyJubJubPoint struct {
	value twistededwards.PointAffine
}

func babyJubJubCastPoint(generic Point) *BabyJubJubPoint {
	out, ok := generic.(*BabyJubJubPoint)
	if !ok {
		panic(fmt.Sprintf("failed to convert to babyJubJubPoint: %v", generic))
	}
	return out
}

func (*BabyJubJubPoint) Curve() Curve {
	return BabyJubJub{}
}

func (p *BabyJubJubPoint) MarshalBinary() ([]byte, error) {
	data := p.value.Bytes()
	return data[:], nil
}

func (p *BabyJubJubPoint) UnmarshalBinary(data []byte) error {
	if len(data) != babyJubJubBytes {
		return fmt.Errorf("invalid length for babyJubJubPoint: %d", len(data))
	}
	var value twistededwards.PointAffine
	if _, err := value.SetBytes(data); err != nil {
		return fmt.Errorf("babyJubJubPoint.UnmarshalBinary: %w", err)
	}
	if !value.IsOnCurve() {
		return fmt.Errorf("babyJubJubPoint.UnmarshalBinary: point not on curve")
	}
	p.value = value
	return nil
}

func (p *BabyJubJubPoint) Add(that Point) Point {
	other := babyJubJubCastPoint(that)
	out := new(BabyJubJubPoint)
	out.value.Add(&p.value, &other.value)
	return out
}

func (p *BabyJubJubPoint) Sub(that Point) Point {
	return p.Add(that.Negate())
}

func (p *BabyJubJubPoint) Negate() Point {
	out := new(BabyJubJubPoint)
	out.value.Neg(&p.value)
	return out
}

func (p *BabyJubJubPoint) Set(that Point) Point {
	other := babyJubJubCastPoint(that)

	p.value.Set(&other.value)
	return p
}

func (p *BabyJubJubPoint) Equal(that Point) bool {
	other := babyJubJubCastPoint(that)

	return p.value.Equal(&other.value)
}

func (p *BabyJubJubPoint) IsIdentity() bool {
	return p.value.IsZero()
}
