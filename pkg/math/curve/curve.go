package curve

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/cronokirby/saferith"
)

// Curve represents a prime order group, together with its scalar field.
//
// Implementations are stateless values, so passing them around by value is cheap.
type Curve interface {
	// NewPoint returns the identity element.
	NewPoint() Point
	// NewBasePoint returns the fixed generator of the group.
	NewBasePoint() Point
	// NewScalar returns the zero scalar.
	NewScalar() Scalar
	// Name returns a unique name for the group.
	Name() string
	// ScalarBits returns the number of bits in the group order.
	ScalarBits() int
	// SafeScalarBytes returns the number of random bytes to reduce to get
	// a statistically uniform scalar.
	SafeScalarBytes() int
	// PointBytes returns the length of the compressed encoding of a point.
	PointBytes() int
	// Order returns the order n of the group.
	Order() *saferith.Modulus
}

// Scalar represents an element of ℤₙ, with n the order of some group.
//
// Arithmetic methods modify the receiver and return it, which lets
// expressions chain: group.NewScalar().Set(c).Mul(x).Add(r).
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Negate() Scalar
	Invert() Scalar
	Equal(Scalar) bool
	IsZero() bool
	Set(Scalar) Scalar
	// SetNat sets the scalar to x mod n.
	SetNat(*saferith.Nat) Scalar
	// Act returns a new point equal to s⋅P.
	Act(Point) Point
	// ActOnBase returns a new point equal to s⋅G.
	ActOnBase() Point
}

// Point represents an element of a group.
//
// Unlike Scalar, arithmetic returns fresh points and leaves the receiver alone.
//
// MarshalBinary returns the canonical compressed encoding, which has a fixed
// length of Curve().PointBytes(). The identity has an encoding as well, so
// encoding never fails for a valid point.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Set(Point) Point
	Equal(Point) bool
	IsIdentity() bool
}

// FromDigest interprets a digest as a big-endian integer, and reduces it
// modulo the order of the group.
//
// The whole digest is used, no matter how long it is compared to the order.
func FromDigest(group Curve, digest []byte) Scalar {
	x := new(saferith.Nat).SetBytes(digest)
	return group.NewScalar().SetNat(x)
}

// Same reports whether two groups are the same.
func Same(a, b Curve) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Name() == b.Name()
}

var groups = map[string]Curve{
	Secp256k1{}.Name():    Secp256k1{},
	Edwards25519{}.Name(): Edwards25519{},
	Ristretto255{}.Name(): Ristretto255{},
	BabyJubJub{}.Name():   BabyJubJub{},
}

// ByName returns the group registered under name.
func ByName(name string) (Curve, error) {
	group, ok := groups[name]
	if !ok {
		return nil, fmt.Errorf("curve: unknown group %q", name)
	}
	return group, nil
}

// Names returns the names of all the groups in this package, sorted.
func Names() []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func modulusFromHex(s string) *saferith.Modulus {
	data, err := hex.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("curve: invalid modulus %q: %v", s, err))
	}
	return saferith.ModulusFromBytes(data)
}

// reducedBytes returns x mod n as a big-endian slice of size bytes.
func reducedBytes(x *saferith.Nat, n *saferith.Modulus, size int) []byte {
	out := make([]byte, size)
	new(saferith.Nat).Mod(x, n).FillBytes(out)
	return out
}

func reverse(data []byte) []byte {
	out := make([]byte, len(data))
	for i := range data {
		out[len(data)-1-i] = data[i]
	}
	return out
}
