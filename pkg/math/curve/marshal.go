package curve

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// MarshallableScalar wraps a Scalar so that it can be decoded without knowing
// its group in advance: the group name travels with the encoding.
type MarshallableScalar struct {
	Scalar Scalar
}

func NewMarshallableScalar(scalar Scalar) *MarshallableScalar {
	return &MarshallableScalar{Scalar: scalar}
}

type marshallableCBOR struct {
	Group string
	Data  []byte
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *MarshallableScalar) MarshalBinary() ([]byte, error) {
	if m.Scalar == nil {
		return nil, fmt.Errorf("curve.MarshallableScalar: nil scalar")
	}
	data, err := m.Scalar.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&marshallableCBOR{Group: m.Scalar.Curve().Name(), Data: data})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (m *MarshallableScalar) UnmarshalBinary(data []byte) error {
	var mCBOR marshallableCBOR
	if err := cbor.Unmarshal(data, &mCBOR); err != nil {
		return fmt.Errorf("curve.MarshallableScalar: %w", err)
	}
	group, err := ByName(mCBOR.Group)
	if err != nil {
		return fmt.Errorf("curve.MarshallableScalar: %w", err)
	}
	m.Scalar = group.NewScalar()
	return m.Scalar.UnmarshalBinary(mCBOR.Data)
}

// MarshallablePoint is the Point counterpart of MarshallableScalar.
type MarshallablePoint struct {
	Point Point
}

func NewMarshallablePoint(point Point) *MarshallablePoint {
	return &MarshallablePoint{Point: point}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *MarshallablePoint) MarshalBinary() ([]byte, error) {
	if m.Point == nil {
		return nil, fmt.Errorf("curve.MarshallablePoint: nil point")
	}
	data, err := m.Point.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&marshallableCBOR{Group: m.Point.Curve().Name(), Data: data})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (m *MarshallablePoint) UnmarshalBinary(data []byte) error {
	var mCBOR marshallableCBOR
	if err := cbor.Unmarshal(data, &mCBOR); err != nil {
		return fmt.Errorf("curve.MarshallablePoint: %w", err)
	}
	group, err := ByName(mCBOR.Group)
	if err != nil {
		return fmt.Errorf("curve.MarshallablePoint: %w", err)
	}
	m.Point = group.NewPoint()
	return m.Point.UnmarshalBinary(mCBOR.Data)
}
