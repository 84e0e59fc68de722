package ibs

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/vbnn-ibs/pkg/math/curve"
)

// The encodings below carry the group name of every value, so that decoding
// does not need to know the group in advance.

type masterPublicKeyMarshal struct {
	Point *curve.MarshallablePoint
}

type masterSecretKeyMarshal struct {
	Secret *curve.MarshallableScalar
	Point  *curve.MarshallablePoint
}

type userKeyMarshal struct {
	Point  *curve.MarshallablePoint
	Secret *curve.MarshallableScalar
}

type signatureMarshal struct {
	R    *curve.MarshallablePoint
	Z, H *curve.MarshallableScalar
}

func (pk *MasterPublicKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&masterPublicKeyMarshal{Point: curve.NewMarshallablePoint(pk.Point)})
}

func (pk *MasterPublicKey) UnmarshalBinary(data []byte) error {
	m := &masterPublicKeyMarshal{}
	if err := cbor.Unmarshal(data, m); err != nil {
		return fmt.Errorf("ibs.MasterPublicKey: %w", err)
	}
	if m.Point == nil || m.Point.Point == nil {
		return fmt.Errorf("ibs.MasterPublicKey: %w: missing point", ErrInvalidKey)
	}
	if m.Point.Point.IsIdentity() {
		return fmt.Errorf("ibs.MasterPublicKey: %w: identity point", ErrInvalidKey)
	}
	pk.Point = m.Point.Point
	return nil
}

// MarshalBinary encodes both the secret and the public key.
func (sk *MasterSecretKey) MarshalBinary() ([]byte, error) {
	if sk.MasterPublicKey == nil {
		return nil, fmt.Errorf("ibs.MasterSecretKey: %w: missing public key", ErrInvalidKey)
	}
	return cbor.Marshal(&masterSecretKeyMarshal{
		Secret: curve.NewMarshallableScalar(sk.Secret),
		Point:  curve.NewMarshallablePoint(sk.Point),
	})
}

// UnmarshalBinary decodes the key, and checks it with Validate.
func (sk *MasterSecretKey) UnmarshalBinary(data []byte) error {
	m := &masterSecretKeyMarshal{}
	if err := cbor.Unmarshal(data, m); err != nil {
		return fmt.Errorf("ibs.MasterSecretKey: %w", err)
	}
	if m.Secret == nil || m.Point == nil {
		return fmt.Errorf("ibs.MasterSecretKey: %w: missing field", ErrInvalidKey)
	}
	out := &MasterSecretKey{
		Secret:          m.Secret.Scalar,
		MasterPublicKey: &MasterPublicKey{Point: m.Point.Point},
	}
	if out.Secret == nil {
		return fmt.Errorf("ibs.MasterSecretKey: %w: missing secret", ErrInvalidKey)
	}
	if err := out.Validate(out.Secret.Curve()); err != nil {
		return fmt.Errorf("ibs.MasterSecretKey: %w", err)
	}
	*sk = *out
	return nil
}

func (key *UserKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&userKeyMarshal{
		Point:  curve.NewMarshallablePoint(key.Point),
		Secret: curve.NewMarshallableScalar(key.Secret),
	})
}

// UnmarshalBinary decodes the key. Use Validate to check it was issued for a given identity.
func (key *UserKey) UnmarshalBinary(data []byte) error {
	m := &userKeyMarshal{}
	if err := cbor.Unmarshal(data, m); err != nil {
		return fmt.Errorf("ibs.UserKey: %w", err)
	}
	if m.Point == nil || m.Secret == nil || m.Point.Point == nil || m.Secret.Scalar == nil {
		return fmt.Errorf("ibs.UserKey: %w: missing field", ErrInvalidKey)
	}
	if !curve.Same(m.Point.Point.Curve(), m.Secret.Scalar.Curve()) {
		return fmt.Errorf("ibs.UserKey: %w", ErrGroupMismatch)
	}
	key.Point, key.Secret = m.Point.Point, m.Secret.Scalar
	return nil
}

func (sig *Signature) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&signatureMarshal{
		R: curve.NewMarshallablePoint(sig.R),
		Z: curve.NewMarshallableScalar(sig.Z),
		H: curve.NewMarshallableScalar(sig.H),
	})
}

func (sig *Signature) UnmarshalBinary(data []byte) error {
	m := &signatureMarshal{}
	if err := cbor.Unmarshal(data, m); err != nil {
		return fmt.Errorf("ibs.Signature: %w", err)
	}
	if m.R == nil || m.Z == nil || m.H == nil || m.R.Point == nil || m.Z.Scalar == nil || m.H.Scalar == nil {
		return fmt.Errorf("ibs.Signature: %w: missing field", ErrInvalidSignature)
	}
	group := m.R.Point.Curve()
	if !curve.Same(group, m.Z.Scalar.Curve()) || !curve.Same(group, m.H.Scalar.Curve()) {
		return fmt.Errorf("ibs.Signature: %w", ErrGroupMismatch)
	}
	sig.R, sig.Z, sig.H = m.R.Point, m.Z.Scalar, m.H.Scalar
	return nil
}
