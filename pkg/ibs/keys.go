package ibs

import (
	"errors"
	"fmt"

	"github.com/taurusgroup/vbnn-ibs/pkg/hash"
	"github.com/taurusgroup/vbnn-ibs/pkg/math/curve"
)

// MasterPublicKey is the authority's public key mpk = msk⋅G.
//
// Verifiers only need this key and the signer's identity.
type MasterPublicKey struct {
	Point curve.Point
}

// MasterSecretKey is the authority's master key pair.
//
// It must never leave the authority issuing user keys.
type MasterSecretKey struct {
	// Secret is msk ∈ [1, n-1].
	Secret curve.Scalar
	*MasterPublicKey
}

// UserKey is the signing key issued to a single identity by Extract.
type UserKey struct {
	// Point is P = ρ⋅G, carried verbatim into every signature as R.
	Point curve.Point
	// Secret is sk = c⋅msk + ρ mod n, with c = H(id ‖ enc(P)) mod n.
	Secret curve.Scalar
}

// Signature is a vBNN-IBS signature (R, z, h).
type Signature struct {
	R curve.Point
	Z curve.Scalar
	H curve.Scalar
}

// Public returns the public part of the master key pair.
func (sk *MasterSecretKey) Public() *MasterPublicKey {
	return sk.MasterPublicKey
}

// Curve returns the group of the key.
func (pk *MasterPublicKey) Curve() curve.Curve {
	return pk.Point.Curve()
}

// Validate checks that msk ≠ 0, that both halves belong to group, and that mpk = msk⋅G.
func (sk *MasterSecretKey) Validate(group curve.Curve) error {
	if sk == nil || sk.Secret == nil || sk.MasterPublicKey == nil || sk.Point == nil {
		return fmt.Errorf("ibs.MasterSecretKey.Validate: %w: missing field", ErrInvalidKey)
	}
	if !curve.Same(sk.Secret.Curve(), group) || !curve.Same(sk.Point.Curve(), group) {
		return fmt.Errorf("ibs.MasterSecretKey.Validate: %w", ErrGroupMismatch)
	}
	if sk.Secret.IsZero() {
		return fmt.Errorf("ibs.MasterSecretKey.Validate: %w: secret is zero", ErrInvalidKey)
	}
	if !sk.Secret.ActOnBase().Equal(sk.Point) {
		return fmt.Errorf("ibs.MasterSecretKey.Validate: %w: public key does not match secret", ErrInvalidKey)
	}
	return nil
}

// Validate checks the key material received from an authority, using only public data:
//
//	sk⋅G = P + c⋅mpk, c = H(id ‖ enc(P)) mod n.
//
// A key passing this check produces signatures accepted by Verify for id and mpk.
func (key *UserKey) Validate(scheme *Scheme, id []byte, mpk *MasterPublicKey) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered("UserKey.Validate", r)
		}
	}()

	if len(id) == 0 {
		return fmt.Errorf("ibs.UserKey.Validate: %w", ErrEmptyIdentity)
	}
	if key == nil || mpk == nil {
		return fmt.Errorf("ibs.UserKey.Validate: %w: nil key", ErrInvalidKey)
	}
	if err = errors.Join(
		scheme.checkPoint("P", key.Point, ErrInvalidKey),
		scheme.checkScalar("sk", key.Secret, ErrInvalidKey),
		scheme.checkPoint("mpk", mpk.Point, ErrInvalidKey),
	); err != nil {
		return fmt.Errorf("ibs.UserKey.Validate: %w", err)
	}

	c, err := scheme.challenge(id, nil, key.Point)
	if err != nil {
		return arithmeticError("UserKey.Validate", err)
	}
	expected := c.Act(mpk.Point).Add(key.Point)
	if !key.Secret.ActOnBase().Equal(expected) {
		return fmt.Errorf("ibs.UserKey.Validate: %w: key was not issued for this identity", ErrInvalidKey)
	}
	return nil
}

// Fingerprint returns a short identifier of the master public key, for display and logging.
func (pk *MasterPublicKey) Fingerprint() ([]byte, error) {
	h := hash.New(hash.BytesWithDomain{TheDomain: "vBNN-IBS MasterPublicKey", Bytes: []byte(pk.Point.Curve().Name())})
	if err := h.WriteAny(pk.Point); err != nil {
		return nil, fmt.Errorf("ibs.MasterPublicKey.Fingerprint: %w", err)
	}
	return h.Sum(), nil
}

// Fingerprint returns a short identifier of the public part of the user key.
//
// The secret scalar does not influence the result.
func (key *UserKey) Fingerprint() ([]byte, error) {
	h := hash.New(hash.BytesWithDomain{TheDomain: "vBNN-IBS UserKey", Bytes: []byte(key.Point.Curve().Name())})
	if err := h.WriteAny(key.Point); err != nil {
		return nil, fmt.Errorf("ibs.UserKey.Fingerprint: %w", err)
	}
	return h.Sum(), nil
}
