// Package ibs implements the vBNN-IBS identity-based signature scheme.
//
// A trusted authority runs Setup once to obtain a master key pair, then
// Extract to issue a signing key for each identity. Signatures produced with
// such a key are verified against the identity and the master public key
// alone:
//
//	msk, _ := scheme.Setup(nil)
//	key, _ := scheme.Extract(nil, msk, []byte("alice@example.com"))
//	sig, _ := scheme.Sign(nil, []byte("alice@example.com"), msg, key)
//	ok, _ := scheme.Verify(sig, []byte("alice@example.com"), msg, msk.Public())
//
// Every challenge is computed as a digest of the plain concatenation of the
// identity, the message when there is one, and the canonical encodings of the
// points involved, interpreted as a big-endian integer and reduced modulo the
// group order.
package ibs

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/taurusgroup/vbnn-ibs/pkg/hash"
	"github.com/taurusgroup/vbnn-ibs/pkg/math/curve"
)

// Scheme fixes the group and the digest used by every operation.
//
// A Scheme holds no mutable state and is safe for concurrent use.
type Scheme struct {
	group  curve.Curve
	digest hash.Function
}

// NewScheme creates a Scheme over group, using digest for challenges.
func NewScheme(group curve.Curve, digest hash.Function) (*Scheme, error) {
	if group == nil {
		return nil, fmt.Errorf("ibs.NewScheme: %w", ErrNilGroup)
	}
	if digest == nil {
		return nil, fmt.Errorf("ibs.NewScheme: %w", ErrNilDigest)
	}
	if order := group.Order(); order == nil || order.BitLen() < 2 {
		return nil, fmt.Errorf("ibs.NewScheme: group %s has an invalid order", group.Name())
	}
	if digest.Size() <= 0 {
		return nil, fmt.Errorf("ibs.NewScheme: digest %s has invalid size %d", digest.Name(), digest.Size())
	}
	return &Scheme{group: group, digest: digest}, nil
}

// DefaultScheme returns the scheme over secp256k1 with SHA-256.
func DefaultScheme() *Scheme {
	return &Scheme{group: curve.Secp256k1{}, digest: hash.SHA256}
}

// SchemeByName resolves the group and digest from their registered names.
func SchemeByName(groupName, digestName string) (*Scheme, error) {
	group, err := curve.ByName(groupName)
	if err != nil {
		return nil, fmt.Errorf("ibs.SchemeByName: %w", err)
	}
	digest, err := hash.ByName(digestName)
	if err != nil {
		return nil, fmt.Errorf("ibs.SchemeByName: %w", err)
	}
	return NewScheme(group, digest)
}

// Group returns the group the scheme operates in.
func (s *Scheme) Group() curve.Curve {
	return s.group
}

// Digest returns the digest used for challenges.
func (s *Scheme) Digest() hash.Function {
	return s.digest
}

// String returns "<group>/<digest>".
func (s *Scheme) String() string {
	return s.group.Name() + "/" + s.digest.Name()
}

func randomness(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader
	}
	return r
}
