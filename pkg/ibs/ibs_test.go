package ibs

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/vbnn-ibs/pkg/hash"
	"github.com/taurusgroup/vbnn-ibs/pkg/math/curve"
	"lukechampine.com/frand"
)

// schemes returns one scheme for every registered group and digest.
func schemes(t testing.TB) []*Scheme {
	var out []*Scheme
	for _, groupName := range curve.Names() {
		for _, digestName := range hash.Names() {
			s, err := SchemeByName(groupName, digestName)
			require.NoError(t, err)
			out = append(out, s)
		}
	}
	return out
}

func one(group curve.Curve) curve.Scalar {
	return group.NewScalar().SetNat(new(saferith.Nat).SetUint64(1))
}

type failingReader struct{}

var errEntropy = errors.New("entropy exhausted")

func (failingReader) Read([]byte) (int, error) {
	return 0, errEntropy
}

// panickingDigest simulates a collaborator failing in the middle of an operation.
type panickingDigest struct{}

func (panickingDigest) Name() string { return "panic" }

func (panickingDigest) Size() int { return 32 }

func (panickingDigest) Sum(...[]byte) []byte { panic("digest failure") }

func setupAndExtract(t testing.TB, s *Scheme, id []byte) (*MasterSecretKey, *UserKey) {
	msk, err := s.Setup(rand.Reader)
	require.NoError(t, err)
	key, err := s.Extract(rand.Reader, msk, id)
	require.NoError(t, err)
	return msk, key
}

func TestNewScheme(t *testing.T) {
	_, err := NewScheme(nil, hash.SHA256)
	assert.ErrorIs(t, err, ErrNilGroup)
	_, err = NewScheme(curve.Secp256k1{}, nil)
	assert.ErrorIs(t, err, ErrNilDigest)

	s, err := NewScheme(curve.Edwards25519{}, hash.BLAKE3)
	require.NoError(t, err)
	assert.Equal(t, "edwards25519/blake3-256", s.String())

	def := DefaultScheme()
	assert.Equal(t, "secp256k1", def.Group().Name())
	assert.Equal(t, "sha256", def.Digest().Name())

	_, err = SchemeByName("p256", "sha256")
	assert.Error(t, err)
	_, err = SchemeByName("secp256k1", "md5")
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	for _, s := range schemes(t) {
		t.Run(s.String(), func(t *testing.T) {
			msk, err := s.Setup(rand.Reader)
			require.NoError(t, err)
			assert.False(t, msk.Secret.IsZero())
			assert.True(t, msk.Secret.ActOnBase().Equal(msk.Public().Point), "mpk != msk⋅G")
			assert.NoError(t, msk.Validate(s.Group()))
		})
	}
}

func TestSetup_NilRandomness(t *testing.T) {
	msk, err := DefaultScheme().Setup(nil)
	require.NoError(t, err)
	assert.NoError(t, msk.Validate(curve.Secp256k1{}))
}

func TestExtract_Independent(t *testing.T) {
	id := []byte("alice@example.com")
	for _, s := range schemes(t) {
		t.Run(s.String(), func(t *testing.T) {
			msk, key1 := setupAndExtract(t, s, id)
			key2, err := s.Extract(rand.Reader, msk, id)
			require.NoError(t, err)

			assert.False(t, key1.Point.Equal(key2.Point), "two extractions share P")
			assert.False(t, key1.Secret.Equal(key2.Secret), "two extractions share sk")
			assert.NoError(t, key1.Validate(s, id, msk.Public()))
			assert.NoError(t, key2.Validate(s, id, msk.Public()))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	id := []byte("device-42")
	messages := [][]byte{nil, {}, []byte("hello"), bytes.Repeat([]byte{0xff}, 1000)}
	for _, s := range schemes(t) {
		t.Run(s.String(), func(t *testing.T) {
			msk, key := setupAndExtract(t, s, id)
			for _, msg := range messages {
				sig, err := s.Sign(rand.Reader, id, msg, key)
				require.NoError(t, err)
				assert.True(t, sig.R.Equal(key.Point), "R must be the signer's P")

				ok, err := s.Verify(sig, id, msg, msk.Public())
				require.NoError(t, err)
				assert.True(t, ok, "valid signature rejected, message length %d", len(msg))
			}
		})
	}
}

func TestScenario(t *testing.T) {
	s := DefaultScheme()
	id := []byte("alice@example.com")
	msk, key := setupAndExtract(t, s, id)

	sig, err := s.Sign(rand.Reader, id, []byte("transfer:100"), key)
	require.NoError(t, err)

	ok, err := s.Verify(sig, id, []byte("transfer:100"), msk.Public())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Verify(sig, id, []byte("transfer:101"), msk.Public())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSign_Unlinkable(t *testing.T) {
	s := DefaultScheme()
	id, msg := []byte("alice"), []byte("msg")
	_, key := setupAndExtract(t, s, id)

	sig1, err := s.Sign(rand.Reader, id, msg, key)
	require.NoError(t, err)
	sig2, err := s.Sign(rand.Reader, id, msg, key)
	require.NoError(t, err)

	assert.False(t, sig1.Z.Equal(sig2.Z))
	assert.False(t, sig1.H.Equal(sig2.H))
}

func TestVerify_Tamper(t *testing.T) {
	id, msg := []byte("alice@example.com"), []byte("transfer:100")
	for _, s := range schemes(t) {
		t.Run(s.String(), func(t *testing.T) {
			group := s.Group()
			msk, key := setupAndExtract(t, s, id)
			mpk := msk.Public()
			sig, err := s.Sign(rand.Reader, id, msg, key)
			require.NoError(t, err)

			reject := func(sig *Signature, id, msg []byte) {
				t.Helper()
				ok, err := s.Verify(sig, id, msg, mpk)
				require.NoError(t, err)
				assert.False(t, ok)
			}

			for i := range id {
				tampered := bytes.Clone(id)
				tampered[i] ^= 1
				reject(sig, tampered, msg)
			}
			for i := range msg {
				tampered := bytes.Clone(msg)
				tampered[i] ^= 0x80
				reject(sig, id, tampered)
			}
			reject(sig, id[:len(id)-1], msg)
			reject(sig, id, append(bytes.Clone(msg), 0))

			encodedR, err := sig.R.MarshalBinary()
			require.NoError(t, err)
			decoded := 0
			for i := range encodedR {
				for bit := 0; bit < 8; bit++ {
					tampered := bytes.Clone(encodedR)
					tampered[i] ^= 1 << bit
					R := group.NewPoint()
					if R.UnmarshalBinary(tampered) != nil {
						continue
					}
					decoded++
					reject(&Signature{R: R, Z: sig.Z, H: sig.H}, id, msg)
				}
			}
			assert.NotZero(t, decoded, "no tampered encoding of R could be decoded")

			reject(&Signature{R: sig.R, Z: group.NewScalar().Set(sig.Z).Add(one(group)), H: sig.H}, id, msg)
			reject(&Signature{R: sig.R, Z: sig.Z, H: group.NewScalar().Set(sig.H).Add(one(group))}, id, msg)
			reject(&Signature{R: sig.R.Add(group.NewBasePoint()), Z: sig.Z, H: sig.H}, id, msg)

			// the original signature is untouched by all of the above
			ok, err := s.Verify(sig, id, msg, mpk)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestVerify_CrossIdentity(t *testing.T) {
	for _, s := range schemes(t) {
		t.Run(s.String(), func(t *testing.T) {
			msk, err := s.Setup(rand.Reader)
			require.NoError(t, err)
			alice, err := s.Extract(rand.Reader, msk, []byte("alice"))
			require.NoError(t, err)

			sig, err := s.Sign(rand.Reader, []byte("alice"), []byte("msg"), alice)
			require.NoError(t, err)
			ok, err := s.Verify(sig, []byte("bob"), []byte("msg"), msk.Public())
			require.NoError(t, err)
			assert.False(t, ok)

			// a key issued for alice cannot sign for bob
			forged, err := s.Sign(rand.Reader, []byte("bob"), []byte("msg"), alice)
			require.NoError(t, err)
			ok, err = s.Verify(forged, []byte("bob"), []byte("msg"), msk.Public())
			require.NoError(t, err)
			assert.False(t, ok)

			// nor is a signature valid under another authority
			other, err := s.Setup(rand.Reader)
			require.NoError(t, err)
			ok, err = s.Verify(sig, []byte("alice"), []byte("msg"), other.Public())
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestVerify_Deterministic(t *testing.T) {
	s := DefaultScheme()
	id, msg := []byte("alice"), []byte("msg")
	msk, key := setupAndExtract(t, s, id)
	sig, err := s.Sign(rand.Reader, id, msg, key)
	require.NoError(t, err)
	before, err := sig.MarshalBinary()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		ok, err := s.Verify(sig, id, msg, msk.Public())
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = s.Verify(sig, id, []byte("other"), msk.Public())
		require.NoError(t, err)
		assert.False(t, ok)
	}

	after, err := sig.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, before, after, "Verify mutated the signature")
}

func TestDeterministicRandomness(t *testing.T) {
	seed := make([]byte, 32)
	copy(seed, "vbnn-ibs deterministic test seed")
	run := func() []byte {
		r := frand.NewCustom(seed, 64, 12)
		s := DefaultScheme()
		msk, err := s.Setup(r)
		require.NoError(t, err)
		key, err := s.Extract(r, msk, []byte("alice"))
		require.NoError(t, err)
		sig, err := s.Sign(r, []byte("alice"), []byte("msg"), key)
		require.NoError(t, err)
		data, err := sig.MarshalBinary()
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, run(), run())
}

func TestVerify_AdversarialIdentityPoints(t *testing.T) {
	for _, s := range schemes(t) {
		t.Run(s.String(), func(t *testing.T) {
			group := s.Group()
			msk, err := s.Setup(rand.Reader)
			require.NoError(t, err)

			// z = h = 0 and R = identity make Z the identity
			sig := &Signature{R: group.NewPoint(), Z: group.NewScalar(), H: group.NewScalar()}
			ok, err := s.Verify(sig, []byte("alice"), []byte("msg"), msk.Public())
			require.NoError(t, err)
			assert.False(t, ok)

			key := &UserKey{Point: group.NewPoint(), Secret: group.NewScalar()}
			sig, err = s.Sign(rand.Reader, []byte("alice"), []byte("msg"), key)
			require.NoError(t, err)
			ok, err = s.Verify(sig, []byte("alice"), []byte("msg"), msk.Public())
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestEmptyIdentity(t *testing.T) {
	s := DefaultScheme()
	msk, key := setupAndExtract(t, s, []byte("alice"))

	_, err := s.Extract(rand.Reader, msk, nil)
	assert.ErrorIs(t, err, ErrEmptyIdentity)
	assert.NotErrorIs(t, err, ErrArithmetic)

	_, err = s.Sign(rand.Reader, []byte{}, []byte("msg"), key)
	assert.ErrorIs(t, err, ErrEmptyIdentity)

	sig, err := s.Sign(rand.Reader, []byte("alice"), []byte("msg"), key)
	require.NoError(t, err)
	ok, err := s.Verify(sig, nil, []byte("msg"), msk.Public())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRandomnessFailure(t *testing.T) {
	for _, s := range schemes(t) {
		t.Run(s.String(), func(t *testing.T) {
			msk, err := s.Setup(failingReader{})
			assert.ErrorIs(t, err, ErrArithmetic)
			assert.ErrorIs(t, err, errEntropy)
			assert.Nil(t, msk)

			msk, key := setupAndExtract(t, s, []byte("alice"))

			key2, err := s.Extract(failingReader{}, msk, []byte("alice"))
			assert.ErrorIs(t, err, ErrArithmetic)
			assert.Nil(t, key2)

			sig, err := s.Sign(failingReader{}, []byte("alice"), []byte("msg"), key)
			assert.ErrorIs(t, err, ErrArithmetic)
			assert.Nil(t, sig)

			var arithmetic *ArithmeticError
			require.ErrorAs(t, err, &arithmetic)
			assert.Equal(t, "Scheme.Sign", arithmetic.Op)
		})
	}
}

func TestCollaboratorPanic(t *testing.T) {
	good := DefaultScheme()
	msk, key := setupAndExtract(t, good, []byte("alice"))
	sig, err := good.Sign(rand.Reader, []byte("alice"), []byte("msg"), key)
	require.NoError(t, err)

	bad, err := NewScheme(curve.Secp256k1{}, panickingDigest{})
	require.NoError(t, err)

	key2, err := bad.Extract(rand.Reader, msk, []byte("alice"))
	assert.ErrorIs(t, err, ErrArithmetic)
	assert.Nil(t, key2)

	sig2, err := bad.Sign(rand.Reader, []byte("alice"), []byte("msg"), key)
	assert.ErrorIs(t, err, ErrArithmetic)
	assert.Nil(t, sig2)

	ok, err := bad.Verify(sig, []byte("alice"), []byte("msg"), msk.Public())
	assert.ErrorIs(t, err, ErrArithmetic)
	assert.False(t, ok)

	assert.ErrorIs(t, key.Validate(bad, []byte("alice"), msk.Public()), ErrArithmetic)
}

func TestGroupMismatch(t *testing.T) {
	secp := DefaultScheme()
	ed, err := NewScheme(curve.Edwards25519{}, hash.SHA256)
	require.NoError(t, err)

	msk, key := setupAndExtract(t, ed, []byte("alice"))
	sig, err := ed.Sign(rand.Reader, []byte("alice"), []byte("msg"), key)
	require.NoError(t, err)

	_, err = secp.Extract(rand.Reader, msk, []byte("alice"))
	assert.ErrorIs(t, err, ErrArithmetic)
	assert.ErrorIs(t, err, ErrGroupMismatch)

	_, err = secp.Sign(rand.Reader, []byte("alice"), []byte("msg"), key)
	assert.ErrorIs(t, err, ErrGroupMismatch)

	ok, err := secp.Verify(sig, []byte("alice"), []byte("msg"), msk.Public())
	assert.ErrorIs(t, err, ErrGroupMismatch)
	assert.False(t, ok)

	secpMsk, err := secp.Setup(rand.Reader)
	require.NoError(t, err)
	ok, err = ed.Verify(sig, []byte("alice"), []byte("msg"), secpMsk.Public())
	assert.ErrorIs(t, err, ErrGroupMismatch)
	assert.False(t, ok)
}

func TestNilInputs(t *testing.T) {
	s := DefaultScheme()
	msk, key := setupAndExtract(t, s, []byte("alice"))
	sig, err := s.Sign(rand.Reader, []byte("alice"), []byte("msg"), key)
	require.NoError(t, err)

	_, err = s.Extract(rand.Reader, nil, []byte("alice"))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = s.Extract(rand.Reader, &MasterSecretKey{}, []byte("alice"))
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = s.Sign(rand.Reader, []byte("alice"), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = s.Sign(rand.Reader, []byte("alice"), nil, &UserKey{Point: key.Point})
	assert.ErrorIs(t, err, ErrInvalidKey)

	for _, bad := range []*Signature{nil, {}, {R: sig.R, Z: sig.Z}, {Z: sig.Z, H: sig.H}} {
		ok, err := s.Verify(bad, []byte("alice"), []byte("msg"), msk.Public())
		assert.ErrorIs(t, err, ErrInvalidSignature)
		assert.ErrorIs(t, err, ErrArithmetic)
		assert.False(t, ok)
	}
	ok, err := s.Verify(sig, []byte("alice"), []byte("msg"), nil)
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.False(t, ok)
}

func TestUserKey_Validate(t *testing.T) {
	for _, s := range schemes(t) {
		t.Run(s.String(), func(t *testing.T) {
			group := s.Group()
			msk, key := setupAndExtract(t, s, []byte("alice"))
			mpk := msk.Public()

			assert.NoError(t, key.Validate(s, []byte("alice"), mpk))
			assert.ErrorIs(t, key.Validate(s, []byte("bob"), mpk), ErrInvalidKey)
			assert.ErrorIs(t, key.Validate(s, nil, mpk), ErrEmptyIdentity)

			tampered := &UserKey{Point: key.Point, Secret: group.NewScalar().Set(key.Secret).Add(one(group))}
			assert.ErrorIs(t, tampered.Validate(s, []byte("alice"), mpk), ErrInvalidKey)

			other, err := s.Setup(rand.Reader)
			require.NoError(t, err)
			assert.ErrorIs(t, key.Validate(s, []byte("alice"), other.Public()), ErrInvalidKey)
		})
	}
}

func TestMasterSecretKey_Validate(t *testing.T) {
	s := DefaultScheme()
	msk, err := s.Setup(rand.Reader)
	require.NoError(t, err)
	group := s.Group()

	assert.ErrorIs(t, msk.Validate(curve.Edwards25519{}), ErrGroupMismatch)

	wrong := &MasterSecretKey{Secret: msk.Secret, MasterPublicKey: &MasterPublicKey{Point: group.NewBasePoint()}}
	assert.ErrorIs(t, wrong.Validate(group), ErrInvalidKey)

	zero := &MasterSecretKey{Secret: group.NewScalar(), MasterPublicKey: &MasterPublicKey{Point: group.NewPoint()}}
	assert.ErrorIs(t, zero.Validate(group), ErrInvalidKey)

	var missing *MasterSecretKey
	assert.ErrorIs(t, missing.Validate(group), ErrInvalidKey)
}

func TestFingerprint(t *testing.T) {
	s := DefaultScheme()
	msk, key := setupAndExtract(t, s, []byte("alice"))

	fp1, err := msk.Public().Fingerprint()
	require.NoError(t, err)
	fp2, err := msk.Public().Fingerprint()
	require.NoError(t, err)
	assert.Len(t, fp1, hash.DigestLengthBytes)
	assert.Equal(t, fp1, fp2)

	// same point, different roles
	keyFp, err := (&UserKey{Point: msk.Point, Secret: key.Secret}).Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp1, keyFp)

	// the secret does not influence the fingerprint
	a, err := key.Fingerprint()
	require.NoError(t, err)
	b, err := (&UserKey{Point: key.Point, Secret: msk.Secret}).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLargeMessage(t *testing.T) {
	s := DefaultScheme()
	id := []byte("alice")
	msk, key := setupAndExtract(t, s, id)
	msg := frand.Bytes(1 << 17)

	sig, err := s.Sign(rand.Reader, id, msg, key)
	require.NoError(t, err)
	ok, err := s.Verify(sig, id, msg, msk.Public())
	require.NoError(t, err)
	assert.True(t, ok)

	// the oversized frame was dropped, and pooled frames come back empty
	f := acquireFrame()
	assert.Empty(t, f.buf)
	f.release()
}

// This exists to save the results of functions we want to benchmark, to avoid
// having them optimized away.
var (
	resultSig *Signature
	resultOK  bool
)

func BenchmarkSign(b *testing.B) {
	for _, s := range schemes(b) {
		if s.Digest() != hash.SHA256 {
			continue
		}
		b.Run(s.String(), func(b *testing.B) {
			_, key := setupAndExtract(b, s, []byte("alice"))
			msg := []byte("transfer:100")
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				resultSig, _ = s.Sign(frand.Reader, []byte("alice"), msg, key)
			}
		})
	}
}

func BenchmarkVerify(b *testing.B) {
	for _, s := range schemes(b) {
		if s.Digest() != hash.SHA256 {
			continue
		}
		b.Run(s.String(), func(b *testing.B) {
			msk, key := setupAndExtract(b, s, []byte("alice"))
			msg := []byte("transfer:100")
			sig, err := s.Sign(frand.Reader, []byte("alice"), msg, key)
			require.NoError(b, err)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				resultOK, _ = s.Verify(sig, []byte("alice"), msg, msk.Public())
			}
		})
	}
}
