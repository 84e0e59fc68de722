package hash

import (
	"encoding"
	"fmt"
	"io"

	"github.com/taurusgroup/vbnn-ibs/internal/params"
	"github.com/zeebo/blake3"
)

const DigestLengthBytes = params.SecBytes

// Hash is the transcript hash used to derive identifiers of key material.
//
// Every value written to it is framed with its domain, so that different
// sequences of values never produce the same transcript.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash, writing each of the initial values with WriteAny.
func New(initialData ...interface{}) *Hash {
	hash := &Hash{h: blake3.New()}
	if err := hash.WriteAny(initialData...); err != nil {
		panic(fmt.Sprintf("hash.New: %v", err))
	}
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
// If a different length is required, use io.ReadFull(hash.Digest(), out) instead.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - string
//   - hash.WriterToWithDomain
//   - encoding.BinaryMarshaler (curve.Point and curve.Scalar among others)
//
// This function will apply its own domain separation for all types but
// WriterToWithDomain, which already suggests which domain to use.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var err error
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: "[]byte",
				Bytes:     t,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write []byte: %w", err)
			}
		case string:
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: "string",
				Bytes:     []byte(t),
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write string: %w", err)
			}
		case WriterToWithDomain:
			if err = writeWithDomain(hash.h, t); err != nil {
				return fmt.Errorf("hash.Hash: write io.WriterTo: %w", err)
			}
		case encoding.BinaryMarshaler:
			encoded, err := t.MarshalBinary()
			if err != nil {
				return fmt.Errorf("hash.Hash: write encoding.BinaryMarshaler: %w", err)
			}
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: fmt.Sprintf("%T", t),
				Bytes:     encoded,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write encoding.BinaryMarshaler: %w", err)
			}
		default:
			return fmt.Errorf("hash.Hash: unsupported type %T", t)
		}
	}
	return nil
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}
