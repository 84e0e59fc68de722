package hash

import (
	"crypto/sha256"
	"fmt"
	stdhash "hash"
	"sort"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Function is a fixed output length digest.
//
// Sum hashes the concatenation of its arguments, without any framing.
// Implementations are stateless and safe for concurrent use.
type Function interface {
	// Name identifies the digest in registries and encodings.
	Name() string
	// Size is the length in bytes of every output of Sum.
	Size() int
	Sum(data ...[]byte) []byte
}

type function struct {
	name string
	size int
	new  func() stdhash.Hash
}

func (f *function) Name() string { return f.name }

func (f *function) Size() int { return f.size }

func (f *function) Sum(data ...[]byte) []byte {
	h := f.new()
	for _, d := range data {
		// hash.Hash never returns an error on Write
		_, _ = h.Write(d)
	}
	return h.Sum(make([]byte, 0, f.size))
}

func (f *function) String() string { return f.name }

var (
	SHA256 Function = &function{name: "sha256", size: sha256.Size, new: sha256.New}

	SHA3_256 Function = &function{name: "sha3-256", size: 32, new: sha3.New256}

	BLAKE2b256 Function = &function{name: "blake2b-256", size: blake2b.Size256, new: func() stdhash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(fmt.Sprintf("hash.BLAKE2b256: %v", err))
		}
		return h
	}}

	BLAKE3 Function = &function{name: "blake3-256", size: 32, new: func() stdhash.Hash {
		return blake3.New()
	}}
)

var functions = map[string]Function{
	SHA256.Name():     SHA256,
	SHA3_256.Name():   SHA3_256,
	BLAKE2b256.Name(): BLAKE2b256,
	BLAKE3.Name():     BLAKE3,
}

// ByName returns the digest registered under name.
func ByName(name string) (Function, error) {
	f, ok := functions[name]
	if !ok {
		return nil, fmt.Errorf("hash.ByName: unknown digest %q", name)
	}
	return f, nil
}

// Names returns the names of all registered digests, sorted.
func Names() []string {
	out := make([]string, 0, len(functions))
	for name := range functions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
