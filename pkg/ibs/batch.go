package ibs

import (
	"github.com/taurusgroup/vbnn-ibs/pkg/pool"
)

// BatchItem is a single signature to check with VerifyBatch.
type BatchItem struct {
	Signature *Signature
	ID        []byte
	Message   []byte
	Master    *MasterPublicKey
}

type batchResult struct {
	ok  bool
	err error
}

// VerifyBatch runs Verify on every item, spreading the work over pl.
//
// A nil pool verifies the items on the current goroutine. The result at
// index i is the result of Verify on items[i]. If any item fails with an
// error, the first such error in item order is returned, with a nil slice.
func (s *Scheme) VerifyBatch(pl *pool.Pool, items []BatchItem) ([]bool, error) {
	results := pl.Parallelize(len(items), func(i int) interface{} {
		item := items[i]
		ok, err := s.Verify(item.Signature, item.ID, item.Message, item.Master)
		return batchResult{ok: ok, err: err}
	})

	out := make([]bool, len(items))
	for i, r := range results {
		res := r.(batchResult)
		if res.err != nil {
			return nil, res.err
		}
		out[i] = res.ok
	}
	return out, nil
}
