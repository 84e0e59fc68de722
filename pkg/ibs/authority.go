package ibs

import (
	"context"
	"fmt"
	"io"

	"github.com/taurusgroup/vbnn-ibs/pkg/logger"
	"github.com/taurusgroup/vbnn-ibs/pkg/pool"
	"golang.org/x/sync/errgroup"
)

// Authority is a key generation center: it holds a master secret key and
// issues signing keys to identities.
//
// An Authority is safe for concurrent use.
type Authority struct {
	scheme *Scheme
	msk    *MasterSecretKey
	rand   *pool.LockedReader
	log    *logger.Logger
	// limit bounds the number of concurrent extractions in ExtractMany, <= 0 means no bound.
	limit int
}

// AuthorityOption configures an Authority.
type AuthorityOption func(*Authority)

// WithLogger makes the authority log the keys it issues at debug level.
//
// Only the length of identities and the fingerprints of public values are logged.
func WithLogger(l *logger.Logger) AuthorityOption {
	return func(a *Authority) {
		if l != nil {
			a.log = l.With().Str("component", "ibs.Authority").Str("scheme", a.scheme.String()).Logger()
		}
	}
}

// WithRandomness sets the source of randomness used for extraction, crypto/rand.Reader by default.
//
// The reader is wrapped in a pool.LockedReader, so it need not be safe for concurrent use.
func WithRandomness(r io.Reader) AuthorityOption {
	return func(a *Authority) {
		a.rand = pool.NewLockedReader(randomness(r))
	}
}

// WithConcurrency bounds the number of extractions ExtractMany runs at once.
func WithConcurrency(n int) AuthorityOption {
	return func(a *Authority) {
		a.limit = n
	}
}

func newAuthority(scheme *Scheme, opts []AuthorityOption) *Authority {
	a := &Authority{
		scheme: scheme,
		rand:   pool.NewLockedReader(randomness(nil)),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewAuthority runs Setup with a fresh master key pair.
//
// The randomness set by WithRandomness is used for Setup as well.
func NewAuthority(scheme *Scheme, opts ...AuthorityOption) (*Authority, error) {
	if scheme == nil {
		return nil, fmt.Errorf("ibs.NewAuthority: nil scheme")
	}
	a := newAuthority(scheme, opts)
	msk, err := scheme.Setup(a.rand)
	if err != nil {
		return nil, err
	}
	a.msk = msk
	a.logSetup("generated master key")
	return a, nil
}

// NewAuthorityFromKey creates an Authority around an existing master key, after validating it.
func NewAuthorityFromKey(scheme *Scheme, msk *MasterSecretKey, opts ...AuthorityOption) (*Authority, error) {
	if scheme == nil {
		return nil, fmt.Errorf("ibs.NewAuthorityFromKey: nil scheme")
	}
	if err := msk.Validate(scheme.Group()); err != nil {
		return nil, fmt.Errorf("ibs.NewAuthorityFromKey: %w", err)
	}
	a := newAuthority(scheme, opts)
	a.msk = msk
	a.logSetup("loaded master key")
	return a, nil
}

func (a *Authority) logSetup(msg string) {
	fp, err := a.msk.Public().Fingerprint()
	if err != nil {
		a.log.Warn().Err(err).Msg("failed to fingerprint master public key")
		return
	}
	a.log.Debug().Hex("mpk", fp).Msg(msg)
}

// Scheme returns the scheme the authority issues keys for.
func (a *Authority) Scheme() *Scheme {
	return a.scheme
}

// Public returns the master public key, which verifiers need.
func (a *Authority) Public() *MasterPublicKey {
	return a.msk.Public()
}

// Extract issues a signing key for id.
func (a *Authority) Extract(id []byte) (*UserKey, error) {
	key, err := a.scheme.Extract(a.rand, a.msk, id)
	if err != nil {
		a.log.Warn().Int("id_len", len(id)).Err(err).Msg("extraction failed")
		return nil, err
	}
	fp, err := key.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("ibs.Authority.Extract: %w", err)
	}
	a.log.Debug().Int("id_len", len(id)).Hex("key", fp).Msg("issued user key")
	return key, nil
}

// ExtractMany issues a signing key for each of ids, concurrently.
//
// The key at index i is issued for ids[i]. On the first failure, or when ctx
// is done, no further extraction is started and the error is returned, with a
// nil slice.
func (a *Authority) ExtractMany(ctx context.Context, ids [][]byte) ([]*UserKey, error) {
	keys := make([]*UserKey, len(ids))
	eg, egCtx := errgroup.WithContext(ctx)
	if a.limit > 0 {
		eg.SetLimit(a.limit)
	}
	for i := range ids {
		if egCtx.Err() != nil {
			break
		}
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			key, err := a.Extract(ids[i])
			if err != nil {
				return fmt.Errorf("ibs.Authority.ExtractMany: identity %d: %w", i, err)
			}
			keys[i] = key
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// the loop may have stopped early without any goroutine failing
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
