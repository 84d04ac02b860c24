package ds

import (
	"github.com/ValentinKolb/rDS/lib/client"
	"github.com/google/uuid"
)

// KeyFactory produces a fresh remote key whenever an operation must
// materialize a new collection (Copy, algebra results) or needs a unique
// sentinel value. Implementations must return a value that no caller uses as
// a regular key or element.
type KeyFactory func() string

// defaultKeyFactory derives keys from random UUIDs.
func defaultKeyFactory() string {
	return "rds:" + uuid.NewString()
}

// Option configures an adapter at construction time.
type Option func(*adapterOptions)

type adapterOptions struct {
	keyFactory KeyFactory
}

// WithKeyFactory replaces the default uuid-based key generator used for
// derived keys and sentinel values.
func WithKeyFactory(f KeyFactory) Option {
	return func(o *adapterOptions) {
		o.keyFactory = f
	}
}

// --------------------------------------------------------------------------
// Shared adapter base
// --------------------------------------------------------------------------

// base binds an adapter to one remote key. It is immutable once constructed;
// destroying an adapter never destroys remote state. Multiple adapters may
// alias the same key, the remote store is the single source of truth.
type base struct {
	client     client.IStructClient
	key        string
	keyFactory KeyFactory
}

func newBase(c client.IStructClient, key string, opts ...Option) (base, error) {
	if c == nil {
		return base{}, NewError(KindType, "client must not be nil")
	}
	if key == "" {
		return base{}, NewError(KindType, "key must not be empty")
	}
	options := adapterOptions{keyFactory: defaultKeyFactory}
	for _, opt := range opts {
		opt(&options)
	}
	return base{client: c, key: key, keyFactory: options.keyFactory}, nil
}

// Key returns the remote key this adapter is bound to.
func (b *base) Key() string {
	return b.key
}

// Client returns the store client this adapter operates through.
func (b *base) Client() client.IStructClient {
	return b.client
}

// Exists reports whether the remote key currently holds a collection. A key
// springs into existence on the first mutating call and disappears again when
// its collection empties.
func (b *base) Exists() (bool, error) {
	ok, err := b.client.Exists(b.key)
	return ok, translate(err)
}

// Clear removes the remote key entirely. Clearing an absent key is a no-op.
func (b *base) Clear() error {
	return translate(b.client.Delete(b.key))
}

// freshKey produces a new derived key via the configured KeyFactory.
func (b *base) freshKey() string {
	return b.keyFactory()
}

// derive builds the base for a collection materialized under a fresh key,
// inheriting client and key factory.
func (b *base) derive() base {
	return base{client: b.client, key: b.freshKey(), keyFactory: b.keyFactory}
}
