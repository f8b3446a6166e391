package store

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decoder turns the stored bytes of a key into a value.
type Decoder[T any] func(data []byte) (T, error)

// Repository is the typed view of one key. Components read and write their
// key through it and never touch serialisation themselves.
type Repository[T any] struct {
	store    Store
	key      string
	origin   string
	fallback func() T
	decode   Decoder[T]
}

type RepositoryOption[T any] func(*Repository[T])

// WithDecoder replaces plain JSON decoding, typically to sanitise entries.
func WithDecoder[T any](d Decoder[T]) RepositoryOption[T] {
	return func(r *Repository[T]) {
		r.decode = d
	}
}

// NewRepository binds key on s. origin tags every write so Subscribe can
// skip changes made through this repository's owner.
func NewRepository[T any](s Store, key, origin string, fallback func() T, opts ...RepositoryOption[T]) *Repository[T] {
	r := &Repository[T]{
		store:    s,
		key:      key,
		origin:   origin,
		fallback: fallback,
		decode: func(data []byte) (T, error) {
			var v T
			err := json.Unmarshal(data, &v)
			return v, err
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository[T]) Key() string {
	return r.key
}

// Get never fails: a missing, unreadable or malformed value yields the fallback.
func (r *Repository[T]) Get() T {
	data, err := r.store.Get(r.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			zap.L().Debug("store read failed", zap.String("key", r.key), zap.Error(err))
		}
		return r.fallback()
	}
	if len(data) == 0 {
		return r.fallback()
	}
	v, err := r.decode(data)
	if err != nil {
		zap.L().Debug("store value discarded", zap.String("key", r.key), zap.Error(err))
		return r.fallback()
	}
	return v
}

func (r *Repository[T]) Set(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "store: encode %s", r.key)
	}
	return r.store.Put(r.key, data, r.origin)
}

func (r *Repository[T]) Clear() error {
	return r.store.Delete(r.key, r.origin)
}

// Subscribe calls fn when another writer changes the key.
func (r *Repository[T]) Subscribe(fn func()) (cancel func()) {
	return r.store.Watch(func(c Change) {
		if c.Key != r.key || c.Origin == r.origin {
			return
		}
		fn()
	})
}

// DecodeList decodes a JSON array into loosely typed entries. Anything that
// is not an array decodes to an empty list.
func DecodeList(data []byte) ([]interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	list, ok := v.([]interface{})
	if !ok {
		return []interface{}{}, nil
	}
	return list, nil
}
