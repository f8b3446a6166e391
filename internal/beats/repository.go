package beats

import (
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/store"
)

// NewRepository binds the custom beat key of a profile. Stored entries are
// normalised on every read.
func NewRepository(s store.Store, origin string) *store.Repository[[]domain.Beat] {
	return store.NewRepository(s, store.KeyCustomBeats, origin,
		func() []domain.Beat { return []domain.Beat{} },
		store.WithDecoder(func(data []byte) ([]domain.Beat, error) {
			list, err := store.DecodeList(data)
			if err != nil {
				return nil, err
			}
			return DecodeCustomBeats(list), nil
		}))
}
