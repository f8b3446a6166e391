package catalog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dame6k/beatstore/internal/beats"
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/events"
	"github.com/dame6k/beatstore/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var october = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func ids(list []domain.Beat) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "defaults list everything newest first",
			criteria: Criteria{},
			want:     []string{"night-shift", "exotica", "under-pleasure", "golden-hour", "dreaming", "rappers-3", "velvet-lights", "skyline"},
		},
		{
			name:     "trap in the mid range",
			criteria: Criteria{Genre: "trap", Price: PriceMid},
			want:     []string{"under-pleasure"},
		},
		{
			name:     "low prices include the boundary",
			criteria: Criteria{Price: PriceLow, Sort: SortLowerPrice},
			want:     []string{"exotica", "rappers-3"},
		},
		{
			name:     "high prices most expensive first",
			criteria: Criteria{Price: PriceHigh, Sort: SortHigherPrice},
			want:     []string{"skyline", "night-shift"},
		},
		{
			name:     "last thirty days",
			criteria: Criteria{Date: "30"},
			want:     []string{"night-shift", "exotica"},
		},
		{
			name:     "unreadable window keeps everything",
			criteria: Criteria{Date: "soon", Genre: "rnb", Sort: SortOldest},
			want:     []string{"velvet-lights", "dreaming"},
		},
		{
			name:     "unknown genre",
			criteria: Criteria{Genre: "cumbia"},
			want:     []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(BuiltIn(), tt.criteria, october)))
		})
	}
}

func TestFilterPriceBuckets(t *testing.T) {
	for _, bucket := range []string{PriceLow, PriceMid, PriceHigh} {
		for _, b := range Filter(BuiltIn(), Criteria{Price: bucket}, october) {
			switch bucket {
			case PriceLow:
				assert.LessOrEqual(t, b.Price, 25.0, b.ID)
			case PriceMid:
				assert.Greater(t, b.Price, 25.0, b.ID)
				assert.LessOrEqual(t, b.Price, 45.0, b.ID)
			case PriceHigh:
				assert.Greater(t, b.Price, 45.0, b.ID)
			}
		}
	}
}

func TestFilterKeepsUnreadableDates(t *testing.T) {
	list := []domain.Beat{{ID: "undated", ReleaseDate: "someday"}}
	assert.Equal(t, []string{"undated"}, ids(Filter(list, Criteria{Date: "7"}, october)))
}

func newTestCatalog(t *testing.T, s store.Store, bus *events.Bus) *Catalog {
	t.Helper()
	c := New(beats.NewRepository(s, "tab-1"), bus, WithClock(func() time.Time { return october }))
	require.NoError(t, c.Init())
	return c
}

func TestCatalogInitRendersCustomBeats(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, beats.NewRepository(s, "tab-0").Set([]domain.Beat{{
		ID:          "mine",
		Title:       "Mine",
		Genre:       "trap",
		ReleaseDate: "2025-09-30",
		Licenses:    []domain.License{{ID: "standard", Name: "Standard", Price: 30, Files: []string{"MP3"}}},
	}}))

	bus := events.NewBus()
	var rendered []events.CatalogRendered
	bus.SubscribeCatalogRendered(func(ev events.CatalogRendered) {
		rendered = append(rendered, ev)
	})

	c := newTestCatalog(t, s, bus)
	view := c.View()
	require.Len(t, view.Cards, 9)
	assert.False(t, view.Empty)

	card := view.Cards[0]
	assert.Equal(t, "mine", card.ID)
	assert.Equal(t, "30 USD", card.PriceLabel)
	assert.Equal(t, "Licencia Standard", card.LicenseLabel)
	assert.Equal(t, "standard", card.LicenseTag)
	assert.Equal(t, "Incluye: MP3", card.FilesText)
	assert.Equal(t, "Subido el 30 sept 2025", card.DateLabel)
	assert.Equal(t, "mine", card.Product.ID)
	assert.Equal(t, domain.ItemTypeBeat, card.Product.Type)

	require.Len(t, rendered, 1)
	assert.Len(t, rendered[0].Products, 9)
}

func TestCatalogFollowsBeatsUpdated(t *testing.T) {
	bus := events.NewBus()
	c := newTestCatalog(t, store.NewMemoryStore(), bus)
	c.FilterBeats(Criteria{Genre: "drill"})
	require.Len(t, c.View().Cards, 1)

	var rendered int
	bus.SubscribeCatalogRendered(func(events.CatalogRendered) { rendered++ })
	bus.PublishBeatsUpdated(events.BeatsUpdated{Beats: []domain.Beat{
		{ID: "fresh", Title: "Fresh", Genre: "drill", Price: 60, License: "Exclusiva", ReleaseDate: "2025-09-29"},
	}})

	view := c.View()
	assert.Equal(t, "drill", view.Criteria.Genre)
	assert.Equal(t, []string{"fresh", "night-shift"}, []string{view.Cards[0].ID, view.Cards[1].ID})
	assert.Equal(t, 1, rendered)
}

func TestCatalogEmptyStillPublishes(t *testing.T) {
	bus := events.NewBus()
	c := newTestCatalog(t, store.NewMemoryStore(), bus)

	var got *events.CatalogRendered
	bus.SubscribeCatalogRendered(func(ev events.CatalogRendered) { got = &ev })
	view := c.FilterBeats(Criteria{Genre: "cumbia"})

	assert.True(t, view.Empty)
	assert.Empty(t, view.Cards)
	require.NotNil(t, got)
	assert.Empty(t, got.Products)
}

func TestExportCSV(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, beats.NewRepository(s, "tab-0").Set([]domain.Beat{{
		ID: "mine", Title: "Mine", Genre: "rap", Price: 15, License: "Standard", Files: []string{"MP3", "WAV"}, ReleaseDate: "2025-09-30",
	}}))
	c := newTestCatalog(t, s, events.NewBus())

	var buf bytes.Buffer
	require.NoError(t, c.ExportCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "id,title,genre,license,price,files,release_date,custom", lines[0])
	assert.Equal(t, "exotica,Exótica,reggaeton,Standard,20,,2025-09-05,false", lines[1])
	assert.Equal(t, "mine,Mine,rap,Standard,15,MP3; WAV,2025-09-30,true", lines[9])
}
