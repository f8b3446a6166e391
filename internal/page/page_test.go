package page

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dame6k/beatstore/internal/admin"
	"github.com/dame6k/beatstore/internal/auth"
	"github.com/dame6k/beatstore/internal/catalog"
	"github.com/dame6k/beatstore/internal/events"
	"github.com/dame6k/beatstore/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var september = time.Date(2025, 9, 28, 10, 0, 0, 0, time.UTC)

func openPage(t *testing.T, s store.Store, origin string) *Page {
	t.Helper()
	p, err := New(s,
		WithOrigin(origin),
		WithClock(func() time.Time { return september }),
		WithHasher(&auth.BcryptHasher{Cost: bcrypt.MinCost}),
		WithMaxUpload(1024))
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func file(name, content string) *admin.Upload {
	return &admin.Upload{Name: name, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}}
}

func TestPageInitialState(t *testing.T) {
	p := openPage(t, store.NewMemoryStore(), "tab-1")

	assert.False(t, p.Auth.View().LoggedIn)
	assert.True(t, p.Beats.View().Empty)
	assert.Len(t, p.Catalog.View().Cards, 8)
	assert.True(t, p.Cart.View().Empty)
	assert.Len(t, p.Chrome.Cards(), 8)
	assert.True(t, p.Chrome.Audio.Guarded("catalog/exotica"))

	_, ok := p.Cart.Product("night-shift")
	assert.True(t, ok)
}

func TestPagesShareProfile(t *testing.T) {
	s := store.NewMemoryStore()
	tab1 := openPage(t, s, "tab-1")
	tab2 := openPage(t, s, "tab-2")

	_, err := tab1.Auth.Login("ADMIN@beats.com", auth.DefaultAdminPassword)
	require.NoError(t, err)
	assert.True(t, tab2.Auth.IsAdmin())

	tab2.Catalog.FilterBeats(catalog.Criteria{Genre: "trap"})
	tab2.Chrome.Filter("trap")

	beat, err := tab1.Beats.CreateBeat(context.Background(), admin.BeatForm{
		Title:   "Cross Tab",
		Genre:   "trap",
		Cover:   file("c.webp", "RIFF"),
		Preview: file("p.mp3", "ID3"),
		Licenses: []admin.LicenseInput{
			{Key: "standard", Name: "Standard", Enabled: true, Price: "30", Package: file("s.zip", "PK")},
			{Key: "premium", Name: "Premium", Enabled: true, Price: "50", Package: file("p.zip", "PK")},
		},
	})
	require.NoError(t, err)

	// The other page re-renders from storage without being told directly.
	require.Len(t, tab2.Beats.View().Home, 1)
	assert.Equal(t, "Cross Tab", tab2.Beats.View().Home[0].Title)

	// The page that created it refreshed its catalog through its own bus.
	cards := tab1.Catalog.View().Cards
	require.Len(t, cards, 9)
	assert.Equal(t, beat.ID, cards[0].ID)

	view, err := tab1.Cart.AddProduct(beat.ID + "-premium")
	require.NoError(t, err)
	assert.True(t, view.Open)
	assert.Equal(t, 50.0, view.Total)

	view, err = tab1.Cart.AddProduct("under-pleasure")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)

	reopened := openPage(t, s, "tab-3")
	assert.Equal(t, 85.0, reopened.Cart.Total())
	assert.True(t, reopened.Auth.IsAdmin())
	assert.Len(t, reopened.Catalog.View().Cards, 9)

	require.NoError(t, tab1.Auth.Logout())
	assert.False(t, tab2.Auth.View().LoggedIn)
}

func TestChromeFollowsCustomBeats(t *testing.T) {
	s := store.NewMemoryStore()
	p := openPage(t, s, "tab-1")
	_, err := p.Auth.Login(auth.DefaultAdminEmail, auth.DefaultAdminPassword)
	require.NoError(t, err)

	p.Chrome.Filter("licencia")
	beat, err := p.Beats.CreateBeat(context.Background(), admin.BeatForm{
		Title:    "Guarded",
		Genre:    "drill",
		Cover:    file("c.webp", "RIFF"),
		Preview:  file("p.mp3", "ID3"),
		Licenses: []admin.LicenseInput{{Key: "standard", Enabled: true, Price: "20", Package: file("s.zip", "PK")}},
	})
	require.NoError(t, err)

	assert.True(t, p.Chrome.Audio.Guarded("custom/"+beat.ID))
	assert.True(t, p.Chrome.Audio.Guarded("catalog/"+beat.ID))
	visible := 0
	for _, c := range p.Chrome.Cards() {
		if !c.Hidden {
			visible++
			assert.Equal(t, "custom/"+beat.ID, c.ID)
		}
	}
	assert.Equal(t, 1, visible)
}

func TestPageCloseDropsSubscriptions(t *testing.T) {
	p, err := New(store.NewMemoryStore(), WithHasher(&auth.BcryptHasher{Cost: bcrypt.MinCost}))
	require.NoError(t, err)

	assert.Equal(t, 3, p.Bus.Subscribers(events.TopicBeatsUpdated))
	assert.Equal(t, 1, p.Bus.Subscribers(events.TopicCatalogRendered))

	p.Close()
	assert.Zero(t, p.Bus.Subscribers(events.TopicBeatsUpdated))
	assert.Zero(t, p.Bus.Subscribers(events.TopicCatalogRendered))
}
