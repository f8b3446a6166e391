// Package page assembles the storefront components of one profile around a
// page-local event bus.
package page

import (
	"time"

	"github.com/dame6k/beatstore/internal/admin"
	"github.com/dame6k/beatstore/internal/auth"
	"github.com/dame6k/beatstore/internal/beats"
	"github.com/dame6k/beatstore/internal/cart"
	"github.com/dame6k/beatstore/internal/catalog"
	"github.com/dame6k/beatstore/internal/chrome"
	"github.com/dame6k/beatstore/internal/events"
	"github.com/dame6k/beatstore/internal/store"
	"github.com/dame6k/beatstore/pkg/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Player id prefixes of the two beat grids.
const (
	sectionCatalog = "catalog/"
	sectionCustom  = "custom/"
)

type options struct {
	origin    string
	now       func() time.Time
	hasher    auth.PasswordHasher
	maxUpload int64
}

type Option func(*options)

// WithOrigin fixes the page id used to tag store writes.
func WithOrigin(origin string) Option {
	return func(o *options) { o.origin = origin }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithHasher(h auth.PasswordHasher) Option {
	return func(o *options) { o.hasher = h }
}

func WithMaxUpload(n int64) Option {
	return func(o *options) { o.maxUpload = n }
}

// Page is one open storefront over a profile store.
type Page struct {
	ID      string
	Bus     *events.Bus
	Auth    *auth.Service
	Beats   *admin.Manager
	Catalog *catalog.Catalog
	Cart    *cart.Cart
	Chrome  *chrome.Chrome
}

// New builds and initialises every component of a page over s.
func New(s store.Store, opts ...Option) (*Page, error) {
	o := &options{now: time.Now, maxUpload: 32 << 20}
	for _, opt := range opts {
		opt(o)
	}
	if o.origin == "" {
		o.origin = common.UUID()
	}

	authOpts := []auth.Option{auth.WithClock(o.now)}
	if o.hasher != nil {
		authOpts = append(authOpts, auth.WithHasher(o.hasher))
	}

	p := &Page{ID: o.origin, Bus: events.NewBus()}
	p.Auth = auth.NewService(s, o.origin, authOpts...)
	p.Beats = admin.NewManager(s, o.origin, p.Auth, p.Bus,
		admin.WithClock(o.now), admin.WithMaxUpload(o.maxUpload))
	p.Catalog = catalog.New(beats.NewRepository(s, o.origin), p.Bus, catalog.WithClock(o.now))
	p.Cart = cart.New(s, o.origin, p.Bus)
	p.Chrome = chrome.New(p.Bus, p.beatCards)

	// The cart subscribes before anything renders so its product index sees
	// the first custom beats and catalog renders. The chrome comes last so
	// it re-reads the grids after the catalog has followed an update.
	p.Auth.Init()
	if err := p.Cart.Init(); err != nil {
		p.Close()
		return nil, errors.Wrap(err, "page: cart")
	}
	p.Beats.Init()
	if err := p.Catalog.Init(); err != nil {
		p.Close()
		return nil, errors.Wrap(err, "page: catalog")
	}
	if err := p.Chrome.Init(); err != nil {
		p.Close()
		return nil, errors.Wrap(err, "page: chrome")
	}

	zap.L().Debug("page opened", zap.String("namespace", "page"), zap.String("origin", o.origin))
	return p, nil
}

// Close stops following changes made by other pages and drops every
// subscription on the page bus.
func (p *Page) Close() {
	p.Chrome.Close()
	p.Catalog.Close()
	p.Beats.Close()
	p.Cart.Detach()
	p.Auth.Close()
}

// beatCards lists both beat grids for the chrome.
func (p *Page) beatCards() []chrome.Card {
	catalogCards := p.Catalog.View().Cards
	home := p.Beats.View().Home
	out := make([]chrome.Card, 0, len(catalogCards)+len(home))
	for _, c := range catalogCards {
		out = append(out, chrome.Card{
			ID:      sectionCatalog + c.ID,
			Title:   c.Title,
			Genre:   c.Genre,
			License: c.LicenseTag,
			Audio:   c.Audio,
		})
	}
	for _, c := range home {
		out = append(out, chrome.Card{
			ID:      sectionCustom + c.ID,
			Title:   c.Title,
			Genre:   c.Genre,
			License: c.LicenseTag,
			Audio:   c.Preview,
		})
	}
	return out
}
