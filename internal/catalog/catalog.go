package catalog

import (
	"strings"
	"sync"
	"time"

	"github.com/dame6k/beatstore/internal/beats"
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/events"
	"github.com/dame6k/beatstore/internal/store"
	"github.com/dame6k/beatstore/pkg/common"
	"go.uber.org/zap"
)

// Card is a rendered catalog entry.
type Card struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Genre        string            `json:"genre"`
	LicenseTag   string            `json:"licenseTag"`
	Price        float64           `json:"price"`
	ReleaseDate  string            `json:"releaseDate"`
	Mood         string            `json:"mood"`
	Cover        string            `json:"cover"`
	Audio        string            `json:"audio,omitempty"`
	PriceLabel   string            `json:"priceLabel"`
	LicenseLabel string            `json:"licenseLabel"`
	Offer        string            `json:"offer,omitempty"`
	FilesText    string            `json:"filesText,omitempty"`
	DateLabel    string            `json:"dateLabel"`
	Product      domain.ProductRef `json:"product"`
}

// View is the visible catalog for the active criteria.
type View struct {
	Criteria Criteria `json:"criteria"`
	Cards    []Card   `json:"cards"`
	Empty    bool     `json:"empty"`
}

// Catalog merges the house beats with the profile's custom beats and
// renders filtered views of them.
type Catalog struct {
	custom *store.Repository[[]domain.Beat]
	bus    *events.Bus
	now    func() time.Time

	mu       sync.RWMutex
	source   []domain.Beat
	criteria Criteria
	view     View
	cancel   func()
}

type Option func(*Catalog)

func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// New binds the catalog to the custom beat repository it reads from.
func New(custom *store.Repository[[]domain.Beat], bus *events.Bus, opts ...Option) *Catalog {
	c := &Catalog{
		custom:   custom,
		bus:      bus,
		now:      time.Now,
		source:   BuiltIn(),
		criteria: DefaultCriteria(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init loads the custom beats, renders the default view and re-renders
// with the active criteria whenever the custom collection changes.
func (c *Catalog) Init() error {
	c.cancel = c.bus.SubscribeBeatsUpdated(func(ev events.BeatsUpdated) {
		c.Refresh(ev.Beats)
		c.FilterBeats(c.Criteria())
	})
	c.Refresh(nil)
	c.FilterBeats(c.Criteria())
	return nil
}

func (c *Catalog) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Refresh replaces the custom part of the source. A nil list reloads it
// from storage.
func (c *Catalog) Refresh(custom []domain.Beat) {
	if custom == nil {
		custom = c.custom.Get()
	}
	merged := append(BuiltIn(), custom...)
	c.mu.Lock()
	c.source = merged
	c.mu.Unlock()
}

// Beats returns the merged source in catalog order.
func (c *Catalog) Beats() []domain.Beat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Beat(nil), c.source...)
}

func (c *Catalog) Criteria() Criteria {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.criteria
}

func (c *Catalog) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// FilterBeats recomputes the visible set, replaces the view and tells the
// page which products are now on screen, even when none are.
func (c *Catalog) FilterBeats(criteria Criteria) View {
	criteria = criteria.Normalised()
	visible := Filter(c.Beats(), criteria, c.now())

	view := View{Criteria: criteria, Cards: make([]Card, 0, len(visible)), Empty: len(visible) == 0}
	products := make([]domain.ProductRef, 0, len(visible))
	for i := range visible {
		card := newCard(&visible[i])
		view.Cards = append(view.Cards, card)
		products = append(products, card.Product)
	}

	c.mu.Lock()
	c.criteria = criteria
	c.view = view
	c.mu.Unlock()

	zap.L().Debug("catalog rendered",
		zap.String("namespace", "catalog"),
		zap.String("genre", criteria.Genre),
		zap.String("price", criteria.Price),
		zap.String("date", criteria.Date),
		zap.String("sort", criteria.Sort),
		zap.Int("visible", len(view.Cards)))

	c.bus.PublishCatalogRendered(events.CatalogRendered{Products: products})
	return view
}

func newCard(b *domain.Beat) Card {
	license := common.IfEmptyStr(b.License, beats.DefaultLicenseName)
	date, ok := beats.FormatDate(b.ReleaseDate)
	if !ok {
		date = b.ReleaseDate
	}
	return Card{
		ID:           b.ID,
		Title:        b.Title,
		Genre:        b.Genre,
		LicenseTag:   strings.ToLower(license),
		Price:        b.Price,
		ReleaseDate:  b.ReleaseDate,
		Mood:         b.Mood,
		Cover:        b.Cover,
		Audio:        common.IfEmptyStr(b.Audio, b.Preview),
		PriceLabel:   beats.PriceLabel(b.Price),
		LicenseLabel: beats.LicenseLabel(license),
		Offer:        b.Offer,
		FilesText:    beats.FilesLabel(b.Files),
		DateLabel:    "Subido el " + date,
		Product:      beats.ProductRef(b, ""),
	}
}
