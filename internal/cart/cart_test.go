package cart

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/events"
	"github.com/dame6k/beatstore/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T, s store.Store) (*Cart, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	c := New(s, "tab-1", bus)
	require.NoError(t, c.Init())
	return c, bus
}

func TestCartTotals(t *testing.T) {
	c, _ := newTestCart(t, store.NewMemoryStore())
	_, err := c.AddItem(domain.CartItem{ID: "a", Title: "A", Price: 5, Quantity: 2})
	require.NoError(t, err)
	view, err := c.AddItem(domain.CartItem{ID: "b", Title: "B", Price: 10, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, c.Count())
	assert.Equal(t, 20.0, c.Total())
	assert.Equal(t, 3, view.Count)
	assert.Equal(t, 20.0, view.Total)
	assert.Equal(t, "US$ 20,00", view.TotalLabel)
	assert.False(t, view.Empty)
	assert.True(t, view.ClearEnabled)
	assert.True(t, view.CheckoutEnabled)

	line := view.Lines[0]
	assert.Equal(t, "US$ 5,00 c/u", line.UnitLabel)
	assert.Equal(t, "x2", line.QuantityLabel)
	assert.Equal(t, "US$ 10,00", line.SubtotalLabel)
	assert.Equal(t, "Eliminar A", line.RemoveLabel)
	assert.Equal(t, "A", line.Placeholder)
	assert.Equal(t, "Producto", line.TypeLabel)
}

func TestCartMergeAndRemove(t *testing.T) {
	s := store.NewMemoryStore()
	c, _ := newTestCart(t, s)

	item := domain.CartItem{ID: "x", Title: "X", Price: 15, Type: domain.ItemTypeBeat, Quantity: 1}
	_, err := c.AddItem(item)
	require.NoError(t, err)
	view, err := c.AddItem(item)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, "Beat", view.Lines[0].TypeLabel)

	_, err = c.AddItem(domain.CartItem{Title: "no id", Price: 1})
	assert.ErrorIs(t, err, ErrInvalidItem)

	view = c.RemoveItem("missing")
	assert.Len(t, view.Lines, 1)

	reloaded, _ := newTestCart(t, s)
	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, 2, reloaded.Items()[0].Quantity)

	view = c.RemoveItem("x")
	assert.True(t, view.Empty)
	assert.Equal(t, EmptyText, view.EmptyText)
	assert.False(t, view.CheckoutEnabled)
	assert.Equal(t, "US$ 0,00", view.TotalLabel)
}

func TestCartClear(t *testing.T) {
	s := store.NewMemoryStore()
	c, _ := newTestCart(t, s)
	_, err := c.AddItem(domain.CartItem{ID: "a", Price: 1, Quantity: 3})
	require.NoError(t, err)

	view := c.Clear()
	assert.True(t, view.Empty)
	assert.Equal(t, 0, view.Count)

	data, err := s.Get(store.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestCartLoadSanitises(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Put(store.KeyCart, []byte(`[
		{"id": "a", "title": "Beat A", "price": "12.5 USD", "quantity": "2", "type": "beat"},
		{"id": 7, "price": "free", "quantity": 0},
		{"title": "no id", "price": 3},
		"junk",
		null
	]`), "tab-0"))

	c, _ := newTestCart(t, s)
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, domain.CartItem{ID: "a", Title: "Beat A", Price: 12.5, Type: "beat", Quantity: 2}, items[0])
	assert.Equal(t, domain.CartItem{ID: "7", Title: "Producto", Price: 0, Type: "producto", Quantity: 1}, items[1])
}

func TestCartLoadMalformed(t *testing.T) {
	for _, raw := range []string{`{"id":"a"}`, `not json`, ``} {
		s := store.NewMemoryStore()
		require.NoError(t, s.Put(store.KeyCart, []byte(raw), "tab-0"))
		c, _ := newTestCart(t, s)
		assert.Empty(t, c.Items(), raw)
	}
}

func TestCartDrawer(t *testing.T) {
	c, _ := newTestCart(t, store.NewMemoryStore())

	assert.True(t, c.Toggle().Open)
	assert.False(t, c.Toggle().Open)
	assert.True(t, c.Open().Open)
	assert.False(t, c.HandleKey(KeyEscape).Open)
	assert.False(t, c.HandleKey("Enter").Open)

	_, err := c.Checkout()
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = c.AddItem(domain.CartItem{ID: "a", Price: 1})
	require.NoError(t, err)
	c.Open()
	target, err := c.Checkout()
	require.NoError(t, err)
	assert.Equal(t, ContactTarget, target)
	assert.False(t, c.IsOpen())
	assert.Len(t, c.Items(), 1)
}

func TestCartAddProduct(t *testing.T) {
	c, bus := newTestCart(t, store.NewMemoryStore())

	_, err := c.AddProduct("exotica")
	assert.ErrorIs(t, err, ErrUnknownProduct)

	bus.PublishCatalogRendered(events.CatalogRendered{Products: []domain.ProductRef{
		{ID: "exotica", Title: "Exótica", Price: 20, Type: domain.ItemTypeBeat, Meta: "Reggaeton - 74 BPM | Licencia Standard"},
	}})
	bus.PublishBeatsUpdated(events.BeatsUpdated{Beats: []domain.Beat{{
		ID:    "mine",
		Title: "Mine",
		Price: 10,
		Licenses: []domain.License{
			{ID: "standard", Name: "Standard", Price: 10},
			{ID: "premium", Name: "Premium", Price: 30},
		},
	}}})

	view, err := c.AddProduct("exotica")
	require.NoError(t, err)
	assert.True(t, view.Open)
	assert.Equal(t, "Reggaeton - 74 BPM | Licencia Standard", view.Lines[0].Meta)

	view, err = c.AddProduct("mine-premium")
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, 30.0, view.Lines[1].Price)
	assert.Equal(t, "Licencia Premium", view.Lines[1].Meta)

	_, err = c.AddProduct("mine")
	require.NoError(t, err)
	assert.Equal(t, 60.0, c.Total())

	bus.PublishCatalogRendered(events.CatalogRendered{})
	_, err = c.AddProduct("exotica")
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestItemFromTrigger(t *testing.T) {
	tests := []struct {
		name    string
		trigger Trigger
		want    *domain.CartItem
	}{
		{
			name:    "dataset wins",
			trigger: Trigger{ItemID: "beat-x", ItemTitle: " X ", ItemPrice: "12", ItemType: "Beat", ItemCover: "x.webp", ItemMeta: "Trap"},
			want:    &domain.CartItem{ID: "beat-x", Title: "X", Price: 12, Type: "beat", Cover: "x.webp", Meta: "Trap", Quantity: 1},
		},
		{
			name: "beat card fallbacks",
			trigger: Trigger{Card: &Card{
				Kind: CardBeat, Heading: "Night Shift", PriceText: "48 USD", Image: "n.webp",
				Genre: "Drill oscuro - 142 BPM", License: "Licencia Exclusiva",
			}},
			want: &domain.CartItem{ID: "beat-night-shift", Title: "Night Shift", Price: 48, Type: "beat", Cover: "n.webp", Meta: "Drill oscuro - 142 BPM | Licencia Exclusiva", Quantity: 1},
		},
		{
			name:    "service card",
			trigger: Trigger{Card: &Card{Kind: CardService, Heading: "Mezcla y Máster", PriceText: "$ 60,50", FirstParagraph: "Por tema"}},
			want:    &domain.CartItem{ID: "servicio-mezcla-y-master", Title: "Mezcla y Máster", Price: 60.5, Type: "servicio", Meta: "Por tema", Quantity: 1},
		},
		{
			name:    "combo card uses card id and detail",
			trigger: Trigger{Card: &Card{Kind: CardCombo, ItemID: "combo-3", Heading: "Pack", PriceText: "90 USD", ComboDetail: "3 beats", FirstParagraph: "otro"}},
			want:    &domain.CartItem{ID: "combo-3", Title: "Pack", Price: 90, Type: "combo", Meta: "3 beats", Quantity: 1},
		},
		{
			name:    "aria label title",
			trigger: Trigger{AriaLabel: "Agregar Golden Hour", ItemPrice: "40"},
			want:    &domain.CartItem{ID: "beat-agregar-golden-hour", Title: "Agregar Golden Hour", Price: 40, Type: "beat", Quantity: 1},
		},
		{
			name:    "no price",
			trigger: Trigger{ItemTitle: "Gratis", Card: &Card{Kind: CardBeat, PriceText: "consultar"}},
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ItemFromTrigger(tt.trigger))
		})
	}
}

func TestAddFromTriggerWithoutPrice(t *testing.T) {
	c, _ := newTestCart(t, store.NewMemoryStore())
	view, err := c.AddFromTrigger(Trigger{ItemTitle: "Sin precio"})
	assert.ErrorIs(t, err, ErrNoPrice)
	assert.True(t, view.Empty)
	assert.False(t, c.IsOpen())
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "US$ 12,50", FormatCurrency(12.5))
	assert.Equal(t, "$0.00", FormatCurrency(math.NaN()))
	assert.Equal(t, "$0.00", FormatCurrency(math.Inf(1)))
}

func TestCartConcurrentAddsAreStored(t *testing.T) {
	s := store.NewMemoryStore()
	c, _ := newTestCart(t, s)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.AddItem(domain.CartItem{ID: fmt.Sprintf("item-%d", i), Price: 1, Quantity: 1})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, c.Count())
	assert.Len(t, NewRepository(s, "reader").Get(), 20)
}
