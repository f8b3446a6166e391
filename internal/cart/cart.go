// Package cart keeps the shopping cart of a profile: its persisted lines,
// the drawer state and the index of products the page currently offers.
package cart

import (
	"errors"
	"strings"
	"sync"

	"github.com/dame6k/beatstore/internal/beats"
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/events"
	"github.com/dame6k/beatstore/internal/store"
	"github.com/dame6k/beatstore/pkg/common"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const (
	DefaultTitle    = "Producto"
	ContactTarget   = "#contact"
	KeyEscape       = "Escape"
	defaultQuantity = 1
)

var (
	ErrInvalidItem    = errors.New("cart: item id required")
	ErrUnknownProduct = errors.New("cart: unknown product")
	ErrNoPrice        = errors.New("cart: product price unavailable")
	ErrEmpty          = errors.New("cart: cart is empty")
)

// Cart is the per-page cart component.
type Cart struct {
	repo *store.Repository[[]domain.CartItem]
	bus  *events.Bus

	// saving keeps the stored lines at least as new as the last snapshot.
	saving sync.Mutex

	mu       sync.RWMutex
	items    []domain.CartItem
	open     bool
	rendered map[string]domain.ProductRef
	custom   map[string]domain.ProductRef
	view     View
	cancels  []func()
}

func New(s store.Store, origin string, bus *events.Bus) *Cart {
	return &Cart{
		repo:     NewRepository(s, origin),
		bus:      bus,
		items:    []domain.CartItem{},
		rendered: map[string]domain.ProductRef{},
		custom:   map[string]domain.ProductRef{},
	}
}

// NewRepository binds the cart key. Stored lines are sanitised on read.
func NewRepository(s store.Store, origin string) *store.Repository[[]domain.CartItem] {
	return store.NewRepository(s, store.KeyCart, origin,
		func() []domain.CartItem { return []domain.CartItem{} },
		store.WithDecoder(func(data []byte) ([]domain.CartItem, error) {
			list, err := store.DecodeList(data)
			if err != nil {
				return nil, err
			}
			return Sanitise(list), nil
		}))
}

// Sanitise keeps the usable stored lines: objects with an id. Missing
// titles and types get defaults, unreadable prices become 0 and
// quantities below one become one.
func Sanitise(list []interface{}) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		item := domain.CartItem{
			ID:       text(m["id"]),
			Title:    text(m["title"]),
			Type:     text(m["type"]),
			Cover:    text(m["cover"]),
			Meta:     text(m["meta"]),
			Quantity: defaultQuantity,
		}
		if item.ID == "" {
			continue
		}
		if item.Title == "" {
			item.Title = DefaultTitle
		}
		if item.Type == "" {
			item.Type = domain.ItemTypeGeneric
		}
		if price, ok := common.ParseFloat(m["price"]); ok {
			item.Price = price
		}
		if qty, ok := common.ParseInt(m["quantity"]); ok && qty > 0 {
			item.Quantity = qty
		}
		out = append(out, item)
	}
	return out
}

// text stringifies a stored value, treating falsy values as empty.
func text(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if !val {
			return ""
		}
	case float64:
		if val == 0 {
			return ""
		}
	}
	return cast.ToString(v)
}

// Init loads the stored cart, renders it and starts tracking the products
// the page offers.
func (c *Cart) Init() error {
	c.cancels = append(c.cancels,
		c.bus.SubscribeCatalogRendered(c.indexRendered),
		c.bus.SubscribeBeatsUpdated(c.indexCustom))
	c.Load()
	return nil
}

// Detach stops tracking the page's products.
func (c *Cart) Detach() {
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
}

// Load replaces the in-memory lines with the stored ones.
func (c *Cart) Load() View {
	items := c.repo.Get()
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return c.Render()
}

func (c *Cart) indexRendered(ev events.CatalogRendered) {
	index := make(map[string]domain.ProductRef, len(ev.Products))
	for _, p := range ev.Products {
		index[p.ID] = p
	}
	c.mu.Lock()
	c.rendered = index
	c.mu.Unlock()
}

func (c *Cart) indexCustom(ev events.BeatsUpdated) {
	index := make(map[string]domain.ProductRef)
	for i := range ev.Beats {
		for _, p := range beats.ProductRefs(&ev.Beats[i]) {
			index[p.ID] = p
		}
	}
	c.mu.Lock()
	c.custom = index
	c.mu.Unlock()
}

// Product looks up an offered product by its cart id.
func (c *Cart) Product(id string) (domain.ProductRef, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p, ok := c.rendered[id]; ok {
		return p, true
	}
	p, ok := c.custom[id]
	return p, ok
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// AddItem merges item into the line with the same id or appends it.
func (c *Cart) AddItem(item domain.CartItem) (View, error) {
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return c.View(), ErrInvalidItem
	}
	if item.Quantity < 1 {
		item.Quantity = defaultQuantity
	}
	item.Title = common.IfEmptyStr(item.Title, DefaultTitle)
	item.Type = common.IfEmptyStr(item.Type, domain.ItemTypeGeneric)

	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, item)
	}
	c.mu.Unlock()

	zap.L().Debug("cart item added",
		zap.String("namespace", "cart"),
		zap.String("id", item.ID),
		zap.Int("quantity", item.Quantity),
		zap.Bool("merged", merged))
	return c.save(), nil
}

// AddProduct adds one unit of an offered product and opens the drawer.
func (c *Cart) AddProduct(id string) (View, error) {
	p, ok := c.Product(id)
	if !ok {
		return c.View(), ErrUnknownProduct
	}
	if _, err := c.AddItem(p.CartItem()); err != nil {
		return c.View(), err
	}
	return c.Open(), nil
}

// AddFromTrigger adds the product described by an add-to-cart trigger and
// opens the drawer. Triggers without a readable price change nothing.
func (c *Cart) AddFromTrigger(t Trigger) (View, error) {
	item := ItemFromTrigger(t)
	if item == nil {
		return c.View(), ErrNoPrice
	}
	if _, err := c.AddItem(*item); err != nil {
		return c.View(), err
	}
	return c.Open(), nil
}

// RemoveItem drops the line with id. Unknown ids are ignored.
func (c *Cart) RemoveItem(id string) View {
	c.mu.Lock()
	idx := -1
	for i := range c.items {
		if c.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.mu.Unlock()
		return c.View()
	}
	c.items = append(c.items[:idx:idx], c.items[idx+1:]...)
	c.mu.Unlock()
	return c.save()
}

func (c *Cart) Clear() View {
	c.mu.Lock()
	c.items = []domain.CartItem{}
	c.mu.Unlock()
	return c.save()
}

func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var total float64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

func (c *Cart) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.open
}

func (c *Cart) Open() View {
	return c.setOpen(true)
}

func (c *Cart) Close() View {
	return c.setOpen(false)
}

func (c *Cart) Toggle() View {
	return c.setOpen(!c.IsOpen())
}

// HandleKey closes an open drawer on Escape.
func (c *Cart) HandleKey(key string) View {
	if key == KeyEscape && c.IsOpen() {
		return c.Close()
	}
	return c.View()
}

// Checkout closes the drawer and returns the section the page scrolls to.
// An empty cart is left untouched.
func (c *Cart) Checkout() (string, error) {
	c.mu.RLock()
	empty := len(c.items) == 0
	c.mu.RUnlock()
	if empty {
		return "", ErrEmpty
	}
	c.Close()
	zap.L().Info("cart checkout",
		zap.String("namespace", "cart"),
		zap.Int("count", c.Count()),
		zap.Float64("total", c.Total()))
	return ContactTarget, nil
}

func (c *Cart) setOpen(open bool) View {
	c.mu.Lock()
	c.open = open
	c.mu.Unlock()
	return c.Render()
}

// save persists the lines and re-renders. Storage failures leave the
// in-memory cart as is.
func (c *Cart) save() View {
	c.saving.Lock()
	err := c.repo.Set(c.Items())
	c.saving.Unlock()
	if err != nil {
		zap.L().Warn("cart not saved", zap.String("namespace", "cart"), zap.Error(err))
	}
	return c.Render()
}
