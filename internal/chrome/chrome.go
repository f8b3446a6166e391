// Package chrome holds the page behaviour around the product grids: the
// quick filter buttons, the one-player-at-a-time audio rule and in-page
// scrolling.
package chrome

import (
	"strings"
	"sync"

	"github.com/dame6k/beatstore/internal/events"
	"go.uber.org/zap"
)

// All shows every card.
const All = "all"

// Card is a beat card as the filter bar and audio guard see it.
type Card struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Genre   string `json:"genre"`
	License string `json:"license"`
	Audio   string `json:"audio,omitempty"`
	Hidden  bool   `json:"hidden"`
}

// CardSource lists the beat cards currently on the page.
type CardSource func() []Card

// FilterBar is the single-select genre/license toggle.
type FilterBar struct {
	mu     sync.RWMutex
	active string
}

func NewFilterBar() *FilterBar {
	return &FilterBar{active: All}
}

// Select makes filter the active button. Blank selects All.
func (f *FilterBar) Select(filter string) string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		filter = All
	}
	f.mu.Lock()
	f.active = filter
	f.mu.Unlock()
	return filter
}

func (f *FilterBar) Active() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.active
}

// Apply marks as hidden the cards that match neither the genre nor the
// license of the active filter.
func (f *FilterBar) Apply(cards []Card) []Card {
	active := f.Active()
	out := make([]Card, len(cards))
	for i, c := range cards {
		c.Hidden = !(active == All || c.Genre == active || c.License == active)
		out[i] = c
	}
	return out
}

// Chrome ties the filter bar and the audio guard to the page's cards.
type Chrome struct {
	Filters *FilterBar
	Audio   *AudioGuard

	bus    *events.Bus
	source CardSource
	cancel func()
}

func New(bus *events.Bus, source CardSource) *Chrome {
	return &Chrome{
		Filters: NewFilterBar(),
		Audio:   NewAudioGuard(),
		bus:     bus,
		source:  source,
	}
}

// Init guards the current players and re-applies the active filter and
// the guard whenever the custom beats change.
func (c *Chrome) Init() error {
	c.guardPlayers()
	c.cancel = c.bus.SubscribeBeatsUpdated(func(events.BeatsUpdated) {
		c.guardPlayers()
		hidden := 0
		for _, card := range c.Cards() {
			if card.Hidden {
				hidden++
			}
		}
		zap.L().Debug("filter reapplied",
			zap.String("namespace", "chrome"),
			zap.String("filter", c.Filters.Active()),
			zap.Int("hidden", hidden))
	})
	return nil
}

func (c *Chrome) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Cards returns the page's beat cards with the active filter applied.
func (c *Chrome) Cards() []Card {
	return c.Filters.Apply(c.source())
}

// Filter selects filter and returns the resulting cards.
func (c *Chrome) Filter(filter string) []Card {
	c.Filters.Select(filter)
	return c.Cards()
}

func (c *Chrome) guardPlayers() {
	ids := make([]string, 0)
	for _, card := range c.source() {
		if card.Audio != "" {
			ids = append(ids, card.ID)
		}
	}
	c.Audio.Attach(ids...)
}
