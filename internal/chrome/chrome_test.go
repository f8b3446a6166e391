package chrome

import (
	"testing"

	"github.com/dame6k/beatstore/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hiddenIDs(cards []Card) []string {
	out := make([]string, 0)
	for _, c := range cards {
		if c.Hidden {
			out = append(out, c.ID)
		}
	}
	return out
}

func TestFilterBarApply(t *testing.T) {
	cards := []Card{
		{ID: "a", Genre: "trap", License: "premium"},
		{ID: "b", Genre: "rnb", License: "standard"},
		{ID: "c", Genre: "trap", License: "licencia"},
	}
	tests := []struct {
		filter string
		hidden []string
	}{
		{filter: "", hidden: []string{}},
		{filter: All, hidden: []string{}},
		{filter: "trap", hidden: []string{"b"}},
		{filter: "standard", hidden: []string{"a", "c"}},
		{filter: "cumbia", hidden: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run("filter "+tt.filter, func(t *testing.T) {
			f := NewFilterBar()
			f.Select(tt.filter)
			assert.Equal(t, tt.hidden, hiddenIDs(f.Apply(cards)))
		})
	}
}

func TestFilterBarSingleSelect(t *testing.T) {
	f := NewFilterBar()
	assert.Equal(t, All, f.Active())
	f.Select("trap")
	f.Select("rnb")
	assert.Equal(t, "rnb", f.Active())
	assert.Equal(t, All, f.Select("  "))
}

func TestChromeReappliesOnBeatsUpdated(t *testing.T) {
	bus := events.NewBus()
	cards := []Card{{ID: "a", Genre: "trap", Audio: "a.mp3"}}
	c := New(bus, func() []Card { return cards })
	require.NoError(t, c.Init())

	assert.Equal(t, []string{"a"}, hiddenIDs(c.Filter("rnb")))
	assert.True(t, c.Audio.Guarded("a"))

	cards = append(cards, Card{ID: "b", Genre: "rnb", Audio: "b.mp3"}, Card{ID: "c", Genre: "rnb"})
	bus.PublishBeatsUpdated(events.BeatsUpdated{})

	assert.True(t, c.Audio.Guarded("b"))
	assert.False(t, c.Audio.Guarded("c"))
	assert.Equal(t, []string{"a"}, hiddenIDs(c.Cards()))
}

func TestAudioGuard(t *testing.T) {
	g := NewAudioGuard()
	assert.Equal(t, 2, g.Attach("a", "b"))
	assert.Equal(t, 0, g.Attach("a", "b", ""))

	g.Play("a")
	g.Play("b")
	assert.Equal(t, []string{"b"}, g.Playing())

	g.Play("loose")
	assert.Equal(t, []string{"b", "loose"}, g.Playing())

	g.Play("a")
	assert.Equal(t, []string{"a"}, g.Playing())

	g.Pause("a")
	assert.Empty(t, g.Playing())
}

func TestScrollTarget(t *testing.T) {
	for in, want := range map[string]bool{"#contact": true, "#": false, "": false, " #beats ": true} {
		_, ok := ScrollTarget(in)
		assert.Equal(t, want, ok, in)
	}
	target, _ := ScrollTarget(" #beats ")
	assert.Equal(t, "#beats", target)
}
