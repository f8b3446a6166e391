package chrome

import (
	"sort"
	"sync"
)

// AudioGuard keeps at most one guarded preview playing.
type AudioGuard struct {
	mu      sync.Mutex
	guarded map[string]bool
	playing map[string]bool
}

func NewAudioGuard() *AudioGuard {
	return &AudioGuard{
		guarded: map[string]bool{},
		playing: map[string]bool{},
	}
}

// Attach guards the given players and reports how many were new.
func (g *AudioGuard) Attach(ids ...string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	added := 0
	for _, id := range ids {
		if id == "" || g.guarded[id] {
			continue
		}
		g.guarded[id] = true
		added++
	}
	return added
}

func (g *AudioGuard) Guarded(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.guarded[id]
}

// Play starts id. Starting a guarded player pauses every other one.
func (g *AudioGuard) Play(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.guarded[id] {
		for other := range g.playing {
			if other != id {
				delete(g.playing, other)
			}
		}
	}
	g.playing[id] = true
}

func (g *AudioGuard) Pause(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.playing, id)
}

// Playing lists the players currently playing, sorted.
func (g *AudioGuard) Playing() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.playing))
	for id := range g.playing {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
