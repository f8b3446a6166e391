package app

import (
	"sync"
	"time"

	"github.com/dame6k/beatstore/internal/page"
	"github.com/dame6k/beatstore/internal/store"
	"go.uber.org/zap"
)

// DefaultProfileCacheTTL is how long an unused page stays open.
const DefaultProfileCacheTTL = 30 * time.Minute

type cachedPage struct {
	page     *page.Page
	lastUsed time.Time
}

// ProfileCache keeps one open storefront page per profile, built over the
// profile's namespace of the bolt store.
type ProfileCache struct {
	bolt *store.BoltDB
	opts []page.Option
	ttl  time.Duration
	now  func() time.Time

	mu    sync.Mutex
	pages map[string]*cachedPage

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewProfileCache(bolt *store.BoltDB, opts ...page.Option) *ProfileCache {
	return newProfileCache(bolt, DefaultProfileCacheTTL, opts...)
}

func newProfileCache(bolt *store.BoltDB, ttl time.Duration, opts ...page.Option) *ProfileCache {
	c := &ProfileCache{
		bolt:  bolt,
		opts:  opts,
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[string]*cachedPage),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Page returns the open page of profile, opening it on first use.
func (c *ProfileCache) Page(profile string) (*page.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cp, ok := c.pages[profile]; ok {
		cp.lastUsed = c.now()
		return cp.page, nil
	}
	p, err := page.New(c.bolt.Namespace(profile), c.opts...)
	if err != nil {
		return nil, err
	}
	c.pages[profile] = &cachedPage{page: p, lastUsed: c.now()}
	zap.L().Debug("profile page opened", zap.String("namespace", "profiles"), zap.String("profile", profile))
	return p, nil
}

// Profiles lists every profile with stored data.
func (c *ProfileCache) Profiles() ([]string, error) {
	return c.bolt.Namespaces()
}

// Len reports how many pages are open.
func (c *ProfileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}

// Evict closes the pages idle since before now minus the TTL.
func (c *ProfileCache) Evict(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for profile, cp := range c.pages {
		if now.Sub(cp.lastUsed) > c.ttl {
			cp.page.Close()
			delete(c.pages, profile)
			evicted++
		}
	}
	return evicted
}

func (c *ProfileCache) janitor() {
	defer close(c.done)
	interval := c.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if n := c.Evict(c.now()); n > 0 {
				zap.L().Debug("idle profile pages closed", zap.String("namespace", "profiles"), zap.Int("count", n))
			}
		}
	}
}

// Stop ends eviction and closes every open page.
func (c *ProfileCache) Stop() {
	c.once.Do(func() {
		close(c.stop)
		<-c.done
		c.mu.Lock()
		defer c.mu.Unlock()
		for profile, cp := range c.pages {
			cp.page.Close()
			delete(c.pages, profile)
		}
	})
}
