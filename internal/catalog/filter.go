package catalog

import (
	"sort"
	"time"

	"github.com/dame6k/beatstore/internal/beats"
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/pkg/common"
)

const (
	All = "all"

	PriceLow  = "low"
	PriceMid  = "mid"
	PriceHigh = "high"

	SortNewest      = "newest"
	SortOldest      = "oldest"
	SortLowerPrice  = "lower-price"
	SortHigherPrice = "higher-price"

	lowMax = 25
	midMax = 45
)

// Criteria are the catalog filter controls. Empty values mean "all" and,
// for Sort, newest first.
type Criteria struct {
	Genre string `json:"genre" query:"genre"`
	Price string `json:"price" query:"price"`
	Date  string `json:"date" query:"date"`
	Sort  string `json:"sort" query:"sort"`
}

func DefaultCriteria() Criteria {
	return Criteria{Genre: All, Price: All, Date: All, Sort: SortNewest}
}

// Normalised fills blank controls with their defaults.
func (c Criteria) Normalised() Criteria {
	d := DefaultCriteria()
	c.Genre = common.IfEmptyStr(c.Genre, d.Genre)
	c.Price = common.IfEmptyStr(c.Price, d.Price)
	c.Date = common.IfEmptyStr(c.Date, d.Date)
	c.Sort = common.IfEmptyStr(c.Sort, d.Sort)
	return c
}

func matchesGenre(b domain.Beat, genre string) bool {
	return genre == All || b.Genre == genre
}

func matchesPrice(b domain.Beat, bucket string) bool {
	switch bucket {
	case PriceLow:
		return b.Price <= lowMax
	case PriceMid:
		return b.Price > lowMax && b.Price <= midMax
	case PriceHigh:
		return b.Price > midMax
	default:
		return true
	}
}

// matchesDate keeps beats released within the last N days. An unreadable
// window or release date does not exclude the beat.
func matchesDate(b domain.Beat, window string, now time.Time) bool {
	if window == All {
		return true
	}
	days, ok := common.ParseInt(window)
	if !ok {
		return true
	}
	release, ok := beats.ParseReleaseDate(b.ReleaseDate)
	if !ok {
		return true
	}
	diff := now.Sub(release).Hours() / 24
	return diff >= 0 && diff <= float64(days)
}

// Filter applies c to list and sorts the result. Ties keep input order.
func Filter(list []domain.Beat, c Criteria, now time.Time) []domain.Beat {
	c = c.Normalised()
	out := make([]domain.Beat, 0, len(list))
	for _, b := range list {
		if matchesGenre(b, c.Genre) && matchesPrice(b, c.Price) && matchesDate(b, c.Date, now) {
			out = append(out, b)
		}
	}
	sortBeats(out, c.Sort)
	return out
}

func sortBeats(list []domain.Beat, option string) {
	stamp := func(b domain.Beat) time.Time {
		t, _ := beats.ParseReleaseDate(b.ReleaseDate)
		return t
	}
	var less func(a, b domain.Beat) bool
	switch option {
	case SortOldest:
		less = func(a, b domain.Beat) bool { return stamp(a).Before(stamp(b)) }
	case SortLowerPrice:
		less = func(a, b domain.Beat) bool { return a.Price < b.Price }
	case SortHigherPrice:
		less = func(a, b domain.Beat) bool { return a.Price > b.Price }
	default:
		less = func(a, b domain.Beat) bool { return stamp(a).After(stamp(b)) }
	}
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}
