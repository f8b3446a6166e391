package cart

import (
	"strings"

	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/pkg/common"
	"go.uber.org/zap"
)

// Card kinds an add-to-cart trigger can sit in.
const (
	CardBeat    = "beat-card"
	CardService = "service-card"
	CardCombo   = "combo-card"
)

// Card is what the page knows about the card around a trigger.
type Card struct {
	Kind           string `json:"kind" validate:"omitempty,oneof=beat-card service-card combo-card"`
	ItemID         string `json:"itemId"`
	Heading        string `json:"heading"`
	PriceText      string `json:"priceText"`
	Image          string `json:"image"`
	Genre          string `json:"genre"`
	License        string `json:"license"`
	ComboDetail    string `json:"comboDetail"`
	ServiceNote    string `json:"serviceNote"`
	FirstParagraph string `json:"firstParagraph"`
}

// Trigger is an add-to-cart control with its data attributes.
type Trigger struct {
	ItemID    string `json:"itemId"`
	ItemTitle string `json:"itemTitle"`
	ItemPrice string `json:"itemPrice"`
	ItemType  string `json:"itemType"`
	ItemCover string `json:"itemCover"`
	ItemMeta  string `json:"itemMeta"`
	AriaLabel string `json:"ariaLabel"`
	Card      *Card  `json:"card" validate:"omitempty"`
}

func (c *Card) is(kind string) bool {
	return c != nil && c.Kind == kind
}

// ItemFromTrigger resolves the product of a trigger from its own attributes
// first and the surrounding card second. It returns nil when no price can
// be read.
func ItemFromTrigger(t Trigger) *domain.CartItem {
	card := t.Card

	itemType := strings.ToLower(t.ItemType)
	if itemType == "" {
		switch {
		case card.is(CardService):
			itemType = domain.ItemTypeService
		case card.is(CardCombo):
			itemType = domain.ItemTypeCombo
		default:
			itemType = domain.ItemTypeBeat
		}
	}

	title := t.ItemTitle
	if title == "" && card != nil {
		title = card.Heading
	}
	if title == "" {
		title = t.AriaLabel
	}
	if title == "" {
		title = DefaultTitle
	}
	title = strings.TrimSpace(title)

	price, ok := common.ParseFloat(t.ItemPrice)
	if !ok && card != nil {
		price, ok = common.ParsePrice(card.PriceText)
	}
	if !ok {
		zap.S().Warnf("cart: price unavailable for %q", title)
		return nil
	}

	id := t.ItemID
	if id == "" && card != nil {
		id = card.ItemID
	}
	if id == "" {
		id = itemType + "-" + common.Slugify(title)
	}

	cover := t.ItemCover
	if cover == "" && card != nil {
		cover = card.Image
	}

	meta := t.ItemMeta
	switch {
	case meta != "":
	case card.is(CardBeat):
		meta = BeatMeta(card.Genre, card.License)
	case card.is(CardCombo):
		meta = firstNonEmpty(card.ComboDetail, card.FirstParagraph)
	case card.is(CardService):
		meta = firstNonEmpty(card.ServiceNote, card.FirstParagraph)
	}

	return &domain.CartItem{
		ID:       id,
		Title:    title,
		Price:    price,
		Type:     itemType,
		Cover:    cover,
		Meta:     meta,
		Quantity: defaultQuantity,
	}
}

// BeatMeta joins the genre and license texts of a beat card.
func BeatMeta(genre, license string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{genre, license} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
