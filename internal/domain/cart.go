package domain

const (
	ItemTypeBeat    = "beat"
	ItemTypeService = "servicio"
	ItemTypeCombo   = "combo"
	ItemTypeGeneric = "producto"
)

// CartItem is one line of the cart, unique by ID.
type CartItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Type     string  `json:"type"`
	Cover    string  `json:"cover"`
	Meta     string  `json:"meta"`
	Quantity int     `json:"quantity"`
}

func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// ProductRef describes a purchasable card as it was rendered, so the cart
// can add it without reading the card back.
type ProductRef struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Type      string  `json:"type"`
	Cover     string  `json:"cover"`
	Meta      string  `json:"meta"`
	BeatID    string  `json:"beatId,omitempty"`
	LicenseID string  `json:"licenseId,omitempty"`
}

// CartItem converts the reference into a single unit line.
func (p ProductRef) CartItem() CartItem {
	return CartItem{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Type:     p.Type,
		Cover:    p.Cover,
		Meta:     p.Meta,
		Quantity: 1,
	}
}
