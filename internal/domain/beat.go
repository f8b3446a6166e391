package domain

// License is a purchasable usage tier of a beat.
type License struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Files       []string `json:"files"`
	Package     string   `json:"package"`
	PackageName string   `json:"packageName"`
}

// Beat is a product of the catalog. Price, License, Mood and the audio
// aliases are derived from the default license and preview and are kept
// for display only.
type Beat struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Mood        string    `json:"mood"`
	Price       float64   `json:"price"`
	License     string    `json:"license"`
	Licenses    []License `json:"licenses,omitempty"`
	Files       []string  `json:"files"`
	Cover       string    `json:"cover"`
	Offer       string    `json:"offer"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	ReleaseDate string    `json:"releaseDate"`
	Preview     string    `json:"preview,omitempty"`
	PreviewType string    `json:"previewType,omitempty"`
	PreviewName string    `json:"previewName,omitempty"`
	Audio       string    `json:"audio"`
	AudioType   string    `json:"audioType,omitempty"`
}

// DefaultLicense is the first license, or nil for single-price beats.
func (b *Beat) DefaultLicense() *License {
	if len(b.Licenses) == 0 {
		return nil
	}
	return &b.Licenses[0]
}

// SelectLicense returns the license with id, falling back to the default one.
func (b *Beat) SelectLicense(id string) *License {
	for i := range b.Licenses {
		if b.Licenses[i].ID == id {
			return &b.Licenses[i]
		}
	}
	return b.DefaultLicense()
}

// DisplayPrice is the price shown for the selected license.
func (b *Beat) DisplayPrice(licenseID string) float64 {
	if l := b.SelectLicense(licenseID); l != nil {
		return l.Price
	}
	return b.Price
}

// LicenseName is the name shown for the selected license.
func (b *Beat) LicenseName(licenseID string) string {
	if l := b.SelectLicense(licenseID); l != nil {
		return l.Name
	}
	if b.License != "" {
		return b.License
	}
	return "Standard"
}
