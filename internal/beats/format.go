package beats

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dame6k/beatstore/internal/domain"
)

// Short month names as the storefront's es-AR locale prints them.
var shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// ParseReleaseDate accepts plain dates (2025-09-05), read as UTC, and full
// timestamps.
func ParseReleaseDate(s string) (time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a release date as "05 sept 2025".
func FormatDate(s string) (string, bool) {
	t, ok := ParseReleaseDate(s)
	if !ok {
		return "", false
	}
	t = t.UTC()
	return fmt.Sprintf("%02d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year()), true
}

// PriceLabel renders a catalog price, "24.5 USD".
func PriceLabel(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64) + " USD"
}

func LicenseLabel(name string) string {
	return "Licencia " + name
}

// FilesLabel renders a file manifest, "Incluye: MP3, WAV".
func FilesLabel(files []string) string {
	if len(files) == 0 {
		return ""
	}
	return "Incluye: " + strings.Join(files, ", ")
}

// ProductID is the cart id of beat sold under license. The default
// license keeps the plain beat id so catalog and custom cards agree.
func ProductID(beat *domain.Beat, license *domain.License) string {
	def := beat.DefaultLicense()
	if license == nil || def == nil || license.ID == def.ID {
		return beat.ID
	}
	return beat.ID + "-" + license.ID
}

// ProductRef is the add-to-cart reference of beat under the selected license.
func ProductRef(beat *domain.Beat, licenseID string) domain.ProductRef {
	license := beat.SelectLicense(licenseID)
	ref := domain.ProductRef{
		ID:     ProductID(beat, license),
		Title:  beat.Title,
		Price:  beat.DisplayPrice(licenseID),
		Type:   domain.ItemTypeBeat,
		Cover:  beat.Cover,
		Meta:   productMeta(beat.Mood, LicenseLabel(beat.LicenseName(licenseID))),
		BeatID: beat.ID,
	}
	if license != nil {
		ref.LicenseID = license.ID
	}
	return ref
}

// ProductRefs lists one reference per license, or a single one for beats
// sold at one price.
func ProductRefs(beat *domain.Beat) []domain.ProductRef {
	if len(beat.Licenses) == 0 {
		return []domain.ProductRef{ProductRef(beat, "")}
	}
	refs := make([]domain.ProductRef, 0, len(beat.Licenses))
	for _, l := range beat.Licenses {
		refs = append(refs, ProductRef(beat, l.ID))
	}
	return refs
}

func productMeta(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " | ")
}
