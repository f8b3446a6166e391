package admin

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dame6k/beatstore/internal/beats"
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/events"
	"github.com/dame6k/beatstore/pkg/common"
)

const noFilesText = "Archivos sujetos a la licencia seleccionada."

// LicenseOption is one entry of a store card's license selector.
type LicenseOption struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Files []string `json:"files"`
	Label string   `json:"label"`
}

// HomeCard is a custom beat as the store front shows it.
type HomeCard struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Genre           string            `json:"genre"`
	LicenseTag      string            `json:"licenseTag"`
	Mood            string            `json:"mood"`
	Cover           string            `json:"cover"`
	FilesText       string            `json:"filesText"`
	Preview         string            `json:"preview,omitempty"`
	PreviewType     string            `json:"previewType,omitempty"`
	PriceLabel      string            `json:"priceLabel"`
	LicenseLabel    string            `json:"licenseLabel"`
	Licenses        []LicenseOption   `json:"licenses"`
	SelectedLicense string            `json:"selectedLicense,omitempty"`
	Offer           string            `json:"offer,omitempty"`
	DateLabel       string            `json:"dateLabel"`
	Product         domain.ProductRef `json:"product"`
}

// AdminCard is the summary of a custom beat in the admin panel.
type AdminCard struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Cover     string   `json:"cover"`
	Meta      string   `json:"meta"`
	Offer     string   `json:"offer,omitempty"`
	FilesText string   `json:"filesText,omitempty"`
	Licenses  []string `json:"licenses,omitempty"`
	DateLabel string   `json:"dateLabel"`
}

// CustomBeatsView holds both renderings of the custom collection, most
// recent first.
type CustomBeatsView struct {
	Home  []HomeCard  `json:"home"`
	Admin []AdminCard `json:"admin"`
	Empty bool        `json:"empty"`
}

// SortByRecency orders beats by release date, newest first. Unreadable
// dates sort as the oldest.
func SortByRecency(list []domain.Beat) []domain.Beat {
	out := append([]domain.Beat(nil), list...)
	stamp := func(b domain.Beat) time.Time {
		t, _ := beats.ParseReleaseDate(b.ReleaseDate)
		return t
	}
	sort.SliceStable(out, func(i, j int) bool {
		return stamp(out[i]).After(stamp(out[j]))
	})
	return out
}

// Beats returns the stored custom beats, most recent first.
func (m *Manager) Beats() []domain.Beat {
	return SortByRecency(m.beats.Get())
}

// RenderCustomBeats rebuilds both views from storage. With notify set the
// sorted list is published to the page.
func (m *Manager) RenderCustomBeats(notify bool) CustomBeatsView {
	list := m.Beats()
	view := CustomBeatsView{
		Home:  make([]HomeCard, 0, len(list)),
		Admin: make([]AdminCard, 0, len(list)),
		Empty: len(list) == 0,
	}
	for i := range list {
		view.Home = append(view.Home, homeCard(&list[i], ""))
		view.Admin = append(view.Admin, adminCard(&list[i]))
	}

	m.mu.Lock()
	m.view = view
	m.mu.Unlock()

	if notify && m.bus != nil {
		m.bus.PublishBeatsUpdated(events.BeatsUpdated{Beats: list})
	}
	return view
}

// View returns the last rendering.
func (m *Manager) View() CustomBeatsView {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view
}

// SelectLicense renders the store card of beatID with licenseID selected.
func (m *Manager) SelectLicense(beatID, licenseID string) (HomeCard, error) {
	for _, b := range m.beats.Get() {
		if b.ID == beatID {
			return homeCard(&b, licenseID), nil
		}
	}
	return HomeCard{}, ErrUnknownBeat
}

func homeCard(b *domain.Beat, licenseID string) HomeCard {
	mood := b.Mood
	if mood == "" {
		mood = beats.DefaultMood(b.Genre)
	}
	card := HomeCard{
		ID:           b.ID,
		Title:        b.Title,
		Genre:        common.IfEmptyStr(b.Genre, beats.DefaultGenre),
		LicenseTag:   "licencia",
		Mood:         mood,
		Cover:        common.IfEmptyStr(b.Cover, beats.DefaultCover),
		Preview:      common.IfEmptyStr(b.Preview, b.Audio),
		PreviewType:  common.IfEmptyStr(common.IfEmptyStr(b.PreviewType, b.AudioType), DefaultPreviewType),
		PriceLabel:   beats.PriceLabel(b.DisplayPrice(licenseID)),
		LicenseLabel: beats.LicenseLabel(b.LicenseName(licenseID)),
		Licenses:     make([]LicenseOption, 0, len(b.Licenses)),
		Offer:        b.Offer,
		Product:      beats.ProductRef(b, licenseID),
	}
	card.Product.Cover = card.Cover

	files := b.Files
	if sel := b.SelectLicense(licenseID); sel != nil {
		card.SelectedLicense = sel.ID
		if licenseID != "" && len(sel.Files) > 0 {
			files = sel.Files
		}
	}
	card.FilesText = common.IfEmptyStr(beats.FilesLabel(files), noFilesText)

	for i, l := range b.Licenses {
		id := common.IfEmptyStr(l.ID, fmt.Sprintf("licencia-%d", i))
		card.Licenses = append(card.Licenses, LicenseOption{
			ID:    id,
			Name:  l.Name,
			Price: l.Price,
			Files: l.Files,
			Label: l.Name + " - " + beats.PriceLabel(l.Price),
		})
	}

	date, _ := beats.FormatDate(b.ReleaseDate)
	card.DateLabel = "Subido el " + date
	return card
}

func adminCard(b *domain.Beat) AdminCard {
	card := AdminCard{
		ID:        b.ID,
		Title:     b.Title,
		Cover:     common.IfEmptyStr(b.Cover, beats.DefaultCover),
		Meta:      common.Capitalize(b.Genre) + " · " + beats.PriceLabel(b.Price),
		Offer:     b.Offer,
		FilesText: beats.FilesLabel(b.Files),
	}
	for _, l := range b.Licenses {
		line := l.Name + " · " + beats.PriceLabel(l.Price)
		if len(l.Files) > 0 {
			line += " · " + strings.Join(l.Files, ", ")
		}
		card.Licenses = append(card.Licenses, line)
	}
	date, _ := beats.FormatDate(b.ReleaseDate)
	card.DateLabel = "Publicado el " + date
	return card
}
