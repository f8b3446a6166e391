package beats

import (
	"testing"

	"github.com/dame6k/beatstore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-09-05", "05 sept 2025", true},
		{"2025-01-20T10:30:00.000Z", "20 ene 2025", true},
		{"", "", false},
		{"pronto", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := FormatDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "24.5 USD", PriceLabel(24.5))
	assert.Equal(t, "20 USD", PriceLabel(20))
	assert.Equal(t, "Licencia Premium", LicenseLabel("Premium"))
	assert.Equal(t, "Incluye: MP3, WAV", FilesLabel([]string{"MP3", "WAV"}))
	assert.Equal(t, "", FilesLabel(nil))
}

func TestProductRefs(t *testing.T) {
	beat := &domain.Beat{
		ID:    "b1",
		Title: "Night Drive",
		Mood:  "Trap · MP3",
		Cover: "cover.webp",
		Price: 10,
		Licenses: []domain.License{
			{ID: "standard", Name: "Standard", Price: 10},
			{ID: "premium", Name: "Premium", Price: 30},
		},
	}

	refs := ProductRefs(beat)
	assert.Equal(t, []domain.ProductRef{
		{ID: "b1", Title: "Night Drive", Price: 10, Type: "beat", Cover: "cover.webp", Meta: "Trap · MP3 | Licencia Standard", BeatID: "b1", LicenseID: "standard"},
		{ID: "b1-premium", Title: "Night Drive", Price: 30, Type: "beat", Cover: "cover.webp", Meta: "Trap · MP3 | Licencia Premium", BeatID: "b1", LicenseID: "premium"},
	}, refs)

	plain := &domain.Beat{ID: "skyline", Title: "Skyline", Price: 55, License: "Exclusiva"}
	ref := ProductRef(plain, "")
	assert.Equal(t, "skyline", ref.ID)
	assert.Equal(t, 55.0, ref.Price)
	assert.Equal(t, "Licencia Exclusiva", ref.Meta)
	assert.Empty(t, ref.LicenseID)
}
