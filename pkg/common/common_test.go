package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Exótica", "exotica"},
		{"  Mezcla & Master  ", "mezcla-master"},
		{"Ñandú 3000!!", "nandu-3000"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{"int", 10, 10, true},
		{"float", 12.5, 12.5, true},
		{"numeric string", "35", 35, true},
		{"trailing text", "12.5 USD", 12.5, true},
		{"leading spaces", "  7", 7, true},
		{"leading dot", ".5", 0.5, true},
		{"negative", "-3", -3, true},
		{"word", "abc", 0, false},
		{"empty", "", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	n, ok := ParseInt("3 unidades")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = ParseInt(2.9)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = ParseInt("x")
	assert.False(t, ok)
}

func TestParsePrice(t *testing.T) {
	got, ok := ParsePrice("35 USD")
	assert.True(t, ok)
	assert.Equal(t, 35.0, got)

	got, ok = ParsePrice("$ 12,50")
	assert.True(t, ok)
	assert.Equal(t, 12.5, got)

	_, ok = ParsePrice("Consultar")
	assert.False(t, ok)
}

func TestUniqueStrings(t *testing.T) {
	got := UniqueStrings([]string{"MP3", "WAV"}, []string{"WAV", "Stems", "MP3"})
	assert.Equal(t, []string{"MP3", "WAV", "Stems"}, got)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Trap", Capitalize("trap"))
	assert.Equal(t, "Éxito", Capitalize("éxito"))
	assert.Equal(t, "", Capitalize(""))
}

func TestUUIDint64(t *testing.T) {
	a, b := UUIDint64(), UUIDint64()
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, UUID())
}
