package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeatLicenseSelection(t *testing.T) {
	beat := Beat{
		Price:   10,
		License: "Standard",
		Licenses: []License{
			{ID: "standard", Name: "Standard", Price: 10},
			{ID: "premium", Name: "Premium", Price: 25},
		},
	}

	t.Run("selected license drives the price", func(t *testing.T) {
		assert.Equal(t, 25.0, beat.DisplayPrice("premium"))
		assert.Equal(t, "Premium", beat.LicenseName("premium"))
	})

	t.Run("unknown license falls back to default", func(t *testing.T) {
		assert.Equal(t, 10.0, beat.DisplayPrice("exclusive"))
		assert.Equal(t, "standard", beat.SelectLicense("").ID)
	})

	t.Run("single price beat", func(t *testing.T) {
		plain := Beat{Price: 35, License: "Premium"}
		assert.Nil(t, plain.DefaultLicense())
		assert.Equal(t, 35.0, plain.DisplayPrice("premium"))
		assert.Equal(t, "Premium", plain.LicenseName(""))
	})
}

func TestSessionDisplayName(t *testing.T) {
	var none *Session
	assert.Equal(t, "", none.DisplayName())
	assert.False(t, none.IsAdmin())

	s := &Session{Email: "a@b.com", Role: RoleAdmin}
	assert.Equal(t, "a@b.com", s.DisplayName())
	assert.True(t, s.IsAdmin())
}

func TestCartItemSubtotal(t *testing.T) {
	item := ProductRef{ID: "b", Price: 5}.CartItem()
	item.Quantity = 2
	assert.Equal(t, 10.0, item.Subtotal())
}
