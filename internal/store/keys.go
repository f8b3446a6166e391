package store

// Keys shared by the storefront components. Each component owns one key.
const (
	KeyUsers       = "beatsAuth:users"
	KeySession     = "beatsAuth:session"
	KeyCustomBeats = "beatsAuth:customBeats"
	KeyCart        = "dame6k:cart"
)
