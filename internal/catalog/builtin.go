package catalog

import "github.com/dame6k/beatstore/internal/domain"

// BuiltIn returns a fresh copy of the house catalog.
func BuiltIn() []domain.Beat {
	return []domain.Beat{
		{
			ID:          "exotica",
			Title:       "Exótica",
			Genre:       "reggaeton",
			Mood:        "Reggaeton - 74 BPM",
			Price:       20,
			License:     "Standard",
			Cover:       "assets/img/beat1.webp",
			Audio:       "assets/audio/neon-nights-preview.mp3",
			ReleaseDate: "2025-09-05",
		},
		{
			ID:          "under-pleasure",
			Title:       "Under Pleasure",
			Genre:       "trap",
			Mood:        "Trap atmosférico - 136 BPM",
			Price:       35,
			License:     "Premium",
			Cover:       "assets/img/beat2.webp",
			Audio:       "assets/audio/under-pleasure-preview.mp3",
			ReleaseDate: "2025-08-18",
		},
		{
			ID:          "dreaming",
			Title:       "Dreaming",
			Genre:       "rnb",
			Mood:        "R&B soulful - 92 BPM",
			Price:       28,
			License:     "Standard",
			Cover:       "assets/img/beat3.webp",
			Audio:       "assets/audio/dreaming-preview.mp3",
			ReleaseDate: "2025-07-22",
		},
		{
			ID:          "rappers-3",
			Title:       "Rappers 3",
			Genre:       "rap",
			Mood:        "Rap boom bap - 88 BPM",
			Price:       24,
			License:     "Premium",
			Cover:       "assets/img/beat4.webp",
			Audio:       "assets/audio/rappers-3-preview.mp3",
			ReleaseDate: "2025-06-30",
		},
		{
			ID:          "night-shift",
			Title:       "Night Shift",
			Genre:       "drill",
			Mood:        "Drill oscuro - 142 BPM",
			Price:       48,
			License:     "Exclusiva",
			Cover:       "assets/img/beat1.webp",
			Audio:       "assets/audio/night-shift-preview.mp3",
			ReleaseDate: "2025-09-22",
		},
		{
			ID:          "velvet-lights",
			Title:       "Velvet Lights",
			Genre:       "rnb",
			Mood:        "R&B suave - 100 BPM",
			Price:       32,
			License:     "Premium",
			Cover:       "assets/img/beat2.webp",
			Audio:       "assets/audio/velvet-lights-preview.mp3",
			ReleaseDate: "2025-05-14",
		},
		{
			ID:          "golden-hour",
			Title:       "Golden Hour",
			Genre:       "afrobeat",
			Mood:        "Afrobeat - 110 BPM",
			Price:       40,
			License:     "Standard",
			Cover:       "assets/img/beat3.webp",
			Audio:       "assets/audio/golden-hour-preview.mp3",
			ReleaseDate: "2025-08-02",
		},
		{
			ID:          "skyline",
			Title:       "Skyline",
			Genre:       "trap",
			Mood:        "Trap melódico - 150 BPM",
			Price:       55,
			License:     "Exclusiva",
			Cover:       "assets/img/beat4.webp",
			Audio:       "assets/audio/skyline-preview.mp3",
			ReleaseDate: "2025-04-08",
		},
	}
}
