package repository

import "github.com/incognitoworld123-dev/RationalART/models"

// SeedProducts returns the default catalog written on first read.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Title:       "The Atlas",
			Quote:       "Who is John Galt?",
			Description: "A stark, minimalist design featuring the question that stopped the world. High-contrast gold text on black.",
			Price:       999,
			Stock:       50,
			ImageURL:    "https://picsum.photos/seed/atlas/400/500",
		},
		{
			ID:          "2",
			Title:       "The Architect",
			Quote:       "A building has integrity just like a man.",
			Description: "Inspired by Howard Roark. Geometric lines representing the Cortlandt Homes complex.",
			Price:       1299,
			Stock:       30,
			ImageURL:    "https://picsum.photos/seed/roark/400/500",
		},
		{
			ID:          "3",
			Title:       "The Motor",
			Quote:       "I swear by my life and my love of it that I will never live for the sake of another man.",
			Description: "The ultimate oath of the objectivist. Industrial gear motif.",
			Price:       1499,
			Stock:       15,
			ImageURL:    "https://picsum.photos/seed/motor/400/500",
		},
		{
			ID:          "4",
			Title:       "The Currency",
			Quote:       "Money is the barometer of a society's virtue.",
			Description: "Features the sign of the dollar, the symbol of free trade and honest value.",
			Price:       1150,
			Stock:       100,
			ImageURL:    "https://picsum.photos/seed/money/400/500",
		},
	}
}
