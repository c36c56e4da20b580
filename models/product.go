package models

import "time"

// Product is a catalog entry. Prices are whole INR.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Quote       string    `json:"quote"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// ProductDraft is the result of the AI concept flow. It becomes a Product
// once the admin accepts it.
type ProductDraft struct {
	Title       string            `json:"title"`
	Quote       string            `json:"quote"`
	Description string            `json:"description"`
	Price       int               `json:"price"`
	Stock       int               `json:"stock"`
	ImageURL    string            `json:"image_url"`
	Generation  *GenerationResult `json:"generation,omitempty"`
}
