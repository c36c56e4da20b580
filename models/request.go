package models

import "time"

// DesignRequest is a commission submitted by a customer: the text they want
// on a shirt plus style constraints, and the AI preview if they generated one.
type DesignRequest struct {
	ID                string    `json:"id"`
	CustomerName      string    `json:"customer_name"`
	Quote             string    `json:"quote"`
	StylePreference   string    `json:"style_preference"`
	ShirtColor        string    `json:"shirt_color,omitempty"`
	FontStyle         string    `json:"font_style,omitempty"`
	GeneratedImageURL string    `json:"generated_image_url,omitempty"`
	Fallback          bool      `json:"fallback,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
