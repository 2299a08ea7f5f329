// Package model contains domain models/data structures.
// Keep it free of business logic and persistence concerns.
package model

import "time"

// Product statuses. Only active products are surfaced by the default
// storefront listing.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Product represents a catalog entry backed by an uploaded photo.
// This is a pure domain model with no database-specific dependencies or tags;
// the JSON names are the wire contract consumed by the storefront.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	FileName    string    `json:"fileName"`
	FileSize    int64     `json:"fileSize"`
	FileType    string    `json:"fileType"`
	UploadedAt  time.Time `json:"uploadedAt"`
	Status      string    `json:"status"`
}
