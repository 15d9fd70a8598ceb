package dto

import "time"

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	UnitOfMeasure string `json:"unit_of_measure,omitempty"` // por defecto units
}

// UpdateItemRequest body para PUT /api/items/:id.
type UpdateItemRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Category      *string `json:"category,omitempty"`
	UnitOfMeasure *string `json:"unit_of_measure,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// ItemResponse artículo en respuestas.
type ItemResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	SKU            string    `json:"sku"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category,omitempty"`
	UnitOfMeasure  string    `json:"unit_of_measure"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
