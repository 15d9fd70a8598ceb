package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStoreRequest body para POST /api/stores.
type CreateStoreRequest struct {
	Name          string `json:"name"`
	Code          string `json:"code,omitempty"` // se autogenera si viene vacío
	StoreType     string `json:"store_type,omitempty"`
	DepartmentID  string `json:"department_id,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
	ContactPhone  string `json:"contact_phone,omitempty"`
	Address       string `json:"address,omitempty"`
}

// UpdateStoreRequest body para PUT /api/stores/:id.
type UpdateStoreRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	ContactEmail  *string `json:"contact_email,omitempty"`
	ContactPhone  *string `json:"contact_phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// StoreResponse almacén en respuestas.
type StoreResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	DepartmentID   string    `json:"department_id,omitempty"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	StoreType      string    `json:"store_type"`
	ContactPerson  string    `json:"contact_person,omitempty"`
	ContactEmail   string    `json:"contact_email,omitempty"`
	ContactPhone   string    `json:"contact_phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateVendorItemRequest body para POST /api/stores/:id/vendor-items.
type CreateVendorItemRequest struct {
	ItemID               string          `json:"item_id"`
	Price                decimal.Decimal `json:"price"`
	Currency             string          `json:"currency,omitempty"` // por defecto GBP
	LeadTimeDays         int             `json:"lead_time_days,omitempty"`
	MinimumOrderQuantity int64           `json:"minimum_order_quantity,omitempty"`
}

// VendorItemResponse asociación proveedor-artículo en respuestas.
type VendorItemResponse struct {
	ID                   string          `json:"id"`
	VendorID             string          `json:"vendor_id"`
	ItemID               string          `json:"item_id"`
	Price                decimal.Decimal `json:"price"`
	Currency             string          `json:"currency"`
	LeadTimeDays         int             `json:"lead_time_days"`
	MinimumOrderQuantity int64           `json:"minimum_order_quantity"`
	IsActive             bool            `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
