package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorItem asocia un artículo con un proveedor externo: precio y condiciones de suministro.
type VendorItem struct {
	ID                   string
	VendorID             string // Store con StoreType = vendor
	ItemID               string
	Price                decimal.Decimal
	Currency             string // ISO 4217, ej. GBP
	LeadTimeDays         int
	MinimumOrderQuantity int64
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
