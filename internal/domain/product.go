package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductCategory is the closed set of categories a product can belong to.
// Unknown values are rejected during validation.
type ProductCategory string

const (
	CategoryElectronics ProductCategory = "electronics"
	CategoryClothing    ProductCategory = "clothing"
	CategoryBooks       ProductCategory = "books"
	CategoryHome        ProductCategory = "home"
)

// Valid reports whether the category is one of the known values.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryBooks, CategoryHome:
		return true
	}
	return false
}

// DisplayName returns the human-readable category label.
func (c ProductCategory) DisplayName() string {
	switch c {
	case CategoryElectronics:
		return "Electronics & Technology"
	case CategoryClothing:
		return "Clothing & Fashion"
	case CategoryBooks:
		return "Books & Media"
	case CategoryHome:
		return "Home & Garden"
	default:
		return "Uncategorized"
	}
}

// Product represents a persisted product in the catalog.
// SKU is unique across all products; ID and CreatedAt are assigned once at creation.
type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Brand         string          `json:"brand" db:"brand"`
	SKU           string          `json:"sku" db:"sku"`
	Category      ProductCategory `json:"category" db:"category"`
	Price         decimal.Decimal `json:"price" db:"price"`
	ReleaseDate   time.Time       `json:"release_date" db:"release_date"`
	ImageURL      string          `json:"image_url,omitempty" db:"image_url"`
	IsAvailable   bool            `json:"is_available" db:"is_available"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}

// CreateProductRequest is the creation payload. It carries no identity and
// exists only for the duration of one creation call.
//
// Structural bounds live in the validate tags; pattern, uniqueness and
// cross-field rules are applied by the validation package.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Brand         string          `json:"brand" validate:"required,min=2,max=100"`
	SKU           string          `json:"sku" validate:"required"`
	Category      ProductCategory `json:"category" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	ReleaseDate   time.Time       `json:"release_date" validate:"required"`
	ImageURL      string          `json:"image_url,omitempty"`
	StockQuantity *int            `json:"stock_quantity,omitempty" validate:"omitempty,gte=0,lte=100000"`
}

// Stock returns the requested stock quantity, defaulting to 1 when omitted.
func (r *CreateProductRequest) Stock() int {
	if r.StockQuantity == nil {
		return 1
	}
	return *r.StockQuantity
}
