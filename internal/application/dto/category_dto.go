package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest entrada para crear una categoría; Warehouse opcional la asocia a una bodega.
type CreateCategoryRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Warehouse string `json:"warehouse" validate:"omitempty,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Warehouse string    `json:"warehouse,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateItemRequest entrada para registrar un ítem de un proveedor (stock inicial 0).
type CreateItemRequest struct {
	Supplier string          `json:"supplier" validate:"required,max=200"`
	Category string          `json:"category" validate:"required,max=100"`
	Item     string          `json:"item" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Category  string          `json:"category"`
	Supplier  string          `json:"supplier"`
	CreatedAt time.Time       `json:"created_at"`
}
