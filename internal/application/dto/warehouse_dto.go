package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name        string `json:"name" validate:"required,alphaspace,max=100"`
	Governorate string `json:"governorate" validate:"required,alphaspace,max=100"`
	City        string `json:"city" validate:"required,alphaspace,max=100"`
	Capacity    *int   `json:"capacity" validate:"required,min=0"`
	Responsible string `json:"responsible" validate:"required,alphaspace,max=100"`
}

// WarehouseResponse salida de una bodega recién creada.
type WarehouseResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Governorate string    `json:"governorate"`
	City        string    `json:"city"`
	Capacity    int       `json:"capacity"`
	Responsible string    `json:"responsible"`
	CreatedAt   time.Time `json:"created_at"`
}

// WarehouseSummaryResponse bodega con la cantidad total de las categorías que almacena.
type WarehouseSummaryResponse struct {
	Name          string `json:"name"`
	Governorate   string `json:"governorate"`
	City          string `json:"city"`
	Responsible   string `json:"responsible"`
	Capacity      int    `json:"capacity"`
	TotalQuantity int64  `json:"total_quantity"`
}

// WarehouseManagerResponse encargado de una bodega.
type WarehouseManagerResponse struct {
	Responsible string `json:"responsible"`
	Warehouse   string `json:"warehouse"`
	Governorate string `json:"governorate"`
	City        string `json:"city"`
}

// CategoryItemResponse ítem dentro de una categoría en vistas de detalle.
type CategoryItemResponse struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Supplier  string          `json:"supplier,omitempty"`
}

// CategoryItemsResponse categoría con sus ítems.
type CategoryItemsResponse struct {
	Name  string                 `json:"name"`
	Items []CategoryItemResponse `json:"items"`
}

// WarehouseDetailResponse detalle de bodega: ficha y categorías con ítems.
type WarehouseDetailResponse struct {
	Info       WarehouseSummaryResponse `json:"info"`
	Categories []CategoryItemsResponse  `json:"categories"`
}
