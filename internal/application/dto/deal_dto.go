package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealLineRequest línea solicitada: nombre del ítem y cantidad a mover (> 0).
type DealLineRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Quantity int64  `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// SettleDealRequest entrada de POST /api/deal-import/ y /api/deal-export/.
// La exportación histórica envía ware_name; ambas claves se aceptan.
type SettleDealRequest struct {
	CompanyName    string            `json:"com_name" validate:"required,max=200"`
	WarehouseName  string            `json:"war_name" validate:"omitempty,max=100"`
	WareName       string            `json:"ware_name" validate:"omitempty,max=100"`
	VendorName     string            `json:"vendor_name" validate:"required,max=100"`
	Items          []DealLineRequest `json:"items" validate:"required,min=1,dive"`
	TotalPrice     *decimal.Decimal  `json:"total_price"`
	IdempotencyKey string            `json:"-"`
}

// Warehouse devuelve el nombre de bodega sin importar la clave usada.
func (r SettleDealRequest) Warehouse() string {
	if r.WarehouseName != "" {
		return r.WarehouseName
	}
	return r.WareName
}

// DealResult salida de la liquidación de un trato.
type DealResult struct {
	Status    string          `json:"status"`
	DealID    string          `json:"deal_id"`
	Kind      string          `json:"kind"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Replayed  bool            `json:"replayed"`
}

// RecentDealResponse fila de GET /api/recent-deals.
type RecentDealResponse struct {
	DealID      string          `json:"deal_id"`
	Kind        string          `json:"kind"`
	CompanyName string          `json:"company_name"`
	CompanyType string          `json:"company_type"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Date        time.Time       `json:"date"`
}

// DealGeneralResponse cabecera del detalle de un trato.
type DealGeneralResponse struct {
	DealID      string          `json:"deal_id"`
	Kind        string          `json:"kind"`
	CompanyName string          `json:"company_name"`
	CompanyType string          `json:"company_type"`
	Warehouse   string          `json:"warehouse"`
	Governorate string          `json:"governorate"`
	City        string          `json:"city"`
	VendorName  string          `json:"vendor_name"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Date        time.Time       `json:"date"`
}

// DealItemResponse línea del detalle, tal como se registró en la liquidación.
type DealItemResponse struct {
	LineNo     int             `json:"line_no"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	StockAfter int64           `json:"stock_after"`
}

// DealDetailResponse salida de GET /api/deal-details/:id.
type DealDetailResponse struct {
	General DealGeneralResponse `json:"general"`
	Items   []DealItemResponse  `json:"items"`
}
