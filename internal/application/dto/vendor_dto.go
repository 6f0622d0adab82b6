package dto

import "time"

// CreateVendorRequest entrada para crear un vendedor.
type CreateVendorRequest struct {
	Vendor    string `json:"vendor" validate:"required,alphaspace,max=100"`
	Warehouse string `json:"warehouse" validate:"required,max=100"`
	Type      string `json:"type" validate:"required,oneof=importer exporter"`
}

// VendorResponse salida de un vendedor recién creado.
type VendorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"vendor"`
	WarehouseID string    `json:"warehouse_id"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// VendorListItem fila del listado de vendedores.
type VendorListItem struct {
	Name      string `json:"vendor"`
	Warehouse string `json:"warehouse"`
	Type      string `json:"type"`
}

// VendorsAtDealQuery filtros de GET /api/vendors_at_deal/.
// Type acepta import/export o los tipos de empresa históricos (exporter/importer/supplier).
type VendorsAtDealQuery struct {
	Type      string `query:"type" validate:"required"`
	Warehouse string `query:"warehouse" validate:"required"`
}
