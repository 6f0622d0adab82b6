package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,alphaspace,max=200"`
	Governorate string `json:"governorate" validate:"required,alphaspace,max=100"`
	City        string `json:"city" validate:"required,alphaspace,max=100"`
	Street      string `json:"street" validate:"required,max=200"`
	Phone       string `json:"phone" validate:"required,egphone"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Type        string `json:"type" validate:"required,oneof=supplier importer exporter"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ContractID  string    `json:"contract_id"`
	Name        string    `json:"name"`
	Governorate string    `json:"governorate"`
	City        string    `json:"city"`
	Street      string    `json:"street"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// SupplierDetailResponse ficha de empresa con su catálogo agrupado por categoría.
type SupplierDetailResponse struct {
	Info       CompanyResponse         `json:"info"`
	Categories []CategoryItemsResponse `json:"categories"`
}
