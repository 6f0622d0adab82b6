package entity

import (
	"strings"
	"time"
)

// Tipos de empresa: el proveedor vende mercancía a las bodegas; el importador la compra.
const (
	CompanyTypeSupplier = "supplier"
	CompanyTypeImporter = "importer"
)

// Company representa una empresa contraparte de los tratos. ID es el identificador de contrato.
type Company struct {
	ID          string
	Name        string
	Governorate string
	City        string
	Street      string
	Phone       string
	Email       string
	Type        string // supplier, importer
	CreatedAt   time.Time
}

// NormalizeCompanyType acepta los alias históricos ("exporter" era el proveedor) y
// devuelve "" si el tipo no es válido.
func NormalizeCompanyType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case CompanyTypeSupplier, "exporter":
		return CompanyTypeSupplier
	case CompanyTypeImporter:
		return CompanyTypeImporter
	}
	return ""
}
