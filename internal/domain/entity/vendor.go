package entity

import (
	"strings"
	"time"
)

// Tipos de vendedor (intermediario que mueve la mercancía entre empresa y bodega).
const (
	VendorTypeImporter = "importer" // trae mercancía a la bodega
	VendorTypeExporter = "exporter" // saca mercancía de la bodega
)

// Vendor pertenece a una única bodega.
type Vendor struct {
	ID          string
	Name        string
	WarehouseID string
	Type        string
	CreatedAt   time.Time
}

// NormalizeVendorType devuelve "" si el tipo no es importer/exporter.
func NormalizeVendorType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case VendorTypeImporter:
		return VendorTypeImporter
	case VendorTypeExporter:
		return VendorTypeExporter
	}
	return ""
}
