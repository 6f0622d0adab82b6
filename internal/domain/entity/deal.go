package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de trato.
const (
	DealKindImport = "import" // entrada: suma stock
	DealKindExport = "export" // salida: resta stock
)

// MaxLineQuantity cantidad máxima por línea de trato.
const MaxLineQuantity int64 = 1_000_000_000

// MaxAmount cota exclusiva de precios y totales (NUMERIC(14,2)).
var MaxAmount = decimal.New(1, 12)

// Deal es un intercambio registrado entre una empresa y una bodega a través de un vendedor.
// Una vez creado es inmutable.
type Deal struct {
	ID          string
	Kind        string
	VendorID    string
	CompanyID   string
	WarehouseID string
	TotalCost   decimal.Decimal
	CreatedAt   time.Time
}

// DealLine es una línea del trato. Quantity es la cantidad movida (delta) y
// UnitPrice/StockAfter son la foto del ítem al momento del trato.
type DealLine struct {
	DealID     string
	LineNo     int
	ItemID     string
	Quantity   int64
	UnitPrice  decimal.Decimal
	StockAfter int64
}

// NormalizeDealKind acepta "import"/"export" y los tipos de empresa históricos
// ("exporter" = proveedor → import, "importer" → export).
func NormalizeDealKind(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case DealKindImport, "exporter", CompanyTypeSupplier:
		return DealKindImport
	case DealKindExport, CompanyTypeImporter:
		return DealKindExport
	}
	return ""
}

// Counterparties devuelve el tipo de empresa y de vendedor exigidos para un tipo de trato.
// Es la única regla de emparejamiento del sistema.
func Counterparties(kind string) (companyType, vendorType string, ok bool) {
	switch kind {
	case DealKindImport:
		return CompanyTypeSupplier, VendorTypeImporter, true
	case DealKindExport:
		return CompanyTypeImporter, VendorTypeExporter, true
	}
	return "", "", false
}
