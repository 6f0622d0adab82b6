package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item es un artículo con stock global. Quantity nunca es negativo; solo lo mutan los tratos.
type Item struct {
	ID         string
	Name       string
	Quantity   int64
	UnitPrice  decimal.Decimal
	CategoryID string
	SupplierID string // empresa proveedora
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
