package entity

import "time"

// Category agrupa ítems. Se asocia a bodegas en warehouse_categories de forma perezosa.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
