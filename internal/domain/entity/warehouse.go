package entity

import "time"

// Warehouse representa una bodega. Capacity es informativa y no se valida contra el stock.
type Warehouse struct {
	ID          string
	Name        string
	Governorate string
	City        string
	Capacity    int
	Responsible string // nombre del encargado, texto libre
	CreatedAt   time.Time
}
