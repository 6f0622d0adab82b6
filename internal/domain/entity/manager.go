package entity

import "time"

// Manager representa un usuario administrador. El email es único.
type Manager struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca en claro
	CreatedAt    time.Time
}
