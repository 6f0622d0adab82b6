package dto

import "time"

// CreateManagerRequest entrada para crear un manager (password en texto, se hashea en use case).
type CreateManagerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// ManagerResponse salida de un manager (sin password).
type ManagerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginResponse salida del login; Token vacío si no hay JWT_SECRET configurado.
type LoginResponse struct {
	Status string `json:"status"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Token  string `json:"token,omitempty"`
}
