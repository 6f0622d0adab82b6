package domain

import (
	"errors"
	"fmt"
)

// Tipos de error de dominio. Se comparan con errors.Is sobre cualquier *Error que los envuelva.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrInsufficientStock  = errors.New("not enough quantity")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Error es el resultado de error discriminado: Kind es uno de los sentinels anteriores
// y Message el texto legible que se devuelve al cliente.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

// Unwrap permite errors.Is(err, domain.ErrNotFound).
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation construye un error de validación (400).
func Validation(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

// NotFound construye un error de entidad no encontrada (404) nombrando la entidad.
func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

// Conflict construye un error de clave única duplicada.
func Conflict(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

// InsufficientStock construye el error de stock insuficiente para un ítem.
func InsufficientStock(format string, args ...any) error {
	return newError(ErrInsufficientStock, format, args...)
}

// InvalidCredentials construye el error de login fallido.
func InvalidCredentials(format string, args ...any) error {
	return newError(ErrInvalidCredentials, format, args...)
}

// Unauthorized construye el error de sesión ausente o inválida.
func Unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

// MessageOf devuelve el mensaje público del error si es de dominio.
func MessageOf(err error) (string, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Error(), true
	}
	return "", false
}
