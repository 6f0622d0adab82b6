package deal

import (
	"context"

	"github.com/jhoicas/Invex-api/internal/application/dto"
)

// IdempotencyStore guarda el resultado de las liquidaciones por clave del cliente.
type IdempotencyStore interface {
	// Reserve marca la clave como en curso. Si ya existía devuelve reserved=false y,
	// si la liquidación terminó, el ID del trato creado (vacío si sigue en curso).
	Reserve(ctx context.Context, key string) (dealID string, reserved bool, err error)
	// Complete asocia la clave al trato creado.
	Complete(ctx context.Context, key, dealID string) error
	// Release libera una clave reservada cuya liquidación falló.
	Release(ctx context.Context, key string) error
}

// ReceiptRenderer genera un documento descargable de un trato (PDF, XML).
type ReceiptRenderer interface {
	ContentType() string
	Extension() string
	Render(ctx context.Context, detail *dto.DealDetailResponse) ([]byte, error)
}
