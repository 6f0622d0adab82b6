package dto

// LimitQuery límite opcional para listados (?limit=).
type LimitQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=500"`
}

// DefaultLimit aplica el valor por defecto si Limit es cero.
func (q *LimitQuery) DefaultLimit() {
	if q.Limit <= 0 {
		q.Limit = 50
	}
}

// StatusResponse respuesta genérica de operaciones de escritura.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
