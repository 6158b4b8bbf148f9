package entity

import "github.com/google/uuid"

// Monedas de cobro soportadas. VES (bolívares) requiere tasa de cambio.
const (
	CurrencyUSD = "USD"
	CurrencyVES = "VES"
)

// PaymentMethod es un método de pago ofrecido por la clínica.
// Solo los métodos activos se ofrecen al operador.
type PaymentMethod struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
	IsActive bool      `json:"is_active"`
}

// IsBs indica si el método cobra en moneda secundaria (bolívares)
func (m PaymentMethod) IsBs() bool {
	return m.Currency == CurrencyVES
}
