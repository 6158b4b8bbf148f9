package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/port"
)

// CreditPostgresRepository lee el saldo a favor de un propietario desde el
// ledger de crédito. El ledger es append-only: abonos positivos, usos
// negativos; el saldo es la suma.
type CreditPostgresRepository struct {
	db *sql.DB
}

// NewCreditPostgresRepository crea una nueva instancia del repositorio
func NewCreditPostgresRepository(db *sql.DB) port.CreditRepository {
	return &CreditPostgresRepository{db: db}
}

// Balance retorna el saldo a favor del propietario, nunca negativo
func (r *CreditPostgresRepository) Balance(ctx context.Context, clinicID, ownerID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM credit_ledger
		WHERE clinic_id = $1 AND owner_id = $2
	`

	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, clinicID, ownerID).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error querying credit balance: %w", err)
	}

	if balance.LessThan(decimal.Zero) {
		balance = decimal.Zero
	}
	return balance, nil
}
