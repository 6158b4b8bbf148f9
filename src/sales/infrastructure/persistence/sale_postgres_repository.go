package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/entity"
	"ventas/src/sales/domain/port"
)

// SalePostgresRepository implementa SaleRepository usando PostgreSQL.
// Una venta se persiste en una sola transacción: cabecera, items,
// descuento de inventario por línea y asiento de crédito si aplica.
type SalePostgresRepository struct {
	db *sql.DB
}

// NewSalePostgresRepository crea una nueva instancia del repositorio
func NewSalePostgresRepository(db *sql.DB) port.SaleRepository {
	return &SalePostgresRepository{db: db}
}

// Create persiste la venta completa
func (r *SalePostgresRepository) Create(ctx context.Context, sale *entity.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Insertar la venta (aggregate root)
	querySale := `
		INSERT INTO sales (
			id, clinic_id, owner_id, payment_method_id, reference,
			total_amount, discount_amount, final_amount,
			amount_paid_usd, amount_paid_bs, exchange_rate,
			credit_amount_used, is_partial, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err = tx.ExecContext(ctx, querySale,
		sale.ID,
		sale.ClinicID,
		sale.OwnerID,
		sale.PaymentMethodID, // NULL permitido (cobro solo-crédito)
		sale.Reference,
		sale.TotalAmount,
		sale.DiscountAmount,
		sale.FinalAmount,
		sale.AmountPaidUSD,
		sale.AmountPaidBs,
		sale.ExchangeRate,
		creditOrNil(sale.CreditAmountUsed),
		sale.IsPartial,
		sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating sale: %w", err)
	}

	// 2. Insertar los items
	queryItem := `
		INSERT INTO sale_items (
			id, sale_id, product_id, product_name, is_full_unit,
			quantity, unit_price, discount, subtotal, total, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW()
		)
	`

	for _, item := range sale.Items {
		_, err = tx.ExecContext(ctx, queryItem,
			item.ID,
			item.SaleID,
			item.ProductID,
			item.ProductName,
			item.IsFullUnit,
			item.Quantity,
			item.UnitPrice,
			item.Discount,
			item.Subtotal,
			item.Total,
		)
		if err != nil {
			return fmt.Errorf("error creating sale_item for product %s: %w", item.ProductID, err)
		}
	}

	// 3. Descontar inventario por línea
	for _, item := range sale.Items {
		if err := r.decrementStock(ctx, tx, sale.ClinicID, item); err != nil {
			return err
		}
	}

	// 4. Asentar el uso de crédito del propietario
	if sale.CreditAmountUsed != nil && sale.CreditAmountUsed.GreaterThan(decimal.Zero) {
		queryLedger := `
			INSERT INTO credit_ledger (
				id, clinic_id, owner_id, sale_id, amount, description, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, NOW()
			)
		`
		_, err = tx.ExecContext(ctx, queryLedger,
			uuid.New(),
			sale.ClinicID,
			sale.OwnerID,
			sale.ID,
			sale.CreditAmountUsed.Neg(), // débito: reduce el saldo
			fmt.Sprintf("credit applied to sale %s", sale.ID),
		)
		if err != nil {
			return fmt.Errorf("error recording credit usage: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// decrementStock descuenta la línea del inventario. Una línea por unidad
// completa descuenta unidades; una línea por dosis descuenta dosis sueltas
// y abre unidades completas cuando las sueltas no alcanzan.
func (r *SalePostgresRepository) decrementStock(ctx context.Context, tx *sql.Tx, clinicID uuid.UUID, item entity.SaleItem) error {
	if item.IsFullUnit {
		result, err := tx.ExecContext(ctx, `
			UPDATE stock
			SET stock_units = stock_units - $3
			WHERE clinic_id = $1 AND product_id = $2 AND stock_units >= $3
		`, clinicID, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("error decrementing stock units for product %s: %w", item.ProductID, err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return fmt.Errorf("insufficient stock for product %s: %w", item.ProductID, entity.ErrStockLimitReached)
		}
		return nil
	}

	// Modo dosis: leer con lock, abrir unidades si hace falta
	var stockUnits, stockDoses, dosesPerUnit int
	err := tx.QueryRowContext(ctx, `
		SELECT s.stock_units, s.stock_doses, p.doses_per_unit
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.clinic_id = $1 AND s.product_id = $2
		FOR UPDATE OF s
	`, clinicID, item.ProductID).Scan(&stockUnits, &stockDoses, &dosesPerUnit)
	if err != nil {
		return fmt.Errorf("error locking stock for product %s: %w", item.ProductID, err)
	}

	remaining := item.Quantity
	if stockDoses >= remaining {
		stockDoses -= remaining
	} else {
		remaining -= stockDoses
		stockDoses = 0

		// abrir unidades completas para cubrir el resto
		unitsToOpen := (remaining + dosesPerUnit - 1) / dosesPerUnit
		if unitsToOpen > stockUnits {
			return fmt.Errorf("insufficient stock for product %s: %w", item.ProductID, entity.ErrStockLimitReached)
		}
		stockUnits -= unitsToOpen
		stockDoses = unitsToOpen*dosesPerUnit - remaining
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE stock
		SET stock_units = $3, stock_doses = $4
		WHERE clinic_id = $1 AND product_id = $2
	`, clinicID, item.ProductID, stockUnits, stockDoses)
	if err != nil {
		return fmt.Errorf("error decrementing stock doses for product %s: %w", item.ProductID, err)
	}
	return nil
}

// ListByClinic retorna las ventas de la clínica CON sus items
func (r *SalePostgresRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*entity.Sale, error) {
	querySales := `
		SELECT
			id, clinic_id, owner_id, payment_method_id, reference,
			total_amount, discount_amount, final_amount,
			amount_paid_usd, amount_paid_bs, exchange_rate,
			credit_amount_used, is_partial, created_at
		FROM sales
		WHERE clinic_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, querySales, clinicID)
	if err != nil {
		return nil, fmt.Errorf("error querying sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale

	for rows.Next() {
		sale := &entity.Sale{}
		var reference sql.NullString
		var creditUsed decimal.NullDecimal
		err := rows.Scan(
			&sale.ID,
			&sale.ClinicID,
			&sale.OwnerID,
			&sale.PaymentMethodID,
			&reference,
			&sale.TotalAmount,
			&sale.DiscountAmount,
			&sale.FinalAmount,
			&sale.AmountPaidUSD,
			&sale.AmountPaidBs,
			&sale.ExchangeRate,
			&creditUsed,
			&sale.IsPartial,
			&sale.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning sale: %w", err)
		}
		sale.Reference = reference.String
		if creditUsed.Valid {
			sale.CreditAmountUsed = &creditUsed.Decimal
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	// Items por venta (N+1, suficiente para el reporte de la clínica)
	queryItems := `
		SELECT
			id, sale_id, product_id, product_name, is_full_unit,
			quantity, unit_price, discount, subtotal, total
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY created_at
	`

	for _, sale := range sales {
		itemRows, err := r.db.QueryContext(ctx, queryItems, sale.ID)
		if err != nil {
			return nil, fmt.Errorf("error querying sale_items: %w", err)
		}

		var items []entity.SaleItem
		for itemRows.Next() {
			item := entity.SaleItem{}
			err := itemRows.Scan(
				&item.ID,
				&item.SaleID,
				&item.ProductID,
				&item.ProductName,
				&item.IsFullUnit,
				&item.Quantity,
				&item.UnitPrice,
				&item.Discount,
				&item.Subtotal,
				&item.Total,
			)
			if err != nil {
				itemRows.Close()
				return nil, fmt.Errorf("error scanning sale_item: %w", err)
			}
			items = append(items, item)
		}
		itemRows.Close()

		if err = itemRows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating sale_items: %w", err)
		}

		sale.Items = items
	}

	return sales, nil
}

func creditOrNil(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}
