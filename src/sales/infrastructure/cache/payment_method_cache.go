package cache

import (
	"database/sql"
	"log"
	"sync"

	"github.com/google/uuid"

	"ventas/src/sales/domain/entity"
)

// PaymentMethodCache cache en memoria de los métodos de pago de la clínica.
// Solo guarda métodos activos; la moneda decide si el cobro va en USD o Bs.
type PaymentMethodCache struct {
	methods map[uuid.UUID]entity.PaymentMethod
	mu      sync.RWMutex
}

// NewPaymentMethodCache crea un nuevo cache de métodos de pago
func NewPaymentMethodCache() *PaymentMethodCache {
	return &PaymentMethodCache{
		methods: make(map[uuid.UUID]entity.PaymentMethod),
	}
}

// LoadFromDB carga los métodos de pago activos desde la base de datos
func (c *PaymentMethodCache) LoadFromDB(db *sql.DB) error {
	log.Println("🔄 Loading payment methods into cache...")

	query := `
		SELECT id, name, currency
		FROM payment_methods
		WHERE is_active = true
	`

	rows, err := db.Query(query)
	if err != nil {
		log.Printf("⚠️  Warning: Could not load payment methods: %v", err)
		return err
	}
	defer rows.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for rows.Next() {
		var pm entity.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.Name, &pm.Currency); err != nil {
			log.Printf("⚠️  Error scanning payment method: %v", err)
			continue
		}
		pm.IsActive = true
		c.methods[pm.ID] = pm
		count++
	}

	log.Printf("✅ Loaded %d payment methods into cache", count)
	return rows.Err()
}

// Get obtiene un método de pago por ID
func (c *PaymentMethodCache) Get(id uuid.UUID) (entity.PaymentMethod, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pm, ok := c.methods[id]
	return pm, ok
}

// GetName obtiene solo el nombre de un método de pago por ID
func (c *PaymentMethodCache) GetName(id uuid.UUID) string {
	pm, ok := c.Get(id)
	if !ok {
		return "Unknown"
	}
	return pm.Name
}

// ListActive retorna los métodos ofrecibles al operador
func (c *PaymentMethodCache) ListActive() []entity.PaymentMethod {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entity.PaymentMethod, 0, len(c.methods))
	for _, pm := range c.methods {
		out = append(out, pm)
	}
	return out
}
