package cache

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/entity"
)

// RateCache guarda la última tasa USD/VES del proveedor con su vencimiento,
// más una tasa manual opcional que siempre tiene prioridad. Cuando la tasa
// del proveedor venció y no hay manual, Current retorna 0 y el cálculo de
// cobro levanta la señal de tasa faltante en lugar de bloquear.
type RateCache struct {
	mu         sync.RWMutex
	provider   decimal.Decimal
	fetchedAt  time.Time
	ttl        time.Duration
	manualRate *decimal.Decimal
}

// NewRateCache crea el cache con el TTL dado para la tasa del proveedor
func NewRateCache(ttl time.Duration) *RateCache {
	return &RateCache{ttl: ttl}
}

// SetProvider registra una tasa fresca del proveedor
func (c *RateCache) SetProvider(rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.provider = rate
	c.fetchedAt = time.Now()
}

// SetManual fija la tasa manual; debe ser positiva
func (c *RateCache) SetManual(rate decimal.Decimal) error {
	if !rate.GreaterThan(decimal.Zero) {
		return entity.ErrMissingExchangeRate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manualRate = &rate
	return nil
}

// ClearManual vuelve al modo proveedor
func (c *RateCache) ClearManual() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manualRate = nil
}

// Current retorna la tasa vigente y si es manual. 0 cuando no hay tasa
// utilizable.
func (c *RateCache) Current() (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.manualRate != nil {
		return *c.manualRate, true
	}
	if c.provider.GreaterThan(decimal.Zero) && time.Since(c.fetchedAt) <= c.ttl {
		return c.provider, false
	}
	return decimal.Zero, false
}
