package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas del módulo de ventas
var (
	salesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventas_sales_committed_total",
		Help: "Total de ventas cobradas y persistidas",
	})

	settlementsQuoted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventas_settlements_quoted_total",
		Help: "Total de cotizaciones de cobro calculadas",
	})

	settlementsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventas_settlements_rejected_total",
		Help: "Total de cobros rechazados por validación",
	})

	rateFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventas_rate_fetch_failures_total",
		Help: "Total de fallos consultando la tasa al proveedor",
	})
)

// RateFetchFailed incrementa el contador de fallos del proveedor de tasa;
// lo invoca el refresco periódico de main
func RateFetchFailed() {
	rateFetchFailures.Inc()
}
