// Package service contiene la lógica pura del punto de venta: resolución
// de disponibilidad, preparación del carrito y cálculo del cobro. Ninguna
// función de este paquete hace I/O.
package service

import "ventas/src/sales/domain/entity"

// AvailableStock resuelve la cantidad máxima vendible de un producto en el
// modo de unidad elegido, leyendo la foto de inventario:
//   - unidad completa: unidades en existencia
//   - dosis: unidades × dosis-por-unidad + dosis sueltas
//
// Para un producto no divisible consultado en modo dosis retorna 0 (no es
// un error: el caller no debe ofrecer modo dosis para esos productos).
func AvailableStock(product *entity.Product, snapshot entity.StockSnapshot, isFullUnit bool) int {
	if isFullUnit {
		return nonNegative(snapshot.StockUnits)
	}
	if !product.Divisible {
		return 0
	}
	return nonNegative(snapshot.StockUnits*product.DosesPerUnit + snapshot.StockDoses)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
