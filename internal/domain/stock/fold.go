// Package stock contiene la regla de dominio que gobierna cómo un movimiento
// altera la cantidad actual de un producto (servicio de dominio puro).
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/avelasquez/control-stock-api/internal/domain/entity"
)

// Apply aplica un movimiento sobre la cantidad actual y devuelve la nueva cantidad.
// entry suma, exit resta, adjustment reemplaza por el valor absoluto.
// Una salida puede dejar la cantidad en negativo: no hay piso; el umbral
// mínimo del producto es solo alerta, nunca bloqueo.
// Esta función es la única definición de la regla: el camino incremental del
// motor y la recomputación total (Fold) la comparten.
func Apply(current decimal.Decimal, movementType string, quantity decimal.Decimal) decimal.Decimal {
	switch movementType {
	case entity.MovementTypeEntry:
		return current.Add(quantity)
	case entity.MovementTypeExit:
		return current.Sub(quantity)
	case entity.MovementTypeAdjustment:
		return quantity
	}
	return current
}

// Fold reduce la secuencia completa de movimientos (en orden de creación
// ascendente) a la cantidad actual. Recomputar desde cero con Fold debe
// producir el mismo valor que el campo mantenido incrementalmente.
func Fold(movements []*entity.StockMovement) decimal.Decimal {
	qty := decimal.Zero
	for _, m := range movements {
		qty = Apply(qty, m.Type, m.Quantity)
	}
	return qty
}
