package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/avelasquez/control-stock-api/internal/domain/entity"
	"github.com/avelasquez/control-stock-api/internal/domain/stock"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func mov(t string, qty string) *entity.StockMovement {
	return &entity.StockMovement{Type: t, Quantity: d(qty)}
}

// entry y exit son relativos: 10 + entrada 5 = 15; luego salida 3 = 12.
func TestApply_EntradaYSalidaSonRelativas(t *testing.T) {
	qty := stock.Apply(d("10"), entity.MovementTypeEntry, d("5"))
	assert.True(t, qty.Equal(d("15")), "entrada de 5 sobre 10 debe dar 15, dio %s", qty)

	qty = stock.Apply(qty, entity.MovementTypeExit, d("3"))
	assert.True(t, qty.Equal(d("12")), "salida de 3 sobre 15 debe dar 12, dio %s", qty)
}

// adjustment es absoluto, no relativo: ajustar a 50 con stock 120 deja 50.
func TestApply_AjusteEsAbsoluto(t *testing.T) {
	qty := stock.Apply(d("120"), entity.MovementTypeAdjustment, d("50"))
	assert.True(t, qty.Equal(d("50")), "ajuste a 50 sobre 120 debe dar 50, dio %s", qty)
}

// Una salida sin piso puede dejar stock negativo: 2 - 5 = -3 (comportamiento del sistema).
func TestApply_SalidaPermiteStockNegativo(t *testing.T) {
	qty := stock.Apply(d("2"), entity.MovementTypeExit, d("5"))
	assert.True(t, qty.Equal(d("-3")), "salida de 5 sobre 2 debe dar -3, dio %s", qty)
}

// Cantidades decimales se conservan sin error de redondeo binario.
func TestApply_CantidadesDecimales(t *testing.T) {
	qty := stock.Apply(d("0.1"), entity.MovementTypeEntry, d("0.2"))
	assert.True(t, qty.Equal(d("0.3")), "0.1 + 0.2 debe dar exactamente 0.3, dio %s", qty)
}

// Fold reduce la secuencia completa en orden y coincide con la aplicación incremental.
func TestFold_CoincideConAplicacionIncremental(t *testing.T) {
	movements := []*entity.StockMovement{
		mov(entity.MovementTypeEntry, "100"),
		mov(entity.MovementTypeExit, "30"),
		mov(entity.MovementTypeEntry, "12.5"),
		mov(entity.MovementTypeAdjustment, "50"),
		mov(entity.MovementTypeExit, "8"),
		mov(entity.MovementTypeEntry, "0.01"),
	}

	incremental := decimal.Zero
	for _, m := range movements {
		incremental = stock.Apply(incremental, m.Type, m.Quantity)
	}

	folded := stock.Fold(movements)
	assert.True(t, folded.Equal(incremental),
		"fold (%s) debe coincidir con el camino incremental (%s)", folded, incremental)
	assert.True(t, folded.Equal(d("42.01")), "la secuencia debe terminar en 42.01, dio %s", folded)
}

// Fold sobre un ledger vacío es cero.
func TestFold_LedgerVacio(t *testing.T) {
	assert.True(t, stock.Fold(nil).IsZero())
}
