package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida permitidas para productos.
const (
	UnitUnidad     = "un"
	UnitKilogramo  = "kg"
	UnitGramo      = "g"
	UnitLitro      = "l"
	UnitMililitro  = "ml"
	UnitMetro      = "m"
	UnitCentimetro = "cm"
	UnitCaja       = "cx"
	UnitPaquete    = "pct"
)

// ValidUnit indica si la unidad de medida pertenece al conjunto permitido.
func ValidUnit(unit string) bool {
	switch unit {
	case UnitUnidad, UnitKilogramo, UnitGramo, UnitLitro, UnitMililitro,
		UnitMetro, UnitCentimetro, UnitCaja, UnitPaquete:
		return true
	}
	return false
}

// Product representa un producto del catálogo.
// CurrentQuantity es una proyección derivada del ledger de movimientos:
// solo el motor de stock la escribe, nunca la edición directa del catálogo.
// MinQuantity es umbral de alerta ("stock bajo"), no un piso duro.
type Product struct {
	ID              string
	Code            string // código único legible (SKU)
	Name            string
	Description     string
	Unit            string          // unidad de medida (un, kg, g, l, ml, m, cm, cx, pct)
	CurrentQuantity decimal.Decimal // derivada del ledger, no editable
	MinQuantity     decimal.Decimal
	UnitPrice       *decimal.Decimal
	CategoryID      string // vacío si no tiene categoría
	SupplierID      string // vacío si no tiene proveedor
	TrackBatches    bool
	TrackExpiration bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral mínimo.
func (p *Product) LowStock() bool {
	return p.CurrentQuantity.LessThanOrEqual(p.MinQuantity)
}
