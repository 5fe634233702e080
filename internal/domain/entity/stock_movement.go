package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeEntry      = "entry"      // entrada: suma al stock
	MovementTypeExit       = "exit"       // salida: resta del stock
	MovementTypeAdjustment = "adjustment" // ajuste: reemplaza el stock (valor absoluto)
)

// ValidMovementType indica si el tipo pertenece al conjunto permitido.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit || t == MovementTypeAdjustment
}

// StockMovement es una entrada del ledger de stock: inmutable una vez creada.
// Quantity es siempre positiva para entry/exit; para adjustment es el nivel
// absoluto nuevo (>= 0). CreatedBy guarda la identidad del usuario para auditoría.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // entry, exit, adjustment
	Quantity  decimal.Decimal
	BatchCode string     // lote opcional
	ExpiresAt *time.Time // vencimiento opcional (productos con TrackExpiration)
	Notes     string
	CreatedBy string // UserID del actor
	CreatedAt time.Time
}
