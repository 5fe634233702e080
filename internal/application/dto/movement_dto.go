package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/movements.
// Para entry/exit, quantity es el delta (> 0); para adjustment es el nivel
// absoluto nuevo (>= 0).
type RecordMovementRequest struct {
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"` // entry, exit, adjustment
	Quantity  decimal.Decimal `json:"quantity"`
	BatchCode string          `json:"batch_code,omitempty"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	BatchCode string          `json:"batch_code,omitempty"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// RecomputeResponse salida de POST /api/products/{id}/recompute.
type RecomputeResponse struct {
	ProductID  string          `json:"product_id"`
	Previous   decimal.Decimal `json:"previous_quantity"`
	Recomputed decimal.Decimal `json:"recomputed_quantity"`
	Drift      bool            `json:"drift"`
}
