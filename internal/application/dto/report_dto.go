package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItemDTO producto en o por debajo de su umbral mínimo.
type LowStockItemDTO struct {
	ProductID       string          `json:"product_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	MinQuantity     decimal.Decimal `json:"min_quantity"`
	Deficit         decimal.Decimal `json:"deficit"` // min_quantity - current_quantity
}

// ExpiringBatchDTO lote registrado en una entrada con vencimiento próximo.
type ExpiringBatchDTO struct {
	MovementID  string          `json:"movement_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	BatchCode   string          `json:"batch_code,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	ExpiresAt   time.Time       `json:"expires_at"`
	DaysLeft    int             `json:"days_left"`
}
