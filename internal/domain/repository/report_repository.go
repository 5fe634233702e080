package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelasquez/control-stock-api/internal/domain/entity"
)

// MovementTypeCount total de movimientos de un tipo en un período.
type MovementTypeCount struct {
	Type  string
	Count int64
}

// DailyMovementCount total de movimientos registrados en un día.
type DailyMovementCount struct {
	Day   time.Time
	Count int64
}

// ExpiringBatch lote con vencimiento dentro del horizonte consultado.
type ExpiringBatch struct {
	MovementID  string
	ProductID   string
	ProductName string
	BatchCode   string
	Quantity    decimal.Decimal
	ExpiresAt   time.Time
}

// ReportRepository consultas de solo lectura para dashboard y reportes.
// Los agregados se recalculan en cada lectura desde el estado almacenado;
// no se mantienen incrementalmente.
type ReportRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	// CountLowStock cuenta productos con current_quantity <= min_quantity.
	CountLowStock(ctx context.Context) (int64, error)
	// InventoryValue devuelve Σ current_quantity × unit_price sobre productos con precio.
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	MovementCountsByType(ctx context.Context, from, to time.Time) ([]MovementTypeCount, error)
	MovementsPerDay(ctx context.Context, from, to time.Time) ([]DailyMovementCount, error)
	// LowStockProducts lista productos en o bajo umbral, ordenados por déficit descendente.
	LowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error)
	// ExpiringBatches lista entradas con vencimiento entre hoy y el horizonte dado.
	ExpiringBatches(ctx context.Context, horizon time.Time) ([]ExpiringBatch, error)
}
