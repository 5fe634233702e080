package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Todos los agregados son derivados: se recalculan en cada lectura desde las
// tablas de productos y movimientos, no se mantienen incrementalmente.
type DashboardSummaryDTO struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"` // current_quantity <= min_quantity
	InventoryValue decimal.Decimal `json:"inventory_value"` // Σ current_quantity × unit_price

	// Movimientos del período consultado (por defecto últimos 30 días)
	MovementsByType []MovementTypeCountDTO `json:"movements_by_type"`
	MovementsPerDay []DailyMovementDTO     `json:"movements_per_day"`

	PeriodDays int `json:"period_days"`
}

// MovementTypeCountDTO total de movimientos por tipo en el período.
type MovementTypeCountDTO struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// DailyMovementDTO total de movimientos de un día (serie para gráficos).
type DailyMovementDTO struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int64  `json:"count"`
}
