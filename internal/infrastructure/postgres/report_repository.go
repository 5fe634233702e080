package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/avelasquez/control-stock-api/internal/domain/entity"
	"github.com/avelasquez/control-stock-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para dashboard y reportes.
// Siempre trabaja sobre el pool: ninguna de estas consultas participa en
// transacciones de escritura.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// CountProducts cuenta los productos del catálogo.
func (r *ReportRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reports.CountProducts: %w", err)
	}
	return n, nil
}

// CountLowStock cuenta productos con current_quantity <= min_quantity.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE current_quantity <= min_quantity`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reports.CountLowStock: %w", err)
	}
	return n, nil
}

// InventoryValue devuelve Σ current_quantity × unit_price sobre productos con precio.
// COALESCE para devolver cero en catálogo vacío o sin precios.
func (r *ReportRepo) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(current_quantity * unit_price), 0)
		FROM products WHERE unit_price IS NOT NULL`).Scan(&v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reports.InventoryValue: %w", err)
	}
	return v, nil
}

// MovementCountsByType agrupa los movimientos del período por tipo.
func (r *ReportRepo) MovementCountsByType(ctx context.Context, from, to time.Time) ([]repository.MovementTypeCount, error) {
	const query = `
		SELECT type, COUNT(*)
		FROM stock_movements
		WHERE created_at BETWEEN $1 AND $2
		GROUP BY type
		ORDER BY type`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.MovementCountsByType: %w", err)
	}
	defer rows.Close()
	var results []repository.MovementTypeCount
	for rows.Next() {
		var row repository.MovementTypeCount
		if err := rows.Scan(&row.Type, &row.Count); err != nil {
			return nil, fmt.Errorf("reports.MovementCountsByType scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// MovementsPerDay serie diaria de totales de movimientos en el período.
func (r *ReportRepo) MovementsPerDay(ctx context.Context, from, to time.Time) ([]repository.DailyMovementCount, error) {
	const query = `
		SELECT date_trunc('day', created_at) AS day, COUNT(*)
		FROM stock_movements
		WHERE created_at BETWEEN $1 AND $2
		GROUP BY day
		ORDER BY day ASC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.MovementsPerDay: %w", err)
	}
	defer rows.Close()
	var results []repository.DailyMovementCount
	for rows.Next() {
		var row repository.DailyMovementCount
		if err := rows.Scan(&row.Day, &row.Count); err != nil {
			return nil, fmt.Errorf("reports.MovementsPerDay scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// LowStockProducts lista productos en o bajo umbral, los de mayor déficit primero.
func (r *ReportRepo) LowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE current_quantity <= min_quantity
		ORDER BY (min_quantity - current_quantity) DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.LowStockProducts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("reports.LowStockProducts scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ExpiringBatches entradas con vencimiento entre hoy y el horizonte dado.
func (r *ReportRepo) ExpiringBatches(ctx context.Context, horizon time.Time) ([]repository.ExpiringBatch, error) {
	const query = `
		SELECT m.id, m.product_id, p.name, COALESCE(m.batch_code, ''), m.quantity, m.expires_at
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.type = $1
		  AND m.expires_at IS NOT NULL
		  AND m.expires_at BETWEEN now() AND $2
		ORDER BY m.expires_at ASC`
	rows, err := r.pool.Query(ctx, query, entity.MovementTypeEntry, horizon)
	if err != nil {
		return nil, fmt.Errorf("reports.ExpiringBatches: %w", err)
	}
	defer rows.Close()
	var results []repository.ExpiringBatch
	for rows.Next() {
		var row repository.ExpiringBatch
		if err := rows.Scan(&row.MovementID, &row.ProductID, &row.ProductName,
			&row.BatchCode, &row.Quantity, &row.ExpiresAt); err != nil {
			return nil, fmt.Errorf("reports.ExpiringBatches scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
