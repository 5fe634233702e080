// Package reports contiene los casos de uso de solo lectura para el dashboard
// y los reportes operativos. Los agregados se recalculan en cada lectura.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelasquez/control-stock-api/internal/application/dto"
	"github.com/avelasquez/control-stock-api/internal/domain/repository"
)

const defaultDashboardDays = 30 // ventana por defecto para las series de movimientos

// DashboardUseCase construye el resumen del inventario: conteos del catálogo,
// valor total y actividad reciente del ledger.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// GetSummary arma el DashboardSummaryDTO. Las cuatro consultas van en
// paralelo; days acota la ventana de las series de movimientos (<=0 usa 30).
func (uc *DashboardUseCase) GetSummary(ctx context.Context, days int) (*dto.DashboardSummaryDTO, error) {
	if days <= 0 {
		days = defaultDashboardDays
	}
	now := time.Now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		Add(24*time.Hour - time.Nanosecond)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	type countsResult struct {
		total    int64
		lowStock int64
		err      error
	}
	type valueResult struct {
		value decimal.Decimal
		err   error
	}
	type byTypeResult struct {
		counts []repository.MovementTypeCount
		err    error
	}
	type perDayResult struct {
		counts []repository.DailyMovementCount
		err    error
	}

	countsCh := make(chan countsResult, 1)
	valueCh := make(chan valueResult, 1)
	byTypeCh := make(chan byTypeResult, 1)
	perDayCh := make(chan perDayResult, 1)

	go func() {
		total, err := uc.reportRepo.CountProducts(ctx)
		if err != nil {
			countsCh <- countsResult{err: err}
			return
		}
		low, err := uc.reportRepo.CountLowStock(ctx)
		countsCh <- countsResult{total: total, lowStock: low, err: err}
	}()
	go func() {
		v, err := uc.reportRepo.InventoryValue(ctx)
		valueCh <- valueResult{v, err}
	}()
	go func() {
		c, err := uc.reportRepo.MovementCountsByType(ctx, from, to)
		byTypeCh <- byTypeResult{c, err}
	}()
	go func() {
		c, err := uc.reportRepo.MovementsPerDay(ctx, from, to)
		perDayCh <- perDayResult{c, err}
	}()

	counts := <-countsCh
	value := <-valueCh
	byType := <-byTypeCh
	perDay := <-perDayCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos de catálogo: %w", counts.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor de inventario: %w", value.err)
	}
	if byType.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos por tipo: %w", byType.err)
	}
	if perDay.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos por día: %w", perDay.err)
	}

	byTypeDTO := make([]dto.MovementTypeCountDTO, 0, len(byType.counts))
	for _, c := range byType.counts {
		byTypeDTO = append(byTypeDTO, dto.MovementTypeCountDTO{Type: c.Type, Count: c.Count})
	}
	perDayDTO := make([]dto.DailyMovementDTO, 0, len(perDay.counts))
	for _, c := range perDay.counts {
		perDayDTO = append(perDayDTO, dto.DailyMovementDTO{
			Day:   c.Day.Format("2006-01-02"),
			Count: c.Count,
		})
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:   counts.total,
		LowStockCount:   counts.lowStock,
		InventoryValue:  value.value.Round(2),
		MovementsByType: byTypeDTO,
		MovementsPerDay: perDayDTO,
		PeriodDays:      days,
	}, nil
}
