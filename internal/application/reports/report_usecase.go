package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/avelasquez/control-stock-api/internal/application/dto"
	"github.com/avelasquez/control-stock-api/internal/domain/repository"
)

const (
	defaultLowStockLimit = 50
	defaultExpiryDays    = 30
)

// ReportUseCase reportes operativos: stock bajo y lotes por vencer.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// LowStock lista productos en o por debajo de su umbral mínimo, ordenados por
// déficit descendente (los más urgentes primero).
func (uc *ReportUseCase) LowStock(ctx context.Context, limit int) ([]dto.LowStockItemDTO, error) {
	if limit <= 0 {
		limit = defaultLowStockLimit
	}
	products, err := uc.reportRepo.LowStockProducts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reporte stock bajo: %w", err)
	}
	items := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		items = append(items, dto.LowStockItemDTO{
			ProductID:       p.ID,
			Code:            p.Code,
			Name:            p.Name,
			Unit:            p.Unit,
			CurrentQuantity: p.CurrentQuantity,
			MinQuantity:     p.MinQuantity,
			Deficit:         p.MinQuantity.Sub(p.CurrentQuantity),
		})
	}
	return items, nil
}

// Expiring lista entradas con vencimiento dentro de los próximos days días.
func (uc *ReportUseCase) Expiring(ctx context.Context, days int) ([]dto.ExpiringBatchDTO, error) {
	if days <= 0 {
		days = defaultExpiryDays
	}
	now := time.Now()
	horizon := now.AddDate(0, 0, days)
	batches, err := uc.reportRepo.ExpiringBatches(ctx, horizon)
	if err != nil {
		return nil, fmt.Errorf("reporte vencimientos: %w", err)
	}
	items := make([]dto.ExpiringBatchDTO, 0, len(batches))
	for _, b := range batches {
		items = append(items, dto.ExpiringBatchDTO{
			MovementID:  b.MovementID,
			ProductID:   b.ProductID,
			ProductName: b.ProductName,
			BatchCode:   b.BatchCode,
			Quantity:    b.Quantity,
			ExpiresAt:   b.ExpiresAt,
			DaysLeft:    int(time.Until(b.ExpiresAt).Hours() / 24),
		})
	}
	return items, nil
}
