package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelasquez/control-stock-api/internal/application/reports"
	"github.com/avelasquez/control-stock-api/internal/domain/entity"
	"github.com/avelasquez/control-stock-api/internal/domain/repository"
)

// fakeReportRepo devuelve datos fijos y registra las ventanas consultadas.
type fakeReportRepo struct {
	totalProducts int64
	lowStock      int64
	value         decimal.Decimal
	byType        []repository.MovementTypeCount
	perDay        []repository.DailyMovementCount
	lowProducts   []*entity.Product
	batches       []repository.ExpiringBatch

	byTypeFrom, byTypeTo time.Time
	failValue            bool
}

func (f *fakeReportRepo) CountProducts(context.Context) (int64, error) { return f.totalProducts, nil }
func (f *fakeReportRepo) CountLowStock(context.Context) (int64, error) { return f.lowStock, nil }

func (f *fakeReportRepo) InventoryValue(context.Context) (decimal.Decimal, error) {
	if f.failValue {
		return decimal.Zero, errors.New("consulta fallida")
	}
	return f.value, nil
}

func (f *fakeReportRepo) MovementCountsByType(_ context.Context, from, to time.Time) ([]repository.MovementTypeCount, error) {
	f.byTypeFrom, f.byTypeTo = from, to
	return f.byType, nil
}

func (f *fakeReportRepo) MovementsPerDay(context.Context, time.Time, time.Time) ([]repository.DailyMovementCount, error) {
	return f.perDay, nil
}

func (f *fakeReportRepo) LowStockProducts(context.Context, int) ([]*entity.Product, error) {
	return f.lowProducts, nil
}

func (f *fakeReportRepo) ExpiringBatches(context.Context, time.Time) ([]repository.ExpiringBatch, error) {
	return f.batches, nil
}

func TestDashboardSummary_AgregaResultados(t *testing.T) {
	repo := &fakeReportRepo{
		totalProducts: 42,
		lowStock:      3,
		value:         decimal.RequireFromString("1250.505"),
		byType: []repository.MovementTypeCount{
			{Type: "entry", Count: 10},
			{Type: "exit", Count: 7},
		},
		perDay: []repository.DailyMovementCount{
			{Day: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), Count: 5},
		},
	}
	uc := reports.NewDashboardUseCase(repo)

	out, err := uc.GetSummary(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(42), out.TotalProducts)
	assert.Equal(t, int64(3), out.LowStockCount)
	assert.True(t, out.InventoryValue.Equal(decimal.RequireFromString("1250.51")),
		"el valor de inventario se redondea a dos decimales")
	assert.Equal(t, 7, out.PeriodDays)

	require.Len(t, out.MovementsByType, 2)
	assert.Equal(t, "entry", out.MovementsByType[0].Type)
	assert.Equal(t, int64(10), out.MovementsByType[0].Count)

	require.Len(t, out.MovementsPerDay, 1)
	assert.Equal(t, "2026-08-27", out.MovementsPerDay[0].Day)
	assert.Equal(t, int64(5), out.MovementsPerDay[0].Count)
}

func TestDashboardSummary_VentanaPorDefecto(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := reports.NewDashboardUseCase(repo)

	out, err := uc.GetSummary(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, out.PeriodDays)

	// La ventana debe cubrir 30 días calendario incluyendo hoy.
	days := int(repo.byTypeTo.Sub(repo.byTypeFrom).Hours()/24) + 1
	assert.Equal(t, 30, days)
}

func TestDashboardSummary_PropagaErrores(t *testing.T) {
	repo := &fakeReportRepo{failValue: true}
	uc := reports.NewDashboardUseCase(repo)

	_, err := uc.GetSummary(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valor de inventario")
}

func TestLowStockReport_CalculaDeficit(t *testing.T) {
	repo := &fakeReportRepo{
		lowProducts: []*entity.Product{
			{
				ID:              "p1",
				Code:            "HAR-002",
				Name:            "Harina",
				Unit:            "kg",
				CurrentQuantity: decimal.NewFromInt(2),
				MinQuantity:     decimal.NewFromInt(10),
			},
		},
	}
	uc := reports.NewReportUseCase(repo)

	items, err := uc.LowStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "p1", items[0].ProductID)
	assert.True(t, items[0].Deficit.Equal(decimal.NewFromInt(8)),
		"deficit = min_quantity - current_quantity")
}

func TestExpiringReport_DiasRestantes(t *testing.T) {
	expires := time.Now().AddDate(0, 0, 10)
	repo := &fakeReportRepo{
		batches: []repository.ExpiringBatch{
			{
				MovementID:  "m1",
				ProductID:   "p1",
				ProductName: "Leche entera",
				BatchCode:   "L-2026-08",
				Quantity:    decimal.NewFromInt(24),
				ExpiresAt:   expires,
			},
		},
	}
	uc := reports.NewReportUseCase(repo)

	items, err := uc.Expiring(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "L-2026-08", items[0].BatchCode)
	assert.InDelta(t, 9, items[0].DaysLeft, 1, "unos 10 días hasta el vencimiento")
}
