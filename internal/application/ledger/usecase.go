// Package ledger implementa el motor de stock: la cantidad actual de un
// producto es siempre el fold de su historial de movimientos, mantenido
// incrementalmente dentro de una transacción por cada alta de movimiento.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avelasquez/control-stock-api/internal/domain"
	"github.com/avelasquez/control-stock-api/internal/domain/entity"
	"github.com/avelasquez/control-stock-api/internal/domain/repository"
	"github.com/avelasquez/control-stock-api/internal/domain/stock"
)

// RecordMovementUseCase registra movimientos de stock de forma transaccional
// (entry, exit, adjustment) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RecordMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner, productRepo: productRepo}
}

// MovementInput entrada para registrar un movimiento de stock.
// Para entry/exit, Quantity > 0 (delta). Para adjustment, Quantity >= 0
// y es el nivel absoluto nuevo, no un delta.
type MovementInput struct {
	UserID    string
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	BatchCode string
	ExpiresAt *time.Time
	Notes     string
}

// RecordMovement valida la entrada, verifica que el producto exista, y dentro
// de una sola transacción inserta el movimiento y actualiza la cantidad del
// producto según la regla stock.Apply. Devuelve el ID del movimiento creado.
//
// Errores: domain.ErrInvalidInput (tipo desconocido o cantidad fuera de rango),
// domain.ErrNotFound (producto inexistente). Un fallo de infraestructura se
// propaga envuelto y la transacción se revierte completa: nunca queda un
// movimiento sin su actualización de cantidad ni viceversa.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (string, error) {
	if input.ProductID == "" || input.UserID == "" {
		return "", domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeEntry, entity.MovementTypeExit:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return "", domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity.LessThan(decimal.Zero) {
			return "", domain.ErrInvalidInput
		}
	default:
		return "", domain.ErrInvalidInput
	}

	// Existencia fuera de la transacción: evita abrir tx para peticiones inválidas.
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}

	movementID := uuid.New().String()
	now := time.Now()

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto para serializar escrituras concurrentes
		// sobre la misma cantidad (se re-verifica existencia bajo el lock).
		locked, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		mov := &entity.StockMovement{
			ID:        movementID,
			ProductID: input.ProductID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			BatchCode: input.BatchCode,
			ExpiresAt: input.ExpiresAt,
			Notes:     input.Notes,
			CreatedBy: input.UserID,
			CreatedAt: now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		newQty := stock.Apply(locked.CurrentQuantity, input.Type, input.Quantity)
		return productRepo.UpdateQuantity(input.ProductID, newQty)
	})
	if err != nil {
		return "", err
	}
	return movementID, nil
}

// RecomputeResult resultado de una recomputación total desde el ledger.
type RecomputeResult struct {
	ProductID  string
	Previous   decimal.Decimal
	Recomputed decimal.Decimal
	Drift      bool // true si el valor incremental había divergido del fold
}

// RecomputeQuantity re-pliega el historial completo del producto (orden de
// creación ascendente) y reescribe la proyección, todo bajo la misma
// transacción y lock de fila. Sirve para detectar y corregir deriva entre el
// campo mantenido incrementalmente y el ledger.
func (uc *RecordMovementUseCase) RecomputeQuantity(ctx context.Context, productID string) (*RecomputeResult, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *RecomputeResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		movements, err := movRepo.ListByProductAsc(productID)
		if err != nil {
			return err
		}
		folded := stock.Fold(movements)
		result = &RecomputeResult{
			ProductID:  productID,
			Previous:   product.CurrentQuantity,
			Recomputed: folded,
			Drift:      !folded.Equal(product.CurrentQuantity),
		}
		if !result.Drift {
			return nil
		}
		return productRepo.UpdateQuantity(productID, folded)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
