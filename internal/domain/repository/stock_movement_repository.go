package repository

import (
	"time"

	"github.com/avelasquez/control-stock-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
}

// StockMovementRepository define el puerto de persistencia del ledger.
// Los movimientos son append-only: no existe Update ni Delete individual;
// solo desaparecen por borrado en cascada del producto.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// List devuelve movimientos filtrados en orden de creación descendente
	// (vistas de historial) con paginación.
	List(filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
	// ListByProductAsc devuelve el ledger completo de un producto en orden de
	// creación ascendente, el orden que exige el fold de recomputación.
	ListByProductAsc(productID string) ([]*entity.StockMovement, error)
}
