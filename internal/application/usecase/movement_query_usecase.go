package usecase

import (
	"time"

	"github.com/avelasquez/control-stock-api/internal/application/dto"
	"github.com/avelasquez/control-stock-api/internal/domain"
	"github.com/avelasquez/control-stock-api/internal/domain/entity"
	"github.com/avelasquez/control-stock-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el ledger de movimientos.
// No ofrece escritura: los altas van por el motor de stock y no existe
// actualización ni borrado de movimientos.
type MovementQueryUseCase struct {
	repo repository.StockMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(repo repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{repo: repo}
}

// MovementListInput filtros y paginación para listar movimientos.
type MovementListInput struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// List lista movimientos en orden de creación descendente (vista de historial).
func (uc *MovementQueryUseCase) List(in MovementListInput) (*dto.MovementListResponse, error) {
	if in.Type != "" && !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		From:      in.From,
		To:        in.To,
	}
	list, err := uc.repo.List(filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (uc *MovementQueryUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	movement, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, nil
	}
	return toMovementResponse(movement), nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		BatchCode: m.BatchCode,
		ExpiresAt: m.ExpiresAt,
		Notes:     m.Notes,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}
