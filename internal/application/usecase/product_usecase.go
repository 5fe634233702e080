package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avelasquez/control-stock-api/internal/application/dto"
	"github.com/avelasquez/control-stock-api/internal/application/ledger"
	"github.com/avelasquez/control-stock-api/internal/domain"
	"github.com/avelasquez/control-stock-api/internal/domain/entity"
	"github.com/avelasquez/control-stock-api/internal/domain/repository"
)

// movementRecorder es el subconjunto del motor de stock que el catálogo usa
// para registrar la cantidad inicial como ajuste sintético.
type movementRecorder interface {
	RecordMovement(ctx context.Context, input ledger.MovementInput) (string, error)
}

// ProductUseCase casos de uso CRUD para productos.
// CurrentQuantity nunca se edita aquí: una cantidad inicial distinta de cero
// se registra como movimiento adjustment a través del motor de stock, y las
// ediciones posteriores no aceptan el campo.
type ProductUseCase struct {
	repo     repository.ProductRepository
	recorder movementRecorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, recorder movementRecorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, recorder: recorder}
}

// Create crea un producto con cantidad cero y, si InitialQuantity > 0, la
// asienta como ajuste sintético en el ledger (queda auditada como movimiento).
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	if in.MinQuantity.LessThan(decimal.Zero) || in.InitialQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Code:            in.Code,
		Name:            in.Name,
		Description:     in.Description,
		Unit:            in.Unit,
		CurrentQuantity: decimal.Zero,
		MinQuantity:     in.MinQuantity,
		UnitPrice:       in.UnitPrice,
		CategoryID:      in.CategoryID,
		SupplierID:      in.SupplierID,
		TrackBatches:    in.TrackBatches,
		TrackExpiration: in.TrackExpiration,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}

	if in.InitialQuantity.GreaterThan(decimal.Zero) {
		_, err := uc.recorder.RecordMovement(ctx, ledger.MovementInput{
			UserID:    userID,
			ProductID: product.ID,
			Type:      entity.MovementTypeAdjustment,
			Quantity:  in.InitialQuantity,
			Notes:     "carga inicial",
		})
		if err != nil {
			return nil, err
		}
		product.CurrentQuantity = in.InitialQuantity
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos de catálogo de un producto. No acepta
// current_quantity: la cantidad solo se mueve vía movimientos.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Unit != nil {
		if !entity.ValidUnit(*in.Unit) {
			return nil, domain.ErrInvalidInput
		}
		product.Unit = *in.Unit
	}
	if in.MinQuantity != nil {
		if in.MinQuantity.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.MinQuantity = *in.MinQuantity
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = in.UnitPrice
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.TrackBatches != nil {
		product.TrackBatches = *in.TrackBatches
	}
	if in.TrackExpiration != nil {
		product.TrackExpiration = *in.TrackExpiration
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación, ordenados por fecha de creación descendente.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto; el historial de movimientos cae en cascada (FK).
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		Unit:            p.Unit,
		CurrentQuantity: p.CurrentQuantity,
		MinQuantity:     p.MinQuantity,
		UnitPrice:       p.UnitPrice,
		CategoryID:      p.CategoryID,
		SupplierID:      p.SupplierID,
		TrackBatches:    p.TrackBatches,
		TrackExpiration: p.TrackExpiration,
		LowStock:        p.LowStock(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
