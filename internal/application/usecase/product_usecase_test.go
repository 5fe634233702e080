package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelasquez/control-stock-api/internal/application/dto"
	"github.com/avelasquez/control-stock-api/internal/application/ledger"
	"github.com/avelasquez/control-stock-api/internal/application/usecase"
	"github.com/avelasquez/control-stock-api/internal/domain"
	"github.com/avelasquez/control-stock-api/internal/domain/entity"
)

// fakeProductRepo repositorio en memoria indexado por ID y por código.
type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(productID string, quantity decimal.Decimal) error {
	p, ok := r.byID[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentQuantity = quantity
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

// fakeRecorder captura las llamadas al motor de stock.
type fakeRecorder struct {
	calls []ledger.MovementInput
}

func (f *fakeRecorder) RecordMovement(_ context.Context, in ledger.MovementInput) (string, error) {
	f.calls = append(f.calls, in)
	return "mov-1", nil
}

func validCreateRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:        "ARR-001",
		Name:        "Arroz 1kg",
		Unit:        "un",
		MinQuantity: decimal.NewFromInt(5),
	}
}

func TestProductCreate_SinCantidadInicial(t *testing.T) {
	repo := newFakeProductRepo()
	rec := &fakeRecorder{}
	uc := usecase.NewProductUseCase(repo, rec)

	out, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, out.CurrentQuantity.IsZero(), "sin cantidad inicial el producto nace en cero")
	assert.Empty(t, rec.calls, "no debe registrarse ningún movimiento")
	assert.True(t, out.LowStock, "cero está por debajo del mínimo de 5")
}

func TestProductCreate_CantidadInicialComoAjuste(t *testing.T) {
	repo := newFakeProductRepo()
	rec := &fakeRecorder{}
	uc := usecase.NewProductUseCase(repo, rec)

	in := validCreateRequest()
	in.InitialQuantity = decimal.NewFromInt(12)
	out, err := uc.Create(context.Background(), "user-1", in)
	require.NoError(t, err)

	require.Len(t, rec.calls, 1, "la carga inicial debe pasar por el motor de stock")
	call := rec.calls[0]
	assert.Equal(t, entity.MovementTypeAdjustment, call.Type)
	assert.True(t, call.Quantity.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, out.ID, call.ProductID)
	assert.Equal(t, "user-1", call.UserID)
	assert.Equal(t, "carga inicial", call.Notes)
	assert.True(t, out.CurrentQuantity.Equal(decimal.NewFromInt(12)))
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeRecorder{})

	_, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "user-1", validCreateRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_UnidadInvalida(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), &fakeRecorder{})

	in := validCreateRequest()
	in.Unit = "docena"
	_, err := uc.Create(context.Background(), "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_CantidadInicialNegativa(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), &fakeRecorder{})

	in := validCreateRequest()
	in.InitialQuantity = decimal.NewFromInt(-1)
	_, err := uc.Create(context.Background(), "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoTocaCantidad(t *testing.T) {
	repo := newFakeProductRepo()
	rec := &fakeRecorder{}
	uc := usecase.NewProductUseCase(repo, rec)

	in := validCreateRequest()
	in.InitialQuantity = decimal.NewFromInt(30)
	created, err := uc.Create(context.Background(), "user-1", in)
	require.NoError(t, err)

	newName := "Arroz premium 1kg"
	newMin := decimal.NewFromInt(10)
	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{
		Name:        &newName,
		MinQuantity: &newMin,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Arroz premium 1kg", updated.Name)
	assert.True(t, updated.CurrentQuantity.Equal(decimal.NewFromInt(30)),
		"la edición de catálogo no debe mover la cantidad")
	assert.Len(t, rec.calls, 1, "solo el ajuste de carga inicial")
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), &fakeRecorder{})

	name := "x"
	out, err := uc.Update("no-existe", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProductDelete_Inexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), &fakeRecorder{})

	err := uc.Delete("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
