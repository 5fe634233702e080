package ledger_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelasquez/control-stock-api/internal/application/ledger"
	"github.com/avelasquez/control-stock-api/internal/domain"
	"github.com/avelasquez/control-stock-api/internal/domain/entity"
	"github.com/avelasquez/control-stock-api/internal/domain/repository"
	"github.com/avelasquez/control-stock-api/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

var errInfra = errors.New("fallo de infraestructura simulado")

// state estado compartido de los fakes: productos por ID y ledger de movimientos.
type state struct {
	products  map[string]entity.Product
	movements []entity.StockMovement

	failMovementCreate bool
	failQuantityUpdate bool
}

func newState() *state {
	return &state{products: map[string]entity.Product{}}
}

func (s *state) clone() *state {
	cp := &state{
		products:           make(map[string]entity.Product, len(s.products)),
		movements:          append([]entity.StockMovement(nil), s.movements...),
		failMovementCreate: s.failMovementCreate,
		failQuantityUpdate: s.failQuantityUpdate,
	}
	for k, v := range s.products {
		cp.products[k] = v
	}
	return cp
}

type fakeProductRepo struct{ s *state }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Code == code {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(productID string, quantity decimal.Decimal) error {
	if r.s.failQuantityUpdate {
		return errInfra
	}
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentQuantity = quantity
	r.s.products[productID] = p
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error                            { return nil }

type fakeMovementRepo struct{ s *state }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if r.s.failMovementCreate {
		return errInfra
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByProductAsc(productID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.s.movements {
		if r.s.movements[i].ProductID == productID {
			cp := r.s.movements[i]
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// fakeTxRunner emula Commit/Rollback: ejecuta fn sobre una copia del estado y
// solo la publica si fn no devuelve error.
type fakeTxRunner struct{ s *state }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	staged := r.s.clone()
	if err := fn(&fakeMovementRepo{s: staged}, &fakeProductRepo{s: staged}); err != nil {
		return err
	}
	*r.s = *staged
	return nil
}

func newUseCase(s *state) *ledger.RecordMovementUseCase {
	return ledger.NewRecordMovementUseCase(&fakeTxRunner{s: s}, &fakeProductRepo{s: s})
}

func seedProduct(s *state, id string, qty string) {
	q, _ := decimal.NewFromString(qty)
	s.products[id] = entity.Product{
		ID:              id,
		Code:            "P-" + id,
		Name:            "Producto " + id,
		Unit:            entity.UnitUnidad,
		CurrentQuantity: q,
		MinQuantity:     decimal.NewFromInt(5),
	}
}

func record(t *testing.T, uc *ledger.RecordMovementUseCase, productID, typ, qty string) string {
	t.Helper()
	q, err := decimal.NewFromString(qty)
	require.NoError(t, err)
	id, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		UserID:    "user-1",
		ProductID: productID,
		Type:      typ,
		Quantity:  q,
	})
	require.NoError(t, err)
	return id
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

// entry suma y exit resta sobre la cantidad actual.
func TestRecordMovement_EntradaYSalida(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "10")
	uc := newUseCase(s)

	record(t, uc, "p1", entity.MovementTypeEntry, "5")
	assert.True(t, s.products["p1"].CurrentQuantity.Equal(decimal.NewFromInt(15)))

	record(t, uc, "p1", entity.MovementTypeExit, "3")
	assert.True(t, s.products["p1"].CurrentQuantity.Equal(decimal.NewFromInt(12)))

	assert.Len(t, s.movements, 2, "cada llamada deja exactamente un movimiento en el ledger")
}

// adjustment reemplaza la cantidad por el valor absoluto, no la suma.
func TestRecordMovement_AjusteReemplaza(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "120")
	uc := newUseCase(s)

	record(t, uc, "p1", entity.MovementTypeAdjustment, "50")
	assert.True(t, s.products["p1"].CurrentQuantity.Equal(decimal.NewFromInt(50)),
		"ajuste a 50 sobre 120 debe dejar 50")
}

// Una salida mayor al stock se acepta y deja cantidad negativa (sin piso).
func TestRecordMovement_SalidaPermiteNegativo(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "2")
	uc := newUseCase(s)

	record(t, uc, "p1", entity.MovementTypeExit, "5")
	assert.True(t, s.products["p1"].CurrentQuantity.Equal(decimal.NewFromInt(-3)),
		"salida de 5 sobre 2 debe dejar -3")
}

// Cantidad cero o negativa para entry/exit es inválida; 0.01 es aceptada.
func TestRecordMovement_FronteraDeValidacion(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "10")
	uc := newUseCase(s)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		UserID: "user-1", ProductID: "p1",
		Type: entity.MovementTypeEntry, Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada de 0 debe rechazarse")
	assert.Empty(t, s.movements, "una petición inválida no deja movimiento")

	_, err = uc.RecordMovement(context.Background(), ledger.MovementInput{
		UserID: "user-1", ProductID: "p1",
		Type: entity.MovementTypeExit, Quantity: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "salida negativa debe rechazarse")

	record(t, uc, "p1", entity.MovementTypeEntry, "0.01")
	q, _ := decimal.NewFromString("10.01")
	assert.True(t, s.products["p1"].CurrentQuantity.Equal(q))
}

// Un ajuste negativo es inválido; un ajuste a cero es válido (vaciar stock).
func TestRecordMovement_AjusteNegativoInvalido(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "10")
	uc := newUseCase(s)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		UserID: "user-1", ProductID: "p1",
		Type: entity.MovementTypeAdjustment, Quantity: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	record(t, uc, "p1", entity.MovementTypeAdjustment, "0")
	assert.True(t, s.products["p1"].CurrentQuantity.IsZero())
}

// Tipo de movimiento desconocido → ErrInvalidInput.
func TestRecordMovement_TipoDesconocido(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "10")
	uc := newUseCase(s)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		UserID: "user-1", ProductID: "p1",
		Type: "transfer", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Producto inexistente → ErrNotFound y ningún movimiento creado.
func TestRecordMovement_ProductoInexistente(t *testing.T) {
	s := newState()
	uc := newUseCase(s)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		UserID: "user-1", ProductID: "no-existe",
		Type: entity.MovementTypeEntry, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.movements)
}

// Atomicidad: si falla la actualización de cantidad, el movimiento no queda
// en el ledger (rollback completo), y viceversa.
func TestRecordMovement_AtomicidadAnteFallo(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "10")
	uc := newUseCase(s)

	s.failQuantityUpdate = true
	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		UserID: "user-1", ProductID: "p1",
		Type: entity.MovementTypeEntry, Quantity: decimal.NewFromInt(5),
	})
	require.ErrorIs(t, err, errInfra)
	assert.Empty(t, s.movements, "no debe quedar movimiento huérfano")
	assert.True(t, s.products["p1"].CurrentQuantity.Equal(decimal.NewFromInt(10)),
		"la cantidad no debe cambiar si la transacción falló")

	s.failQuantityUpdate = false
	s.failMovementCreate = true
	_, err = uc.RecordMovement(context.Background(), ledger.MovementInput{
		UserID: "user-1", ProductID: "p1",
		Type: entity.MovementTypeEntry, Quantity: decimal.NewFromInt(5),
	})
	require.ErrorIs(t, err, errInfra)
	assert.True(t, s.products["p1"].CurrentQuantity.Equal(decimal.NewFromInt(10)),
		"la cantidad no debe cambiar si el insert del movimiento falló")
}

// El movimiento registrado lleva la identidad del actor y un ID devuelto al caller.
func TestRecordMovement_AuditoriaEIdentificador(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "0")
	uc := newUseCase(s)

	now := time.Now()
	exp := now.AddDate(0, 6, 0)
	id, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		UserID:    "user-7",
		ProductID: "p1",
		Type:      entity.MovementTypeEntry,
		Quantity:  decimal.NewFromInt(4),
		BatchCode: "L-2026-08",
		ExpiresAt: &exp,
		Notes:     "compra inicial",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Len(t, s.movements, 1)
	m := s.movements[0]
	assert.Equal(t, id, m.ID)
	assert.Equal(t, "user-7", m.CreatedBy)
	assert.Equal(t, "L-2026-08", m.BatchCode)
	assert.Equal(t, "compra inicial", m.Notes)
	require.NotNil(t, m.ExpiresAt)
	assert.False(t, m.CreatedAt.Before(now))
}

// ──────────────────────────────────────────────────────────────────────────────
// Correctitud del fold y recomputación
// ──────────────────────────────────────────────────────────────────────────────

// Tras cualquier secuencia de movimientos, la cantidad incremental coincide
// con el fold del ledger completo.
func TestRecordMovement_CantidadIgualAlFold(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "0")
	uc := newUseCase(s)

	record(t, uc, "p1", entity.MovementTypeEntry, "100")
	record(t, uc, "p1", entity.MovementTypeExit, "30")
	record(t, uc, "p1", entity.MovementTypeAdjustment, "55.5")
	record(t, uc, "p1", entity.MovementTypeExit, "5.5")
	record(t, uc, "p1", entity.MovementTypeEntry, "10")

	movs, err := (&fakeMovementRepo{s: s}).ListByProductAsc("p1")
	require.NoError(t, err)
	folded := stock.Fold(movs)
	assert.True(t, folded.Equal(s.products["p1"].CurrentQuantity),
		"fold=%s, incremental=%s", folded, s.products["p1"].CurrentQuantity)
	assert.True(t, folded.Equal(decimal.NewFromInt(60)))
}

// RecomputeQuantity sin deriva no reescribe nada y reporta Drift=false.
func TestRecomputeQuantity_SinDeriva(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "0")
	uc := newUseCase(s)

	record(t, uc, "p1", entity.MovementTypeEntry, "8")
	res, err := uc.RecomputeQuantity(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, res.Drift)
	assert.True(t, res.Previous.Equal(res.Recomputed))
}

// RecomputeQuantity corrige una proyección que divergió del ledger.
func TestRecomputeQuantity_CorrigeDeriva(t *testing.T) {
	s := newState()
	seedProduct(s, "p1", "0")
	uc := newUseCase(s)

	record(t, uc, "p1", entity.MovementTypeEntry, "8")

	// Simular deriva: mutación directa de la proyección por fuera del motor.
	p := s.products["p1"]
	p.CurrentQuantity = decimal.NewFromInt(999)
	s.products["p1"] = p

	res, err := uc.RecomputeQuantity(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, res.Drift)
	assert.True(t, res.Previous.Equal(decimal.NewFromInt(999)))
	assert.True(t, res.Recomputed.Equal(decimal.NewFromInt(8)))
	assert.True(t, s.products["p1"].CurrentQuantity.Equal(decimal.NewFromInt(8)),
		"la proyección debe quedar corregida")
}

// RecomputeQuantity de producto inexistente → ErrNotFound.
func TestRecomputeQuantity_ProductoInexistente(t *testing.T) {
	s := newState()
	uc := newUseCase(s)

	_, err := uc.RecomputeQuantity(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
