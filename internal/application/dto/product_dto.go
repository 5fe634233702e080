package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialQuantity no escribe current_quantity directamente: si es > 0 el caso
// de uso la registra como un movimiento adjustment sintético vía el motor de
// stock, de modo que el ledger siga siendo la única fuente de la cantidad.
type CreateProductRequest struct {
	Code            string           `json:"code" validate:"required,min=1,max=100"`
	Name            string           `json:"name" validate:"required,min=1,max=200"`
	Description     string           `json:"description"`
	Unit            string           `json:"unit" validate:"required"`
	MinQuantity     decimal.Decimal  `json:"min_quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	CategoryID      string           `json:"category_id,omitempty"`
	SupplierID      string           `json:"supplier_id,omitempty"`
	TrackBatches    bool             `json:"track_batches"`
	TrackExpiration bool             `json:"track_expiration"`
	InitialQuantity decimal.Decimal  `json:"initial_quantity"`
}

// UpdateProductRequest entrada para actualizar un producto.
// No admite current_quantity: la cantidad solo se mueve vía el ledger.
type UpdateProductRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string          `json:"description"`
	Unit            *string          `json:"unit"`
	MinQuantity     *decimal.Decimal `json:"min_quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	CategoryID      *string          `json:"category_id"`
	SupplierID      *string          `json:"supplier_id"`
	TrackBatches    *bool            `json:"track_batches"`
	TrackExpiration *bool            `json:"track_expiration"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string           `json:"id"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Unit            string           `json:"unit"`
	CurrentQuantity decimal.Decimal  `json:"current_quantity"`
	MinQuantity     decimal.Decimal  `json:"min_quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	CategoryID      string           `json:"category_id,omitempty"`
	SupplierID      string           `json:"supplier_id,omitempty"`
	TrackBatches    bool             `json:"track_batches"`
	TrackExpiration bool             `json:"track_expiration"`
	LowStock        bool             `json:"low_stock"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
