package entity

import "time"

// Supplier representa un proveedor referenciado opcionalmente por productos.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT/CNPJ opcional
	Email     string
	Phone     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
