package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"    // catálogo completo, recomputación, usuarios
	RoleOperador = "operador" // registra movimientos, edita catálogo
	RoleConsulta = "consulta" // solo lectura
)

// User usuario de la aplicación. PasswordHash es bcrypt.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, operador, consulta
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
