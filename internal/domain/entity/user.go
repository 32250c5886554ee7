package entity

import (
	"time"

	"github.com/samber/lo"
)

// Roles válidos para User.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// User representa un usuario del sistema; es dueño de sus clientes.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GetRoles devuelve los roles guardados más ROLE_USER, que todo usuario tiene.
func (u *User) GetRoles() []string {
	return lo.Uniq(append(append([]string{}, u.Roles...), RoleUser))
}

// HasRole indica si el usuario tiene el rol (incluyendo el implícito ROLE_USER).
func (u *User) HasRole(role string) bool {
	return lo.Contains(u.GetRoles(), role)
}
