package entity

import "time"

// Customer representa un cliente perteneciente a un usuario.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Company   string // opcional
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// User se completa cuando el repositorio carga la relación.
	User *User
}
