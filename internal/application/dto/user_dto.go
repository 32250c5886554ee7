package dto

import "github.com/jhoicas/Facturacion-api/internal/domain/entity"

// RegisterRequest entrada para registro (password en texto, se hashea en el use case).
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3,max=255"`
	LastName  string `json:"lastName" validate:"required,min=3,max=255"`
	Email     string `json:"email" validate:"required,email,max=180"`
	Password  string `json:"password" validate:"required,min=8"`
}

// UpdateUserRequest body para PUT /api/users/:id. Password vacío = no cambia.
// Roles solo lo puede cambiar un administrador.
type UpdateUserRequest struct {
	FirstName string   `json:"firstName" validate:"required,min=3,max=255"`
	LastName  string   `json:"lastName" validate:"required,min=3,max=255"`
	Email     string   `json:"email" validate:"required,email,max=180"`
	Password  string   `json:"password" validate:"omitempty,min=8"`
	Roles     []string `json:"roles,omitempty" validate:"omitempty,dive,oneof=ROLE_ADMIN ROLE_USER"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
}

// UserRef usuario embebido en vistas de clientes y facturas.
type UserRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse proyecta la entidad a la vista pública.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Roles:     u.GetRoles(),
	}
}

// NewUserRef proyecta la entidad a la referencia embebida.
func NewUserRef(u *entity.User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}
