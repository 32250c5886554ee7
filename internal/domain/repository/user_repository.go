package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID y GetByEmail devuelven (nil, nil) si el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve la página pedida y el total de usuarios.
	List(ctx context.Context, limit, offset int) ([]*entity.User, int, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete devuelve domain.ErrNotFound si no había fila.
	Delete(ctx context.Context, id string) error
}
