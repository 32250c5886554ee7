package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/validation"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// Actor es el usuario autenticado que ejecuta la operación.
type Actor struct {
	UserID string
	Admin  bool
}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo     repository.UserRepository
	hasher   auth.PasswordHasher
	validate *validation.Validator
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, hasher auth.PasswordHasher, validate *validation.Validator) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher, validate: validate}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewUserResponse(user), nil
}

// List lista usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[*dto.UserResponse], error) {
	list, total, err := uc.repo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.NewUserResponse(u))
	}
	return dto.NewListResponse(out, total, page), nil
}

// Update reemplaza los datos del usuario. Solo el propio usuario o un admin pueden hacerlo,
// y solo un admin puede cambiar roles.
func (uc *UserUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.Admin && actor.UserID != id {
		return nil, domain.ErrForbidden
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := uc.validate.Struct(in, nil); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Email != user.Email {
		other, err := uc.repo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email
	if in.Password != "" {
		hash, err := uc.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.Roles != nil {
		if !actor.Admin {
			return nil, domain.ErrForbidden
		}
		user.Roles = storedRoles(in.Roles)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// Delete elimina un usuario. Falla con ErrConflict si aún tiene clientes.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// storedRoles quita ROLE_USER, que es implícito, y los duplicados.
func storedRoles(roles []string) []string {
	return lo.Uniq(lo.Without(roles, entity.RoleUser))
}
