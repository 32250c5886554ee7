package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/validation"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var customerMessages = validation.Messages{
	"firstName.required": "El nombre del cliente es obligatorio",
	"firstName.min":      "El nombre debe tener entre 3 y 255 caracteres",
	"firstName.max":      "El nombre debe tener entre 3 y 255 caracteres",
	"lastName.required":  "El apellido del cliente es obligatorio",
	"lastName.min":       "El apellido debe tener entre 3 y 255 caracteres",
	"lastName.max":       "El apellido debe tener entre 3 y 255 caracteres",
	"email.required":     "El email del cliente es obligatorio",
	"email.email":        "El email debe tener un formato válido",
}

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	users    repository.UserRepository
	invoices repository.InvoiceRepository
	validate *validation.Validator
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	repo repository.CustomerRepository,
	users repository.UserRepository,
	invoices repository.InvoiceRepository,
	validate *validation.Validator,
) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, users: users, invoices: invoices, validate: validate}
}

// Create crea un nuevo cliente. Si el payload no indica usuario, el dueño es currentUserID.
func (uc *CustomerUseCase) Create(ctx context.Context, currentUserID string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := uc.validate.Struct(in, customerMessages); err != nil {
		return nil, err
	}
	ownerID := currentUserID
	if in.User != "" {
		ownerID = refID(in.User, userIRIPrefix)
	}
	owner, err := uc.resolveOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     strings.TrimSpace(in.Email),
		Company:   in.Company,
		UserID:    owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
		User:      owner,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer, nil), nil
}

// GetByID obtiene un cliente con sus facturas.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	byCustomer, err := uc.invoices.ListByCustomerIDs(ctx, []string{customer.ID})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer, byCustomer[customer.ID]), nil
}

// List lista clientes paginados; las facturas de la página se cargan en una sola consulta.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[*dto.CustomerResponse], error) {
	list, total, err := uc.repo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	ids := lo.Map(list, func(c *entity.Customer, _ int) string { return c.ID })
	byCustomer := map[string][]*entity.Invoice{}
	if len(ids) > 0 {
		byCustomer, err = uc.invoices.ListByCustomerIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	out := lo.Map(list, func(c *entity.Customer, _ int) *dto.CustomerResponse {
		return toCustomerResponse(c, byCustomer[c.ID])
	})
	return dto.NewListResponse(out, total, page), nil
}

// Update reemplaza los datos del cliente. Sin usuario en el payload se conserva el dueño actual.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := uc.validate.Struct(in, customerMessages); err != nil {
		return nil, err
	}
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.User != "" {
		owner, err := uc.resolveOwner(ctx, refID(in.User, userIRIPrefix))
		if err != nil {
			return nil, err
		}
		customer.UserID = owner.ID
		customer.User = owner
	}
	customer.FirstName = in.FirstName
	customer.LastName = in.LastName
	customer.Email = strings.TrimSpace(in.Email)
	customer.Company = in.Company
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	byCustomer, err := uc.invoices.ListByCustomerIDs(ctx, []string{customer.ID})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer, byCustomer[customer.ID]), nil
}

// Delete elimina un cliente. Falla con ErrConflict si aún tiene facturas.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// resolveOwner carga el usuario dueño; si no existe es una violación sobre "user".
func (uc *CustomerUseCase) resolveOwner(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user", "El usuario del cliente es obligatorio")
	}
	owner, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.NewValidationError("user", "El usuario indicado no existe")
	}
	return owner, nil
}
