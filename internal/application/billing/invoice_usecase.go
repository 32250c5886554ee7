package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/validation"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// InvoiceUseCase casos de uso de facturas: CRUD, listado por cliente e incremento del chrono.
type InvoiceUseCase struct {
	repo      repository.InvoiceRepository
	customers repository.CustomerRepository
	validate  *validation.Validator
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	repo repository.InvoiceRepository,
	customers repository.CustomerRepository,
	validate *validation.Validator,
) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, customers: customers, validate: validate}
}

// Create valida el payload y persiste una nueva factura.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.InvoiceRequest) (*dto.InvoiceReadView, error) {
	fields, customer, err := uc.parse(ctx, in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	invoice := &entity.Invoice{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	fields.apply(invoice, customer, now)
	if err := uc.repo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return toInvoiceReadView(invoice), nil
}

// GetByID obtiene una factura con su cliente y usuario.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceReadView, error) {
	invoice, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceReadView(invoice), nil
}

// List lista facturas paginadas; sin orden explícito se ordena por sentAt descendente.
func (uc *InvoiceUseCase) List(ctx context.Context, page dto.PageRequest, sort []repository.SortField) (*dto.ListResponse[*dto.InvoiceReadView], error) {
	if len(sort) == 0 {
		sort = repository.DefaultInvoiceSort
	}
	list, total, err := uc.repo.List(ctx, repository.InvoiceListParams{
		Limit:  page.Limit(),
		Offset: page.Offset(),
		Sort:   sort,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceReadView, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceReadView(inv))
	}
	return dto.NewListResponse(out, total, page), nil
}

// ListByCustomer lista las facturas de un cliente con la vista reducida (subrecurso).
func (uc *InvoiceUseCase) ListByCustomer(ctx context.Context, customerID string, page dto.PageRequest) (*dto.ListResponse[dto.InvoiceSubresourceView], error) {
	customer, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	list, total, err := uc.repo.ListByCustomer(ctx, customer.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(toInvoiceSubresourceViews(list), total, page), nil
}

// Update reemplaza los campos de la factura tras validarlos.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.InvoiceRequest) (*dto.InvoiceReadView, error) {
	invoice, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	fields, customer, err := uc.parse(ctx, in)
	if err != nil {
		return nil, err
	}
	fields.apply(invoice, customer, time.Now())
	if err := uc.repo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return toInvoiceReadView(invoice), nil
}

// Delete elimina una factura.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Increment suma 1 al chrono de la factura y devuelve la factura actualizada.
// Si la factura no existe devuelve ErrNotFound sin modificar nada.
func (uc *InvoiceUseCase) Increment(ctx context.Context, id string) (*dto.InvoiceReadView, error) {
	invoice, err := uc.repo.IncrementChrono(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceReadView(invoice), nil
}

// parse valida el payload y resuelve el cliente; un cliente inexistente es una violación sobre "customer".
func (uc *InvoiceUseCase) parse(ctx context.Context, in dto.InvoiceRequest) (*invoiceFields, *entity.Customer, error) {
	fields, err := parseInvoiceRequest(uc.validate, in)
	if err != nil {
		return nil, nil, err
	}
	customer, err := uc.customers.GetByID(ctx, fields.customerID)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		return nil, nil, domain.NewValidationError("customer", "El cliente indicado no existe")
	}
	return fields, customer, nil
}

func (f *invoiceFields) apply(invoice *entity.Invoice, customer *entity.Customer, now time.Time) {
	invoice.Amount = f.amount
	invoice.SentAt = f.sentAt
	invoice.Status = f.status
	invoice.CustomerID = customer.ID
	invoice.Customer = customer
	invoice.Chrono = f.chrono
	invoice.UpdatedAt = now
}
