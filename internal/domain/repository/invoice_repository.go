package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// Propiedades por las que se puede ordenar el listado de facturas.
const (
	InvoiceSortAmount = "amount"
	InvoiceSortSentAt = "sentAt"
)

// SortField es un criterio de orden; se aplican en el orden del slice.
type SortField struct {
	Field string
	Desc  bool
}

// DefaultInvoiceSort es el orden por defecto del listado: sentAt descendente.
var DefaultInvoiceSort = []SortField{{Field: InvoiceSortSentAt, Desc: true}}

// InvoiceListParams parámetros de listado paginado y ordenado.
type InvoiceListParams struct {
	Limit  int
	Offset int
	Sort   []SortField // vacío = DefaultInvoiceSort
}

// InvoiceRepository define el puerto de persistencia para Invoice.
// GetByID, List e IncrementChrono cargan Customer y su User.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context, params InvoiceListParams) ([]*entity.Invoice, int, error)
	// ListByCustomer lista las facturas de un cliente (sin cargar relaciones), sentAt descendente.
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Invoice, int, error)
	// ListByCustomerIDs agrupa por cliente todas las facturas de los clientes indicados.
	ListByCustomerIDs(ctx context.Context, customerIDs []string) (map[string][]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	// IncrementChrono suma 1 al chrono de forma atómica y devuelve la factura actualizada,
	// o (nil, nil) si no existe.
	IncrementChrono(ctx context.Context, id string) (*entity.Invoice, error)
}
