package billing

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación en PDF de una factura.
// La factura llega con Customer y User cargados.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}
