package billing

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// Prefijos IRI aceptados en referencias a otras entidades.
const (
	customerIRIPrefix = "/api/customers/"
	userIRIPrefix     = "/api/users/"
)

// refID acepta un id o un IRI y devuelve el id.
func refID(ref, prefix string) string {
	return strings.TrimPrefix(strings.TrimSpace(ref), prefix)
}

func toInvoiceReadView(inv *entity.Invoice) *dto.InvoiceReadView {
	return &dto.InvoiceReadView{
		ID:       inv.ID,
		Amount:   inv.Amount.InexactFloat64(),
		SentAt:   inv.SentAt,
		Status:   inv.Status,
		Chrono:   inv.Chrono,
		Customer: toCustomerRef(inv.Customer),
		User:     dto.NewUserRef(inv.User()),
	}
}

func toInvoiceSubresourceView(inv *entity.Invoice) dto.InvoiceSubresourceView {
	return dto.InvoiceSubresourceView{
		ID:     inv.ID,
		Amount: inv.Amount.InexactFloat64(),
		SentAt: inv.SentAt,
		Status: inv.Status,
		Chrono: inv.Chrono,
	}
}

func toInvoiceSubresourceViews(list []*entity.Invoice) []dto.InvoiceSubresourceView {
	return lo.Map(list, func(inv *entity.Invoice, _ int) dto.InvoiceSubresourceView {
		return toInvoiceSubresourceView(inv)
	})
}

func toCustomerRef(c *entity.Customer) *dto.CustomerRef {
	if c == nil {
		return nil
	}
	return &dto.CustomerRef{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Company:   c.Company,
	}
}

// toCustomerResponse arma la vista del cliente. unpaidAmount suma solo las facturas SENT.
func toCustomerResponse(c *entity.Customer, invoices []*entity.Invoice) *dto.CustomerResponse {
	total, unpaid := decimal.Zero, decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.Amount)
		if inv.Status == entity.InvoiceStatusSent {
			unpaid = unpaid.Add(inv.Amount)
		}
	}
	return &dto.CustomerResponse{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Company:      c.Company,
		User:         dto.NewUserRef(c.User),
		Invoices:     toInvoiceSubresourceViews(invoices),
		TotalAmount:  total.InexactFloat64(),
		UnpaidAmount: unpaid.InexactFloat64(),
	}
}
