package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados posibles de una factura.
const (
	InvoiceStatusSent      = "SENT"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusCancelled = "CANCELLED"
)

// InvoiceStatuses lista los estados aceptados, en el orden en que se documentan.
var InvoiceStatuses = []string{InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled}

// Invoice representa una factura emitida a un cliente.
// Chrono es el consecutivo del cliente por convención; la base no exige unicidad ni secuencia.
type Invoice struct {
	ID         string
	Amount     decimal.Decimal
	SentAt     time.Time
	Status     string
	CustomerID string
	Chrono     int64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Customer (y su User) se completa cuando el repositorio carga la relación.
	Customer *Customer
}

// User devuelve el usuario dueño del cliente de la factura. No es un campo persistido.
func (i *Invoice) User() *User {
	if i.Customer == nil {
		return nil
	}
	return i.Customer.User
}
