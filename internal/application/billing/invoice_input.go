package billing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/validation"
	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// invoiceInput es el payload de factura ya pasado a string, listo para validar con tags.
type invoiceInput struct {
	Amount   string `json:"amount" validate:"required,decimal,decimal_digits=10"`
	SentAt   string `json:"sentAt" validate:"required,datetime_any"`
	Status   string `json:"status" validate:"required,oneof=SENT PAID CANCELLED"`
	Customer string `json:"customer" validate:"required"`
	Chrono   string `json:"chrono" validate:"required,number"`
}

var invoiceMessages = validation.Messages{
	"amount.required":       "El monto de la factura es obligatorio",
	"amount.decimal":        "El monto de la factura debe ser un número",
	"amount.decimal_digits": "El monto de la factura no puede superar 9999999999.99",
	"sentAt.required":       "La fecha de envío de la factura es obligatoria",
	"sentAt.datetime_any":   "La fecha de envío debe tener el formato YYYY-MM-DD",
	"status.required":       "El estado de la factura es obligatorio",
	"status.oneof":          "El estado debe ser SENT, PAID o CANCELLED",
	"customer.required":     "El cliente de la factura es obligatorio",
	"chrono.required":       "El chrono de la factura es obligatorio",
	"chrono.number":         "El chrono de la factura debe ser un entero",
}

// invoiceFields valores tipados de una factura validada.
type invoiceFields struct {
	amount     decimal.Decimal
	sentAt     time.Time
	status     string
	customerID string
	chrono     int64
}

// parseInvoiceRequest valida el payload y lo convierte a valores tipados.
// Todas las violaciones se reportan juntas.
func parseInvoiceRequest(v *validation.Validator, in dto.InvoiceRequest) (*invoiceFields, error) {
	raw := invoiceInput{
		Amount:   scalarString(in.Amount),
		SentAt:   scalarString(in.SentAt),
		Status:   scalarString(in.Status),
		Customer: refID(scalarString(in.Customer), customerIRIPrefix),
		Chrono:   scalarString(in.Chrono),
	}
	if err := v.Struct(raw, invoiceMessages); err != nil {
		return nil, err
	}

	amount, ok := validation.ParseDecimal(raw.Amount)
	if !ok {
		return nil, domain.NewValidationError("amount", invoiceMessages["amount.decimal"])
	}
	chrono, err := strconv.ParseInt(raw.Chrono, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError("chrono", invoiceMessages["chrono.number"])
	}
	sentAt, _ := validation.ParseDateTime(raw.SentAt)

	return &invoiceFields{
		amount:     amount.Round(2),
		sentAt:     sentAt,
		status:     raw.Status,
		customerID: raw.Customer,
		chrono:     chrono,
	}, nil
}

// scalarString pasa un valor JSON decodificado a string; nil queda vacío.
func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}
