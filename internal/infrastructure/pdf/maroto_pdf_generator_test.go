package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"250":       "250,00",
		"1234.5":    "1.234,50",
		"4999.99":   "4.999,99",
		"1000000":   "1.000.000,00",
		"-12345.67": "-12.345,67",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	user := &entity.User{ID: "u1", FirstName: "Léa", LastName: "Dubois", Email: "lea.dubois@orange.fr"}
	invoice := &entity.Invoice{
		ID:     "7b1f3c1e-0000-4000-8000-000000000001",
		Amount: decimal.RequireFromString("1234.56"),
		SentAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Status: entity.InvoiceStatusSent,
		Chrono: 7,
		Customer: &entity.Customer{
			ID: "c1", FirstName: "Hugo", LastName: "Martin", Email: "hugo.martin@free.fr", Company: "Martin SARL", User: user,
		},
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), invoice)
	require.NoError(t, err)
	assert.True(t, len(out) > 4 && string(out[:4]) == "%PDF", "la salida debe ser un PDF")
}

func TestGenerateInvoicePDF_SinCliente(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), &entity.Invoice{ID: "x"})
	assert.Error(t, err)
}
