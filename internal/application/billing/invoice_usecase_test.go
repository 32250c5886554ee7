package billing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/validation"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/testutil"
)

func TestParseInvoiceRequest_TiposFlexibles(t *testing.T) {
	v := validation.New()
	customerID := uuid.NewString()

	fields, err := parseInvoiceRequest(v, dto.InvoiceRequest{
		Amount:   json.Number("1250.456"),
		SentAt:   "2024-03-01",
		Status:   entity.InvoiceStatusPaid,
		Customer: customerIRIPrefix + customerID,
		Chrono:   "7",
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1250.46").Equal(fields.amount))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), fields.sentAt)
	assert.Equal(t, customerID, fields.customerID)
	assert.EqualValues(t, 7, fields.chrono)
}

func TestParseInvoiceRequest_ReportaTodasLasViolaciones(t *testing.T) {
	_, err := parseInvoiceRequest(validation.New(), dto.InvoiceRequest{
		Amount: "mucho",
		SentAt: "ayer",
		Status: "DRAFT",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"amount", "sentAt", "status", "customer", "chrono"} {
		assert.True(t, verr.Has(field), "falta violación sobre %s", field)
	}
}

func TestScalarString(t *testing.T) {
	assert.Equal(t, "", scalarString(nil))
	assert.Equal(t, "12.5", scalarString(12.5))
	assert.Equal(t, "3", scalarString(json.Number("3")))
	assert.Equal(t, "true", scalarString(true))
}

func seedInvoice(t *testing.T, db *testutil.MemDB, chrono int64) *entity.Invoice {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	u := &entity.User{ID: uuid.NewString(), FirstName: "Léa", LastName: "Moreau", Email: uuid.NewString() + "@test.local"}
	require.NoError(t, db.Users().Create(ctx, u))
	c := &entity.Customer{ID: uuid.NewString(), FirstName: "Paul", LastName: "Roux", Email: "paul@roux.fr", UserID: u.ID}
	require.NoError(t, db.Customers().Create(ctx, c))
	inv := &entity.Invoice{
		ID: uuid.NewString(), Amount: decimal.RequireFromString("300"), SentAt: now,
		Status: entity.InvoiceStatusSent, CustomerID: c.ID, Chrono: chrono, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Invoices().Create(ctx, inv))
	return inv
}

func TestInvoiceUseCase_Increment(t *testing.T) {
	db := testutil.NewMemDB()
	uc := NewInvoiceUseCase(db.Invoices(), db.Customers(), validation.New())
	inv := seedInvoice(t, db, 41)
	ctx := context.Background()

	before, err := uc.GetByID(ctx, inv.ID)
	require.NoError(t, err)

	view, err := uc.Increment(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, view.User, "la vista de lectura expone el usuario del cliente")

	want := *before
	want.Chrono = 42
	assert.Equal(t, want, *view, "solo cambia el chrono")

	stored, err := db.Invoices().GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 42, stored.Chrono)
	assert.True(t, inv.Amount.Equal(stored.Amount))
	assert.True(t, inv.SentAt.Equal(stored.SentAt))
	assert.Equal(t, inv.Status, stored.Status)
	assert.Equal(t, inv.CustomerID, stored.CustomerID)
}

func TestInvoiceUseCase_IncrementInexistente(t *testing.T) {
	db := testutil.NewMemDB()
	uc := NewInvoiceUseCase(db.Invoices(), db.Customers(), validation.New())

	_, err := uc.Increment(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceUseCase_CreateClienteInexistente(t *testing.T) {
	db := testutil.NewMemDB()
	uc := NewInvoiceUseCase(db.Invoices(), db.Customers(), validation.New())

	_, err := uc.Create(context.Background(), dto.InvoiceRequest{
		Amount: 500, SentAt: "2024-01-10T10:00:00", Status: "SENT", Customer: uuid.NewString(), Chrono: 1,
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("customer"))
}
