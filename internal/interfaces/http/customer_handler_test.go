package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func TestCustomer_CreateAsignaUsuarioAutenticado(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodPost, "/api/customers", map[string]any{
		"firstName": "Margaux",
		"lastName":  "Lefèvre",
		"email":     "margaux@lefevre.fr",
		"company":   "Lefèvre et Fils",
	}, env.token(t, env.user))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	out := decodeJSON[dto.CustomerResponse](t, raw)
	require.NotNil(t, out.User)
	assert.Equal(t, env.user.ID, out.User.ID)
	assert.Empty(t, out.Invoices)
	assert.Zero(t, out.TotalAmount)
}

func TestCustomer_CreateConUsuarioIRI(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodPost, "/api/customers", map[string]any{
		"firstName": "Margaux",
		"lastName":  "Lefèvre",
		"email":     "margaux@lefevre.fr",
		"user":      "/api/users/" + env.admin.ID,
	}, env.token(t, env.user))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, env.admin.ID, decodeJSON[dto.CustomerResponse](t, raw).User.ID)
}

func TestCustomer_CreateInvalido(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodPost, "/api/customers", map[string]any{
		"firstName": "Al",
		"email":     "no-es-email",
	}, env.token(t, env.user))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.ElementsMatch(t, []string{"firstName", "lastName", "email"}, violationPaths(t, raw))
}

func TestCustomer_GetByIDConTotales(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	env.addInvoice(t, customer, "100.10", baseDate, entity.InvoiceStatusSent, 1)
	env.addInvoice(t, customer, "200.20", baseDate, entity.InvoiceStatusPaid, 2)
	env.addInvoice(t, customer, "300.30", baseDate, entity.InvoiceStatusSent, 3)

	resp, raw := env.do(t, http.MethodGet, "/api/customers/"+customer.ID, nil, env.token(t, env.user))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeJSON[dto.CustomerResponse](t, raw)
	assert.Len(t, out.Invoices, 3)
	assert.InDelta(t, 600.60, out.TotalAmount, 0.001)
	assert.InDelta(t, 400.40, out.UnpaidAmount, 0.001, "unpaid suma solo las facturas SENT")
}

func TestCustomer_ListPaginado(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 3; i++ {
		env.addCustomer(t, env.user)
	}

	resp, raw := env.do(t, http.MethodGet, "/api/customers", nil, env.token(t, env.user))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeJSON[dto.ListResponse[dto.CustomerResponse]](t, raw)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, 3, out.Pagination.TotalItems)
}

func TestCustomer_UpdateConservaDueno(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)

	resp, raw := env.do(t, http.MethodPut, "/api/customers/"+customer.ID, map[string]any{
		"firstName": "Gabriel",
		"lastName":  "Moreau",
		"email":     "gabriel@moreau.fr",
	}, env.token(t, env.user))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	out := decodeJSON[dto.CustomerResponse](t, raw)
	assert.Equal(t, "Gabriel", out.FirstName)
	assert.Equal(t, "", out.Company)
	assert.Equal(t, env.user.ID, out.User.ID)
}

func TestCustomer_DeleteConFacturas_Retorna409(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	env.addInvoice(t, customer, "100.00", baseDate, entity.InvoiceStatusSent, 1)
	tok := env.token(t, env.user)

	resp, raw := env.do(t, http.MethodDelete, "/api/customers/"+customer.ID, nil, tok)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeJSON[dto.ErrorResponse](t, raw).Code)

	empty := env.addCustomer(t, env.user)
	resp, _ = env.do(t, http.MethodDelete, "/api/customers/"+empty.ID, nil, tok)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/customers/"+empty.ID, nil, tok)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
