package http_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

var baseDate = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func violationPaths(t *testing.T, raw []byte) []string {
	t.Helper()
	body := decodeJSON[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", body.Code)
	paths := make([]string, 0, len(body.Violations))
	for _, v := range body.Violations {
		paths = append(paths, v.PropertyPath)
	}
	return paths
}

func TestInvoice_IncrementSumaUnoYPersiste(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	inv := env.addInvoice(t, customer, "1000.00", baseDate, entity.InvoiceStatusSent, 7)
	tok := env.token(t, env.user)

	_, raw := env.do(t, http.MethodGet, "/api/invoices/"+inv.ID, nil, tok)
	before := decodeJSON[dto.InvoiceReadView](t, raw)

	resp, raw := env.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/increment", nil, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	view := decodeJSON[dto.InvoiceReadView](t, raw)

	want := before
	want.Chrono = 8
	assert.Equal(t, want, view, "solo cambia el chrono")

	_, raw = env.do(t, http.MethodGet, "/api/invoices/"+inv.ID, nil, tok)
	assert.Equal(t, want, decodeJSON[dto.InvoiceReadView](t, raw), "el incremento debe quedar persistido")

	_, raw = env.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/increment", nil, tok)
	assert.Equal(t, int64(9), decodeJSON[dto.InvoiceReadView](t, raw).Chrono)
}

func TestInvoice_IncrementInexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	inv := env.addInvoice(t, customer, "1000.00", baseDate, entity.InvoiceStatusSent, 3)
	tok := env.token(t, env.user)

	resp, raw := env.do(t, http.MethodPost, "/api/invoices/00000000-0000-0000-0000-00000000dead/increment", nil, tok)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeJSON[dto.ErrorResponse](t, raw).Code)

	_, raw = env.do(t, http.MethodGet, "/api/invoices/"+inv.ID, nil, tok)
	assert.Equal(t, int64(3), decodeJSON[dto.InvoiceReadView](t, raw).Chrono, "las demás facturas no cambian")
}

func TestInvoice_CreateValida(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)

	resp, raw := env.do(t, http.MethodPost, "/api/invoices", map[string]any{
		"amount":   "1234.50",
		"sentAt":   "2024-03-01T10:00:00Z",
		"status":   "PAID",
		"customer": "/api/customers/" + customer.ID,
		"chrono":   12,
	}, env.token(t, env.user))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	view := decodeJSON[dto.InvoiceReadView](t, raw)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, 1234.5, view.Amount)
	assert.Equal(t, "PAID", view.Status)
	assert.Equal(t, int64(12), view.Chrono)
	require.NotNil(t, view.Customer)
	assert.Equal(t, customer.ID, view.Customer.ID)
	require.NotNil(t, view.User, "el usuario se deriva del cliente")
	assert.Equal(t, env.user.ID, view.User.ID)
}

func TestInvoice_CreateMontoConExponente(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)

	body := fmt.Sprintf(`{"amount":1e3,"sentAt":"2024-03-01","status":"SENT","customer":"%s","chrono":1}`, customer.ID)
	resp, raw := env.do(t, http.MethodPost, "/api/invoices", body, env.token(t, env.user))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, 1000.0, decodeJSON[dto.InvoiceReadView](t, raw).Amount)

	body = fmt.Sprintf(`{"amount":"2.5E2","sentAt":"2024-03-01","status":"SENT","customer":"%s","chrono":2}`, customer.ID)
	resp, raw = env.do(t, http.MethodPost, "/api/invoices", body, env.token(t, env.user))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, 250.0, decodeJSON[dto.InvoiceReadView](t, raw).Amount)
}

func TestInvoice_CreateMontoFueraDeRango(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	tok := env.token(t, env.user)

	for _, amount := range []any{"100000000000", 1e10, "9999999999.999", "1e999999999"} {
		resp, raw := env.do(t, http.MethodPost, "/api/invoices", map[string]any{
			"amount": amount, "sentAt": "2024-03-01", "status": "SENT", "customer": customer.ID, "chrono": 1,
		}, tok)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%v", amount)
		assert.Equal(t, []string{"amount"}, violationPaths(t, raw))
	}

	resp, raw := env.do(t, http.MethodPost, "/api/invoices", map[string]any{
		"amount": "9999999999.99", "sentAt": "2024-03-01", "status": "SENT", "customer": customer.ID, "chrono": 1,
	}, tok)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
}

func TestInvoice_CreateStatusInvalido(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)

	resp, raw := env.do(t, http.MethodPost, "/api/invoices", map[string]any{
		"amount":   500,
		"sentAt":   "2024-03-01",
		"status":   "DRAFT",
		"customer": customer.ID,
		"chrono":   1,
	}, env.token(t, env.user))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"status"}, violationPaths(t, raw))
}

func TestInvoice_CreateSinCampos_ReportaTodos(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodPost, "/api/invoices", map[string]any{}, env.token(t, env.user))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.ElementsMatch(t, []string{"amount", "sentAt", "status", "customer", "chrono"}, violationPaths(t, raw))
}

func TestInvoice_CreateTiposInvalidos(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)

	resp, raw := env.do(t, http.MethodPost, "/api/invoices", map[string]any{
		"amount":   "mucho",
		"sentAt":   "ayer",
		"status":   "SENT",
		"customer": customer.ID,
		"chrono":   "1.5",
	}, env.token(t, env.user))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.ElementsMatch(t, []string{"amount", "sentAt", "chrono"}, violationPaths(t, raw))
}

func TestInvoice_CreateClienteInexistente(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodPost, "/api/invoices", map[string]any{
		"amount":   300,
		"sentAt":   "2024-03-01",
		"status":   "SENT",
		"customer": "/api/customers/00000000-0000-0000-0000-00000000beef",
		"chrono":   1,
	}, env.token(t, env.user))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"customer"}, violationPaths(t, raw))
}

func TestInvoice_CreateBodyMalformado(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, http.MethodPost, "/api/invoices", "{no es json", env.token(t, env.user))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeJSON[dto.ErrorResponse](t, raw).Code)
}

func TestInvoice_UpdateYDelete(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	inv := env.addInvoice(t, customer, "800.00", baseDate, entity.InvoiceStatusSent, 1)
	tok := env.token(t, env.user)

	resp, raw := env.do(t, http.MethodPut, "/api/invoices/"+inv.ID, map[string]any{
		"amount":   "900.10",
		"sentAt":   "2024-02-01",
		"status":   "PAID",
		"customer": customer.ID,
		"chrono":   1,
	}, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	view := decodeJSON[dto.InvoiceReadView](t, raw)
	assert.Equal(t, 900.1, view.Amount)
	assert.Equal(t, "PAID", view.Status)

	resp, _ = env.do(t, http.MethodDelete, "/api/invoices/"+inv.ID, nil, tok)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/invoices/"+inv.ID, nil, tok)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvoice_ListOrdenPorDefectoSentAtDesc(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	old := env.addInvoice(t, customer, "100.00", baseDate, entity.InvoiceStatusSent, 1)
	recent := env.addInvoice(t, customer, "50.00", baseDate.AddDate(0, 2, 0), entity.InvoiceStatusSent, 2)
	middle := env.addInvoice(t, customer, "300.00", baseDate.AddDate(0, 1, 0), entity.InvoiceStatusSent, 3)

	resp, raw := env.do(t, http.MethodGet, "/api/invoices", nil, env.token(t, env.user))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeJSON[dto.ListResponse[dto.InvoiceReadView]](t, raw)
	require.Len(t, list.Items, 3)
	assert.Equal(t, []string{recent.ID, middle.ID, old.ID},
		[]string{list.Items[0].ID, list.Items[1].ID, list.Items[2].ID})
}

func TestInvoice_ListOrderAmountAsc(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	a := env.addInvoice(t, customer, "300.00", baseDate, entity.InvoiceStatusSent, 1)
	b := env.addInvoice(t, customer, "100.00", baseDate.AddDate(0, 1, 0), entity.InvoiceStatusSent, 2)
	c := env.addInvoice(t, customer, "200.00", baseDate.AddDate(0, 2, 0), entity.InvoiceStatusSent, 3)
	tok := env.token(t, env.user)

	_, raw := env.do(t, http.MethodGet, "/api/invoices?order%5Bamount%5D=asc", nil, tok)
	list := decodeJSON[dto.ListResponse[dto.InvoiceReadView]](t, raw)
	require.Len(t, list.Items, 3)
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, []string{list.Items[0].ID, list.Items[1].ID, list.Items[2].ID})

	// dirección desconocida: se ignora y aplica el orden por defecto
	_, raw = env.do(t, http.MethodGet, "/api/invoices?order%5Bamount%5D=sideways", nil, tok)
	list = decodeJSON[dto.ListResponse[dto.InvoiceReadView]](t, raw)
	require.Len(t, list.Items, 3)
	assert.Equal(t, c.ID, list.Items[0].ID)
}

func TestInvoice_ListPaginacion(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	for i := 0; i < 30; i++ {
		env.addInvoice(t, customer, fmt.Sprintf("%d.00", 250+i), baseDate.AddDate(0, 0, i), entity.InvoiceStatusPaid, int64(i+1))
	}
	tok := env.token(t, env.user)

	_, raw := env.do(t, http.MethodGet, "/api/invoices", nil, tok)
	first := decodeJSON[dto.ListResponse[dto.InvoiceReadView]](t, raw)
	assert.Len(t, first.Items, dto.DefaultItemsPerPage)
	assert.Equal(t, dto.PageResponse{Page: 1, ItemsPerPage: 25, TotalItems: 30}, first.Pagination)

	_, raw = env.do(t, http.MethodGet, "/api/invoices?page=2", nil, tok)
	second := decodeJSON[dto.ListResponse[dto.InvoiceReadView]](t, raw)
	assert.Len(t, second.Items, 5)
	assert.Equal(t, 2, second.Pagination.Page)
	assert.Equal(t, int64(5), second.Items[0].Chrono, "la página 2 sigue el orden sentAt desc")

	_, raw = env.do(t, http.MethodGet, "/api/invoices?page=3", nil, tok)
	assert.Empty(t, decodeJSON[dto.ListResponse[dto.InvoiceReadView]](t, raw).Items)

	resp, _ := env.do(t, http.MethodGet, "/api/invoices?page=0", nil, tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvoice_ListPaginaFueraDeRango(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	env.addInvoice(t, customer, "300.00", baseDate, entity.InvoiceStatusPaid, 1)
	tok := env.token(t, env.user)

	resp, raw := env.do(t, http.MethodGet, fmt.Sprintf("/api/invoices?page=%d", dto.MaxPage), nil, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	last := decodeJSON[dto.ListResponse[dto.InvoiceReadView]](t, raw)
	assert.Empty(t, last.Items)
	assert.Equal(t, 1, last.Pagination.TotalItems)

	for _, page := range []string{fmt.Sprint(dto.MaxPage + 1), "368934881474191034", "99999999999999999999999"} {
		resp, raw := env.do(t, http.MethodGet, "/api/invoices?page="+page, nil, tok)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, page)
		assert.Equal(t, []string{"page"}, violationPaths(t, raw))
	}

	resp, _ = env.do(t, http.MethodGet, "/api/customers?page=368934881474191034", nil, tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPageRequest_OffsetSinDesborde(t *testing.T) {
	assert.Equal(t, 0, dto.PageRequest{Page: 1}.Offset())
	assert.Equal(t, 25, dto.PageRequest{Page: 2}.Offset())
	assert.GreaterOrEqual(t, dto.PageRequest{Page: dto.MaxPage}.Offset(), 0)
	assert.GreaterOrEqual(t, dto.PageRequest{Page: dto.MaxPage + 5}.Offset(), 0)
}

func TestCustomerInvoices_VistaReducida(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	other := env.addCustomer(t, env.admin)
	env.addInvoice(t, customer, "400.00", baseDate, entity.InvoiceStatusSent, 1)
	env.addInvoice(t, customer, "500.00", baseDate.AddDate(0, 0, 1), entity.InvoiceStatusPaid, 2)
	env.addInvoice(t, other, "600.00", baseDate, entity.InvoiceStatusPaid, 1)

	resp, raw := env.do(t, http.MethodGet, "/api/customers/"+customer.ID+"/invoices", nil, env.token(t, env.user))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON[dto.ListResponse[map[string]any]](t, raw)
	require.Len(t, body.Items, 2)
	assert.Equal(t, 2, body.Pagination.TotalItems)
	for _, item := range body.Items {
		assert.NotContains(t, item, "customer")
		assert.NotContains(t, item, "user")
		for _, key := range []string{"id", "amount", "sentAt", "status", "chrono"} {
			assert.Contains(t, item, key)
		}
	}
}

func TestCustomerInvoices_ClienteInexistente(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, http.MethodGet, "/api/customers/00000000-0000-0000-0000-00000000beef/invoices", nil, env.token(t, env.user))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvoice_PDF(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, env.user)
	inv := env.addInvoice(t, customer, "700.00", baseDate, entity.InvoiceStatusSent, 4)

	resp, raw := env.do(t, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil, env.token(t, env.user))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura-4.pdf")
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestInvoice_SinToken_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, http.MethodGet, "/api/invoices", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
