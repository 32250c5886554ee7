package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
	"github.com/jhoicas/Facturacion-api/internal/application/validation"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/Facturacion-api/internal/testutil"
	pkgjwt "github.com/jhoicas/Facturacion-api/pkg/jwt"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "facturacion-api-test"
	testExpMin    = 60
	testPassword  = "password123"
)

// fakePDF devuelve un PDF mínimo sin pasar por Maroto.
type fakePDF struct{}

func (fakePDF) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	return []byte("%PDF-1.4 " + inv.ID), nil
}

// testEnv app completa sobre repositorios en memoria, con un admin y un usuario regular.
type testEnv struct {
	app   *fiber.App
	db    *testutil.MemDB
	admin *entity.User
	user  *entity.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewMemDB()
	hasher := auth.PasswordHasher{Cost: bcrypt.MinCost}
	validate := validation.New()

	users, customers, invoices := db.Users(), db.Customers(), db.Invoices()
	authUC := auth.NewAuthUseCase(users, hasher, validate, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	invoiceUC := billing.NewInvoiceUseCase(invoices, customers, validate)

	app := apphttp.NewApp("facturacion-test", apphttp.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(users, hasher, validate),
		CustomerUC:       billing.NewCustomerUseCase(customers, users, invoices, validate),
		InvoiceUC:        invoiceUC,
		InvoicePDF:       billing.NewPDFUseCase(invoices, fakePDF{}),
		JWTSecret:        testJWTSecret,
		Log:              logger.Nop(),
		DisableRateLimit: true,
	})

	env := &testEnv{app: app, db: db}
	env.admin = env.addUser(t, "Admin", "Principal", "admin@test.local", entity.RoleAdmin)
	env.user = env.addUser(t, "Claire", "Dubois", "claire@test.local")
	return env
}

func (e *testEnv) addUser(t *testing.T, first, last, email string, roles ...string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID: uuid.New().String(), FirstName: first, LastName: last, Email: email,
		PasswordHash: string(hash), Roles: roles, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, e.db.Users().Create(context.Background(), u))
	return u
}

func (e *testEnv) addCustomer(t *testing.T, owner *entity.User) *entity.Customer {
	t.Helper()
	c := &entity.Customer{
		ID: uuid.New().String(), FirstName: "Hugo", LastName: "Martin", Email: "hugo@martin.fr",
		Company: "Martin SARL", UserID: owner.ID, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, e.db.Customers().Create(context.Background(), c))
	return c
}

func (e *testEnv) addInvoice(t *testing.T, customer *entity.Customer, amount string, sentAt time.Time, status string, chrono int64) *entity.Invoice {
	t.Helper()
	inv := &entity.Invoice{
		ID: uuid.New().String(), Amount: decimal.RequireFromString(amount), SentAt: sentAt,
		Status: status, CustomerID: customer.ID, Chrono: chrono, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, e.db.Invoices().Create(context.Background(), inv))
	return inv
}

func (e *testEnv) token(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Email, u.GetRoles(), testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// do lanza la petición y devuelve la respuesta con el body ya leído.
func (e *testEnv) do(t *testing.T, method, path string, body any, authHeader string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeJSON[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}
