package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CustomerUC *billing.CustomerUseCase
	InvoiceUC  *billing.InvoiceUseCase
	InvoicePDF *billing.PDFUseCase
	JWTSecret  string
	CORSOrigin string
	Log        *logger.Logger
	// DisableRateLimit apaga el limiter de auth (tests).
	DisableRateLimit bool
}

// NewApp crea la app Fiber con los middlewares globales y registra las rutas.
func NewApp(appName string, deps RouterDeps) *fiber.App {
	errs := errorWriter{log: deps.Log}
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: errs.handleFiberError,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log))
	app.Use(CorsMiddleware(deps.CORSOrigin))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": appName})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app fiber.Router, deps RouterDeps) {
	errs := errorWriter{log: deps.Log}
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	if !deps.DisableRateLimit {
		authGroup.Use(RateLimitAuth())
	}
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users: listar y borrar solo admin; editar el propio o admin (lo decide el use case)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, errs)
	users.Get("/", RequireRole(entity.RoleAdmin), userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleAdmin), userHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.InvoiceUC, errs)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/invoices", customerHandler.Invoices)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF, errs)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/increment", invoiceHandler.Increment)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
}
