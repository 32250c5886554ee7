package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/Facturacion-api/docs"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
	"github.com/jhoicas/Facturacion-api/internal/application/validation"
	infrapdf "github.com/jhoicas/Facturacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/Facturacion-api/pkg/config"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

// @title                       Facturacion API
// @version                     1.0
// @description                 Usuarios, clientes y facturas.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	version, err := postgres.Migrate(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Uint("schema_version", version).Msg("migraciones aplicadas")

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)

	validate := validation.New()
	hasher := auth.PasswordHasher{Cost: cfg.Security.BcryptCost}

	authUC := auth.NewAuthUseCase(userRepo, hasher, validate, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, hasher, validate)
	customerUC := billing.NewCustomerUseCase(customerRepo, userRepo, invoiceRepo, validate)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, customerRepo, validate)

	// PDF: representación gráfica de la factura
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, infrapdf.NewMarotoPDFGenerator())

	app := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		CustomerUC: customerUC,
		InvoiceUC:  invoiceUC,
		InvoicePDF: invoicePDFUC,
		JWTSecret:  cfg.JWT.Secret,
		CORSOrigin: cfg.HTTP.CORSOrigin,
		Log:        log.Named("http"),
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturacion API",
	}))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
