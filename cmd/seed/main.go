// seed carga el dataset de desarrollo: un administrador, usuarios con sus clientes
// y las facturas de cada cliente, todo en una sola transacción.
//
// Uso: go run ./cmd/seed [-append] [-users N] [-seed S]
// Por defecto vacía las tablas antes de cargar. Se niega a correr con APP_ENV=production.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/fixtures"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturacion-api/pkg/config"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	appendMode := flag.Bool("append", false, "agregar sin vaciar las tablas")
	users := flag.Int("users", cfg.Seed.Users, "cantidad de usuarios regulares")
	seed := flag.Uint64("seed", cfg.Seed.RandomSeed, "semilla del generador (0 = aleatoria)")
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name}).Named("seed")
	if cfg.App.IsProduction() {
		log.Fatal().Str("env", cfg.App.Env).Msg("el seed no se ejecuta en producción")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

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

	hasher := auth.PasswordHasher{Cost: cfg.Security.BcryptCost}
	gen := fixtures.NewGenerator(fixtures.Options{
		Admin: fixtures.Admin{
			FirstName: cfg.Seed.AdminFirstName,
			LastName:  cfg.Seed.AdminLastName,
			Email:     cfg.Seed.AdminEmail,
		},
		Users:    *users,
		Password: cfg.Seed.Password,
		Seed:     *seed,
	}, hasher.Hash)

	loader := postgres.NewFixtureLoader(postgres.NewTxRunner(pool))
	if _, err := fixtures.NewSeeder(gen, loader, log).Run(ctx, !*appendMode); err != nil {
		log.Error().Err(err).Msg("seed fallido")
		pool.Close()
		os.Exit(1)
	}
}
