package fixtures

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

// Store persiste un dataset completo en una sola transacción.
// Con purge=true vacía antes las tablas.
type Store interface {
	Load(ctx context.Context, ds *Dataset, purge bool) error
}

// Seeder genera el dataset y lo guarda.
type Seeder struct {
	gen   *Generator
	store Store
	log   *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(gen *Generator, store Store, log *logger.Logger) *Seeder {
	return &Seeder{gen: gen, store: store, log: log}
}

// Run genera y persiste. Si la carga falla no queda nada escrito.
func (s *Seeder) Run(ctx context.Context, purge bool) (*Dataset, error) {
	ds, err := s.gen.Generate()
	if err != nil {
		return nil, err
	}
	if err := s.store.Load(ctx, ds, purge); err != nil {
		return nil, fmt.Errorf("fixtures: cargar dataset: %w", err)
	}
	s.log.Info().
		Int("users", len(ds.Users)).
		Int("customers", len(ds.Customers)).
		Int("invoices", len(ds.Invoices)).
		Bool("purge", purge).
		Msg("fixtures cargados")
	return ds, nil
}
