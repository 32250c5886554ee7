package postgres

import (
	"embed"
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica las migraciones pendientes (NNN_nombre.up.sql) y devuelve la versión final.
// La versión aplicada queda registrada en schema_migrations.
func Migrate(databaseURL string) (uint, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("leer migraciones: %w", err)
	}
	dbURL, err := migrationURL(databaseURL)
	if err != nil {
		return 0, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return 0, fmt.Errorf("iniciar migraciones: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("aplicar migraciones: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("versión de migraciones: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("migración %d quedó a medias (dirty)", version)
	}
	return version, nil
}

// migrationURL cambia el esquema postgres:// por pgx5://, el driver pgx/v5 de golang-migrate.
func migrationURL(databaseURL string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("DSN inválido: %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql", "pgx5":
	default:
		return "", fmt.Errorf("DSN inválido: esquema %q no soportado", u.Scheme)
	}
	u.Scheme = "pgx5"
	return u.String(), nil
}
