package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/application/fixtures"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

var _ fixtures.Store = (*FixtureLoader)(nil)

// FixtureLoader carga un dataset completo con COPY dentro de una única transacción.
type FixtureLoader struct {
	tx *TxRunner
}

// NewFixtureLoader construye el loader.
func NewFixtureLoader(tx *TxRunner) *FixtureLoader {
	return &FixtureLoader{tx: tx}
}

// Load inserta usuarios, clientes y facturas en ese orden. Con purge=true vacía antes las tablas.
func (l *FixtureLoader) Load(ctx context.Context, ds *fixtures.Dataset, purge bool) error {
	return l.tx.Run(ctx, func(tx pgx.Tx) error {
		if purge {
			if _, err := tx.Exec(ctx, `TRUNCATE invoices, customers, users`); err != nil {
				return fmt.Errorf("purgar tablas: %w", err)
			}
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"users"},
			[]string{"id", "first_name", "last_name", "email", "password_hash", "roles", "created_at", "updated_at"},
			pgx.CopyFromSlice(len(ds.Users), func(i int) ([]any, error) {
				u := ds.Users[i]
				id, err := uuid.Parse(u.ID)
				if err != nil {
					return nil, fmt.Errorf("usuario %q: %w", u.ID, err)
				}
				return []any{id, u.FirstName, u.LastName, u.Email, u.PasswordHash, rolesOrEmpty(u.Roles), u.CreatedAt, u.UpdatedAt}, nil
			}),
		); err != nil {
			return fmt.Errorf("copy users: %w", wrapCopyErr(err))
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"customers"},
			[]string{"id", "first_name", "last_name", "email", "company", "user_id", "created_at", "updated_at"},
			pgx.CopyFromSlice(len(ds.Customers), func(i int) ([]any, error) {
				c := ds.Customers[i]
				ids, err := copyUUIDs(c.ID, c.UserID)
				if err != nil {
					return nil, fmt.Errorf("cliente %q: %w", c.ID, err)
				}
				return []any{ids[0], c.FirstName, c.LastName, c.Email, nullIfEmpty(c.Company), ids[1], c.CreatedAt, c.UpdatedAt}, nil
			}),
		); err != nil {
			return fmt.Errorf("copy customers: %w", wrapCopyErr(err))
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"invoices"},
			[]string{"id", "amount", "sent_at", "status", "customer_id", "chrono", "created_at", "updated_at"},
			pgx.CopyFromSlice(len(ds.Invoices), func(i int) ([]any, error) {
				return invoiceCopyRow(ds.Invoices[i])
			}),
		); err != nil {
			return fmt.Errorf("copy invoices: %w", wrapCopyErr(err))
		}
		return nil
	})
}

func invoiceCopyRow(inv *entity.Invoice) ([]any, error) {
	ids, err := copyUUIDs(inv.ID, inv.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("factura %q: %w", inv.ID, err)
	}
	return []any{ids[0], inv.Amount, inv.SentAt, inv.Status, ids[1], inv.Chrono, inv.CreatedAt, inv.UpdatedAt}, nil
}

// copyUUIDs convierte ids a uuid.UUID: COPY usa formato binario y no acepta strings en columnas uuid.
func copyUUIDs(ids ...string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}

// wrapCopyErr traduce el email duplicado (append sobre una base ya sembrada) a un mensaje claro.
func wrapCopyErr(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("ya existe una fila con la misma clave (¿usar purge?): %w", err)
	}
	return err
}
