package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `i.id, i.amount, i.sent_at, i.status, i.customer_id, i.chrono, i.created_at, i.updated_at`

// invoiceSelect trae la factura con su cliente y el usuario dueño del cliente.
const invoiceSelect = `
	SELECT ` + invoiceColumns + `,
	       c.id, c.first_name, c.last_name, c.email, c.company, c.user_id,
	       u.id, u.first_name, u.last_name, u.email, u.roles
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id
	JOIN users u ON u.id = c.user_id`

// invoiceSortColumns whitelist de propiedades ordenables; nada del query string llega crudo al SQL.
var invoiceSortColumns = map[string]string{
	repository.InvoiceSortAmount: "i.amount",
	repository.InvoiceSortSentAt: "i.sent_at",
}

// InvoiceRepo implementación de InvoiceRepository (pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, amount, sent_at, status, customer_id, chrono, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Amount, invoice.SentAt, invoice.Status, invoice.CustomerID, invoice.Chrono,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return invoiceWriteErr("insert invoice", err)
	}
	return nil
}

// GetByID obtiene una factura por ID con cliente y usuario.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	inv, err := scanInvoiceWithCustomer(r.q.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List lista facturas paginadas con el orden pedido.
func (r *InvoiceRepo) List(ctx context.Context, params repository.InvoiceListParams) ([]*entity.Invoice, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}
	query := invoiceSelect + ` ORDER BY ` + invoiceOrderBy(params.Sort) + ` LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoiceWithCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, total, rows.Err()
}

// ListByCustomer lista las facturas de un cliente, sentAt descendente.
func (r *InvoiceRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Invoice, int, error) {
	customerID, ok := parseID(customerID)
	if !ok {
		return nil, 0, nil
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE customer_id = $1`, customerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices by customer: %w", err)
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices i WHERE i.customer_id = $1
		ORDER BY ` + invoiceOrderBy(nil) + ` LIMIT $2 OFFSET $3`
	list, err := r.queryInvoices(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByCustomerIDs agrupa por cliente todas las facturas de los clientes indicados.
func (r *InvoiceRepo) ListByCustomerIDs(ctx context.Context, customerIDs []string) (map[string][]*entity.Invoice, error) {
	out := make(map[string][]*entity.Invoice, len(customerIDs))
	if len(customerIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices i WHERE i.customer_id = ANY($1::text[]::uuid[])
		ORDER BY ` + invoiceOrderBy(nil)
	list, err := r.queryInvoices(ctx, query, customerIDs)
	if err != nil {
		return nil, err
	}
	for _, inv := range list {
		out[inv.CustomerID] = append(out[inv.CustomerID], inv)
	}
	return out, nil
}

// Update actualiza una factura.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET amount = $2, sent_at = $3, status = $4, customer_id = $5, chrono = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Amount, invoice.SentAt, invoice.Status, invoice.CustomerID, invoice.Chrono, invoice.UpdatedAt,
	)
	if err != nil {
		return invoiceWriteErr("update invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una factura por ID.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementChrono suma 1 al chrono en una sola sentencia, sin ventana entre lectura y escritura.
func (r *InvoiceRepo) IncrementChrono(ctx context.Context, id string) (*entity.Invoice, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	query := `
		WITH i AS (
			UPDATE invoices SET chrono = chrono + 1, updated_at = now()
			WHERE id = $1
			RETURNING id, amount, sent_at, status, customer_id, chrono, created_at, updated_at
		)
		SELECT ` + invoiceColumns + `,
		       c.id, c.first_name, c.last_name, c.email, c.company, c.user_id,
		       u.id, u.first_name, u.last_name, u.email, u.roles
		FROM i
		JOIN customers c ON c.id = i.customer_id
		JOIN users u ON u.id = c.user_id`
	inv, err := scanInvoiceWithCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("increment invoice chrono: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) queryInvoices(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(invoiceDest(&inv)...); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// invoiceOrderBy arma la cláusula ORDER BY. Sin criterios usa sentAt descendente;
// i.id siempre desempata para que la paginación sea estable.
func invoiceOrderBy(sort []repository.SortField) string {
	if len(sort) == 0 {
		sort = repository.DefaultInvoiceSort
	}
	parts := make([]string, 0, len(sort)+1)
	for _, s := range sort {
		col, ok := invoiceSortColumns[s.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return invoiceOrderBy(nil)
	}
	return strings.Join(append(parts, "i.id ASC"), ", ")
}

func invoiceDest(inv *entity.Invoice) []any {
	return []any{
		&inv.ID, &inv.Amount, &inv.SentAt, &inv.Status, &inv.CustomerID, &inv.Chrono, &inv.CreatedAt, &inv.UpdatedAt,
	}
}

func scanInvoiceWithCustomer(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv     entity.Invoice
		c       entity.Customer
		u       entity.User
		company *string
	)
	dest := append(invoiceDest(&inv),
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &company, &c.UserID,
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Roles,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	c.Company = derefString(company)
	c.User = &u
	inv.Customer = &c
	return &inv, nil
}

// invoiceWriteErr traduce errores de INSERT/UPDATE: cliente inexistente es conflicto y
// un monto fuera de NUMERIC(12,2) es una violación sobre "amount".
func invoiceWriteErr(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return domain.ErrConflict
	case isNumericOverflow(err):
		return domain.NewValidationError("amount", "El monto de la factura no puede superar 9999999999.99")
	}
	return fmt.Errorf("%s: %w", op, err)
}
