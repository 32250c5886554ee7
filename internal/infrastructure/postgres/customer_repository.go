package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// customerSelect trae el cliente junto a su usuario dueño.
const customerSelect = `
	SELECT c.id, c.first_name, c.last_name, c.email, c.company, c.user_id, c.created_at, c.updated_at,
	       u.id, u.first_name, u.last_name, u.email, u.roles
	FROM customers c
	JOIN users u ON u.id = c.user_id`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, first_name, last_name, email, company, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.FirstName, customer.LastName, customer.Email, nullIfEmpty(customer.Company),
		customer.UserID, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID con su usuario.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, customerSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List lista clientes con paginación, ordenados por apellido y nombre.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	rows, err := r.q.Query(ctx, customerSelect+` ORDER BY c.last_name, c.first_name, c.id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers SET first_name = $2, last_name = $3, email = $4, company = $5, user_id = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		customer.ID, customer.FirstName, customer.LastName, customer.Email, nullIfEmpty(customer.Company),
		customer.UserID, customer.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por ID. Con facturas asociadas devuelve ErrConflict.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var (
		c       entity.Customer
		u       entity.User
		company *string
	)
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &company, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Roles,
	)
	if err != nil {
		return nil, err
	}
	c.Company = derefString(company)
	c.User = &u
	return &c, nil
}
