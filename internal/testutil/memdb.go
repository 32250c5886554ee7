// Package testutil contiene repositorios en memoria para tests de casos de uso y handlers.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// MemDB guarda usuarios, clientes y facturas compartidos por los tres repositorios,
// para poder resolver relaciones y las restricciones de llave foránea.
type MemDB struct {
	mu        sync.RWMutex
	users     map[string]entity.User
	customers map[string]entity.Customer
	invoices  map[string]entity.Invoice
	seq       map[string]int // orden de inserción
	next      int
}

// NewMemDB crea una base vacía.
func NewMemDB() *MemDB {
	return &MemDB{
		users:     map[string]entity.User{},
		customers: map[string]entity.Customer{},
		invoices:  map[string]entity.Invoice{},
		seq:       map[string]int{},
	}
}

// Users devuelve el repositorio de usuarios.
func (db *MemDB) Users() *UserRepo { return &UserRepo{db: db} }

// Customers devuelve el repositorio de clientes.
func (db *MemDB) Customers() *CustomerRepo { return &CustomerRepo{db: db} }

// Invoices devuelve el repositorio de facturas.
func (db *MemDB) Invoices() *InvoiceRepo { return &InvoiceRepo{db: db} }

func (db *MemDB) track(id string) {
	if _, ok := db.seq[id]; !ok {
		db.next++
		db.seq[id] = db.next
	}
}

func (db *MemDB) user(id string) *entity.User {
	u, ok := db.users[id]
	if !ok {
		return nil
	}
	u.Roles = append([]string(nil), u.Roles...)
	return &u
}

func (db *MemDB) customer(id string) *entity.Customer {
	c, ok := db.customers[id]
	if !ok {
		return nil
	}
	c.User = db.user(c.UserID)
	return &c
}

func (db *MemDB) invoice(id string, withCustomer bool) *entity.Invoice {
	inv, ok := db.invoices[id]
	if !ok {
		return nil
	}
	inv.Customer = nil
	if withCustomer {
		inv.Customer = db.customer(inv.CustomerID)
	}
	return &inv
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

// ── Users ─────────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa repository.UserRepository en memoria.
type UserRepo struct{ db *MemDB }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, other := range r.db.users {
		if other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	stored := *u
	stored.Roles = append([]string(nil), u.Roles...)
	r.db.users[u.ID] = stored
	r.db.track(u.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.user(id), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for id, u := range r.db.users {
		if u.Email == email {
			return r.db.user(id), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	ids := lo.Keys(r.db.users)
	sort.Slice(ids, func(i, j int) bool { return r.db.seq[ids[i]] < r.db.seq[ids[j]] })
	out := lo.Map(page(ids, limit, offset), func(id string, _ int) *entity.User { return r.db.user(id) })
	return out, len(ids), nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.db.users {
		if id != u.ID && other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	stored := *u
	stored.Roles = append([]string(nil), u.Roles...)
	r.db.users[u.ID] = stored
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.db.customers {
		if c.UserID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.users, id)
	return nil
}

// ── Customers ─────────────────────────────────────────────────────────────────

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementa repository.CustomerRepository en memoria.
type CustomerRepo struct{ db *MemDB }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[c.UserID]; !ok {
		return domain.ErrConflict
	}
	stored := *c
	stored.User = nil
	r.db.customers[c.ID] = stored
	r.db.track(c.ID)
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.customer(id), nil
}

func (r *CustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	ids := lo.Keys(r.db.customers)
	sort.Slice(ids, func(i, j int) bool { return r.db.seq[ids[i]] < r.db.seq[ids[j]] })
	out := lo.Map(page(ids, limit, offset), func(id string, _ int) *entity.Customer { return r.db.customer(id) })
	return out, len(ids), nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.db.users[c.UserID]; !ok {
		return domain.ErrConflict
	}
	stored := *c
	stored.User = nil
	r.db.customers[c.ID] = stored
	return nil
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.customers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, inv := range r.db.invoices {
		if inv.CustomerID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.customers, id)
	return nil
}

// ── Invoices ──────────────────────────────────────────────────────────────────

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementa repository.InvoiceRepository en memoria.
type InvoiceRepo struct{ db *MemDB }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.customers[inv.CustomerID]; !ok {
		return domain.ErrConflict
	}
	stored := *inv
	stored.Customer = nil
	r.db.invoices[inv.ID] = stored
	r.db.track(inv.ID)
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.invoice(id, true), nil
}

func (r *InvoiceRepo) List(_ context.Context, params repository.InvoiceListParams) ([]*entity.Invoice, int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	ids := lo.Keys(r.db.invoices)
	r.sortIDs(ids, params.Sort)
	out := lo.Map(page(ids, params.Limit, params.Offset), func(id string, _ int) *entity.Invoice {
		return r.db.invoice(id, true)
	})
	return out, len(ids), nil
}

func (r *InvoiceRepo) ListByCustomer(_ context.Context, customerID string, limit, offset int) ([]*entity.Invoice, int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	ids := r.idsOfCustomer(customerID)
	out := lo.Map(page(ids, limit, offset), func(id string, _ int) *entity.Invoice {
		return r.db.invoice(id, false)
	})
	return out, len(ids), nil
}

func (r *InvoiceRepo) ListByCustomerIDs(_ context.Context, customerIDs []string) (map[string][]*entity.Invoice, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make(map[string][]*entity.Invoice, len(customerIDs))
	for _, cid := range customerIDs {
		for _, id := range r.idsOfCustomer(cid) {
			out[cid] = append(out[cid], r.db.invoice(id, false))
		}
	}
	return out, nil
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.db.customers[inv.CustomerID]; !ok {
		return domain.ErrConflict
	}
	stored := *inv
	stored.Customer = nil
	r.db.invoices[inv.ID] = stored
	return nil
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.invoices, id)
	return nil
}

func (r *InvoiceRepo) IncrementChrono(_ context.Context, id string) (*entity.Invoice, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inv, ok := r.db.invoices[id]
	if !ok {
		return nil, nil
	}
	inv.Chrono++
	r.db.invoices[id] = inv
	return r.db.invoice(id, true), nil
}

func (r *InvoiceRepo) idsOfCustomer(customerID string) []string {
	ids := lo.Filter(lo.Keys(r.db.invoices), func(id string, _ int) bool {
		return r.db.invoices[id].CustomerID == customerID
	})
	r.sortIDs(ids, nil)
	return ids
}

// sortIDs replica el ORDER BY del adaptador Postgres; id desempata.
func (r *InvoiceRepo) sortIDs(ids []string, sortBy []repository.SortField) {
	if len(sortBy) == 0 {
		sortBy = repository.DefaultInvoiceSort
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := r.db.invoices[ids[i]], r.db.invoices[ids[j]]
		for _, s := range sortBy {
			var c int
			switch s.Field {
			case repository.InvoiceSortAmount:
				c = a.Amount.Cmp(b.Amount)
			case repository.InvoiceSortSentAt:
				c = a.SentAt.Compare(b.SentAt)
			}
			if s.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return a.ID < b.ID
	})
}
