package fixtures

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// Rangos del dataset de desarrollo.
const (
	MinCustomersPerUser = 5
	MaxCustomersPerUser = 20
	MinInvoicesPerCust  = 3
	MaxInvoicesPerCust  = 10
	MinAmount           = 250.0
	MaxAmount           = 5000.0
	sentAtMonthsBack    = 6
)

// HashFunc hashea la contraseña en texto plano (bcrypt en producción).
type HashFunc func(plain string) (string, error)

// Admin identidad fija del administrador sembrado.
type Admin struct {
	FirstName string
	LastName  string
	Email     string
}

// Options parámetros del generador.
type Options struct {
	Admin    Admin
	Users    int    // usuarios regulares
	Password string // contraseña de todos los usuarios
	Seed     uint64 // 0 = aleatorio
	Now      time.Time
}

// Dataset filas generadas, en orden de inserción.
type Dataset struct {
	Users     []*entity.User
	Customers []*entity.Customer
	Invoices  []*entity.Invoice
}

// Generator produce el dataset de desarrollo.
type Generator struct {
	opts  Options
	hash  HashFunc
	faker *gofakeit.Faker
	seen  map[string]struct{}
}

// NewGenerator crea un generador. Con Seed distinto de 0 la salida es reproducible.
func NewGenerator(opts Options, hash HashFunc) *Generator {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	return &Generator{
		opts:  opts,
		hash:  hash,
		faker: gofakeit.New(opts.Seed),
		seen:  make(map[string]struct{}),
	}
}

// Generate arma el administrador, los usuarios, sus clientes y las facturas de cada cliente.
// El chrono arranca en 1 por usuario y avanza con cada factura de todos sus clientes.
func (g *Generator) Generate() (*Dataset, error) {
	ds := &Dataset{}
	now := g.opts.Now

	admin, err := g.newUser(g.opts.Admin.FirstName, g.opts.Admin.LastName, g.opts.Admin.Email, now)
	if err != nil {
		return nil, err
	}
	admin.Roles = []string{entity.RoleAdmin}
	ds.Users = append(ds.Users, admin)

	from := now.AddDate(0, -sentAtMonthsBack, 0)
	for u := 0; u < g.opts.Users; u++ {
		first, last := g.firstName(), g.lastName()
		user, err := g.newUser(first, last, g.email(first, last), now)
		if err != nil {
			return nil, err
		}
		ds.Users = append(ds.Users, user)

		var chrono int64 = 1
		customers := g.faker.IntRange(MinCustomersPerUser, MaxCustomersPerUser)
		for c := 0; c < customers; c++ {
			cFirst, cLast := g.firstName(), g.lastName()
			customer := &entity.Customer{
				ID:        uuid.New().String(),
				FirstName: cFirst,
				LastName:  cLast,
				Email:     g.email(cFirst, cLast),
				Company:   g.company(),
				UserID:    user.ID,
				CreatedAt: now,
				UpdatedAt: now,
				User:      user,
			}
			ds.Customers = append(ds.Customers, customer)

			invoices := g.faker.IntRange(MinInvoicesPerCust, MaxInvoicesPerCust)
			for f := 0; f < invoices; f++ {
				ds.Invoices = append(ds.Invoices, &entity.Invoice{
					ID:         uuid.New().String(),
					Amount:     decimal.NewFromFloat(g.faker.Float64Range(MinAmount, MaxAmount)).Round(2),
					SentAt:     g.faker.DateRange(from, now).Truncate(time.Second),
					Status:     g.faker.RandomString(entity.InvoiceStatuses),
					CustomerID: customer.ID,
					Chrono:     chrono,
					CreatedAt:  now,
					UpdatedAt:  now,
					Customer:   customer,
				})
				chrono++
			}
		}
	}
	return ds, nil
}

func (g *Generator) newUser(first, last, email string, now time.Time) (*entity.User, error) {
	hash, err := g.hash(g.opts.Password)
	if err != nil {
		return nil, fmt.Errorf("fixtures: hash password de %s: %w", email, err)
	}
	g.seen[email] = struct{}{}
	return &entity.User{
		ID:           uuid.New().String(),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (g *Generator) firstName() string { return g.faker.RandomString(frFirstNames) }
func (g *Generator) lastName() string  { return g.faker.RandomString(frLastNames) }

func (g *Generator) company() string {
	name := g.lastName()
	if g.faker.Bool() {
		name += " " + g.lastName()
	}
	return name + " " + g.faker.RandomString(frCompanySuffixes)
}

// email arma prenom.nom@dominio y agrega un número si la dirección ya salió en este dataset.
func (g *Generator) email(first, last string) string {
	local := asciiLocal(first) + "." + asciiLocal(last)
	domain := g.faker.RandomString(frEmailDomains)
	email := local + "@" + domain
	for n := 1; ; n++ {
		if _, dup := g.seen[email]; !dup {
			break
		}
		email = fmt.Sprintf("%s%d@%s", local, n, domain)
	}
	g.seen[email] = struct{}{}
	return email
}
