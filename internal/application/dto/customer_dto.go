package dto

// CustomerRequest body para POST/PUT /api/customers.
// User acepta id o IRI (/api/users/{id}); vacío = usuario autenticado.
type CustomerRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3,max=255"`
	LastName  string `json:"lastName" validate:"required,min=3,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Company   string `json:"company" validate:"omitempty,max=255"`
	User      string `json:"user,omitempty"`
}

// CustomerRef cliente embebido en la vista de lectura de facturas.
type CustomerRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Company   string `json:"company"`
}

// CustomerResponse vista de lectura de un cliente con sus facturas y totales.
type CustomerResponse struct {
	ID           string                   `json:"id"`
	FirstName    string                   `json:"firstName"`
	LastName     string                   `json:"lastName"`
	Email        string                   `json:"email"`
	Company      string                   `json:"company"`
	User         *UserRef                 `json:"user"`
	Invoices     []InvoiceSubresourceView `json:"invoices"`
	TotalAmount  float64                  `json:"totalAmount"`
	UnpaidAmount float64                  `json:"unpaidAmount"`
}
