package dto

import "time"

// InvoiceRequest body para POST/PUT /api/invoices.
// Los campos llegan sin tipo estricto (número o string); el use case los valida y convierte.
// Customer acepta id o IRI (/api/customers/{id}).
type InvoiceRequest struct {
	Amount   any `json:"amount"`
	SentAt   any `json:"sentAt"`
	Status   any `json:"status"`
	Customer any `json:"customer"`
	Chrono   any `json:"chrono"`
}

// InvoiceReadView vista de lectura: incluye cliente y usuario (derivado del cliente).
type InvoiceReadView struct {
	ID       string       `json:"id"`
	Amount   float64      `json:"amount"`
	SentAt   time.Time    `json:"sentAt"`
	Status   string       `json:"status"`
	Chrono   int64        `json:"chrono"`
	Customer *CustomerRef `json:"customer"`
	User     *UserRef     `json:"user"`
}

// InvoiceSubresourceView vista reducida para /api/customers/:id/invoices: sin cliente ni usuario.
type InvoiceSubresourceView struct {
	ID     string    `json:"id"`
	Amount float64   `json:"amount"`
	SentAt time.Time `json:"sentAt"`
	Status string    `json:"status"`
	Chrono int64     `json:"chrono"`
}
