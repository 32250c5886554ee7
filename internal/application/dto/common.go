package dto

import "math"

// DefaultItemsPerPage tamaño de página de todos los listados.
const DefaultItemsPerPage = 25

// MaxPage última página cuyo offset cabe en un int.
const MaxPage = math.MaxInt/DefaultItemsPerPage + 1

// PageRequest paginación por número de página (1-based).
type PageRequest struct {
	Page int `query:"page"`
}

// DefaultPage aplica la página 1 si no se indicó.
func (p *PageRequest) DefaultPage() {
	if p.Page == 0 {
		p.Page = 1
	}
}

// Limit devuelve el tamaño de página.
func (p PageRequest) Limit() int { return DefaultItemsPerPage }

// Offset devuelve cuántos elementos se saltan para llegar a la página.
func (p PageRequest) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	if p.Page > MaxPage {
		return (MaxPage - 1) * DefaultItemsPerPage
	}
	return (p.Page - 1) * DefaultItemsPerPage
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page         int `json:"page"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
}

// ListResponse listado paginado.
type ListResponse[T any] struct {
	Items      []T          `json:"items"`
	Pagination PageResponse `json:"pagination"`
}

// NewListResponse arma la respuesta paginada; nunca serializa items como null.
func NewListResponse[T any](items []T, total int, page PageRequest) *ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResponse[T]{
		Items: items,
		Pagination: PageResponse{
			Page:         page.Page,
			ItemsPerPage: page.Limit(),
			TotalItems:   total,
		},
	}
}

// Violation violación de validación sobre una propiedad.
type Violation struct {
	PropertyPath string `json:"propertyPath"`
	Message      string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Violations []Violation `json:"violations,omitempty"`
}
