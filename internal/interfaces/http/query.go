package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// parsePage lee ?page=N (1-based, por defecto 1).
func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	raw := c.Query("page")
	if raw == "" {
		p.DefaultPage()
		return p, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return p, domain.NewValidationError("page", "La página debe ser un entero mayor o igual a 1")
	}
	if n > dto.MaxPage {
		return p, domain.NewValidationError("page", fmt.Sprintf("La página no puede ser mayor a %d", dto.MaxPage))
	}
	p.Page = n
	return p, nil
}

// parseInvoiceOrder lee order[amount] y order[sentAt] en el orden en que aparecen en el query string.
// Propiedades o direcciones desconocidas se ignoran.
func parseInvoiceOrder(c *fiber.Ctx) []repository.SortField {
	var sort []repository.SortField
	seen := map[string]bool{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if !strings.HasPrefix(k, "order[") || !strings.HasSuffix(k, "]") {
			return
		}
		field := k[len("order[") : len(k)-1]
		if field != repository.InvoiceSortAmount && field != repository.InvoiceSortSentAt {
			return
		}
		if seen[field] {
			return
		}
		var desc bool
		switch strings.ToLower(string(value)) {
		case "asc":
		case "desc":
			desc = true
		default:
			return
		}
		seen[field] = true
		sort = append(sort, repository.SortField{Field: field, Desc: desc})
	})
	return sort
}
