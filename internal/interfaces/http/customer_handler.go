package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
)

const customerNotFound = "cliente no encontrado"

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc       *billing.CustomerUseCase
	invoices *billing.InvoiceUseCase
	errs     errorWriter
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase, invoices *billing.InvoiceUseCase, errs errorWriter) *CustomerHandler {
	return &CustomerHandler{uc: uc, invoices: invoices, errs: errs}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CustomerRequest  true  "datos del cliente; user vacío = usuario autenticado"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.errs.write(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Página (1-based)"
// @Success      200   {object}  dto.ListResponse[dto.CustomerResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return h.errs.write(c, err, "")
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return h.errs.write(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente con sus facturas y totales
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err, customerNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "ID del cliente"
// @Param        body  body  dto.CustomerRequest  true  "datos del cliente"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err, customerNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.write(c, err, customerNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Invoices godoc
// @Summary      Listar facturas de un cliente
// @Description  Vista reducida: sin cliente ni usuario embebidos.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id    path   string  true   "ID del cliente"
// @Param        page  query  int     false  "Página (1-based)"
// @Success      200   {object}  dto.ListResponse[dto.InvoiceSubresourceView]
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/invoices [get]
func (h *CustomerHandler) Invoices(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return h.errs.write(c, err, "")
	}
	out, err := h.invoices.ListByCustomer(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return h.errs.write(c, err, customerNotFound)
	}
	return c.JSON(out)
}
