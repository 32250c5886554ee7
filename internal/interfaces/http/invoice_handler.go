package http

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
)

const invoiceNotFound = "factura no encontrada"

// InvoiceHandler maneja las peticiones HTTP de facturas (protegido).
type InvoiceHandler struct {
	uc   *billing.InvoiceUseCase
	pdf  *billing.PDFUseCase
	errs errorWriter
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase, errs errorWriter) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf, errs: errs}
}

// decodeInvoice conserva los números como json.Number para no perder precisión en amount.
func decodeInvoice(c *fiber.Ctx) (dto.InvoiceRequest, error) {
	var in dto.InvoiceRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	err := dec.Decode(&in)
	return in, err
}

// Create godoc
// @Summary      Crear factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.InvoiceRequest  true  "amount, sentAt, status, customer, chrono"
// @Success      201   {object}  dto.InvoiceReadView
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	in, err := decodeInvoice(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Description  Orden con order[amount] y order[sentAt] (asc|desc), aplicados en el orden del query string. Por defecto sentAt desc.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        page            query  int     false  "Página (1-based)"
// @Param        order[amount]   query  string  false  "asc | desc"
// @Param        order[sentAt]   query  string  false  "asc | desc"
// @Success      200  {object}  dto.ListResponse[dto.InvoiceReadView]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return h.errs.write(c, err, "")
	}
	out, err := h.uc.List(c.UserContext(), page, parseInvoiceOrder(c))
	if err != nil {
		return h.errs.write(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceReadView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err, invoiceNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID de la factura"
// @Param        body  body  dto.InvoiceRequest  true  "amount, sentAt, status, customer, chrono"
// @Success      200   {object}  dto.InvoiceReadView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	in, err := decodeInvoice(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err, invoiceNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.write(c, err, invoiceNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Increment godoc
// @Summary      Incrementar el chrono de una factura
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceReadView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/increment [post]
func (h *InvoiceHandler) Increment(c *fiber.Ctx) error {
	out, err := h.uc.Increment(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err, invoiceNotFound)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err, invoiceNotFound)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
