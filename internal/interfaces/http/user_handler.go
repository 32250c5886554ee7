package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
)

const userNotFound = "usuario no encontrado"

// UserHandler maneja las peticiones HTTP de usuarios (protegido).
type UserHandler struct {
	uc   *usecase.UserUseCase
	errs errorWriter
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, errs errorWriter) *UserHandler {
	return &UserHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Página (1-based)"
// @Success      200   {object}  dto.ListResponse[dto.UserResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err, userNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario (el propio o cualquiera si es admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "datos del usuario"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), actorOf(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err, userNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.write(c, err, userNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
