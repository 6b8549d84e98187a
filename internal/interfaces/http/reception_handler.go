package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/reception"
)

// ReceptionHandler recepciones de insumos de proveedores (protegido).
type ReceptionHandler struct {
	uc *reception.UseCase
}

// NewReceptionHandler construye el handler.
func NewReceptionHandler(uc *reception.UseCase) *ReceptionHandler {
	return &ReceptionHandler{uc: uc}
}

// List godoc
// @Summary      Listar recepciones
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to           query  string  false  "Fecha final (YYYY-MM-DD)"
// @Param        client_id    query  string  false  "Cliente"
// @Param        supplier_id  query  string  false  "Proveedor"
// @Param        status       query  string  false  "pending | completed | cancelled"
// @Param        limit        query  int     false  "Máximo 100"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ReceptionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/receptions [get]
func (h *ReceptionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), documentQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FormData godoc
// @Summary      Datos para el formulario de recepción
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FormDataResponse
// @Router       /api/receptions/form-data [get]
func (h *ReceptionHandler) FormData(c *fiber.Ctx) error {
	out, err := h.uc.FormData(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener recepción con sus renglones
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receptions/{id} [get]
func (h *ReceptionHandler) GetByID(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar recepción
// @Description  Si queda completada, cada renglón genera un movimiento de entrada.
// @Tags         receptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceptionRequest  true  "Cabecera y renglones"
// @Success      201   {object}  dto.ReceptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receptions [post]
func (h *ReceptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceptionRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar recepción
// @Description  Una recepción completada solo puede cancelarse; cancelar revierte sus entradas.
// @Tags         receptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la recepción"
// @Param        body  body  dto.UpdateReceptionRequest  true  "status, notes, details"
// @Success      200   {object}  dto.ReceptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receptions/{id} [put]
func (h *ReceptionHandler) Update(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	var in dto.UpdateReceptionRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar recepción
// @Description  Solo recepciones pendientes o canceladas.
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receptions/{id} [delete]
func (h *ReceptionHandler) Delete(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Comprobante PDF de la recepción
// @Tags         receptions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la recepción"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receptions/{id}/pdf [get]
func (h *ReceptionHandler) PDF(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	data, filename, err := h.uc.PDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, data, filename)
}

func sendPDF(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(data)
}
