package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Insumos-api/internal/application/delivery"
	"github.com/jhoicas/Insumos-api/internal/application/dto"
)

// DeliveryHandler entregas de insumos a producción (protegido).
type DeliveryHandler struct {
	uc *delivery.UseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *delivery.UseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        from               query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to                 query  string  false  "Fecha final (YYYY-MM-DD)"
// @Param        client_id          query  string  false  "Cliente"
// @Param        production_lot_id  query  string  false  "Lote de producción"
// @Param        status             query  string  false  "pending | completed | cancelled"
// @Param        limit              query  int     false  "Máximo 100"
// @Param        offset             query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.DeliveryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), documentQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FormData godoc
// @Summary      Datos para el formulario de entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FormDataResponse
// @Router       /api/deliveries/form-data [get]
func (h *DeliveryHandler) FormData(c *fiber.Ctx) error {
	out, err := h.uc.FormData(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WasteReport godoc
// @Summary      Reporte de merma por categoría
// @Description  Solo entregas completadas dentro del rango.
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        from       query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to         query  string  false  "Fecha final (YYYY-MM-DD)"
// @Param        client_id  query  string  false  "Cliente"
// @Success      200  {object}  dto.WasteReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/deliveries/waste-report [get]
func (h *DeliveryHandler) WasteReport(c *fiber.Ctx) error {
	out, err := h.uc.WasteReport(c.UserContext(), documentQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrega con sus renglones
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Registrar entrega
// @Description  Si queda completada, cada renglón genera una salida y, si hay merma, un movimiento de desperdicio.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "Cabecera y renglones"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
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
// @Summary      Actualizar entrega
// @Description  Una entrega completada solo puede cancelarse; cancelar devuelve el stock.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la entrega"
// @Param        body  body  dto.UpdateDeliveryRequest  true  "status, notes, details"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [put]
func (h *DeliveryHandler) Update(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	var in dto.UpdateDeliveryRequest
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
// @Summary      Eliminar entrega
// @Description  Solo entregas pendientes o canceladas.
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Comprobante PDF de la entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/pdf [get]
func (h *DeliveryHandler) PDF(c *fiber.Ctx) error {
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
