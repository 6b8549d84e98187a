package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Insumos-api/internal/application/catalog"
	"github.com/jhoicas/Insumos-api/internal/application/dto"
)

// ClientConfigHandler configuración de catálogos por cliente.
type ClientConfigHandler struct {
	uc *catalog.ClientConfigUseCase
}

// NewClientConfigHandler crea el handler.
func NewClientConfigHandler(uc *catalog.ClientConfigUseCase) *ClientConfigHandler {
	return &ClientConfigHandler{uc: uc}
}

// ListAll godoc
// @Summary      Configuración de todos los clientes activos
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ClientConfigResponse
// @Router       /api/clients/config [get]
func (h *ClientConfigHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Configuración de un cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientConfigResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/config [get]
func (h *ClientConfigHandler) Get(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Reemplazar la configuración de un cliente
// @Description  Las listas ausentes no se modifican; una lista vacía quita todas las asignaciones.
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del cliente"
// @Param        body  body  dto.ClientConfigRequest  true  "Configuración"
// @Success      200  {object}  dto.ClientConfigResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/config [put]
func (h *ClientConfigHandler) Update(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	var in dto.ClientConfigRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateVarieties godoc
// @Summary      Reemplazar las variedades de un cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del cliente"
// @Param        body  body  dto.ClientVarietiesRequest  true  "IDs de variedad"
// @Success      200  {object}  dto.ClientConfigResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/varieties [put]
func (h *ClientConfigHandler) UpdateVarieties(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	var in dto.ClientVarietiesRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateVarieties(c.UserContext(), id, in.Varieties)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePresentations godoc
// @Summary      Reemplazar las presentaciones de un cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del cliente"
// @Param        body  body  dto.ClientPresentationsRequest  true  "IDs de presentación"
// @Success      200  {object}  dto.ClientConfigResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/presentations [put]
func (h *ClientConfigHandler) UpdatePresentations(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	var in dto.ClientPresentationsRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdatePresentations(c.UserContext(), id, in.Presentations)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateShipmentTypes godoc
// @Summary      Reemplazar los tipos de envío de un cliente
// @Description  Valores admitidos: Nacional, Exportación.
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del cliente"
// @Param        body  body  dto.ClientShipmentTypesRequest  true  "Tipos de envío"
// @Success      200  {object}  dto.ClientConfigResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/types [put]
func (h *ClientConfigHandler) UpdateShipmentTypes(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	var in dto.ClientShipmentTypesRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateShipmentTypes(c.UserContext(), id, in.ShipmentTypes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
