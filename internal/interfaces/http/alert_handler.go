package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
)

// AlertHandler alertas de stock bajo y crítico (protegido).
type AlertHandler struct {
	uc *inventory.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *inventory.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        seen      query  bool    false  "Filtrar por vistas"
// @Param        resolved  query  bool    false  "Filtrar por resueltas"
// @Param        kind      query  string  false  "low | critical"
// @Param        limit     query  int     false  "Máximo 100"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.AlertListResponse
// @Router       /api/inventory/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	seen, err := queryBool(c, "seen")
	if err != nil {
		return respondError(c, err)
	}
	resolved, err := queryBool(c, "resolved")
	if err != nil {
		return respondError(c, err)
	}
	q := dto.AlertListQuery{Seen: seen, Resolved: resolved, Kind: c.Query("kind")}
	out, err := h.uc.List(c.UserContext(), q, pageQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UnseenCount godoc
// @Summary      Número de alertas abiertas sin ver
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UnseenCountResponse
// @Router       /api/inventory/alerts/unseen-count [get]
func (h *AlertHandler) UnseenCount(c *fiber.Ctx) error {
	out, err := h.uc.CountUnseen(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkSeen godoc
// @Summary      Marcar alerta como vista
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/seen [patch]
func (h *AlertHandler) MarkSeen(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	out, err := h.uc.MarkSeen(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkAllSeen godoc
// @Summary      Marcar todas las alertas como vistas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/inventory/alerts/seen [patch]
func (h *AlertHandler) MarkAllSeen(c *fiber.Ctx) error {
	out, err := h.uc.MarkAllSeen(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Resolver alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/resolve [patch]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	out, err := h.uc.Resolve(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear alerta manual
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAlertRequest  true  "inventory_id, kind, message"
// @Success      201   {object}  dto.AlertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlertRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id} [delete]
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "alerta eliminada"})
}
