package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Insumos-api/internal/application/catalog"
	"github.com/jhoicas/Insumos-api/internal/application/dto"
)

// catalogService operaciones comunes de los casos de uso de catálogo.
type catalogService[Req, Resp any] interface {
	Create(ctx context.Context, in Req) (*Resp, error)
	GetByID(ctx context.Context, id string) (*Resp, error)
	Update(ctx context.Context, id string, in Req) (*Resp, error)
	Delete(ctx context.Context, id string) (*dto.MessageResponse, error)
}

// CatalogHandler CRUD HTTP de un catálogo. El listado se inyecta porque cada
// catálogo admite filtros distintos.
type CatalogHandler[Req, Resp any] struct {
	svc  catalogService[Req, Resp]
	list func(c *fiber.Ctx) (any, error)
}

func newCatalogHandler[Req, Resp any](svc catalogService[Req, Resp], list func(c *fiber.Ctx) (any, error)) *CatalogHandler[Req, Resp] {
	return &CatalogHandler[Req, Resp]{svc: svc, list: list}
}

// NewClientHandler GET ?all=true incluye inactivos.
func NewClientHandler(uc *catalog.ClientUseCase) *CatalogHandler[dto.ClientRequest, dto.ClientResponse] {
	return newCatalogHandler[dto.ClientRequest, dto.ClientResponse](uc, func(c *fiber.Ctx) (any, error) {
		return uc.List(c.UserContext(), activeOnly(c))
	})
}

// NewBrandHandler GET ?client_id filtra por cliente.
func NewBrandHandler(uc *catalog.BrandUseCase) *CatalogHandler[dto.BrandRequest, dto.BrandResponse] {
	return newCatalogHandler[dto.BrandRequest, dto.BrandResponse](uc, func(c *fiber.Ctx) (any, error) {
		return uc.List(c.UserContext(), c.Query("client_id"), activeOnly(c))
	})
}

func NewSupplierHandler(uc *catalog.SupplierUseCase) *CatalogHandler[dto.SupplierRequest, dto.SupplierResponse] {
	return newCatalogHandler[dto.SupplierRequest, dto.SupplierResponse](uc, func(c *fiber.Ctx) (any, error) {
		return uc.List(c.UserContext(), activeOnly(c))
	})
}

func NewVarietyHandler(uc *catalog.VarietyUseCase) *CatalogHandler[dto.VarietyRequest, dto.VarietyResponse] {
	return newCatalogHandler[dto.VarietyRequest, dto.VarietyResponse](uc, func(c *fiber.Ctx) (any, error) {
		return uc.List(c.UserContext(), activeOnly(c))
	})
}

func NewPresentationHandler(uc *catalog.PresentationUseCase) *CatalogHandler[dto.PresentationRequest, dto.PresentationResponse] {
	return newCatalogHandler[dto.PresentationRequest, dto.PresentationResponse](uc, func(c *fiber.Ctx) (any, error) {
		return uc.List(c.UserContext(), activeOnly(c))
	})
}

func NewCategoryHandler(uc *catalog.CategoryUseCase) *CatalogHandler[dto.CategoryRequest, dto.CategoryResponse] {
	return newCatalogHandler[dto.CategoryRequest, dto.CategoryResponse](uc, func(c *fiber.Ctx) (any, error) {
		return uc.List(c.UserContext(), activeOnly(c))
	})
}

// NewProductionLotHandler GET ?client_id&status&open=true; open limita a lotes que aún admiten entregas.
func NewProductionLotHandler(uc *catalog.ProductionLotUseCase) *CatalogHandler[dto.ProductionLotRequest, dto.ProductionLotResponse] {
	return newCatalogHandler[dto.ProductionLotRequest, dto.ProductionLotResponse](uc, func(c *fiber.Ctx) (any, error) {
		return uc.List(c.UserContext(), catalog.ProductionLotQuery{
			ClientID:   c.Query("client_id"),
			Status:     c.Query("status"),
			OpenOnly:   c.QueryBool("open", false),
			ActiveOnly: activeOnly(c),
		})
	})
}

// List godoc
// @Summary      Listar registros del catálogo
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        all  query  bool  false  "Incluir inactivos"
// @Success      200  {array}   object
// @Router       /api/{catalog} [get]
func (h *CatalogHandler[Req, Resp]) List(c *fiber.Ctx) error {
	out, err := h.list(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener registro del catálogo
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  object
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{catalog}/{id} [get]
func (h *CatalogHandler[Req, Resp]) GetByID(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	out, err := h.svc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear registro del catálogo
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/{catalog} [post]
func (h *CatalogHandler[Req, Resp]) Create(c *fiber.Ctx) error {
	var in Req
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar registro del catálogo
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{catalog}/{id} [put]
func (h *CatalogHandler[Req, Resp]) Update(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	var in Req
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar registro del catálogo
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{catalog}/{id} [delete]
func (h *CatalogHandler[Req, Resp]) Delete(c *fiber.Ctx) error {
	id, ok := requireID(c)
	if !ok {
		return missingID(c)
	}
	out, err := h.svc.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
