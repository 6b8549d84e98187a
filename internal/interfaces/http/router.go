package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Insumos-api/internal/application/auth"
	"github.com/jhoicas/Insumos-api/internal/application/catalog"
	"github.com/jhoicas/Insumos-api/internal/application/delivery"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/application/reception"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	Lines          *inventory.LineUseCase
	ApplyMovement  *inventory.ApplyMovementUseCase
	Alerts         *inventory.AlertUseCase
	Receptions     *reception.UseCase
	Deliveries     *delivery.UseCase
	Clients        *catalog.ClientUseCase
	ClientConfigs  *catalog.ClientConfigUseCase
	Brands         *catalog.BrandUseCase
	Suppliers      *catalog.SupplierUseCase
	Varieties      *catalog.VarietyUseCase
	Presentations  *catalog.PresentationUseCase
	Categories     *catalog.CategoryUseCase
	ProductionLots *catalog.ProductionLotUseCase
	JWTSecret      string
	ServiceName    string
	// Ping opcional para /health (p. ej. pool.Ping).
	Ping func(ctx context.Context) error
}

// crudHandler rutas comunes de los recursos con CRUD.
type crudHandler interface {
	List(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/bootstrap", authHandler.Bootstrap)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleOperator, entity.RoleViewer)
	writers := RequireRole(entity.RoleAdmin, entity.RoleOperator)
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", anyRole, authHandler.Me)
	protected.Put("/auth/profile", anyRole, authHandler.UpdateProfile)
	protected.Put("/auth/change-password", anyRole, authHandler.ChangePassword)

	// Inventario: las rutas fijas van antes de /:id
	inv := protected.Group("/inventory")
	invHandler := NewInventoryHandler(deps.Lines, deps.ApplyMovement)
	alertHandler := NewAlertHandler(deps.Alerts)
	inv.Get("/alerts", anyRole, alertHandler.List)
	inv.Get("/alerts/unseen-count", anyRole, alertHandler.UnseenCount)
	inv.Patch("/alerts/seen", writers, alertHandler.MarkAllSeen)
	inv.Patch("/alerts/:id/seen", writers, alertHandler.MarkSeen)
	inv.Patch("/alerts/:id/resolve", writers, alertHandler.Resolve)
	inv.Post("/alerts", writers, alertHandler.Create)
	inv.Delete("/alerts/:id", adminOnly, alertHandler.Delete)
	inv.Get("/stats", anyRole, invHandler.Stats)
	inv.Get("/filter-options", anyRole, invHandler.FilterOptions)
	inv.Get("/export", anyRole, invHandler.Export)
	inv.Post("/movement", writers, invHandler.ApplyMovement)
	inv.Get("/", anyRole, invHandler.List)
	inv.Post("/", writers, invHandler.Create)
	inv.Get("/:id/movements", anyRole, invHandler.Movements)
	inv.Get("/:id", anyRole, invHandler.GetByID)
	inv.Put("/:id", writers, invHandler.Update)
	inv.Delete("/:id", adminOnly, invHandler.Delete)

	// Recepciones
	recHandler := NewReceptionHandler(deps.Receptions)
	rec := protected.Group("/receptions")
	rec.Get("/form-data", anyRole, recHandler.FormData)
	rec.Get("/:id/pdf", anyRole, recHandler.PDF)
	mountCRUD(rec, recHandler, anyRole, writers, writers)

	// Entregas
	delHandler := NewDeliveryHandler(deps.Deliveries)
	del := protected.Group("/deliveries")
	del.Get("/form-data", anyRole, delHandler.FormData)
	del.Get("/waste-report", anyRole, delHandler.WasteReport)
	del.Get("/:id/pdf", anyRole, delHandler.PDF)
	mountCRUD(del, delHandler, anyRole, writers, writers)

	// Catálogos: lectura cualquier rol, escritura admin/operator, baja solo admin
	clients := protected.Group("/clients")
	cfgHandler := NewClientConfigHandler(deps.ClientConfigs)
	clients.Get("/config", anyRole, cfgHandler.ListAll)
	clients.Get("/:id/config", anyRole, cfgHandler.Get)
	clients.Put("/:id/config", writers, cfgHandler.Update)
	clients.Put("/:id/varieties", writers, cfgHandler.UpdateVarieties)
	clients.Put("/:id/presentations", writers, cfgHandler.UpdatePresentations)
	clients.Put("/:id/types", writers, cfgHandler.UpdateShipmentTypes)
	mountCRUD(clients, NewClientHandler(deps.Clients), anyRole, writers, adminOnly)
	mountCRUD(protected.Group("/brands"), NewBrandHandler(deps.Brands), anyRole, writers, adminOnly)
	mountCRUD(protected.Group("/suppliers"), NewSupplierHandler(deps.Suppliers), anyRole, writers, adminOnly)
	mountCRUD(protected.Group("/varieties"), NewVarietyHandler(deps.Varieties), anyRole, writers, adminOnly)
	mountCRUD(protected.Group("/presentations"), NewPresentationHandler(deps.Presentations), anyRole, writers, adminOnly)
	mountCRUD(protected.Group("/categories"), NewCategoryHandler(deps.Categories), anyRole, writers, adminOnly)
	mountCRUD(protected.Group("/production-lots"), NewProductionLotHandler(deps.ProductionLots), anyRole, writers, adminOnly)

	// Usuarios (solo admin)
	mountCRUD(protected.Group("/users"), NewUserHandler(deps.AuthUC), adminOnly, adminOnly, adminOnly)
}

func mountCRUD(g fiber.Router, h crudHandler, read, write, del fiber.Handler) {
	g.Get("/", read, h.List)
	g.Post("/", write, h.Create)
	g.Get("/:id", read, h.GetByID)
	g.Put("/:id", write, h.Update)
	g.Delete("/:id", del, h.Delete)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": deps.ServiceName, "database": "down"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
