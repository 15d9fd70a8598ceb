package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medtrack/medtrack-api/internal/application/auth"
	appinventory "github.com/medtrack/medtrack-api/internal/application/inventory"
	"github.com/medtrack/medtrack-api/internal/application/requisition"
	"github.com/medtrack/medtrack-api/internal/application/usecase"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	OrganizationUC   *usecase.OrganizationUseCase
	DepartmentUC     *usecase.DepartmentUseCase
	ItemUC           *usecase.ItemUseCase
	StoreUC          *usecase.StoreUseCase
	InventoryQueryUC *usecase.InventoryQueryUseCase
	RegisterMovement *appinventory.RegisterMovementUseCase
	WorkflowUC       *requisition.WorkflowUseCase
	AuditRepo        repository.AuditRepository
	JWTSecret        string
}

// Router registra las rutas de la API. El gating grueso por rol vive aquí;
// las reglas finas del workflow (qué rol ejecuta qué transición desde qué
// estado) se validan dentro del caso de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	manageStock := RequireRole(entity.RoleAdmin, entity.RoleOperations, entity.RoleStoreManager)

	// Organizations (solo admin)
	orgs := protected.Group("/organizations")
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	orgs.Post("/", RequireRole(entity.RoleAdmin), orgHandler.Create)
	orgs.Get("/", orgHandler.List)
	orgs.Get("/:id", orgHandler.GetByID)
	orgs.Put("/:id", RequireRole(entity.RoleAdmin), orgHandler.Update)

	// Users (administración de cuentas)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.AuthUC)
	users.Get("/", RequireRole(entity.RoleAdmin, entity.RoleOperations), userHandler.List)
	users.Get("/:id", RequireRole(entity.RoleAdmin, entity.RoleOperations), userHandler.GetByID)
	users.Put("/:id/status", RequireRole(entity.RoleAdmin), userHandler.SetStatus)

	// Departments
	depts := protected.Group("/departments")
	deptHandler := NewDepartmentHandler(deps.DepartmentUC)
	depts.Post("/", RequireRole(entity.RoleAdmin, entity.RoleOperations), deptHandler.Create)
	depts.Get("/", deptHandler.List)
	depts.Get("/:id", deptHandler.GetByID)
	depts.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleOperations), deptHandler.Update)

	// Items (catálogo)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", manageStock, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", manageStock, itemHandler.Update)

	// Stores y catálogos de proveedor
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", manageStock, storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", manageStock, storeHandler.Update)
	stores.Post("/:id/vendor-items", manageStock, storeHandler.AddVendorItem)
	stores.Get("/:id/vendor-items", storeHandler.ListVendorItems)

	// Inventory: niveles, movimientos y alertas
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryQueryUC, deps.RegisterMovement)
	inv.Post("/", manageStock, inventoryHandler.CreateRecord)
	inv.Get("/", inventoryHandler.List)
	inv.Post("/movements", manageStock, inventoryHandler.RegisterMovement)
	inv.Get("/alerts", inventoryHandler.ListAlerts)
	inv.Post("/alerts/:id/resolve", manageStock, inventoryHandler.ResolveAlert)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Get("/:id/movements", inventoryHandler.ListMovements)

	// Requisitions: ciclo de vida completo
	reqs := protected.Group("/requisitions")
	requisitionHandler := NewRequisitionHandler(deps.WorkflowUC, deps.AuditRepo)
	reqs.Post("/", requisitionHandler.Create)
	reqs.Get("/", requisitionHandler.List)
	reqs.Get("/:id", requisitionHandler.GetByID)
	reqs.Get("/:id/audit", requisitionHandler.AuditTrail)
	reqs.Post("/:id/approve", requisitionHandler.Approve)
	reqs.Post("/:id/reject", requisitionHandler.Reject)
	reqs.Post("/:id/reserve", requisitionHandler.Reserve)
	reqs.Post("/:id/deliver", requisitionHandler.Deliver)
	reqs.Post("/:id/verify", requisitionHandler.Verify)
}
