package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medtrack/medtrack-api/internal/application/dto"
	appinventory "github.com/medtrack/medtrack-api/internal/application/inventory"
	"github.com/medtrack/medtrack-api/internal/application/usecase"
)

// InventoryHandler maneja niveles de stock, movimientos y alertas (protegido).
type InventoryHandler struct {
	queryUC    *usecase.InventoryQueryUseCase
	movementUC *appinventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(queryUC *usecase.InventoryQueryUseCase, movementUC *appinventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{queryUC: queryUC, movementUC: movementUC}
}

// CreateRecord godoc
// @Summary      Dar de alta un item en un almacén (contadores en cero)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "Par item/almacén y umbrales"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) CreateRecord(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.queryUC.CreateRecord(GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener un registro de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queryUC.GetByID(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar niveles de stock de la organización
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por almacén"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {array}  dto.InventoryResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	if storeID := c.Query("store_id"); storeID != "" {
		out, err := h.queryUC.ListByStore(GetOrganizationID(c), storeID, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.queryUC.ListByOrganization(GetOrganizationID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  stock_in, stock_out, reserve, release, transfer, write_off o adjustment (cantidad con signo)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := appinventory.MovementInput{
		OrganizationID: GetOrganizationID(c),
		UserID:         GetUserID(c),
		ItemID:         in.ItemID,
		StoreID:        in.StoreID,
		FromStoreID:    in.FromStoreID,
		ToStoreID:      in.ToStoreID,
		Kind:           in.Type,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
	}
	if err := h.movementUC.RegisterMovement(c.Context(), input); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del inventario"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.MovementResponse
// @Router       /api/inventory/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.queryUC.ListMovements(GetOrganizationID(c), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAlerts godoc
// @Summary      Listar alertas de stock sin resolver
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.StockAlertResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) ListAlerts(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.queryUC.ListUnresolvedAlerts(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResolveAlert godoc
// @Summary      Marcar una alerta de stock como resuelta
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "ID de la alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/resolve [post]
func (h *InventoryHandler) ResolveAlert(c *fiber.Ctx) error {
	if err := h.queryUC.ResolveAlert(c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
