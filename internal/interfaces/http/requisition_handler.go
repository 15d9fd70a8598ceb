package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medtrack/medtrack-api/internal/application/dto"
	"github.com/medtrack/medtrack-api/internal/application/requisition"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// RequisitionHandler maneja el ciclo de vida de las requisiciones (protegido).
// Las transiciones son endpoints explícitos: aprobar, rechazar, reservar,
// entregar y verificar. La autorización por rol se valida dentro del workflow
// (además del estado actual), no solo en el router.
type RequisitionHandler struct {
	uc        *requisition.WorkflowUseCase
	auditRepo repository.AuditRepository
}

// NewRequisitionHandler construye el handler.
func NewRequisitionHandler(uc *requisition.WorkflowUseCase, auditRepo repository.AuditRepository) *RequisitionHandler {
	return &RequisitionHandler{uc: uc, auditRepo: auditRepo}
}

// Create godoc
// @Summary      Crear requisición
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequisitionRequest  true  "Inventario y cantidad"
// @Success      201   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.Context(), GetActor(c), requisition.CreateInput{
		InventoryID: in.InventoryID,
		Quantity:    in.Quantity,
		Priority:    in.Priority,
		Reason:      in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRequisitionResponse(req))
}

// GetByID godoc
// @Summary      Obtener requisición por ID
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [get]
func (h *RequisitionHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// List godoc
// @Summary      Listar requisiciones según el alcance del actor
// @Description  operations y admin ven toda la organización; el resto solo su departamento
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.RequisitionResponse
// @Router       /api/requisitions [get]
func (h *RequisitionHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	reqs, err := h.uc.ListForActor(GetActor(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.RequisitionResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toRequisitionResponse(req))
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar requisición (requested → approved)
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/approve [post]
func (h *RequisitionHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, "approved")
}

// Reject godoc
// @Summary      Rechazar requisición (requested → rejected)
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/reject [post]
func (h *RequisitionHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, "rejected")
}

// Reserve godoc
// @Summary      Reservar stock (approved → reserved)
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/reserve [post]
func (h *RequisitionHandler) Reserve(c *fiber.Ctx) error {
	return h.transition(c, "reserved")
}

// Deliver godoc
// @Summary      Entregar (reserved → delivered, descuenta lo reservado)
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/deliver [post]
func (h *RequisitionHandler) Deliver(c *fiber.Ctx) error {
	return h.transition(c, "delivered")
}

// Verify godoc
// @Summary      Verificar recepción y cerrar (delivered → completed)
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/verify [post]
func (h *RequisitionHandler) Verify(c *fiber.Ctx) error {
	return h.transition(c, "verified")
}

func (h *RequisitionHandler) transition(c *fiber.Ctx, target string) error {
	req, err := h.uc.RequestTransition(c.Context(), c.Params("id"), target, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// AuditTrail godoc
// @Summary      Historial de auditoría de una requisición
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la requisición"
// @Success      200  {array}  dto.AuditEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/audit [get]
func (h *RequisitionHandler) AuditTrail(c *fiber.Ctx) error {
	id := c.Params("id")
	// Misma regla de visibilidad que GetByID antes de exponer el historial.
	if _, err := h.uc.GetByID(GetActor(c), id); err != nil {
		return respondError(c, err)
	}
	entries, err := h.auditRepo.ListBySubject("Requisition", id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAuditEntryResponse(e))
	}
	return c.JSON(out)
}

func toRequisitionResponse(r *entity.Requisition) *dto.RequisitionResponse {
	return &dto.RequisitionResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		DepartmentID:   r.DepartmentID,
		RequestedBy:    r.RequestedBy,
		ApprovedBy:     r.ApprovedBy,
		InventoryID:    r.InventoryID,
		Quantity:       r.Quantity,
		Priority:       r.Priority,
		Reason:         r.Reason,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toAuditEntryResponse(e *entity.AuditEntry) *dto.AuditEntryResponse {
	return &dto.AuditEntryResponse{
		ID:          e.ID,
		SubjectType: e.SubjectType,
		SubjectID:   e.SubjectID,
		Action:      e.Action,
		ActorID:     e.ActorID,
		Description: e.Description,
		Timestamp:   e.Timestamp,
	}
}
