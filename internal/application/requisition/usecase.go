package requisition

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	appinventory "github.com/medtrack/medtrack-api/internal/application/inventory"
	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// WorkflowUseCase implementa la máquina de estados de requisiciones:
// requested → approved|rejected → reserved → delivered → verified/completed.
// Cada transición valida estado y rol antes de tocar el ledger, y confirma
// estado + movimiento(s) + auditoría como una sola transacción. La
// notificación por email queda fuera de la unidad atómica: se encola tras
// el commit y sus fallos solo se loggean.
type WorkflowUseCase struct {
	txRunner  TxRunner
	reqRepo   repository.RequisitionRepository
	invRepo   repository.InventoryRepository
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
	deptRepo  repository.DepartmentRepository
	userRepo  repository.UserRepository
	notifier  Notifier
	pdfGen    DeliveryNoteGenerator
	noteDir   string
}

// NewWorkflowUseCase construye el caso de uso. notifier y pdfGen pueden ser
// nil (sin notificaciones / sin remitos PDF); noteDir es el directorio donde
// se escriben los remitos generados.
func NewWorkflowUseCase(
	txRunner TxRunner,
	reqRepo repository.RequisitionRepository,
	invRepo repository.InventoryRepository,
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
	deptRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	pdfGen DeliveryNoteGenerator,
	noteDir string,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		txRunner:  txRunner,
		reqRepo:   reqRepo,
		invRepo:   invRepo,
		itemRepo:  itemRepo,
		storeRepo: storeRepo,
		deptRepo:  deptRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		pdfGen:    pdfGen,
		noteDir:   noteDir,
	}
}

// CreateInput entrada para crear una requisición.
type CreateInput struct {
	InventoryID string
	Quantity    int64
	Priority    string
	Reason      string
}

// Create crea una requisición en estado requested para el departamento del
// actor, validando que el inventario exista y pertenezca a su organización.
// La cantidad es inmutable tras la creación.
func (uc *WorkflowUseCase) Create(ctx context.Context, actor entity.Actor, in CreateInput) (*entity.Requisition, error) {
	if in.InventoryID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if actor.DepartmentID == "" {
		return nil, domain.ErrForbidden
	}

	inv, err := uc.invRepo.GetByID(in.InventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(inv.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.OrganizationID != actor.OrganizationID {
		return nil, domain.ErrForbidden
	}

	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityNormal
	}
	now := time.Now()
	req := &entity.Requisition{
		ID:             uuid.New().String(),
		OrganizationID: actor.OrganizationID,
		DepartmentID:   actor.DepartmentID,
		RequestedBy:    actor.UserID,
		InventoryID:    in.InventoryID,
		Quantity:       in.Quantity,
		Priority:       priority,
		Reason:         in.Reason,
		Status:         entity.ReqStatusRequested,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunWorkflow(ctx, func(
		reqRepo repository.RequisitionRepository,
		_ repository.InventoryRepository,
		_ repository.MovementRepository,
		auditRepo repository.AuditRepository,
		_ repository.StockAlertRepository,
	) error {
		if err := reqRepo.Create(req); err != nil {
			return err
		}
		return auditRepo.Create(auditEntry(req, "requested", actor.UserID,
			fmt.Sprintf("Requisition for %d units created", req.Quantity), now))
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// RequestTransition ejecuta una transición del workflow sobre la
// requisición indicada. Dentro de una única transacción: bloquea la fila de
// la requisición, valida estado (ErrInvalidTransition) y rol
// (ErrUnauthorized) —ambos antes de cualquier mutación—, bloquea la fila de
// inventario y aplica el efecto de ledger de la regla, persiste el nuevo
// estado y agrega la(s) entrada(s) de auditoría. Tras el commit emite la
// notificación correspondiente (fire-and-forget).
func (uc *WorkflowUseCase) RequestTransition(ctx context.Context, requisitionID, target string, actor entity.Actor) (*entity.Requisition, error) {
	rule, ok := ruleFor(target)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	var updated *entity.Requisition
	err := uc.txRunner.RunWorkflow(ctx, func(
		reqRepo repository.RequisitionRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		auditRepo repository.AuditRepository,
		alertRepo repository.StockAlertRepository,
	) error {
		req, err := reqRepo.GetForUpdate(requisitionID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !rule.allowsFrom(req.Status) {
			return domain.ErrInvalidTransition
		}
		if req.OrganizationID != actor.OrganizationID {
			return domain.ErrForbidden
		}
		if !rule.allowsRole(actor.Role) {
			return domain.ErrUnauthorized
		}

		now := time.Now()
		switch rule.effect {
		case effectReserve:
			if err := uc.applyReserve(invRepo, movRepo, alertRepo, req, actor, now); err != nil {
				return err
			}
		case effectDeliver:
			if err := uc.applyDeliver(invRepo, movRepo, alertRepo, req, actor, now); err != nil {
				return err
			}
		}

		req.Status = rule.next
		if rule.next == entity.ReqStatusApproved || rule.next == entity.ReqStatusRejected {
			req.ApprovedBy = actor.UserID
		}
		req.UpdatedAt = now
		if err := reqRepo.Update(req); err != nil {
			return err
		}

		for _, action := range rule.audits {
			entry := auditEntry(req, action, actor.UserID,
				fmt.Sprintf("Requisition %s: %d units %s", req.ID, req.Quantity, action), now)
			if err := auditRepo.Create(entry); err != nil {
				return err
			}
		}
		updated = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyAfterCommit(ctx, updated, rule.audits[len(rule.audits)-1])
	return updated, nil
}

// applyReserve aplica reserve(quantity) sobre la fila de inventario
// bloqueada. Falla con ErrInsufficientStock si no hay disponible, lo que
// revierte la transición completa.
func (uc *WorkflowUseCase) applyReserve(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.StockAlertRepository,
	req *entity.Requisition,
	actor entity.Actor,
	now time.Time,
) error {
	inv, err := invRepo.GetForUpdate(req.InventoryID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	mov := workflowMovement(inv.ID, entity.MovementReserve, req, actor, now)
	return appinventory.ApplyAndPersist(movRepo, invRepo, alertRepo, inv, mov, now)
}

// applyDeliver descuenta el reservado de la requisición. Se registra como la
// composición release + stock_out (dos filas de movimiento, misma tx): el
// efecto neto es reserved -= q con available intacto, y el log de
// movimientos sigue siendo un WAL fiel de los contadores.
func (uc *WorkflowUseCase) applyDeliver(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.StockAlertRepository,
	req *entity.Requisition,
	actor entity.Actor,
	now time.Time,
) error {
	inv, err := invRepo.GetForUpdate(req.InventoryID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	release := workflowMovement(inv.ID, entity.MovementRelease, req, actor, now)
	if err := appinventory.ApplyAndPersist(movRepo, invRepo, alertRepo, inv, release, now); err != nil {
		return err
	}
	out := workflowMovement(inv.ID, entity.MovementStockOut, req, actor, now)
	return appinventory.ApplyAndPersist(movRepo, invRepo, alertRepo, inv, out, now)
}

// GetByID obtiene una requisición visible para el actor.
func (uc *WorkflowUseCase) GetByID(actor entity.Actor, id string) (*entity.Requisition, error) {
	req, err := uc.reqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.OrganizationID != actor.OrganizationID {
		return nil, domain.ErrNotFound // no filtrar existencia entre organizaciones
	}
	if !canSeeWholeOrganization(actor.Role) && req.DepartmentID != actor.DepartmentID {
		return nil, domain.ErrForbidden
	}
	return req, nil
}

// ListForActor lista requisiciones según el alcance del actor: operations y
// admin ven toda la organización, el resto solo su departamento.
func (uc *WorkflowUseCase) ListForActor(actor entity.Actor, limit, offset int) ([]*entity.Requisition, error) {
	if canSeeWholeOrganization(actor.Role) {
		return uc.reqRepo.ListByOrganization(actor.OrganizationID, limit, offset)
	}
	return uc.reqRepo.ListByDepartment(actor.DepartmentID, limit, offset)
}

func canSeeWholeOrganization(role string) bool {
	return role == entity.RoleOperations || role == entity.RoleAdmin
}

func workflowMovement(inventoryID, kind string, req *entity.Requisition, actor entity.Actor, now time.Time) *entity.Movement {
	return &entity.Movement{
		ID:          uuid.New().String(),
		InventoryID: inventoryID,
		Kind:        kind,
		Quantity:    req.Quantity,
		SourceType:  entity.SourceRequisition,
		SourceID:    req.ID,
		PerformedBy: actor.UserID,
		CreatedAt:   now,
	}
}

func auditEntry(req *entity.Requisition, action, actorID, description string, at time.Time) *entity.AuditEntry {
	return &entity.AuditEntry{
		ID:          uuid.New().String(),
		SubjectType: "Requisition",
		SubjectID:   req.ID,
		Action:      action,
		ActorID:     actorID,
		Description: description,
		Timestamp:   at,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificación post-commit (fuera de la unidad atómica)
// ──────────────────────────────────────────────────────────────────────────────

// notifyAfterCommit arma y encola el email de la transición. Cualquier fallo
// aquí (destinatarios, PDF, encolado) se loggea y se descarta: la transición
// ya confirmada nunca se reporta como fallida por problemas de notificación.
func (uc *WorkflowUseCase) notifyAfterCommit(ctx context.Context, req *entity.Requisition, action string) {
	if uc.notifier == nil {
		return
	}
	var subject, body string
	switch action {
	case "approved":
		subject = "Requisition Approved"
		body = fmt.Sprintf("Requisition %s approved", req.ID)
	case "rejected":
		subject = "Requisition Rejected"
		body = fmt.Sprintf("Requisition %s rejected", req.ID)
	case "delivered":
		subject = "Requisition Delivered"
		body = fmt.Sprintf("Requisition %s has been delivered", req.ID)
	case "completed":
		subject = "Requisition Completed"
		body = fmt.Sprintf("Requisition %s has been fully completed", req.ID)
	default:
		return // reserve y creación no notifican
	}

	recipients := uc.recipients(req, action)
	if len(recipients) == 0 {
		return
	}

	ev := Event{
		RequisitionID: req.ID,
		Action:        action,
		Recipients:    recipients,
		Subject:       subject,
		Body:          body,
	}
	if action == "delivered" {
		ev.PDFPath = uc.writeDeliveryNote(ctx, req)
	}

	if err := uc.notifier.NotifyTransition(ctx, ev); err != nil {
		log.Warn().Err(err).
			Str("requisition_id", req.ID).
			Str("action", action).
			Msg("workflow: no se pudo encolar la notificación")
	}
}

// recipients resuelve los emails del solicitante y, para entrega y cierre,
// también del aprobador; respeta la preferencia EmailNotifications.
func (uc *WorkflowUseCase) recipients(req *entity.Requisition, action string) []string {
	ids := []string{req.RequestedBy}
	if (action == "delivered" || action == "completed") && req.ApprovedBy != "" {
		ids = append(ids, req.ApprovedBy)
	}
	var emails []string
	for _, id := range ids {
		user, err := uc.userRepo.GetByID(id)
		if err != nil || user == nil || !user.EmailNotifications {
			continue
		}
		emails = append(emails, user.Email)
	}
	return emails
}

// writeDeliveryNote genera el remito PDF de la entrega y lo escribe en
// noteDir. Devuelve la ruta o "" si algo falló (la notificación sale sin
// adjunto).
func (uc *WorkflowUseCase) writeDeliveryNote(ctx context.Context, req *entity.Requisition) string {
	if uc.pdfGen == nil || uc.noteDir == "" {
		return ""
	}
	inv, err := uc.invRepo.GetByID(req.InventoryID)
	if err != nil || inv == nil {
		return ""
	}
	item, _ := uc.itemRepo.GetByID(inv.ItemID)
	store, _ := uc.storeRepo.GetByID(inv.StoreID)
	dept, _ := uc.deptRepo.GetByID(req.DepartmentID)
	if item == nil || store == nil {
		return ""
	}

	data, err := uc.pdfGen.GenerateDeliveryNote(ctx, req, item, store, dept)
	if err != nil {
		log.Warn().Err(err).Str("requisition_id", req.ID).Msg("workflow: fallo generando remito PDF")
		return ""
	}
	path := filepath.Join(uc.noteDir, fmt.Sprintf("delivery-note-%s.pdf", req.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("workflow: fallo escribiendo remito PDF")
		return ""
	}
	return path
}
