package requisition

import (
	"context"

	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Una transición del workflow es una unidad:
// estado de la requisición + mutación del ledger + auditoría se confirman
// o revierten juntos.
type TxRunner interface {
	RunWorkflow(ctx context.Context, fn func(
		reqRepo repository.RequisitionRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		auditRepo repository.AuditRepository,
		alertRepo repository.StockAlertRepository,
	) error) error
}

// Event es la notificación emitida tras el commit de una transición.
// Fire-and-forget: el workflow solo garantiza la emisión, no la entrega.
type Event struct {
	RequisitionID string   `json:"requisition_id"`
	Action        string   `json:"action"`
	Recipients    []string `json:"recipients"`
	Subject       string   `json:"subject"`
	Body          string   `json:"body"`
	PDFPath       string   `json:"pdf_path,omitempty"`
}

// Notifier encola el evento de una transición para entrega asíncrona.
// Un error al encolar nunca debe propagarse al caller de la transición.
type Notifier interface {
	NotifyTransition(ctx context.Context, ev Event) error
}

// DeliveryNoteGenerator genera el remito PDF que acompaña la entrega.
type DeliveryNoteGenerator interface {
	GenerateDeliveryNote(
		ctx context.Context,
		req *entity.Requisition,
		item *entity.Item,
		store *entity.Store,
		dept *entity.Department,
	) ([]byte, error)
}
