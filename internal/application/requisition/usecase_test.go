package requisition_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/medtrack-api/internal/application/requisition"
	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	ledger "github.com/medtrack/medtrack-api/internal/domain/inventory"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El TxRunner trabaja sobre una copia del estado y solo la
// publica si fn retorna nil, emulando el Commit/Rollback de PostgreSQL; el
// mutex emula la exclusión por fila del SELECT FOR UPDATE.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	reqs   map[string]*entity.Requisition
	invs   map[string]*entity.Inventory
	movs   []*entity.Movement
	audits []*entity.AuditEntry
	alerts []*entity.StockAlert
}

func newMemState() *memState {
	return &memState{
		reqs: map[string]*entity.Requisition{},
		invs: map[string]*entity.Inventory{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for id, r := range s.reqs {
		cp := *r
		c.reqs[id] = &cp
	}
	for id, inv := range s.invs {
		cp := *inv
		c.invs[id] = &cp
	}
	c.movs = append([]*entity.Movement(nil), s.movs...)
	c.audits = append([]*entity.AuditEntry(nil), s.audits...)
	c.alerts = append([]*entity.StockAlert(nil), s.alerts...)
	return c
}

type memDB struct {
	mu    sync.Mutex
	state *memState
}

func newMemDB() *memDB { return &memDB{state: newMemState()} }

// RunWorkflow implementa requisition.TxRunner con semántica todo-o-nada.
func (db *memDB) RunWorkflow(_ context.Context, fn func(
	reqRepo repository.RequisitionRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	auditRepo repository.AuditRepository,
	alertRepo repository.StockAlertRepository,
) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	tx := db.state.clone()
	if err := fn(&memReqRepo{tx}, &memInvRepo{tx}, &memMovRepo{tx}, &memAuditRepo{tx}, &memAlertRepo{tx}); err != nil {
		return err
	}
	db.state = tx
	return nil
}

type memReqRepo struct{ s *memState }

func (r *memReqRepo) Create(req *entity.Requisition) error {
	cp := *req
	r.s.reqs[req.ID] = &cp
	return nil
}
func (r *memReqRepo) GetByID(id string) (*entity.Requisition, error) {
	if req, ok := r.s.reqs[id]; ok {
		cp := *req
		return &cp, nil
	}
	return nil, nil
}
func (r *memReqRepo) GetForUpdate(id string) (*entity.Requisition, error) { return r.GetByID(id) }
func (r *memReqRepo) Update(req *entity.Requisition) error {
	cp := *req
	r.s.reqs[req.ID] = &cp
	return nil
}
func (r *memReqRepo) ListByOrganization(orgID string, _, _ int) ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	for _, req := range r.s.reqs {
		if req.OrganizationID == orgID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memReqRepo) ListByDepartment(deptID string, _, _ int) ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	for _, req := range r.s.reqs {
		if req.DepartmentID == deptID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memInvRepo struct{ s *memState }

func (r *memInvRepo) Create(inv *entity.Inventory) error {
	cp := *inv
	r.s.invs[inv.ID] = &cp
	return nil
}
func (r *memInvRepo) GetByID(id string) (*entity.Inventory, error) {
	if inv, ok := r.s.invs[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}
func (r *memInvRepo) GetByItemAndStore(itemID, storeID string) (*entity.Inventory, error) {
	for _, inv := range r.s.invs {
		if inv.ItemID == itemID && inv.StoreID == storeID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memInvRepo) GetForUpdate(id string) (*entity.Inventory, error) { return r.GetByID(id) }
func (r *memInvRepo) GetByItemAndStoreForUpdate(itemID, storeID string) (*entity.Inventory, error) {
	return r.GetByItemAndStore(itemID, storeID)
}
func (r *memInvRepo) Update(inv *entity.Inventory) error {
	cp := *inv
	r.s.invs[inv.ID] = &cp
	return nil
}
func (r *memInvRepo) ListByStore(string, int, int) ([]*entity.Inventory, error)        { return nil, nil }
func (r *memInvRepo) ListByOrganization(string, int, int) ([]*entity.Inventory, error) { return nil, nil }

type memMovRepo struct{ s *memState }

func (r *memMovRepo) Create(mov *entity.Movement) error {
	cp := *mov
	r.s.movs = append(r.s.movs, &cp)
	return nil
}
func (r *memMovRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (r *memMovRepo) ListByInventory(inventoryID string, _, _ int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movs {
		if m.InventoryID == inventoryID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *memMovRepo) ListBySource(sourceType, sourceID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movs {
		if m.SourceType == sourceType && m.SourceID == sourceID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memAuditRepo struct{ s *memState }

func (r *memAuditRepo) Create(entry *entity.AuditEntry) error {
	cp := *entry
	r.s.audits = append(r.s.audits, &cp)
	return nil
}
func (r *memAuditRepo) ListBySubject(subjectType, subjectID string) ([]*entity.AuditEntry, error) {
	var out []*entity.AuditEntry
	for _, e := range r.s.audits {
		if e.SubjectType == subjectType && e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *memAuditRepo) List(int, int) ([]*entity.AuditEntry, error) { return r.s.audits, nil }

type memAlertRepo struct{ s *memState }

func (r *memAlertRepo) Create(alert *entity.StockAlert) error {
	cp := *alert
	r.s.alerts = append(r.s.alerts, &cp)
	return nil
}
func (r *memAlertRepo) GetByID(string) (*entity.StockAlert, error) { return nil, nil }
func (r *memAlertRepo) ListUnresolved(int, int) ([]*entity.StockAlert, error) {
	return r.s.alerts, nil
}
func (r *memAlertRepo) ListByInventory(string, int, int) ([]*entity.StockAlert, error) {
	return nil, nil
}
func (r *memAlertRepo) Resolve(string, string, time.Time) error { return nil }

// Vistas "live" para las lecturas fuera de transacción: delegan al estado
// vigente de la BD en el momento de la llamada, no a un snapshot.

type liveReqRepo struct{ db *memDB }

func (r *liveReqRepo) Create(req *entity.Requisition) error { return (&memReqRepo{r.db.state}).Create(req) }
func (r *liveReqRepo) GetByID(id string) (*entity.Requisition, error) {
	return (&memReqRepo{r.db.state}).GetByID(id)
}
func (r *liveReqRepo) GetForUpdate(id string) (*entity.Requisition, error) {
	return (&memReqRepo{r.db.state}).GetForUpdate(id)
}
func (r *liveReqRepo) Update(req *entity.Requisition) error { return (&memReqRepo{r.db.state}).Update(req) }
func (r *liveReqRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.Requisition, error) {
	return (&memReqRepo{r.db.state}).ListByOrganization(orgID, limit, offset)
}
func (r *liveReqRepo) ListByDepartment(deptID string, limit, offset int) ([]*entity.Requisition, error) {
	return (&memReqRepo{r.db.state}).ListByDepartment(deptID, limit, offset)
}

type liveInvRepo struct{ db *memDB }

func (r *liveInvRepo) Create(inv *entity.Inventory) error { return (&memInvRepo{r.db.state}).Create(inv) }
func (r *liveInvRepo) GetByID(id string) (*entity.Inventory, error) {
	return (&memInvRepo{r.db.state}).GetByID(id)
}
func (r *liveInvRepo) GetByItemAndStore(itemID, storeID string) (*entity.Inventory, error) {
	return (&memInvRepo{r.db.state}).GetByItemAndStore(itemID, storeID)
}
func (r *liveInvRepo) GetForUpdate(id string) (*entity.Inventory, error) {
	return (&memInvRepo{r.db.state}).GetForUpdate(id)
}
func (r *liveInvRepo) GetByItemAndStoreForUpdate(itemID, storeID string) (*entity.Inventory, error) {
	return (&memInvRepo{r.db.state}).GetByItemAndStoreForUpdate(itemID, storeID)
}
func (r *liveInvRepo) Update(inv *entity.Inventory) error { return (&memInvRepo{r.db.state}).Update(inv) }
func (r *liveInvRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Inventory, error) {
	return (&memInvRepo{r.db.state}).ListByStore(storeID, limit, offset)
}
func (r *liveInvRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.Inventory, error) {
	return (&memInvRepo{r.db.state}).ListByOrganization(orgID, limit, offset)
}

// Repos de solo lectura usados fuera de la transacción.

type memItemRepo struct{ items map[string]*entity.Item }

func (r *memItemRepo) Create(*entity.Item) error { return nil }
func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.items[id], nil
}
func (r *memItemRepo) GetBySKU(string, string) (*entity.Item, error) { return nil, nil }
func (r *memItemRepo) Update(*entity.Item) error                     { return nil }
func (r *memItemRepo) ListByOrganization(string, int, int) ([]*entity.Item, error) {
	return nil, nil
}
func (r *memItemRepo) Delete(string) error { return nil }

type memUserRepo struct{ users map[string]*entity.User }

func (r *memUserRepo) Create(*entity.User) error { return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *memUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }
func (r *memUserRepo) Update(*entity.User) error                { return nil }
func (r *memUserRepo) ListByOrganization(string, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (r *memUserRepo) ListByRole(string, string) ([]*entity.User, error) { return nil, nil }

// fakeNotifier captura los eventos emitidos tras el commit.
type fakeNotifier struct {
	mu     sync.Mutex
	events []requisition.Event
}

func (n *fakeNotifier) NotifyTransition(_ context.Context, ev requisition.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

const (
	orgID  = "org-1"
	deptID = "dept-1"
)

var (
	officer = entity.Actor{UserID: "u-officer", Role: entity.RoleOfficer, OrganizationID: orgID, DepartmentID: deptID}
	hod     = entity.Actor{UserID: "u-hod", Role: entity.RoleHOD, OrganizationID: orgID, DepartmentID: deptID}
	manager = entity.Actor{UserID: "u-manager", Role: entity.RoleStoreManager, OrganizationID: orgID}
)

type fixture struct {
	db       *memDB
	uc       *requisition.WorkflowUseCase
	notifier *fakeNotifier
}

// newFixture arma el caso de uso con un inventario inicial available=100.
func newFixture(t *testing.T, available int64) *fixture {
	t.Helper()
	db := newMemDB()
	inv := &entity.Inventory{
		ID:        "inv-1",
		ItemID:    "item-1",
		StoreID:   "store-1",
		Available: available,
		Minimum:   5,
		Maximum:   1000,
	}
	inv.Status = ledger.StatusFor(inv)
	db.state.invs[inv.ID] = inv

	itemRepo := &memItemRepo{items: map[string]*entity.Item{
		"item-1": {ID: "item-1", OrganizationID: orgID, Name: "Surgical Gloves", SKU: "GLV-01"},
	}}
	userRepo := &memUserRepo{users: map[string]*entity.User{
		"u-officer": {ID: "u-officer", Email: "officer@example.org", EmailNotifications: true},
		"u-hod":     {ID: "u-hod", Email: "hod@example.org", EmailNotifications: true},
	}}
	notifier := &fakeNotifier{}

	uc := requisition.NewWorkflowUseCase(
		db,
		&liveReqRepo{db},
		&liveInvRepo{db},
		itemRepo,
		nil, // storeRepo: solo se usa para el remito PDF
		nil, // deptRepo: idem
		userRepo,
		notifier,
		nil, // sin generador de PDF en tests
		"",
	)
	return &fixture{db: db, uc: uc, notifier: notifier}
}

func (f *fixture) inventory(t *testing.T, id string) *entity.Inventory {
	t.Helper()
	inv, ok := f.db.state.invs[id]
	require.True(t, ok)
	return inv
}

func (f *fixture) createRequisition(t *testing.T, qty int64) *entity.Requisition {
	t.Helper()
	req, err := f.uc.Create(context.Background(), officer, requisition.CreateInput{
		InventoryID: "inv-1",
		Quantity:    qty,
	})
	require.NoError(t, err)
	require.Equal(t, entity.ReqStatusRequested, req.Status)
	return req
}

func (f *fixture) transition(req *entity.Requisition, target string, actor entity.Actor) (*entity.Requisition, error) {
	return f.uc.RequestTransition(context.Background(), req.ID, target, actor)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo del workflow (camino feliz)
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_CaminoCompleto(t *testing.T) {
	f := newFixture(t, 100)
	req := f.createRequisition(t, 10)

	// approve: sin efecto en el ledger
	updated, err := f.transition(req, entity.ReqStatusApproved, hod)
	require.NoError(t, err)
	assert.Equal(t, entity.ReqStatusApproved, updated.Status)
	assert.Equal(t, hod.UserID, updated.ApprovedBy)
	inv := f.inventory(t, "inv-1")
	assert.Equal(t, int64(100), inv.Available)
	assert.Equal(t, int64(0), inv.Reserved)

	// reserve: available 100→90, reserved 0→10
	updated, err = f.transition(req, entity.ReqStatusReserved, manager)
	require.NoError(t, err)
	assert.Equal(t, entity.ReqStatusReserved, updated.Status)
	inv = f.inventory(t, "inv-1")
	assert.Equal(t, int64(90), inv.Available)
	assert.Equal(t, int64(10), inv.Reserved)

	// deliver: reserved 10→0, available queda en 90 (el stock salió del edificio)
	updated, err = f.transition(req, entity.ReqStatusDelivered, manager)
	require.NoError(t, err)
	assert.Equal(t, entity.ReqStatusDelivered, updated.Status)
	inv = f.inventory(t, "inv-1")
	assert.Equal(t, int64(90), inv.Available)
	assert.Equal(t, int64(0), inv.Reserved)

	// verify: una sola llamada cierra la requisición con dos auditorías
	updated, err = f.transition(req, entity.ReqStatusVerified, hod)
	require.NoError(t, err)
	assert.Equal(t, entity.ReqStatusCompleted, updated.Status)

	actions := auditActions(f, req.ID)
	assert.Equal(t, []string{"requested", "approved", "reserved", "delivered", "verified", "completed"}, actions)
}

func auditActions(f *fixture, reqID string) []string {
	var actions []string
	for _, e := range f.db.state.audits {
		if e.SubjectType == "Requisition" && e.SubjectID == reqID {
			actions = append(actions, e.Action)
		}
	}
	return actions
}

// El fold de los movimientos generados por el workflow reproduce los
// contadores finales del inventario (semántica WAL de extremo a extremo).
func TestWorkflow_MovimientosReproducenContadores(t *testing.T) {
	f := newFixture(t, 100)
	req := f.createRequisition(t, 10)
	_, err := f.transition(req, entity.ReqStatusApproved, hod)
	require.NoError(t, err)
	_, err = f.transition(req, entity.ReqStatusReserved, manager)
	require.NoError(t, err)
	_, err = f.transition(req, entity.ReqStatusDelivered, manager)
	require.NoError(t, err)

	// reserve + release + stock_out
	require.Len(t, f.db.state.movs, 3)

	replayed := &entity.Inventory{ID: "inv-1", Minimum: 5, Available: 100}
	require.NoError(t, ledger.Replay(replayed, append(
		[]*entity.Movement{{Kind: entity.MovementStockIn, Quantity: 100}},
		f.db.state.movs...,
	)))
	final := f.inventory(t, "inv-1")
	assert.Equal(t, final.Available, replayed.Available)
	assert.Equal(t, final.Reserved, replayed.Reserved)
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones de estado y rol
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_DeliverSinReserva_FallaSinTocarNada(t *testing.T) {
	f := newFixture(t, 100)
	reserved := f.createRequisition(t, 10)
	_, err := f.transition(reserved, entity.ReqStatusApproved, hod)
	require.NoError(t, err)
	_, err = f.transition(reserved, entity.ReqStatusReserved, manager)
	require.NoError(t, err)

	// Otra requisición aprobada pero NO reservada: deliver debe fallar con
	// ErrInvalidTransition sin tocar ledger ni requisición.
	other := f.createRequisition(t, 10)
	_, err = f.transition(other, entity.ReqStatusApproved, hod)
	require.NoError(t, err)

	_, err = f.transition(other, entity.ReqStatusDelivered, manager)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	inv := f.inventory(t, "inv-1")
	assert.Equal(t, int64(90), inv.Available, "el ledger no debe cambiar")
	assert.Equal(t, int64(10), inv.Reserved)
	assert.Equal(t, entity.ReqStatusApproved, f.db.state.reqs[other.ID].Status)
}

func TestWorkflow_RechazarNoTocaElLedger(t *testing.T) {
	f := newFixture(t, 100)
	req := f.createRequisition(t, 10)

	before := *f.inventory(t, "inv-1")
	updated, err := f.transition(req, entity.ReqStatusRejected, hod)
	require.NoError(t, err)
	assert.Equal(t, entity.ReqStatusRejected, updated.Status)

	after := f.inventory(t, "inv-1")
	assert.Equal(t, before.Available, after.Available, "contadores intactos tras rechazo")
	assert.Equal(t, before.Reserved, after.Reserved)
	assert.Empty(t, f.db.state.movs, "un rechazo no genera movimientos")
}

func TestWorkflow_RolNoAutorizado(t *testing.T) {
	f := newFixture(t, 100)
	req := f.createRequisition(t, 10)

	// Un officer no puede aprobar
	_, err := f.transition(req, entity.ReqStatusApproved, officer)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, entity.ReqStatusRequested, f.db.state.reqs[req.ID].Status)

	// Un hod no puede reservar
	_, err = f.transition(req, entity.ReqStatusApproved, hod)
	require.NoError(t, err)
	_, err = f.transition(req, entity.ReqStatusReserved, hod)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestWorkflow_TransicionesInvalidas(t *testing.T) {
	f := newFixture(t, 100)
	req := f.createRequisition(t, 10)

	cases := []string{
		entity.ReqStatusReserved,  // requested → reserved salta la aprobación
		entity.ReqStatusDelivered, // requested → delivered
		entity.ReqStatusVerified,  // requested → verified
	}
	for _, target := range cases {
		_, err := f.transition(req, target, manager)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "target %s", target)
	}

	// rejected es terminal
	_, err := f.transition(req, entity.ReqStatusRejected, hod)
	require.NoError(t, err)
	_, err = f.transition(req, entity.ReqStatusApproved, hod)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// target desconocido
	_, err = f.transition(req, "archived", hod)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestWorkflow_OtraOrganizacion_Prohibido(t *testing.T) {
	f := newFixture(t, 100)
	req := f.createRequisition(t, 10)

	intruder := entity.Actor{UserID: "u-x", Role: entity.RoleAdmin, OrganizationID: "org-2"}
	_, err := f.transition(req, entity.ReqStatusApproved, intruder)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestWorkflow_RequisicionInexistente(t *testing.T) {
	f := newFixture(t, 100)
	_, err := f.uc.RequestTransition(context.Background(), "no-existe", entity.ReqStatusApproved, hod)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock insuficiente y reservas concurrentes
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_ReservaSinStock_RevierteTodo(t *testing.T) {
	f := newFixture(t, 5)
	req := f.createRequisition(t, 10)
	_, err := f.transition(req, entity.ReqStatusApproved, hod)
	require.NoError(t, err)

	_, err = f.transition(req, entity.ReqStatusReserved, manager)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	inv := f.inventory(t, "inv-1")
	assert.Equal(t, int64(5), inv.Available)
	assert.Equal(t, int64(0), inv.Reserved)
	assert.Equal(t, entity.ReqStatusApproved, f.db.state.reqs[req.ID].Status,
		"la transición fallida no debe cambiar el estado")
	assert.Empty(t, f.db.state.movs)
}

// Dos reservas simultáneas de 10 unidades contra available=10: exactamente
// una gana; la otra observa el efecto de la primera y falla con
// ErrInsufficientStock. Final: available=0, reserved=10.
func TestWorkflow_ReservasConcurrentes_SoloUnaGana(t *testing.T) {
	f := newFixture(t, 10)
	reqA := f.createRequisition(t, 10)
	reqB := f.createRequisition(t, 10)
	for _, req := range []*entity.Requisition{reqA, reqB} {
		_, err := f.transition(req, entity.ReqStatusApproved, hod)
		require.NoError(t, err)
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, req := range []*entity.Requisition{reqA, reqB} {
		wg.Add(1)
		go func(r *entity.Requisition) {
			defer wg.Done()
			_, err := f.transition(r, entity.ReqStatusReserved, manager)
			errs <- err
		}(req)
	}
	wg.Wait()
	close(errs)

	var okCount, insufficientCount int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficientCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una reserva debe ganar")
	assert.Equal(t, 1, insufficientCount)

	inv := f.inventory(t, "inv-1")
	assert.Equal(t, int64(0), inv.Available)
	assert.Equal(t, int64(10), inv.Reserved)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones post-commit
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_NotificaTrasCommit(t *testing.T) {
	f := newFixture(t, 100)
	req := f.createRequisition(t, 10)

	_, err := f.transition(req, entity.ReqStatusApproved, hod)
	require.NoError(t, err)
	require.Len(t, f.notifier.events, 1)
	ev := f.notifier.events[0]
	assert.Equal(t, "approved", ev.Action)
	assert.Equal(t, []string{"officer@example.org"}, ev.Recipients)

	// reserve no notifica
	_, err = f.transition(req, entity.ReqStatusReserved, manager)
	require.NoError(t, err)
	assert.Len(t, f.notifier.events, 1)

	// deliver notifica al solicitante y al aprobador
	_, err = f.transition(req, entity.ReqStatusDelivered, manager)
	require.NoError(t, err)
	require.Len(t, f.notifier.events, 2)
	assert.ElementsMatch(t, []string{"officer@example.org", "hod@example.org"},
		f.notifier.events[1].Recipients)
}

func TestWorkflow_TransicionFallida_NoNotifica(t *testing.T) {
	f := newFixture(t, 100)
	req := f.createRequisition(t, 10)

	_, err := f.transition(req, entity.ReqStatusApproved, officer)
	require.Error(t, err)
	assert.Empty(t, f.notifier.events)
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y visibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t, 100)

	_, err := f.uc.Create(context.Background(), officer, requisition.CreateInput{InventoryID: "inv-1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), officer, requisition.CreateInput{InventoryID: "no-existe", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	outsider := entity.Actor{UserID: "u-y", Role: entity.RoleOfficer, OrganizationID: "org-2", DepartmentID: "dept-9"}
	_, err = f.uc.Create(context.Background(), outsider, requisition.CreateInput{InventoryID: "inv-1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListForActor_AlcancePorRol(t *testing.T) {
	f := newFixture(t, 100)
	f.createRequisition(t, 1)
	f.createRequisition(t, 2)

	// officer: solo su departamento
	list, err := f.uc.ListForActor(officer, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	otherDept := entity.Actor{UserID: "u-z", Role: entity.RoleOfficer, OrganizationID: orgID, DepartmentID: "dept-2"}
	list, err = f.uc.ListForActor(otherDept, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	// operations: toda la organización
	ops := entity.Actor{UserID: "u-ops", Role: entity.RoleOperations, OrganizationID: orgID}
	list, err = f.uc.ListForActor(ops, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
