package requisition

import "github.com/medtrack/medtrack-api/internal/domain/entity"

// Efectos de ledger asociados a una transición.
const (
	effectNone    = ""
	effectReserve = "reserve"
	effectDeliver = "deliver"
)

// transitionRule describe una transición permitida del workflow: desde qué
// estados procede, qué roles pueden ejecutarla, el estado resultante, las
// entradas de auditoría que emite y el efecto sobre el ledger.
type transitionRule struct {
	from   []string
	roles  []string
	next   string
	audits []string
	effect string
}

// Tabla de transiciones. La validación de estado ocurre antes que la de rol,
// y ambas estrictamente antes de cualquier mutación del ledger.
//
//	requested → approved | rejected   (hod / operations / admin)
//	approved  → reserved              (store_manager / operations / admin)  reserve(q)
//	reserved  → delivered             (store_manager / operations / admin)  release(q)+stock_out(q)
//	delivered → completed             (hod / operations / admin)  vía verified, dos auditorías
var transitionTable = map[string]transitionRule{
	entity.ReqStatusApproved: {
		from:   []string{entity.ReqStatusRequested},
		roles:  []string{entity.RoleHOD, entity.RoleOperations, entity.RoleAdmin},
		next:   entity.ReqStatusApproved,
		audits: []string{"approved"},
		effect: effectNone,
	},
	entity.ReqStatusRejected: {
		from:   []string{entity.ReqStatusRequested},
		roles:  []string{entity.RoleHOD, entity.RoleOperations, entity.RoleAdmin},
		next:   entity.ReqStatusRejected,
		audits: []string{"rejected"},
		effect: effectNone,
	},
	entity.ReqStatusReserved: {
		from:   []string{entity.ReqStatusApproved},
		roles:  []string{entity.RoleStoreManager, entity.RoleOperations, entity.RoleAdmin},
		next:   entity.ReqStatusReserved,
		audits: []string{"reserved"},
		effect: effectReserve,
	},
	entity.ReqStatusDelivered: {
		from:   []string{entity.ReqStatusReserved},
		roles:  []string{entity.RoleStoreManager, entity.RoleOperations, entity.RoleAdmin},
		next:   entity.ReqStatusDelivered,
		audits: []string{"delivered"},
		effect: effectDeliver,
	},
	// Verificación y cierre se ejecutan como una sola transición que emite
	// dos entradas de auditoría (comportamiento heredado del flujo original).
	entity.ReqStatusVerified: {
		from:   []string{entity.ReqStatusDelivered},
		roles:  []string{entity.RoleHOD, entity.RoleOperations, entity.RoleAdmin},
		next:   entity.ReqStatusCompleted,
		audits: []string{"verified", "completed"},
		effect: effectNone,
	},
}

// ruleFor resuelve la regla para un estado objetivo. "completed" es alias de
// "verified": ambos cierran la requisición desde delivered.
func ruleFor(target string) (transitionRule, bool) {
	if target == entity.ReqStatusCompleted {
		target = entity.ReqStatusVerified
	}
	rule, ok := transitionTable[target]
	return rule, ok
}

func (r transitionRule) allowsFrom(status string) bool {
	for _, s := range r.from {
		if s == status {
			return true
		}
	}
	return false
}

func (r transitionRule) allowsRole(role string) bool {
	for _, rr := range r.roles {
		if rr == role {
			return true
		}
	}
	return false
}
