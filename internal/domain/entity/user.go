package entity

import "time"

// Roles del sistema. Los roles gobiernan qué transiciones del flujo de
// requisiciones puede ejecutar un actor (ver application/requisition).
const (
	RoleAdmin        = "admin"
	RoleOfficer      = "officer"
	RoleHOD          = "hod" // Head of Department
	RoleStoreManager = "store_manager"
	RoleOperations   = "operations"
)

// Niveles de notificación por email.
const (
	NotifyAll         = "all"
	NotifyApprovals   = "approvals"
	NotifyEscalations = "escalations"
)

// User representa un usuario autenticable con rol y adscripción organizacional.
type User struct {
	ID                 string
	Email              string
	FullName           string
	PasswordHash       string
	OrganizationID     string
	DepartmentID       string // puede ser vacío (usuarios de operaciones transversales)
	Role               string
	IsActive           bool
	IsSuspended        bool
	EmailNotifications bool
	NotificationLevel  string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Actor es la identidad mínima que viaja con cada transición del workflow:
// rol más alcance organizacional, extraída del JWT por el middleware.
type Actor struct {
	UserID         string
	Role           string
	OrganizationID string
	DepartmentID   string
}
