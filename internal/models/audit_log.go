package models

import "time"

// Audit action vocabulary. Free-form strings are accepted by the recorder,
// these are the ones the application emits.
const (
	ActionCreate      = "CREATE"
	ActionUpdate      = "UPDATE"
	ActionDelete      = "DELETE"
	ActionRestore     = "RESTORE"
	ActionLogin       = "LOGIN"
	ActionLogout      = "LOGOUT"
	ActionPointsGrant = "POINTS_GRANT"
)

// AuditLog é append-only: a aplicação nunca atualiza nem apaga linhas.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActorID   *uint  `json:"actor_id"`
	ActorName string `gorm:"size:100;not null" json:"actor_name"`

	Action   string  `gorm:"size:50;not null" json:"action"`
	Entity   string  `gorm:"size:50" json:"entity"`
	EntityID *string `gorm:"size:64" json:"entity_id"`

	Details string `gorm:"type:text" json:"details"`
	Origin  string `gorm:"size:64" json:"origin"`

	CreatedAt time.Time `json:"created_at"`
}
