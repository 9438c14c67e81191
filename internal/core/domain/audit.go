package domain

import "time"

// AuditAction names an account lifecycle event.
type AuditAction string

const (
	AuditAdminRegistered AuditAction = "admin_registered"
	AuditRegistered      AuditAction = "registered"
	AuditLogin           AuditAction = "login"
	AuditPasswordChanged AuditAction = "password_changed"
	AuditUpdated         AuditAction = "updated"
	AuditDeleted         AuditAction = "deleted"
)

// AuditEvent is an append-only record of something that happened to an account.
type AuditEvent struct {
	UserID string      `json:"userId"`
	Action AuditAction `json:"action"`
	At     time.Time   `json:"at"`
}
