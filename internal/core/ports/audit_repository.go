package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// AuditRepository persists audit events to the append-only audit collection.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event domain.AuditEvent) error
}

// AuditReader reads a user's audit timeline, newest first. A limit of zero
// means no limit.
type AuditReader interface {
	ListByUser(ctx context.Context, userID string, limit int64) ([]domain.AuditEvent, error)
}
