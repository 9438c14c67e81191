package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// UserRepository defines persistence for accounts and their roles.
type UserRepository interface {
	// FindUser returns the matching user with roles populated, or (nil, nil)
	// when nothing matches. It does not filter soft-deleted rows.
	FindUser(ctx context.Context, q domain.UserQuery) (*domain.User, error)
	// CreateUser inserts the user linked to roleName. It returns
	// domain.ErrRoleNotFound when the role does not exist.
	CreateUser(ctx context.Context, u domain.NewUser, roleName string) (*domain.User, error)
	// UpdateUser applies patch and returns the refreshed record.
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	// SoftDeleteUser marks a live user deleted and reports whether exactly one
	// row changed.
	SoftDeleteUser(ctx context.Context, id string) (bool, error)
}
