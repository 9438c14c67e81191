package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/response"
)

// UpdateUserInput is a partial profile update; nil fields are unchanged.
type UpdateUserInput struct {
	Name    *string
	Age     *string
	Address *string
}

// UserService covers profile reads, updates and soft deletion.
type UserService interface {
	GetUser(ctx context.Context, id string) response.APIResponse
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) response.APIResponse
	SoftDeleteUser(ctx context.Context, id string) response.APIResponse
	GetAuditTrail(ctx context.Context, id string) response.APIResponse
}
