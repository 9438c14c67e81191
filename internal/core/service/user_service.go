package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
	"github.com/99minutos/account-service/internal/core/response"
)

// auditTrailLimit caps how many events GetAuditTrail returns.
const auditTrailLimit = 50

type userService struct {
	users   ports.UserRepository
	revoked ports.RevocationStore
	audit   ports.AuditRecorder
	trail   ports.AuditReader
	log     zerolog.Logger
	now     func() time.Time
}

// NewUserService returns a UserService implementation.
func NewUserService(
	users ports.UserRepository,
	revoked ports.RevocationStore,
	audit ports.AuditRecorder,
	trail ports.AuditReader,
	log zerolog.Logger,
) ports.UserService {
	return &userService{
		users:   users,
		revoked: revoked,
		audit:   audit,
		trail:   trail,
		log:     log,
		now:     time.Now,
	}
}

func (s *userService) GetUser(ctx context.Context, id string) response.APIResponse {
	user, err := s.users.FindUser(ctx, domain.UserQuery{ID: id})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("get user failed")
		return response.Internal()
	}
	if user == nil || user.IsDeleted() {
		return response.Error(response.MsgUserNotFound, http.StatusNotFound)
	}
	return response.Success(response.MsgUserFetched, http.StatusOK, user.Public())
}

func (s *userService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput) response.APIResponse {
	user, err := s.users.UpdateUser(ctx, id, domain.UserPatch{
		Name:    in.Name,
		Age:     in.Age,
		Address: in.Address,
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		return response.Error(response.MsgUserNotFound, http.StatusNotFound)
	}
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("update user failed")
		return response.Error(response.MsgUpdateFailed, http.StatusInternalServerError)
	}

	s.audit.Record(domain.AuditEvent{UserID: id, Action: domain.AuditUpdated, At: s.now().UTC()})
	return response.Success(response.MsgUserUpdated, http.StatusOK, user.Public())
}

// SoftDeleteUser marks the account deleted and revokes its tokens. Deleting an
// already deleted account reports 404 rather than an error.
func (s *userService) SoftDeleteUser(ctx context.Context, id string) response.APIResponse {
	deleted, err := s.users.SoftDeleteUser(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("soft delete failed")
		return response.Error(response.MsgDeleteFailed, http.StatusInternalServerError)
	}
	if !deleted {
		s.log.Warn().Str("user_id", id).Msg("user not found or already deleted")
		return response.Error(response.MsgDeleteNotFound, http.StatusNotFound)
	}

	if err := s.revoked.RevokeUser(ctx, id, s.now()); err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("token revocation failed after delete")
	}

	s.audit.Record(domain.AuditEvent{UserID: id, Action: domain.AuditDeleted, At: s.now().UTC()})
	return response.Success(response.MsgUserDeleted, http.StatusOK, nil)
}

// GetAuditTrail returns the latest lifecycle events of an account. Deleted
// accounts keep their trail.
func (s *userService) GetAuditTrail(ctx context.Context, id string) response.APIResponse {
	user, err := s.users.FindUser(ctx, domain.UserQuery{ID: id})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("audit trail lookup failed")
		return response.Internal()
	}
	if user == nil {
		return response.Error(response.MsgUserNotFound, http.StatusNotFound)
	}

	events, err := s.trail.ListByUser(ctx, user.ID, auditTrailLimit)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("audit trail read failed")
		return response.Internal()
	}
	return response.Success(response.MsgAuditFetched, http.StatusOK, events)
}
