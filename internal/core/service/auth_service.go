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

// AuthService implements registration, login and password change.
type AuthService struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenIssuer
	revoked ports.RevocationStore
	audit   ports.AuditRecorder
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	revoked ports.RevocationStore,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		revoked: revoked,
		audit:   audit,
		log:     log,
		now:     time.Now,
	}
}

// AdminRegister creates an account holding the admin role.
func (s *AuthService) AdminRegister(ctx context.Context, in ports.AdminSignUpInput) response.APIResponse {
	existing, err := s.users.FindUser(ctx, domain.UserQuery{Email: in.Email})
	if err != nil {
		return s.internal(err, "admin register: lookup")
	}
	if existing != nil {
		return response.Error(response.MsgUserExists, http.StatusConflict)
	}

	user, err := s.create(ctx, in.Email, in.Password, in.Name, in.Age, in.Address, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return response.Error(response.MsgUserExists, http.StatusConflict)
		}
		return s.internal(err, "admin register: create")
	}

	s.record(user.ID, domain.AuditAdminRegistered)
	return response.Success(response.MsgUserCreated, http.StatusCreated, user.Public())
}

// Register creates a self-service account. The admin role is never granted here.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) response.APIResponse {
	if in.RoleName == domain.RoleAdmin {
		return response.Error(response.MsgRegisterDenied, http.StatusForbidden)
	}

	existing, err := s.users.FindUser(ctx, domain.UserQuery{Email: in.Email})
	if err != nil {
		return s.internal(err, "register: lookup")
	}
	if existing != nil {
		return response.Error(response.MsgUserExists, http.StatusConflict)
	}

	user, err := s.create(ctx, in.Email, in.Password, in.Name, in.Age, in.Address, in.RoleName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoleNotFound):
			return response.Error(response.MsgRoleNotFound, http.StatusNotFound)
		case errors.Is(err, domain.ErrUserExists):
			return response.Error(response.MsgUserExists, http.StatusConflict)
		}
		return s.internal(err, "register: create")
	}

	s.record(user.ID, domain.AuditRegistered)
	return response.Success(response.MsgUserCreated, http.StatusCreated, user.Public())
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) response.APIResponse {
	user, err := s.users.FindUser(ctx, domain.UserQuery{Email: email})
	if err != nil {
		return s.internal(err, "login: lookup")
	}
	if user == nil || user.IsDeleted() {
		return response.Error(response.MsgUserNotFound, http.StatusNotFound)
	}
	if !user.IsActive {
		return response.Error(response.MsgUserInactive, http.StatusBadRequest)
	}
	if !s.hasher.Compare(password, user.PasswordHash) {
		return response.Error(response.MsgInvalidCreds, http.StatusUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID, user.PrimaryRole())
	if err != nil {
		return s.internal(err, "login: issue token")
	}

	s.record(user.ID, domain.AuditLogin)
	return response.Success(response.MsgUserLoggedIn, http.StatusOK, ports.LoginResult{
		User:        user.Public(),
		AccessToken: token,
	})
}

// ChangePassword replaces the password of the authenticated user. Outstanding
// tokens are revoked first, so a revocation fault leaves the old password in
// place and reports 500.
func (s *AuthService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) response.APIResponse {
	if in.NewPassword != in.ConfirmPassword {
		return response.Error(response.MsgPasswordMismatch, http.StatusBadRequest)
	}

	user, err := s.users.FindUser(ctx, domain.UserQuery{ID: in.UserID})
	if err != nil {
		return s.internal(err, "change password: lookup")
	}
	if user == nil || user.IsDeleted() {
		return response.Error(response.MsgUserNotFound, http.StatusNotFound)
	}
	if !s.hasher.Compare(in.OldPassword, user.PasswordHash) {
		return response.Error(response.MsgInvalidOldPass, http.StatusBadRequest)
	}

	digest, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return s.internal(err, "change password: hash")
	}
	if err := s.revoked.RevokeUser(ctx, user.ID, s.now()); err != nil {
		return s.internal(err, "change password: revoke tokens")
	}
	if _, err := s.users.UpdateUser(ctx, user.ID, domain.UserPatch{PasswordHash: &digest}); err != nil {
		return s.internal(err, "change password: update")
	}

	s.record(user.ID, domain.AuditPasswordChanged)
	return response.Success(response.MsgPasswordChanged, http.StatusOK, nil)
}

func (s *AuthService) create(ctx context.Context, email, password, name, age, address, role string) (*domain.User, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.users.CreateUser(ctx, domain.NewUser{
		Email:        email,
		PasswordHash: digest,
		Name:         name,
		Age:          age,
		Address:      address,
	}, role)
}

func (s *AuthService) record(userID string, action domain.AuditAction) {
	s.audit.Record(domain.AuditEvent{UserID: userID, Action: action, At: s.now().UTC()})
}

func (s *AuthService) internal(err error, op string) response.APIResponse {
	s.log.Error().Err(err).Str("op", op).Msg("auth operation failed")
	return response.Internal()
}
