package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
)

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	roles   map[string]domain.Role
	nextID  int
	findErr error
	saveErr error
	calls   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: make(map[string]*domain.User),
		roles: map[string]domain.Role{
			domain.RoleAdmin: {ID: "role-admin", RoleName: domain.RoleAdmin},
			domain.RoleUser:  {ID: "role-user", RoleName: domain.RoleUser},
		},
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindUser(_ context.Context, q domain.UserQuery) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	if q.ID == "" && q.Email == "" {
		return nil, domain.ErrIDOrEmailRequired
	}
	for _, u := range r.users {
		if (q.ID == "" || u.ID == q.ID) && (q.Email == "" || u.Email == q.Email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) CreateUser(_ context.Context, nu domain.NewUser, roleName string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	role, ok := r.roles[roleName]
	if !ok {
		return nil, fmt.Errorf("create user: %w", domain.ErrRoleNotFound)
	}
	for _, u := range r.users {
		if u.Email == nu.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	now := time.Now().UTC()
	u := &domain.User{
		ID:           fmt.Sprintf("user-%d", r.nextID),
		Email:        nu.Email,
		PasswordHash: nu.PasswordHash,
		Name:         nu.Name,
		Age:          nu.Age,
		Address:      nu.Address,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		Roles:        []domain.Role{role},
	}
	r.users[u.ID] = u
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateUser(_ context.Context, id string, p domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if id == "" {
		return nil, domain.ErrIDOrEmailRequired
	}
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	if r.saveErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUserUpdateFailed, r.saveErr)
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) SoftDeleteUser(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.saveErr != nil {
		return false, r.saveErr
	}
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return false, nil
	}
	now := time.Now().UTC()
	u.DeletedAt = &now
	return true, nil
}

func (r *stubUserRepo) put(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = cloneUser(u)
}

// plainHasher keeps tests fast; the bcrypt hasher has its own tests.
type plainHasher struct{ err error }

func (h plainHasher) Hash(p string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + p, nil
}

func (plainHasher) Compare(p, digest string) bool {
	return strings.TrimPrefix(digest, "hashed:") == p && strings.HasPrefix(digest, "hashed:")
}

type stubTokens struct {
	issued []string
	err    error
}

func (t *stubTokens) Issue(userID, role string) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	tok := userID + "|" + role
	t.issued = append(t.issued, tok)
	return tok, nil
}

func (t *stubTokens) Parse(string) (*domain.Identity, error) { return nil, domain.ErrInvalidToken }
func (t *stubTokens) TTL() time.Duration                     { return time.Hour }

type stubRevocations struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Time)}
}

func (s *stubRevocations) RevokeUser(_ context.Context, userID string, at time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[userID] = at
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	at, ok := s.revoked[userID]
	return ok && domain.RevokedBy(issuedAt, at), nil
}

type stubAudit struct {
	events  []domain.AuditEvent
	readErr error
}

func (a *stubAudit) Record(e domain.AuditEvent) { a.events = append(a.events, e) }

func (a *stubAudit) ListByUser(_ context.Context, userID string, limit int64) ([]domain.AuditEvent, error) {
	if a.readErr != nil {
		return nil, a.readErr
	}
	out := []domain.AuditEvent{}
	for i := len(a.events) - 1; i >= 0; i-- {
		if a.events[i].UserID == userID {
			out = append(out, a.events[i])
		}
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (a *stubAudit) actions() []domain.AuditAction {
	out := make([]domain.AuditAction, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}

type authFixture struct {
	repo    *stubUserRepo
	tokens  *stubTokens
	revoked *stubRevocations
	audit   *stubAudit
	svc     *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		repo:    newStubUserRepo(),
		tokens:  &stubTokens{},
		revoked: newStubRevocations(),
		audit:   &stubAudit{},
	}
	f.svc = NewAuthService(f.repo, plainHasher{}, f.tokens, f.revoked, f.audit, zerolog.Nop())
	return f
}
