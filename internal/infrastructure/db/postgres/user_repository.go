package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/99minutos/account-service/internal/core/domain"
)

const uniqueViolation = "23505"

const selectUser = `
	SELECT id::text, email, password, name, age, address, is_active,
	       deleted_at, refresh_token, created_at, updated_at
	FROM users`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindUser looks a user up by id, email, or both. Soft-deleted rows are
// returned as well; callers decide what a deleted account means to them.
func (r *UserRepository) FindUser(ctx context.Context, q domain.UserQuery) (*domain.User, error) {
	const op = "postgres.FindUser"
	if q.ID == "" && q.Email == "" {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrIDOrEmailRequired)
	}

	var (
		where []string
		args  []any
	)
	if q.ID != "" {
		id, err := uuid.Parse(q.ID)
		if err != nil {
			// Not a UUID, so no row can carry it.
			return nil, nil
		}
		args = append(args, id)
		where = append(where, "id = $"+strconv.Itoa(len(args)))
	}
	if q.Email != "" {
		args = append(args, q.Email)
		where = append(where, "email = $"+strconv.Itoa(len(args)))
	}

	u, err := scanUser(r.pool.QueryRow(ctx, selectUser+" WHERE "+strings.Join(where, " AND "), args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(op, err)
	}

	if u.Roles, err = r.roles(ctx, u.ID); err != nil {
		return nil, classify(op, err)
	}
	return u, nil
}

// CreateUser inserts the user and links roleName in a single transaction.
func (r *UserRepository) CreateUser(ctx context.Context, nu domain.NewUser, roleName string) (*domain.User, error) {
	const op = "postgres.CreateUser"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, classify(op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, email, password, name, age, address)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, nu.Email, nu.PasswordHash, nu.Name, nu.Age, nu.Address)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrUserExists)
		}
		return nil, classify(op, err)
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id, position)
		SELECT $1, id, 0 FROM roles WHERE role_name = $2`,
		id, roleName)
	if err != nil {
		return nil, classify(op, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrRoleNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify(op, err)
	}

	created, err := r.FindUser(ctx, domain.UserQuery{ID: id.String()})
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrUnexpected)
	}
	return created, nil
}

// UpdateUser applies the non-nil fields of patch and returns the refreshed row.
// A soft-deleted row is reported as ErrUserNotFound and left untouched.
func (r *UserRepository) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	const op = "postgres.UpdateUser"
	if id == "" {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrIDOrEmailRequired)
	}

	current, err := r.FindUser(ctx, domain.UserQuery{ID: id})
	if err != nil {
		return nil, err
	}
	if current == nil || current.IsDeleted() {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrUserNotFound)
	}
	if patch.Empty() {
		return current, nil
	}

	sets := []string{"updated_at = now()"}
	args := []any{}
	add := func(col string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}
	add("name", patch.Name)
	add("age", patch.Age)
	add("address", patch.Address)
	add("password", patch.PasswordHash)

	args = append(args, current.ID)
	query := "UPDATE users SET " + strings.Join(sets, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + "::uuid AND deleted_at IS NULL"
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrUserUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrUserNotFound)
	}

	updated, err := r.FindUser(ctx, domain.UserQuery{ID: id})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrUserUpdateFailed, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrUserUpdateFailed)
	}
	return updated, nil
}

// SoftDeleteUser stamps deleted_at on a live row. It reports false, without an
// error, when the row is missing or already deleted.
func (r *UserRepository) SoftDeleteUser(ctx context.Context, id string) (bool, error) {
	const op = "postgres.SoftDeleteUser"

	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`, uid)
	if err != nil {
		return false, classify(op, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) roles(ctx context.Context, userID string) ([]domain.Role, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id::text, r.role_name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1::uuid
		ORDER BY ur.position, r.role_name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.RoleName); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Age, &u.Address, &u.IsActive,
		&u.DeletedAt, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// classify maps a data-access fault to ErrDatabase when the driver attached a
// SQLSTATE, and to ErrUnexpected otherwise.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrDatabase, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUnexpected, err)
}
