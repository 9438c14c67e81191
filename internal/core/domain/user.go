package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Role is a named permission set. Users reference roles; they do not own them.
type Role struct {
	ID       string `json:"id"`
	RoleName string `json:"roleName"`
}

// User models an account in the users table.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Age          string     `json:"age"`
	Address      string     `json:"address"`
	IsActive     bool       `json:"-"`
	DeletedAt    *time.Time `json:"-"`
	RefreshToken *string    `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Roles        []Role     `json:"roles"`
}

// PrimaryRole is the role embedded in access tokens: the first assigned one.
func (u *User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0].RoleName
}

// IsDeleted reports whether the account has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// PublicUser is the client-visible projection of a User. It never carries the
// password digest, the activity flag, the delete timestamp or the refresh token.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Age       string    `json:"age"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Roles     []Role    `json:"roles"`
}

// Public strips the sensitive fields of u.
func (u *User) Public() *PublicUser {
	roles := u.Roles
	if roles == nil {
		roles = []Role{}
	}
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Age:       u.Age,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Roles:     roles,
	}
}

// NewUser carries the fields needed to insert an account.
type NewUser struct {
	Email        string
	PasswordHash string
	Name         string
	Age          string
	Address      string
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Name         *string
	Age          *string
	Address      *string
	PasswordHash *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Age == nil && p.Address == nil && p.PasswordHash == nil
}

// UserQuery selects a single user. At least one field must be set; when both
// are set the user must match both.
type UserQuery struct {
	ID    string
	Email string
}
