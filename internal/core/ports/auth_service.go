package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/response"
)

// AdminSignUpInput carries the admin registration form.
type AdminSignUpInput struct {
	Email    string
	Password string
	Name     string
	Age      string
	Address  string
}

// RegisterInput carries the self-service registration form.
type RegisterInput struct {
	Email    string
	Password string
	RoleName string
	Name     string
	Age      string
	Address  string
}

// ChangePasswordInput carries the change-password form of an authenticated user.
type ChangePasswordInput struct {
	UserID          string
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// LoginResult is the data payload of a successful login.
type LoginResult struct {
	User        any    `json:"user"`
	AccessToken string `json:"accessToken"`
}

// AuthService covers registration, login and password change. Every call
// yields exactly one envelope.
type AuthService interface {
	AdminRegister(ctx context.Context, in AdminSignUpInput) response.APIResponse
	Register(ctx context.Context, in RegisterInput) response.APIResponse
	Login(ctx context.Context, email, password string) response.APIResponse
	ChangePassword(ctx context.Context, in ChangePasswordInput) response.APIResponse
}
