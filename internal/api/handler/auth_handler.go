package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/api/middleware"
	"github.com/99minutos/account-service/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL, secureCookie: secureCookie}
}

// AdminSignUp creates an account with the admin role.
//
// @Summary      Register an admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminSignUpRequest  true  "Admin registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /auth/signup/admin [post]
func (h *AuthHandler) AdminSignUp(c echo.Context) error {
	var req adminSignUpRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	resp := h.authService.AdminRegister(c.Request().Context(), ports.AdminSignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Age:      req.Age,
		Address:  req.Address,
	})
	return respond(c, "admin_register", resp)
}

// Register creates an account with the requested non-admin role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      409   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /auth/signUp [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	resp := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		RoleName: req.RoleName,
		Name:     req.Name,
		Age:      req.Age,
		Address:  req.Address,
	})
	return respond(c, "register", resp)
}

// Login authenticates a user, returns an access token and sets it as an
// HttpOnly cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	resp := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if result, ok := resp.Data.(ports.LoginResult); ok && resp.Success {
		c.SetCookie(&http.Cookie{
			Name:     middleware.TokenCookie,
			Value:    result.AccessToken,
			Path:     "/",
			MaxAge:   int(h.tokenTTL.Seconds()),
			HttpOnly: true,
			Secure:   h.secureCookie,
			SameSite: http.SameSiteStrictMode,
		})
	}
	return respond(c, "login", resp)
}

// ChangePassword replaces the caller's password and revokes their tokens.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	resp := h.authService.ChangePassword(c.Request().Context(), ports.ChangePasswordInput{
		UserID:          userID,
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if resp.Success {
		c.SetCookie(&http.Cookie{Name: middleware.TokenCookie, Path: "/", MaxAge: -1, HttpOnly: true, Secure: h.secureCookie})
	}
	return respond(c, "change_password", resp)
}
