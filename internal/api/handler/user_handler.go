package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUser applies a partial profile update to the caller's account.
//
// @Summary      Update own profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /user/updateUser [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	resp := h.userService.UpdateUser(c.Request().Context(), userID, ports.UpdateUserInput{
		Name:    req.Name,
		Age:     req.Age,
		Address: req.Address,
	})
	return respond(c, "update_user", resp)
}

// Delete soft-deletes the caller's account.
//
// @Summary      Delete own account
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /user/delete [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	return respond(c, "delete_user", h.userService.SoftDeleteUser(c.Request().Context(), userID))
}

// Me returns the caller's profile.
//
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /user/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	return respond(c, "get_user", h.userService.GetUser(c.Request().Context(), userID))
}

// AdminGetUser returns any user's profile. Admin only.
//
// @Summary      Get user by id
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /admin/users/{id} [get]
func (h *UserHandler) AdminGetUser(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	return respond(c, "get_user", h.userService.GetUser(c.Request().Context(), id))
}

// AdminAuditTrail returns the latest lifecycle events of any account. Admin only.
//
// @Summary      Get a user's audit trail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Failure      500  {object}  envelope
// @Router       /admin/users/{id}/audit [get]
func (h *UserHandler) AdminAuditTrail(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	return respond(c, "audit_trail", h.userService.GetAuditTrail(c.Request().Context(), id))
}
