package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticketing/internal/config"
	"github.com/iliyamo/cinema-ticketing/internal/model"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
	"github.com/iliyamo/cinema-ticketing/internal/utils"
)

// UserHandler exposes the user-management endpoints.  Listing and
// deleting users is admin-only; a user may fetch their own record and
// update their own profile and password.  Role checks run before any
// repository access.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

type profileReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
type passwordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// profilePart is the sanitized user representation returned by this
// handler.  The password hash never leaves the repository layer.
type profilePart struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toProfile(u *model.User) profilePart {
	return profilePart{ID: u.ID, Email: u.Email, Role: u.Role, FirstName: u.FirstName, LastName: u.LastName}
}

// List handles GET /v1/users (admin).
func (h *UserHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	if !caller.Elevated() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]profilePart, 0, len(users))
	for i := range users {
		items = append(items, toProfile(&users[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/users/:id.  Admins may fetch any user; everyone
// else only their own record.
func (h *UserHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if !caller.Elevated() && caller.UserID != id {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toProfile(u)})
}

// Delete handles DELETE /v1/users/:id (admin).  Deleting a user also
// revokes all of their refresh tokens.
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	if !caller.Elevated() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete user"})
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateProfile handles PUT /v1/users/profile.  Users update their own
// names; there is no admin edit of another user's profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := h.Users.UpdateProfile(c.Request().Context(), caller.UserID, req.FirstName, req.LastName); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdatePassword handles PUT /v1/users/password.  The current password
// must verify against the stored hash before the new one is set.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	var req passwordReq
	if err := c.Bind(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current_password and new_password are required"})
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current password is incorrect"})
	}
	if err := h.Users.UpdatePassword(ctx, caller.UserID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update password"})
	}
	return c.NoContent(http.StatusNoContent)
}
