package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api/response"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active suspended"`
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetProfile returns the caller's live account record.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// UpdateStatus moves an account between pending, active and suspended.
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.uc.UpdateUserStatus(c.Request().Context(), user, userID, entity.AccountStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, updated)
}
