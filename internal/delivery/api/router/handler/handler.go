// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api/middleware"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api/response"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
)

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return c.Validate(req)
}

// pathID parses a positive int64 path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails(name + " must be a positive integer")
	}

	return id, nil
}

// actor returns the authenticated caller. Routes using it sit behind AuthMiddleware.Authenticate.
func actor(c echo.Context) (*entity.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	return user, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
