// Package middleware holds the API-specific echo middlewares.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/context"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

const (
	bearerPrefix = "Bearer "

	contextKeyUser = "currentUser"
)

// AuthMiddleware resolves the caller from the bearer access token.
type AuthMiddleware struct {
	authenticator usecase.AuthenticatorUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authenticator usecase.AuthenticatorUsecase) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// Authenticate rejects the request unless it carries a valid token for an existing, non-suspended account.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrUnauthenticated
		}

		ctx := c.Request().Context()
		user, err := m.authenticator.Authenticate(ctx, token)
		if err != nil {
			return err
		}

		c.Set(contextKeyUser, user)
		c.SetRequest(c.Request().WithContext(deliverycontext.WithUser(ctx, user)))

		return next(c)
	}
}

// RequireRole must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role entity.SystemRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domainerrors.ErrUnauthenticated
			}
			if user.Role != role {
				return domainerrors.ErrForbidden.WithDetails("requires role " + role.String())
			}

			return next(c)
		}
	}
}

// CurrentUser returns the user attached by Authenticate, or nil.
func CurrentUser(c echo.Context) *entity.User {
	if user, ok := c.Get(contextKeyUser).(*entity.User); ok {
		return user
	}

	return nil
}

func bearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}
