package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/config"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api/response"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

type signUpRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,max=72"`
	Designation string `json:"designation" validate:"required,max=100"`
	Department  string `json:"department" validate:"required,max=100"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *entity.User `json:"user"`
}

// AuthHandler serves sign-up, sign-in, sign-out and token refresh.
// The refresh token only ever travels in an HttpOnly cookie.
type AuthHandler struct {
	auth   usecase.AuthUsecase
	tokens usecase.TokenUsecase
	cookie config.CookieConfig
	logger *slog.Logger
}

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Auth   usecase.AuthUsecase
	Tokens usecase.TokenUsecase
	Config *config.Config
	Logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		auth:   params.Auth,
		tokens: params.Tokens,
		cookie: params.Config.Auth.Cookie,
		logger: params.Logger,
	}
}

// SignUp handles account registration.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.auth.SignUp(c.Request().Context(), usecase.SignUpInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Designation: req.Designation,
		Department:  req.Department,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User)
}

// SignIn handles the login request and sets the refresh cookie.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.auth.SignIn(c.Request().Context(), usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.refreshCookie(output.RefreshToken, h.tokens.RefreshTokenTTL()))

	return response.Success(c, http.StatusOK, tokenResponse{AccessToken: output.AccessToken, User: output.User})
}

// SignOut revokes the session named by the cookie and clears it.
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.auth.SignOut(c.Request().Context(), h.readRefreshToken(c)); err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.refreshCookie("", -1))

	return response.Success(c, http.StatusOK, map[string]string{"message": "Signed out"})
}

// Refresh issues a new access token from the refresh cookie. The cookie itself is left as is.
func (h *AuthHandler) Refresh(c echo.Context) error {
	output, err := h.auth.Refresh(c.Request().Context(), h.readRefreshToken(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenResponse{AccessToken: output.AccessToken, User: output.User})
}

func (h *AuthHandler) readRefreshToken(c echo.Context) string {
	cookie, err := c.Cookie(h.cookie.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// refreshCookie builds the refresh cookie. A negative ttl deletes it.
func (h *AuthHandler) refreshCookie(value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}

	if ttl < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(ttl / time.Second)
	}

	return cookie
}
