package usecase

import (
	"context"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account. Every field is required.
type SignUpInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Designation string
	Department  string
}

// SignInInput defines the data required for a user to sign in.
type SignInInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// SignUpOutput returns the created account.
type SignUpOutput struct {
	User *entity.User
}

// SignInOutput returns the generated tokens after a successful sign-in.
type SignInOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshOutput carries a freshly minted access token. The refresh token is not rotated.
type RefreshOutput struct {
	AccessToken string
	User        *entity.User
}

// AuthUsecase is the sign-up, sign-in, sign-out and refresh gateway.
type AuthUsecase interface {
	SignUp(ctx context.Context, input SignUpInput) (*SignUpOutput, error)
	SignIn(ctx context.Context, input SignInInput) (*SignInOutput, error)
	SignOut(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)
}

// AuthenticatorUsecase turns a bearer access token into the live user behind it.
type AuthenticatorUsecase interface {
	// Authenticate fails with ErrUnauthenticated for a bad token or a missing user,
	// and with ErrAccountSuspended when the live account is suspended.
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}
