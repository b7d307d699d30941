package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"go.uber.org/fx"

	deliverycontext "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/context"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/service"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokens   usecase.TokenUsecase
	logger   *slog.Logger

	// Compared against on unknown emails so both failure paths cost one bcrypt check.
	dummyHashOnce sync.Once
	dummyHash     string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Tokens   usecase.TokenUsecase
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		tokens:   params.Tokens,
		logger:   params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp registers a pending staff account.
func (srv *authService) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.SignUpOutput, error) {
	if missing := missingSignUpFields(input); len(missing) > 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("missing required fields: " + strings.Join(missing, ", "))
	}

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	user := &entity.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         entity.RoleStaff,
		Status:       entity.StatusPending,
		Designation:  input.Designation,
		Department:   input.Department,
	}
	// A concurrent sign-up with the same email surfaces here as ErrDuplicateEmail.
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User signed up", slog.Int64("userID", user.ID))

	user.PasswordHash = ""

	return &usecase.SignUpOutput{User: user}, nil
}

// SignIn checks credentials and issues an access token plus a refresh token.
func (srv *authService) SignIn(ctx context.Context, input usecase.SignInInput) (*usecase.SignInOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.hasher.Check(input.Password, srv.getDummyHash())

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokens.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	srv.log(ctx).Info("User signed in", slog.Int64("userID", user.ID))

	user.PasswordHash = ""

	return &usecase.SignInOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// SignOut revokes the refresh session. Unknown or expired tokens still succeed.
func (srv *authService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domainerrors.ErrMissingToken
	}

	return srv.tokens.RevokeRefreshToken(ctx, refreshToken)
}

// Refresh mints a new access token from the user's current record.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	if refreshToken == "" {
		return nil, domainerrors.ErrMissingToken
	}

	session, err := srv.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	accessToken, err := srv.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	user.PasswordHash = ""

	return &usecase.RefreshOutput{AccessToken: accessToken, User: user}, nil
}

func (srv *authService) getDummyHash() string {
	srv.dummyHashOnce.Do(func() {
		// An empty string never matches a bcrypt hash, so a failure here only loses the timing cover.
		srv.dummyHash, _ = srv.hasher.Hash("dummy-password-for-unknown-accounts")
	})

	return srv.dummyHash
}

func missingSignUpFields(input usecase.SignUpInput) []string {
	fields := []struct {
		name  string
		value string
	}{
		{"firstName", input.FirstName},
		{"lastName", input.LastName},
		{"email", input.Email},
		{"password", input.Password},
		{"designation", input.Designation},
		{"department", input.Department},
	}

	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	return missing
}
