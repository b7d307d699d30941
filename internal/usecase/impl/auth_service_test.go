package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/model"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/testutil"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

func validSignUp(email string) usecase.SignUpInput {
	return usecase.SignUpInput{
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       email,
		Password:    "s3cret-Passw0rd",
		Designation: "Engineer",
		Department:  "Compilers",
	}
}

func TestAuthService_SignUpThenSignIn(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.auth.SignUp(env.ctx, validSignUp("grace@example.com"))
	require.NoError(t, err)
	assert.NotZero(t, out.User.ID)
	assert.Equal(t, entity.StatusPending, out.User.Status)
	assert.Equal(t, entity.RoleStaff, out.User.Role)
	assert.Empty(t, out.User.PasswordHash)

	signIn, err := env.auth.SignIn(env.ctx, usecase.SignInInput{Email: "grace@example.com", Password: "s3cret-Passw0rd"})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, signIn.User.ID)
	assert.NotEmpty(t, signIn.AccessToken)
	assert.NotEmpty(t, signIn.RefreshToken)
	assert.Empty(t, signIn.User.PasswordHash)

	claims, err := env.tokens.VerifyAccessToken(signIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, entity.StatusPending, claims.Status)

	assert.Equal(t, int64(1), testutil.CountRows(t, env.db, &model.RefreshSessionModel{}))
}

func TestAuthService_SignUpDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.SignUp(env.ctx, validSignUp("dup@example.com"))
	require.NoError(t, err)

	variants := []usecase.SignUpInput{
		validSignUp("dup@example.com"),
		{FirstName: "A", LastName: "B", Email: "dup@example.com", Password: "x", Designation: "C", Department: "D"},
		{FirstName: "Other", LastName: "Person", Email: "dup@example.com", Password: "different", Designation: "QA", Department: "Ops"},
	}
	for _, input := range variants {
		_, err := env.auth.SignUp(env.ctx, input)
		assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail), "got %v", err)
	}

	assert.Equal(t, int64(1), testutil.CountRows(t, env.db, &model.UserModel{}))
}

func TestAuthService_SignUpMissingFields(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(*usecase.SignUpInput)
	}{
		{name: "first name", mutate: func(in *usecase.SignUpInput) { in.FirstName = "" }},
		{name: "last name", mutate: func(in *usecase.SignUpInput) { in.LastName = " " }},
		{name: "email", mutate: func(in *usecase.SignUpInput) { in.Email = "" }},
		{name: "password", mutate: func(in *usecase.SignUpInput) { in.Password = "" }},
		{name: "designation", mutate: func(in *usecase.SignUpInput) { in.Designation = "" }},
		{name: "department", mutate: func(in *usecase.SignUpInput) { in.Department = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSignUp("missing@example.com")
			tt.mutate(&input)

			_, err := env.auth.SignUp(env.ctx, input)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}

	assert.Zero(t, testutil.CountRows(t, env.db, &model.UserModel{}))
}

func TestAuthService_SignInInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.SignUp(env.ctx, validSignUp("known@example.com"))
	require.NoError(t, err)

	_, wrongPassword := env.auth.SignIn(env.ctx, usecase.SignInInput{Email: "known@example.com", Password: "nope"})
	_, unknownEmail := env.auth.SignIn(env.ctx, usecase.SignInInput{Email: "ghost@example.com", Password: "s3cret-Passw0rd"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Same(t, domainerrors.ErrInvalidCredentials, wrongPassword)
	assert.Same(t, domainerrors.ErrInvalidCredentials, unknownEmail)

	assert.Zero(t, testutil.CountRows(t, env.db, &model.RefreshSessionModel{}))
}

func TestAuthService_SignOut(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateTestUser(t, env.db)

	token, err := env.tokens.IssueRefreshToken(env.ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, env.auth.SignOut(env.ctx, token))
	require.NoError(t, env.auth.SignOut(env.ctx, token), "second sign-out is a no-op")
	require.NoError(t, env.auth.SignOut(env.ctx, "never-issued"))

	assert.Same(t, domainerrors.ErrMissingToken, env.auth.SignOut(env.ctx, ""))

	_, err = env.auth.Refresh(env.ctx, token)
	assert.Same(t, domainerrors.ErrSessionNotFound, err)
}

func TestAuthService_Refresh(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateTestUser(t, env.db)

	token, err := env.tokens.IssueRefreshToken(env.ctx, user.ID)
	require.NoError(t, err)

	first, err := env.auth.Refresh(env.ctx, token)
	require.NoError(t, err)
	second, err := env.auth.Refresh(env.ctx, token)
	require.NoError(t, err, "the refresh token is not rotated")
	assert.NotEmpty(t, first.AccessToken)
	assert.NotEmpty(t, second.AccessToken)

	_, err = env.auth.Refresh(env.ctx, "")
	assert.Same(t, domainerrors.ErrMissingToken, err)

	_, err = env.auth.Refresh(env.ctx, "unknown-token")
	assert.Same(t, domainerrors.ErrSessionNotFound, err)
}

func TestAuthService_RefreshUsesCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateTestUser(t, env.db, testutil.WithStatus(entity.StatusPending))

	token, err := env.tokens.IssueRefreshToken(env.ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&model.UserModel{}).Where("id = ?", user.ID).
		Update("status", string(entity.StatusActive)).Error)

	out, err := env.auth.Refresh(env.ctx, token)
	require.NoError(t, err)

	claims, err := env.tokens.VerifyAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, claims.Status)
}

func TestAuthService_RefreshForDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateTestUser(t, env.db)

	token, err := env.tokens.IssueRefreshToken(env.ctx, user.ID)
	require.NoError(t, err)

	// Stop the cascade so the orphaned session survives.
	require.NoError(t, env.db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, env.db.Delete(&model.UserModel{}, user.ID).Error)

	_, err = env.auth.Refresh(env.ctx, token)
	assert.Same(t, domainerrors.ErrSessionNotFound, err)
}
