package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/testutil"
)

func TestUserService_GetProfile(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateTestUser(t, env.db, testutil.WithPasswordHash("secret-hash"))

	profile, err := env.users.GetProfile(env.ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)
	assert.Empty(t, profile.PasswordHash)

	_, err = env.users.GetProfile(env.ctx, nil)
	assert.Same(t, domainerrors.ErrUnauthenticated, err)
}

func TestUserService_UpdateUserStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, testutil.WithRole(entity.RoleAdmin))
	staff := testutil.CreateTestUser(t, env.db, testutil.WithStatus(entity.StatusPending))

	activated, err := env.users.UpdateUserStatus(env.ctx, admin, staff.ID, entity.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, activated.Status)
	assert.Empty(t, activated.PasswordHash)

	tests := []struct {
		name    string
		actor   *entity.User
		userID  int64
		status  entity.AccountStatus
		wantErr error
	}{
		{name: "staff caller", actor: staff, userID: admin.ID, status: entity.StatusSuspended, wantErr: domainerrors.ErrForbidden},
		{name: "unknown status", actor: admin, userID: staff.ID, status: "banned", wantErr: domainerrors.ErrValidationFailed},
		{name: "admin suspends self", actor: admin, userID: admin.ID, status: entity.StatusSuspended, wantErr: domainerrors.ErrValidationFailed},
		{name: "missing user", actor: admin, userID: staff.ID + 100, status: entity.StatusActive, wantErr: domainerrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.users.UpdateUserStatus(env.ctx, tt.actor, tt.userID, tt.status)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestUserService_SuspensionBlocksNextRequest(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, testutil.WithRole(entity.RoleAdmin))
	staff := testutil.CreateTestUser(t, env.db)

	token, err := env.tokens.IssueAccessToken(staff)
	require.NoError(t, err)

	_, err = env.users.UpdateUserStatus(env.ctx, admin, staff.ID, entity.StatusSuspended)
	require.NoError(t, err)

	_, err = env.authenticator.Authenticate(env.ctx, token)
	assert.Same(t, domainerrors.ErrAccountSuspended, err)
}
