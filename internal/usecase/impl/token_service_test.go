package impl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/model"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/testutil"
)

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	user := &entity.User{ID: 9, Role: entity.RoleAdmin, Email: "root@example.com", Status: entity.StatusActive}

	token, err := env.tokens.IssueAccessToken(user)
	require.NoError(t, err)

	claims, err := env.tokens.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Status, claims.Status)

	_, err = env.tokens.VerifyAccessToken(token + "x")
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestTokenService_RefreshExpiryBoundary(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateTestUser(t, env.db)

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	env.tokens.now = func() time.Time { return now }

	token, err := env.tokens.IssueRefreshToken(env.ctx, user.ID)
	require.NoError(t, err)

	now = issuedAt.Add(testRefreshTTL - time.Second)
	session, err := env.tokens.ValidateRefreshToken(env.ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.ExpiresAt.Equal(issuedAt.Add(testRefreshTTL)))

	now = issuedAt.Add(testRefreshTTL)
	_, err = env.tokens.ValidateRefreshToken(env.ctx, token)
	assert.Same(t, domainerrors.ErrSessionExpired, err, "expiry equal to now is expired")

	now = issuedAt.Add(testRefreshTTL + time.Hour)
	_, err = env.tokens.ValidateRefreshToken(env.ctx, token)
	assert.Same(t, domainerrors.ErrSessionExpired, err)

	assert.Equal(t, int64(1), testutil.CountRows(t, env.db, &model.RefreshSessionModel{}),
		"validation never deletes")
}

func TestTokenService_StoresDigestOnly(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateTestUser(t, env.db)

	token, err := env.tokens.IssueRefreshToken(env.ctx, user.ID)
	require.NoError(t, err)

	var stored model.RefreshSessionModel
	require.NoError(t, env.db.First(&stored).Error)
	assert.NotEqual(t, token, stored.TokenHash)
	assert.Len(t, stored.TokenHash, 64)
}

func TestTokenService_MultipleSessionsPerUser(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateTestUser(t, env.db)

	laptop, err := env.tokens.IssueRefreshToken(env.ctx, user.ID)
	require.NoError(t, err)
	phone, err := env.tokens.IssueRefreshToken(env.ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, laptop, phone)

	require.NoError(t, env.tokens.RevokeRefreshToken(env.ctx, laptop))

	_, err = env.tokens.ValidateRefreshToken(env.ctx, laptop)
	assert.Same(t, domainerrors.ErrSessionNotFound, err)
	_, err = env.tokens.ValidateRefreshToken(env.ctx, phone)
	assert.NoError(t, err)
}
