package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/config"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/service"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/auth"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/postgres"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/testutil"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

const testRefreshTTL = 14 * 24 * time.Hour

// testEnv wires every service against one in-memory database.
type testEnv struct {
	ctx    context.Context
	db     *gorm.DB
	hasher service.PasswordHasher

	tokens        *tokenService
	auth          usecase.AuthUsecase
	authenticator usecase.AuthenticatorUsecase
	access        usecase.AccessUsecase
	projects      usecase.ProjectUsecase
	teams         usecase.TeamUsecase
	tasks         usecase.TaskUsecase
	users         usecase.UserUsecase
	sessions      *sessionService
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:      bcrypt.MinCost,
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: testRefreshTTL,
		},
	}
	cfg.SecretKey.Access = "usecase-test-secret"

	return cfg
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testConfig()
	logger := testLogger()

	accessTokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewRefreshSessionRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	txManager := postgres.NewTransactionManager(db)
	hasher := auth.NewBcryptHasher(cfg)

	tokens, ok := NewTokenService(TokenServiceParams{
		AccessTokens: accessTokens,
		Generator:    auth.NewOpaqueTokenGenerator(),
		SessionRepo:  sessionRepo,
		Config:       cfg,
		Logger:       logger,
	}).(*tokenService)
	require.True(t, ok)

	access := NewAccessService(AccessServiceParams{
		ProjectRepo:    projectRepo,
		MembershipRepo: membershipRepo,
		TeamRepo:       teamRepo,
		TaskRepo:       taskRepo,
		Logger:         logger,
	})

	sessions, ok := NewSessionService(sessionRepo, logger).(*sessionService)
	require.True(t, ok)

	return &testEnv{
		ctx:    testutil.TestContext(t),
		db:     db,
		hasher: hasher,
		tokens: tokens,
		auth: NewAuthService(AuthServiceParams{
			UserRepo: userRepo,
			Hasher:   hasher,
			Tokens:   tokens,
			Logger:   logger,
		}),
		authenticator: NewAuthenticator(AuthenticatorParams{
			Tokens:   tokens,
			UserRepo: userRepo,
			Logger:   logger,
		}),
		access: access,
		projects: NewProjectService(ProjectServiceParams{
			TxManager:      txManager,
			ProjectRepo:    projectRepo,
			MembershipRepo: membershipRepo,
			UserRepo:       userRepo,
			Access:         access,
			Logger:         logger,
		}),
		teams: NewTeamService(TeamServiceParams{
			TxManager:      txManager,
			TeamRepo:       teamRepo,
			MembershipRepo: membershipRepo,
			Access:         access,
			Logger:         logger,
		}),
		tasks: NewTaskService(TaskServiceParams{
			TaskRepo:       taskRepo,
			TeamRepo:       teamRepo,
			MembershipRepo: membershipRepo,
			Access:         access,
			Logger:         logger,
		}),
		users: NewUserService(UserServiceParams{
			UserRepo: userRepo,
			Logger:   logger,
		}),
		sessions: sessions,
	}
}

func ptr[T any](v T) *T { return &v }
