package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/model"
)

type refreshSessionRepository struct {
	db *gorm.DB
}

// NewRefreshSessionRepository is the constructor for refreshSessionRepository.
func NewRefreshSessionRepository(db *gorm.DB) repository.RefreshSessionRepository {
	return &refreshSessionRepository{db: db}
}

func (repo *refreshSessionRepository) Create(ctx context.Context, session *entity.RefreshSession) error {
	sessionM := &model.RefreshSessionModel{
		UserID:    session.UserID,
		TokenHash: session.TokenHash,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create refresh session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByTokenHash does not filter on expiry; the caller decides.
func (repo *refreshSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshSession, error) {
	var sessionM model.RefreshSessionModel
	err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Order("id").
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find refresh session")
	}

	return &entity.RefreshSession{
		ID:        sessionM.ID,
		UserID:    sessionM.UserID,
		TokenHash: sessionM.TokenHash,
		ExpiresAt: sessionM.ExpiresAt,
		CreatedAt: sessionM.CreatedAt,
	}, nil
}

func (repo *refreshSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&model.RefreshSessionModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete refresh session")
	}

	return result.RowsAffected, nil
}

func (repo *refreshSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.RefreshSessionModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expired refresh sessions")
	}

	return result.RowsAffected, nil
}
