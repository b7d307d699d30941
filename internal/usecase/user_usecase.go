package usecase

import (
	"context"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// UserUsecase covers account administration.
type UserUsecase interface {
	// GetProfile returns the live record of the authenticated user.
	GetProfile(ctx context.Context, actor *entity.User) (*entity.User, error)
	// UpdateUserStatus is admin only. A suspension applies on the target's next request.
	UpdateUserStatus(ctx context.Context, actor *entity.User, userID int64, status entity.AccountStatus) (*entity.User, error)
}
