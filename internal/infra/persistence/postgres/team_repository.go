package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/model"
)

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository is the constructor for teamRepository.
func NewTeamRepository(db *gorm.DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (repo *teamRepository) Create(ctx context.Context, team *entity.Team) error {
	teamM := &model.TeamModel{
		ProjectID: team.ProjectID,
		Name:      team.Name,
		CreatedAt: team.CreatedAt,
	}
	if err := repo.db.WithContext(ctx).Create(teamM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create team")
	}

	team.ID = teamM.ID
	team.CreatedAt = teamM.CreatedAt

	return nil
}

func (repo *teamRepository) FindInProject(ctx context.Context, projectID, teamID int64) (*entity.Team, error) {
	var teamM model.TeamModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", teamID, projectID).
		First(&teamM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTeamNotFound
		}

		return nil, errors.Wrap(err, "failed to find team")
	}

	return &entity.Team{
		ID:        teamM.ID,
		ProjectID: teamM.ProjectID,
		Name:      teamM.Name,
		CreatedAt: teamM.CreatedAt,
	}, nil
}

func (repo *teamRepository) SaveMember(ctx context.Context, membership *entity.TeamMembership) error {
	membershipM := &model.TeamMembershipModel{
		TeamID:    membership.TeamID,
		UserID:    membership.UserID,
		Role:      string(membership.Role),
		CreatedAt: membership.CreatedAt,
	}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).
		Create(membershipM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WithDetails("team or user does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save team membership")
	}

	membership.CreatedAt = membershipM.CreatedAt

	return nil
}

// RemoveMemberFromProject drops userID from every team of projectID.
func (repo *teamRepository) RemoveMemberFromProject(ctx context.Context, projectID, userID int64) error {
	db := repo.db.WithContext(ctx)
	teamIDs := db.Model(&model.TeamModel{}).Select("id").Where("project_id = ?", projectID)

	err := db.Where("user_id = ? AND team_id IN (?)", userID, teamIDs).
		Delete(&model.TeamMembershipModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove team memberships")
	}

	return nil
}

func (repo *teamRepository) LedTeamIDs(ctx context.Context, projectID, userID int64) ([]int64, error) {
	var ids []int64
	err := repo.db.WithContext(ctx).
		Model(&model.TeamMembershipModel{}).
		Joins("JOIN teams ON teams.id = team_memberships.team_id").
		Where("teams.project_id = ? AND team_memberships.user_id = ? AND team_memberships.role = ?",
			projectID, userID, string(entity.TeamRoleLeader)).
		Order("team_memberships.team_id").
		Pluck("team_memberships.team_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list led teams")
	}

	return ids, nil
}
