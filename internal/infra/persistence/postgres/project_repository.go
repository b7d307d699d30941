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

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository is the constructor for projectRepository.
func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (repo *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	projectM := fromProjectDomain(project)
	if err := repo.db.WithContext(ctx).Create(projectM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create project")
	}

	project.ID = projectM.ID
	project.CreatedAt = projectM.CreatedAt
	project.UpdatedAt = projectM.UpdatedAt

	return nil
}

func (repo *projectRepository) FindByID(ctx context.Context, id int64) (*entity.Project, error) {
	var projectM model.ProjectModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&projectM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProjectNotFound
		}

		return nil, errors.Wrap(err, "failed to find project")
	}

	return toProjectDomain(&projectM), nil
}

func (repo *projectRepository) List(ctx context.Context) ([]*entity.Project, error) {
	var projectMs []*model.ProjectModel
	if err := repo.db.WithContext(ctx).Order("id DESC").Find(&projectMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}

	return toProjectDomainList(projectMs), nil
}

func (repo *projectRepository) ListByMember(ctx context.Context, userID int64) ([]*entity.Project, error) {
	var projectMs []*model.ProjectModel
	err := repo.db.WithContext(ctx).
		Joins("JOIN project_memberships ON project_memberships.project_id = projects.id").
		Where("project_memberships.user_id = ?", userID).
		Order("projects.id DESC").
		Find(&projectMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects by member")
	}

	return toProjectDomainList(projectMs), nil
}

func (repo *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	projectM := fromProjectDomain(project)
	result := repo.db.WithContext(ctx).
		Model(projectM).
		Select("name", "description").
		Updates(projectM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update project")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProjectNotFound
	}

	project.UpdatedAt = projectM.UpdatedAt

	return nil
}

// Delete removes the project together with its tasks, teams and memberships.
// Callers run it inside a transaction.
func (repo *projectRepository) Delete(ctx context.Context, id int64) error {
	db := repo.db.WithContext(ctx)
	teamIDs := db.Model(&model.TeamModel{}).Select("id").Where("project_id = ?", id)

	steps := []struct {
		what string
		run  func() error
	}{
		{"tasks", func() error { return db.Where("project_id = ?", id).Delete(&model.TaskModel{}).Error }},
		{"team memberships", func() error { return db.Where("team_id IN (?)", teamIDs).Delete(&model.TeamMembershipModel{}).Error }},
		{"teams", func() error { return db.Where("project_id = ?", id).Delete(&model.TeamModel{}).Error }},
		{"project memberships", func() error {
			return db.Where("project_id = ?", id).Delete(&model.ProjectMembershipModel{}).Error
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to delete project "+step.what)
		}
	}

	result := db.Where("id = ?", id).Delete(&model.ProjectModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete project")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProjectNotFound
	}

	return nil
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository is the constructor for membershipRepository.
func NewMembershipRepository(db *gorm.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (repo *membershipRepository) Find(ctx context.Context, projectID, userID int64) (*entity.ProjectMembership, error) {
	var membershipM model.ProjectMembershipModel
	err := repo.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&membershipM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMembershipNotFound
		}

		return nil, errors.Wrap(err, "failed to find project membership")
	}

	return toMembershipDomain(&membershipM), nil
}

// Save inserts the membership, or changes the role when the user is already a member.
func (repo *membershipRepository) Save(ctx context.Context, membership *entity.ProjectMembership) error {
	membershipM := &model.ProjectMembershipModel{
		ProjectID: membership.ProjectID,
		UserID:    membership.UserID,
		Role:      string(membership.Role),
		CreatedAt: membership.CreatedAt,
	}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).
		Create(membershipM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WithDetails("project or user does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save project membership")
	}

	membership.CreatedAt = membershipM.CreatedAt

	return nil
}

func (repo *membershipRepository) Remove(ctx context.Context, projectID, userID int64) error {
	result := repo.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&model.ProjectMembershipModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to remove project membership")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMembershipNotFound
	}

	return nil
}

func (repo *membershipRepository) ListByProject(ctx context.Context, projectID int64) ([]*entity.ProjectMembership, error) {
	var membershipMs []*model.ProjectMembershipModel
	err := repo.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("user_id").
		Find(&membershipMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list project memberships")
	}

	memberships := make([]*entity.ProjectMembership, 0, len(membershipMs))
	for _, m := range membershipMs {
		memberships = append(memberships, toMembershipDomain(m))
	}

	return memberships, nil
}

func toProjectDomain(data *model.ProjectModel) *entity.Project {
	return &entity.Project{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CreatedBy:   data.CreatedBy,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toProjectDomainList(data []*model.ProjectModel) []*entity.Project {
	projects := make([]*entity.Project, 0, len(data))
	for _, p := range data {
		projects = append(projects, toProjectDomain(p))
	}

	return projects
}

func fromProjectDomain(data *entity.Project) *model.ProjectModel {
	return &model.ProjectModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CreatedBy:   data.CreatedBy,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toMembershipDomain(data *model.ProjectMembershipModel) *entity.ProjectMembership {
	return &entity.ProjectMembership{
		ProjectID: data.ProjectID,
		UserID:    data.UserID,
		Role:      entity.ProjectRole(data.Role),
		CreatedAt: data.CreatedAt,
	}
}
