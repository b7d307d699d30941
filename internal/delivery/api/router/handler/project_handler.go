package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api/response"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

type projectMemberRequest struct {
	UserID int64  `json:"userId" validate:"required,min=1"`
	Role   string `json:"role" validate:"required,oneof=project_leader member"`
}

type createProjectRequest struct {
	Name        string                 `json:"name" validate:"required,max=200"`
	Description string                 `json:"description" validate:"max=2000"`
	Members     []projectMemberRequest `json:"members" validate:"dive"`
}

type updateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type teamMemberRequest struct {
	UserID int64  `json:"userId" validate:"required,min=1"`
	Role   string `json:"role" validate:"required,oneof=team_leader member"`
}

type createTeamRequest struct {
	Name    string              `json:"name" validate:"required,max=200"`
	Members []teamMemberRequest `json:"members" validate:"dive"`
}

type projectDetailResponse struct {
	Project *entity.Project             `json:"project"`
	Members []*entity.ProjectMembership `json:"members"`
	Role    string                      `json:"role"`
}

type teamDetailResponse struct {
	Team    *entity.Team             `json:"team"`
	Members []*entity.TeamMembership `json:"members"`
}

// ProjectHandler serves projects, their memberships and teams.
type ProjectHandler struct {
	projects usecase.ProjectUsecase
	teams    usecase.TeamUsecase
}

// ProjectHandlerParams holds dependencies for ProjectHandler, injected by Fx.
type ProjectHandlerParams struct {
	fx.In

	Projects usecase.ProjectUsecase
	Teams    usecase.TeamUsecase
}

// NewProjectHandler is the constructor for ProjectHandler.
func NewProjectHandler(params ProjectHandlerParams) *ProjectHandler {
	return &ProjectHandler{
		projects: params.Projects,
		teams:    params.Teams,
	}
}

func (h *ProjectHandler) List(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.ListProjects(c.Request().Context(), user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, projects)
}

func (h *ProjectHandler) Create(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	members := make([]usecase.ProjectMemberInput, 0, len(req.Members))
	for _, m := range req.Members {
		members = append(members, usecase.ProjectMemberInput{UserID: m.UserID, Role: entity.ProjectRole(m.Role)})
	}

	detail, err := h.projects.CreateProject(c.Request().Context(), user, usecase.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Members:     members,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProjectDetailResponse(detail))
}

func (h *ProjectHandler) Get(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	detail, err := h.projects.GetProject(c.Request().Context(), user, projectID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProjectDetailResponse(detail))
}

func (h *ProjectHandler) Update(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projects.UpdateProject(c.Request().Context(), user, projectID, usecase.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	if err := h.projects.DeleteProject(c.Request().Context(), user, projectID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

func (h *ProjectHandler) AddMember(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	var req projectMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	membership, err := h.projects.AddMember(c.Request().Context(), user, projectID, usecase.ProjectMemberInput{
		UserID: req.UserID,
		Role:   entity.ProjectRole(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, membership)
}

func (h *ProjectHandler) RemoveMember(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.projects.RemoveMember(c.Request().Context(), user, projectID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

func (h *ProjectHandler) CreateTeam(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	var req createTeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	members := make([]usecase.TeamMemberInput, 0, len(req.Members))
	for _, m := range req.Members {
		members = append(members, usecase.TeamMemberInput{UserID: m.UserID, Role: entity.TeamRole(m.Role)})
	}

	detail, err := h.teams.CreateTeam(c.Request().Context(), user, projectID, usecase.CreateTeamInput{
		Name:    req.Name,
		Members: members,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, teamDetailResponse{Team: detail.Team, Members: detail.Members})
}

func (h *ProjectHandler) AddTeamMember(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	teamID, err := pathID(c, "teamId")
	if err != nil {
		return err
	}

	var req teamMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	membership, err := h.teams.AddTeamMember(c.Request().Context(), user, projectID, teamID, usecase.TeamMemberInput{
		UserID: req.UserID,
		Role:   entity.TeamRole(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, membership)
}

func toProjectDetailResponse(detail *usecase.ProjectDetail) projectDetailResponse {
	return projectDetailResponse{
		Project: detail.Project,
		Members: detail.Members,
		Role:    detail.Role.String(),
	}
}
