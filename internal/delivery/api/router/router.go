// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api/middleware"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/delivery/api/router/handler"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ProjectHandler *handler.ProjectHandler
	TaskHandler    *handler.TaskHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	projectHandler *handler.ProjectHandler
	taskHandler    *handler.TaskHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		projectHandler: params.ProjectHandler,
		taskHandler:    params.TaskHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/signin", r.authHandler.SignIn)
		authGroup.POST("/signout", r.authHandler.SignOut)
		authGroup.POST("/refresh", r.authHandler.Refresh)
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate)

	apiV1.GET("/me", r.userHandler.GetProfile)

	usersGroup := apiV1.Group("/users")
	usersGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		usersGroup.PATCH("/:id/status", r.userHandler.UpdateStatus)
	}

	projectsGroup := apiV1.Group("/projects")
	{
		projectsGroup.GET("", r.projectHandler.List)
		projectsGroup.POST("", r.projectHandler.Create)
		projectsGroup.GET("/:projectId", r.projectHandler.Get)
		projectsGroup.PUT("/:projectId", r.projectHandler.Update)
		projectsGroup.DELETE("/:projectId", r.projectHandler.Delete)

		projectsGroup.POST("/:projectId/members", r.projectHandler.AddMember)
		projectsGroup.DELETE("/:projectId/members/:userId", r.projectHandler.RemoveMember)

		projectsGroup.POST("/:projectId/teams", r.projectHandler.CreateTeam)
		projectsGroup.POST("/:projectId/teams/:teamId/members", r.projectHandler.AddTeamMember)
	}

	tasksGroup := projectsGroup.Group("/:projectId/tasks")
	{
		tasksGroup.GET("", r.taskHandler.List)
		tasksGroup.POST("", r.taskHandler.Create)
		tasksGroup.GET("/:taskId", r.taskHandler.Get)
		tasksGroup.PATCH("/:taskId", r.taskHandler.Update)
		tasksGroup.DELETE("/:taskId", r.taskHandler.Delete)
	}
}
