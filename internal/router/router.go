package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gitgrove-dev/gitgrove/internal/handlers"
	"github.com/gitgrove-dev/gitgrove/internal/middleware"
	"github.com/gitgrove-dev/gitgrove/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		authed := api.Group("", middleware.AuthMiddleware())
		{
			authed.GET("/updates", handlers.ListUpdates)
			authed.GET("/starred", handlers.ListStarred)

			projects := authed.Group("/projects")
			{
				projects.POST("", handlers.CreateProject)
				projects.GET("", handlers.ListProjects)
				projects.GET("/:project_id", handlers.GetProject)
				projects.DELETE("/:project_id", handlers.DeleteProject)
				projects.POST("/:project_id/fork", handlers.ForkProject)

				projects.POST("/:project_id/contributors", handlers.AddContributor)
				projects.DELETE("/:project_id/contributors/:username", handlers.RemoveContributor)

				projects.PUT("/:project_id/star", handlers.AddStar)
				projects.DELETE("/:project_id/star", handlers.RemoveStar)
				projects.PUT("/:project_id/watch", handlers.AddWatch)
				projects.DELETE("/:project_id/watch", handlers.RemoveWatch)

				projects.POST("/:project_id/branches", handlers.CreateBranch)

				projects.GET("/:project_id/pull_requests", handlers.ListPullRequests)
				projects.POST("/:project_id/pull_requests", handlers.CreatePullRequest)

				projects.GET("/:project_id/issues", handlers.ListIssues)
				projects.POST("/:project_id/issues", handlers.CreateIssue)

				projects.GET("/:project_id/milestones", handlers.ListMilestones)
				projects.POST("/:project_id/milestones", handlers.CreateMilestone)

				projects.GET("/:project_id/comments", handlers.ListComments)
				projects.POST("/:project_id/comments", handlers.AddComment)
			}

			branches := authed.Group("/branches")
			{
				branches.PATCH("/:branch_id", handlers.RenameBranch)
				branches.DELETE("/:branch_id", handlers.DeleteBranch)
				branches.PUT("/:branch_id/default", handlers.SetDefaultBranch)
				branches.POST("/:branch_id/copy", handlers.CopyBranch)
				branches.GET("/:branch_id/commits", handlers.GetCommitHistory)
				branches.GET("/:branch_id/files", handlers.ListFiles)
				branches.POST("/:branch_id/files", handlers.AddFile)
			}

			files := authed.Group("/files")
			{
				files.GET("/:file_id", handlers.GetFile)
				files.PATCH("/:file_id", handlers.EditFile)
				files.DELETE("/:file_id", handlers.DeleteFile)
			}

			pullRequests := authed.Group("/pull_requests")
			{
				pullRequests.PATCH("/:pr_id", handlers.EditPullRequest)
				pullRequests.POST("/:pr_id/toggle", handlers.TogglePullRequestState)
				pullRequests.GET("/:pr_id/changes", handlers.GetMergeChanges)
				pullRequests.POST("/:pr_id/merge", handlers.MergePullRequest)
			}

			issues := authed.Group("/issues")
			{
				issues.POST("/:issue_id/toggle", handlers.ToggleIssueState)
			}

			comments := authed.Group("/comments")
			{
				comments.POST("/:comment_id/reactions/:reaction_type", handlers.ToggleReaction)
			}
		}
	}

	return r
}
