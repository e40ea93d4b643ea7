package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dheeraj5988/sustainable-cities/internal/app/controllers"
	"github.com/dheeraj5988/sustainable-cities/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	reportController *controllers.ReportController,
	forumController *controllers.ForumController,
	inviteController *controllers.InviteController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/register-worker", authController.RegisterWorker)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/auth/logout", authController.Logout)

	// Profile routes
	users := authenticated.Group("/users")
	users.Use(authMiddleware.RoleRequired(rolesFor("users.self")...))
	{
		users.GET("/me", userController.GetMe)
		users.PUT("/me", userController.UpdateMe)
	}

	// Report routes. Reads are scoped inside the service; transitions are
	// decided by the lifecycle engine. The role table here only blocks
	// endpoint families wholesale.
	reports := authenticated.Group("/reports")
	{
		read := reports.Group("")
		read.Use(authMiddleware.RoleRequired(rolesFor("reports.read")...))
		{
			read.GET("", reportController.GetReports)
			read.GET("/:id", reportController.GetReportByID)
		}

		create := reports.Group("")
		create.Use(authMiddleware.RoleRequired(rolesFor("reports.create")...))
		{
			create.POST("", reportController.CreateReport)
		}

		moderate := reports.Group("")
		moderate.Use(authMiddleware.RoleRequired(rolesFor("reports.moderate")...))
		{
			moderate.POST("/:id/approve", reportController.ApproveReport)
			moderate.POST("/:id/reject", reportController.RejectReport)
			moderate.POST("/:id/complete", reportController.CompleteReport)
		}

		work := reports.Group("")
		work.Use(authMiddleware.RoleRequired(rolesFor("reports.work")...))
		{
			work.POST("/:id/claim", reportController.ClaimReport)
			work.POST("/:id/resolve", reportController.ResolveReport)
		}

		del := reports.Group("")
		del.Use(authMiddleware.RoleRequired(rolesFor("reports.delete")...))
		{
			del.DELETE("/:id", reportController.DeleteReport)
		}
	}

	// Forum routes
	forum := authenticated.Group("/forum")
	{
		read := forum.Group("")
		read.Use(authMiddleware.RoleRequired(rolesFor("forum.read")...))
		{
			read.GET("/threads", forumController.GetThreads)
			read.GET("/threads/:id", forumController.GetThreadByID)
			read.GET("/threads/:id/comments", forumController.GetComments)
		}

		write := forum.Group("")
		write.Use(authMiddleware.RoleRequired(rolesFor("forum.write")...))
		{
			write.POST("/threads", forumController.CreateThread)
			write.DELETE("/threads/:id", forumController.DeleteThread)
			write.POST("/threads/:id/comments", forumController.CreateComment)
			write.DELETE("/comments/:id", forumController.DeleteComment)
		}

		moderate := forum.Group("")
		moderate.Use(authMiddleware.RoleRequired(rolesFor("forum.moderate")...))
		{
			moderate.POST("/threads/:id/approve", forumController.ApproveThread)
			moderate.POST("/threads/:id/reject", forumController.RejectThread)
		}
	}

	// Admin routes
	admin := authenticated.Group("/admin")
	{
		adminUsers := admin.Group("/users")
		adminUsers.Use(authMiddleware.RoleRequired(rolesFor("admin.users")...))
		{
			adminUsers.GET("", userController.GetUsers)
			adminUsers.PUT("/:id/role", userController.UpdateUserRole)
			adminUsers.POST("/:id/activate", userController.ActivateUser)
			adminUsers.POST("/:id/deactivate", userController.DeactivateUser)
		}

		adminInvites := admin.Group("/invites")
		adminInvites.Use(authMiddleware.RoleRequired(rolesFor("admin.invites")...))
		{
			adminInvites.POST("", inviteController.CreateInvite)
			adminInvites.GET("", inviteController.GetInvites)
			adminInvites.DELETE("/:id", inviteController.DeleteInvite)
		}

		adminStats := admin.Group("/stats")
		adminStats.Use(authMiddleware.RoleRequired(rolesFor("admin.stats")...))
		{
			adminStats.GET("", userController.GetAdminStats)
		}
	}
}
