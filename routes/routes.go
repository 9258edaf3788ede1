package routes

import (
	"submeet-api/controllers"
	"submeet-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Submeet API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Journal directory
			publications := protected.Group("/publications")
			{
				publications.GET("", controllers.GetPublications)
				publications.GET("/:id", controllers.GetPublication)
				publications.POST("/:id/bookmark", controllers.BookmarkPublication)
				publications.DELETE("/:id/bookmark", controllers.RemoveBookmark)

				// Editorial surfaces (capability-checked per publication)
				publications.POST("/:id/forms", controllers.CreateForm)
				publications.GET("/:id/submissions", controllers.GetPublicationSubmissions)
			}

			// Forms
			forms := protected.Group("/forms")
			{
				forms.GET("/:id", controllers.GetForm)
				forms.PUT("/:id", controllers.UpdateForm)
				forms.DELETE("/:id", controllers.DeleteForm)
			}

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.POST("", controllers.CreateSubmission)
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.POST("/:id/withdraw", controllers.WithdrawSubmission)

				// Editorial mutations
				submissions.PUT("/:id/status", controllers.UpdateSubmissionStatus)
				submissions.POST("/:id/assign", controllers.AssignReader)
				submissions.POST("/:id/decision", controllers.RecordDecision)
			}

			// Files
			files := protected.Group("/files")
			{
				files.POST("/upload", controllers.UploadFile)
				files.GET("/:id/download", controllers.GetFileDownloadURL)
			}

			// Reader reviews
			reviews := protected.Group("/reviews")
			{
				reviews.GET("/assigned", controllers.GetAssignedReviews)
				reviews.PUT("/:id", controllers.CompleteReview)
			}

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)

			// Activity feed
			protected.GET("/activity", controllers.GetActivity)

			// Notifications
			protected.GET("/notifications", controllers.GetNotifications)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
		}
	}
}
