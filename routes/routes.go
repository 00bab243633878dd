package routes

import (
	"github.com/iPelino/ur-missions/controllers"
	"github.com/iPelino/ur-missions/middleware"
	"github.com/iPelino/ur-missions/models"

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
			public.POST("/refresh", controllers.RefreshToken)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "UR Missions API is running",
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

			// Account management, restricted to Superuser/Admin
			users := protected.Group("/users")
			users.Use(middleware.RequireGroup(models.GroupSuperuser, models.GroupAdmin))
			{
				users.GET("", controllers.GetUsers)
				users.GET("/:id", controllers.GetUser)
				users.POST("", controllers.CreateUser)
				users.PUT("/:id", controllers.UpdateUser)
				users.PATCH("/:id", controllers.UpdateUser)
				users.DELETE("/:id", controllers.DeleteUser)
			}

			// Colleges: any authenticated caller
			colleges := protected.Group("/colleges")
			{
				colleges.GET("", controllers.GetColleges)
				colleges.GET("/:id", controllers.GetCollege)
				colleges.POST("", controllers.CreateCollege)
				colleges.PUT("/:id", controllers.UpdateCollege)
				colleges.PATCH("/:id", controllers.UpdateCollege)
				colleges.DELETE("/:id", controllers.DeleteCollege)
			}

			// Campuses: Superuser only
			campuses := protected.Group("/campuses")
			campuses.Use(middleware.RequireGroup(models.GroupSuperuser))
			{
				campuses.GET("", controllers.GetCampuses)
				campuses.GET("/:id", controllers.GetCampus)
				campuses.POST("", controllers.CreateCampus)
				campuses.PUT("/:id", controllers.UpdateCampus)
				campuses.PATCH("/:id", controllers.UpdateCampus)
				campuses.DELETE("/:id", controllers.DeleteCampus)
			}

			// Units: creation needs both Unit Manager and Admin membership
			units := protected.Group("/units")
			{
				units.GET("/:id", controllers.GetUnit)
				units.GET("", controllers.GetUnits)
				units.POST("",
					middleware.RequireGroup(models.GroupUnitManager),
					middleware.RequireGroup(models.GroupAdmin),
					controllers.CreateUnit)
				units.PUT("/:id", controllers.UpdateUnit)
				units.PATCH("/:id", controllers.UpdateUnit)
				units.DELETE("/:id", controllers.DeleteUnit)
			}

			// Departments: creation needs Unit Manager and Superuser; detail is Superuser
			departments := protected.Group("/departments")
			{
				departments.POST("",
					middleware.RequireGroup(models.GroupUnitManager),
					middleware.RequireGroup(models.GroupSuperuser),
					controllers.CreateDepartment)

				detail := departments.Group("")
				detail.Use(middleware.RequireGroup(models.GroupSuperuser))
				{
					detail.GET("", controllers.GetDepartments)
					detail.GET("/:id", controllers.GetDepartment)
					detail.PUT("/:id", controllers.UpdateDepartment)
					detail.PATCH("/:id", controllers.UpdateDepartment)
					detail.DELETE("/:id", controllers.DeleteDepartment)
				}
			}

			// Staff: creation needs Unit Manager and Superuser/Admin membership
			staff := protected.Group("/staff")
			{
				staff.GET("", controllers.GetStaffList)
				staff.GET("/:id", controllers.GetStaff)
				staff.POST("",
					middleware.RequireGroup(models.GroupUnitManager),
					middleware.RequireGroup(models.GroupSuperuser, models.GroupAdmin),
					controllers.CreateStaff)
				staff.PUT("/:id", controllers.UpdateStaff)
				staff.PATCH("/:id", controllers.UpdateStaff)
				staff.DELETE("/:id", controllers.DeleteStaff)
			}

			// Mission orders
			missions := protected.Group("/missions-orders")
			{
				missions.GET("", controllers.GetMissionOrders)
				missions.GET("/:id", controllers.GetMissionOrder)
				missions.POST("", controllers.CreateMissionOrder)
				missions.PUT("/:id", controllers.UpdateMissionOrder)
				missions.PATCH("/:id", controllers.UpdateMissionOrder)
				missions.DELETE("/:id", controllers.DeleteMissionOrder)

				// Administrative approval block, recorded after final approval
				missions.PUT("/:id/approval-details",
					middleware.RequireGroup(models.GroupAdmin, models.GroupSuperuser, models.GroupCampusManager),
					controllers.SetApprovalDetails)

				// Attachments
				missions.POST("/:id/attachments", controllers.UploadMissionAttachment)
				missions.GET("/:id/attachments", controllers.GetMissionAttachments)
				missions.GET("/:id/attachments/:attachment_id", controllers.DownloadMissionAttachment)
				missions.DELETE("/:id/attachments/:attachment_id", controllers.DeleteMissionAttachment)
			}

			// Approvals
			approvals := protected.Group("/missions-approvals")
			{
				approvals.GET("", controllers.GetApprovals)
				approvals.GET("/:id", controllers.GetApproval)

				// Administrative override create
				approvals.POST("",
					middleware.RequireGroup(
						models.GroupUnitManager,
						models.GroupCampusManager,
						models.GroupAdmin,
						models.GroupSuperuser,
					),
					controllers.CreateApproval)

				// Approve/reject transition; broader than the designated approver
				approvals.PATCH("/:id",
					middleware.RequireGroup(
						models.GroupAdmin,
						models.GroupCampusManager,
						models.GroupUnitManager,
						models.GroupSuperuser,
					),
					controllers.UpdateApproval)
			}
		}
	}
}
