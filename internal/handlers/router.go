package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/skillup-edu/school-service/internal/audit"
	"github.com/skillup-edu/school-service/internal/middleware"
	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/services"
	"github.com/skillup-edu/school-service/internal/utils"
	"github.com/skillup-edu/school-service/internal/validator"
)

type HandlerManager struct {
	userHandler       *UserHandler
	classHandler      *ClassHandler
	assignmentHandler *AssignmentHandler
	adminHandler      *AdminHandler
	auth              *middleware.AuthMiddleware
}

func NewHandlerManager(
	repos repositories.Manager,
	grading services.GradingService,
	enrollment services.EnrollmentService,
	catalog services.CatalogService,
	export services.ExportService,
	auditor *audit.Logger,
	auth *middleware.AuthMiddleware,
	v *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		userHandler:       NewUserHandler(repos.Users(), auditor, v, logger),
		classHandler:      NewClassHandler(repos, catalog, auditor, v, logger),
		assignmentHandler: NewAssignmentHandler(repos, grading, auditor, v, logger),
		adminHandler:      NewAdminHandler(repos, enrollment, export, auditor, v, logger),
		auth:              auth,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "school-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(hm.auth.RequireAuth())
	{
		adminOnly := hm.auth.RequireRole(string(models.RoleAdmin), string(models.RoleStaff))

		// User routes
		users := v1.Group("/users")
		{
			users.POST("", adminOnly, hm.userHandler.CreateUser)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/lookup", hm.userHandler.LookupUser)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", adminOnly, hm.userHandler.UpdateUser)
			users.DELETE("/:id", adminOnly, hm.userHandler.DeleteUser)
		}

		// Class routes
		classes := v1.Group("/classes")
		{
			classes.POST("", adminOnly, hm.classHandler.CreateClass)
			classes.GET("", hm.classHandler.ListClasses)
			classes.GET("/code/:code", hm.classHandler.GetClassByCode)
			classes.GET("/:id", hm.classHandler.GetClass)
			classes.PUT("/:id", adminOnly, hm.classHandler.UpdateClass)
			classes.DELETE("/:id", adminOnly, hm.classHandler.DeleteClass)
		}

		// Level routes
		levels := v1.Group("/levels")
		{
			levels.POST("", adminOnly, hm.classHandler.CreateLevel)
			levels.GET("", hm.classHandler.GetLevels)
			levels.PUT("/:id", adminOnly, hm.classHandler.UpdateLevel)
			levels.DELETE("/:id", adminOnly, hm.classHandler.DeleteLevel)
		}

		// Assignment routes
		assignments := v1.Group("/assignments")
		{
			assignments.POST("", hm.assignmentHandler.CreateAssignment)
			assignments.GET("/:id", hm.assignmentHandler.GetAssignment)
			assignments.PUT("/:id", hm.assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", hm.assignmentHandler.DeleteAssignment)
			assignments.GET("/class/:classId", hm.assignmentHandler.GetAssignmentsByClass)
		}

		// Submission routes
		submissions := v1.Group("/submissions")
		{
			submissions.POST("", hm.assignmentHandler.SubmitWork)
			submissions.GET("/:id", hm.assignmentHandler.GetSubmission)
			submissions.POST("/:id/grade", hm.assignmentHandler.GradeSubmission)
			submissions.DELETE("/:id", adminOnly, hm.assignmentHandler.DeleteSubmission)
			submissions.GET("/assignment/:id", hm.assignmentHandler.GetSubmissionsByAssignment)
			submissions.GET("/student/:studentId", hm.assignmentHandler.GetSubmissionsByStudent)
		}

		// Admin routes: prospect pipeline, records, audit, exports
		admin := v1.Group("/admin")
		admin.Use(adminOnly)
		{
			prospects := admin.Group("/prospects")
			{
				prospects.POST("", hm.adminHandler.CreateProspect)
				prospects.POST("/import", hm.adminHandler.ImportProspects)
				prospects.GET("", hm.adminHandler.ListProspects)
				prospects.GET("/:id", hm.adminHandler.GetProspect)
				prospects.PUT("/:id", hm.adminHandler.UpdateProspect)
				prospects.DELETE("/:id", hm.adminHandler.DeleteProspect)
				prospects.POST("/:id/promote", hm.adminHandler.PromoteProspect)
			}

			admin.POST("/enrollments", hm.adminHandler.AssignStudentToClass)

			records := admin.Group("/records")
			{
				records.POST("", hm.adminHandler.CreateRecord)
				records.GET("", hm.adminHandler.ListRecords)
				records.GET("/:id", hm.adminHandler.GetRecord)
				records.PUT("/:id", hm.adminHandler.UpdateRecord)
				records.GET("/student/:studentId", hm.adminHandler.GetRecordsByStudent)
			}

			admin.GET("/audit-logs", hm.adminHandler.GetAuditLogs)
			admin.GET("/exports/grades/:classId", hm.adminHandler.ExportClassGrades)
		}
	}
}
