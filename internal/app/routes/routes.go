package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/supervision/internal/app/controllers"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/middleware"
)

// Controllers groups the HTTP handlers mounted under /api/v1
type Controllers struct {
	Auth       *controllers.AuthController
	Zone       *controllers.ZoneController
	Supervisor *controllers.SupervisorController
	Profile    *controllers.ProfileController
	Visit      *controllers.VisitController
	Presence   *controllers.PresenceController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group. Every call must identify its client application.
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.AppCredentials())

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", c.Auth.Logout)
		authenticated.GET("/auth/me", c.Auth.Me)

		// Zone management, restricted to school supervisors. The leader check happens per zone.
		zones := authenticated.Group("/zones")
		zones.Use(authMiddleware.RoleRequired(models.RoleSupervisorSchool))
		{
			zones.GET("/:zoneId", c.Zone.GetZone)
			zones.POST("/:zoneId/areas", c.Zone.CreateArea)
			zones.POST("/:zoneId/balance", c.Zone.Balance)
		}

		supervisors := authenticated.Group("/supervisors")
		supervisors.Use(authMiddleware.RoleRequired(models.RoleSupervisorSchool))
		{
			supervisors.GET("/me/workload", c.Supervisor.Workload)
			supervisors.GET("/me/students", c.Supervisor.Students)
			supervisors.GET("/me/students/search", c.Supervisor.SearchStudents)
			supervisors.GET("/me/dashboard", c.Supervisor.Dashboard)

			supervisors.GET("/me/profile", c.Profile.Get)
			supervisors.PUT("/me/profile", c.Profile.Update)
			supervisors.DELETE("/me/profile", c.Profile.Delete)

			// Visits and evaluations feed the supervision status above
			supervisors.GET("/me/visits", c.Visit.List)
			supervisors.POST("/me/visits", c.Visit.Create)
			supervisors.PUT("/me/visits/:visitId", c.Visit.Update)
			supervisors.DELETE("/me/visits/:visitId", c.Visit.Delete)
			supervisors.PUT("/me/visits/:visitId/status", c.Visit.SetStatus)
			supervisors.POST("/me/evaluations", c.Visit.Evaluate)

			supervisors.GET("/:supervisorId/workload", c.Supervisor.WorkloadByID)
		}

		// Students report their own location
		studentSelf := authenticated.Group("/students/me")
		studentSelf.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			studentSelf.PUT("/location", c.Presence.UpdateLocation)
		}

		presence := authenticated.Group("")
		presence.Use(authMiddleware.RoleRequired(models.RoleSupervisorSchool))
		{
			presence.GET("/students/:studentId/presence", c.Presence.StudentPresence)
			presence.POST("/presence/check", middleware.ValidateRequest[dto.PresenceCheckRequest](), c.Presence.Check)
		}
	}
}
