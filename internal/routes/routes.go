package routes

import (
	"github.com/gin-gonic/gin"

	"salescrm/internal/authz"
	"salescrm/internal/handlers"
	"salescrm/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	leadHandler *handlers.LeadHandler,
	customerHandler *handlers.CustomerHandler,
	employeeHandler *handlers.EmployeeHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	adminOnly := middleware.RequireRole(authz.RoleAdmin)

	// LEADS
	leads := r.Group("/leads")
	{
		// both roles; employees only see/touch their own leads
		leads.GET("/", leadHandler.List)
		leads.GET("/:id", leadHandler.GetByID)
		leads.POST("/:id/convert", leadHandler.Convert)
		leads.GET("/:id/quotation", leadHandler.Quotation)

		// employee-facing status/remark updates, ownership-checked in the service
		leads.POST("/:id/update-status", leadHandler.UpdateStatus)
		leads.PATCH("/:id/update-remark", leadHandler.UpdateRemark)

		// admin-only lifecycle
		leads.POST("/", adminOnly, leadHandler.Create)
		leads.PUT("/:id", adminOnly, leadHandler.Update)
		leads.DELETE("/:id", adminOnly, leadHandler.Delete)
		leads.GET("/trashed", adminOnly, leadHandler.ListTrashed)
		leads.POST("/:id/restore", adminOnly, leadHandler.Restore)
		leads.DELETE("/:id/force-delete", adminOnly, leadHandler.ForceDelete)
		leads.POST("/:id/status", adminOnly, leadHandler.UpdateStatus)
		leads.GET("/export/csv", adminOnly, leadHandler.ExportCSV)
	}

	// CUSTOMERS (admin)
	customers := r.Group("/customers", adminOnly)
	{
		customers.POST("/", customerHandler.Create)
		customers.GET("/", customerHandler.List)
		customers.GET("/trashed", customerHandler.ListTrashed)
		customers.GET("/:id", customerHandler.GetByID)
		customers.PUT("/:id", customerHandler.Update)
		customers.DELETE("/:id", customerHandler.Delete)
		customers.POST("/:id/restore", customerHandler.Restore)
		customers.DELETE("/:id/force-delete", customerHandler.ForceDelete)
		customers.GET("/export/csv", customerHandler.ExportCSV)
	}

	// EMPLOYEES (admin)
	employees := r.Group("/employees", adminOnly)
	{
		employees.GET("/", employeeHandler.List)
		employees.GET("/:id", employeeHandler.GetByID)
		employees.PUT("/:id", employeeHandler.UpdateProfile)
		employees.GET("/unassigned-leads", employeeHandler.UnassignedLeads)
		employees.POST("/assign-leads", employeeHandler.AssignLeads)
		employees.GET("/export/csv", employeeHandler.ExportCSV)
	}

	// REPORTS (admin)
	reports := r.Group("/reports", adminOnly)
	{
		reports.GET("/summary", reportHandler.GetSummary)
	}

	return r
}
