package routes

import (
	"time"

	"material-requisition-api-server/config"
	"material-requisition-api-server/internal/api/handlers"
	"material-requisition-api-server/internal/api/middleware"
	"material-requisition-api-server/internal/database"
	"material-requisition-api-server/internal/sheets"
	"material-requisition-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter wires the handlers and middleware into the route tree.
func SetupRouter(
	cfg config.Config,
	client *sheets.Client,
	cache *store.Cache,
	seeder *database.Seeder,
	logger *zap.Logger,
	jwtExpiration time.Duration,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	userHandler := &handlers.UserHandler{Client: client, Cache: cache, Logger: logger, JWTExpiration: jwtExpiration}
	requisitionHandler := &handlers.RequisitionHandler{Client: client, Cache: cache, Logger: logger}
	materialHandler := &handlers.MaterialHandler{Cache: cache}
	lookupHandler := &handlers.LookupHandler{Cache: cache}
	dashboardHandler := &handlers.DashboardHandler{Cache: cache}
	adminHandler := &handlers.AdminHandler{Seeder: seeder, Cache: cache}

	apiV1 := router.Group("/api/v1")
	{
		// === PUBLIC ROUTES ===
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// === PROTECTED ROUTES ===
		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate())
		{
			protected.GET("/dashboard", dashboardHandler.GetDashboard)

			materials := protected.Group("/materials")
			{
				materials.GET("/", materialHandler.GetAllMaterials)
				materials.GET("/low-stock", materialHandler.GetLowStockMaterials)
			}

			protected.GET("/departments", lookupHandler.GetAllDepartments)
			protected.GET("/categories", lookupHandler.GetAllCategories)

			requisitions := protected.Group("/requisitions")
			{
				requisitions.POST("/", requisitionHandler.CreateRequisition)
				requisitions.GET("/", requisitionHandler.GetAllRequisitions)
				requisitions.GET("/:id", requisitionHandler.GetRequisitionByID)

				// Approval workflow, admin only.
				adminActions := requisitions.Group("/")
				adminActions.Use(middleware.Authorize("admin"))
				{
					adminActions.POST("/:id/approve", requisitionHandler.ApproveRequisition)
					adminActions.POST("/:id/reject", requisitionHandler.RejectRequisition)
					adminActions.DELETE("/:id", requisitionHandler.DeleteRequisition)
				}
			}
		}

		// === ADMINISTRATION, requires the "admin" role ===
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize("admin"))
		{
			admin.POST("/users", userHandler.CreateUser)
			admin.GET("/users", userHandler.GetAllUsers)
			admin.POST("/seed", adminHandler.Seed)
			admin.POST("/reload", adminHandler.Reload)
		}
	}

	return router
}
