package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/collectflow/collections-campaign-backend/internal/database/repository"
	"github.com/collectflow/collections-campaign-backend/internal/events"
	"github.com/collectflow/collections-campaign-backend/internal/handlers"
	"github.com/collectflow/collections-campaign-backend/internal/middleware"
	"github.com/collectflow/collections-campaign-backend/internal/models"
	"github.com/collectflow/collections-campaign-backend/internal/services"
	"github.com/collectflow/collections-campaign-backend/internal/services/auth"
	"github.com/collectflow/collections-campaign-backend/internal/services/export"
)

// SetupRouter wires repositories, services, handlers and routes
func SetupRouter(db *gorm.DB, publisher *events.Publisher) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	referenceRepo := repository.NewReferenceRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	authService := auth.NewAuthService(userRepo)
	referenceService := services.NewReferenceService(referenceRepo)
	campaignService := services.NewCampaignService(campaignRepo, referenceRepo)
	approvalService := services.NewApprovalService(campaignRepo, approvalRepo)
	assignmentService := services.NewAssignmentService(campaignRepo, customerRepo, assignmentRepo, publisher)
	targetingService := services.NewTargetingService(campaignRepo, referenceRepo)
	exportService := export.NewExportService()

	bearerToken := middleware.NewBearerTokenMiddleware(authService)

	authHandler := handlers.NewAuthHandler(authService)
	referenceHandler := handlers.NewReferenceHandler(referenceService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	approvalHandler := handlers.NewApprovalHandler(approvalService, exportService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	targetingHandler := handlers.NewTargetingHandler(targetingService)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/profile", bearerToken.BearerTokenAuthMiddleware(), authHandler.GetProfile)
		}

		protected := api.Group("")
		protected.Use(bearerToken.BearerTokenAuthMiddleware())
		{
			reference := protected.Group("/reference")
			{
				reference.GET("/states", referenceHandler.GetStates)
				reference.GET("/dpd-buckets", referenceHandler.GetDpdBuckets)
				reference.GET("/channels", referenceHandler.GetChannels)
				reference.GET("/templates", referenceHandler.GetTemplates)
				reference.GET("/languages", referenceHandler.GetLanguages)
			}

			campaigns := protected.Group("/campaigns")
			{
				// The approval workflow. Submit is a maker action, the
				// approve/reject decisions belong to checkers.
				approval := campaigns.Group("/approval")
				{
					approval.POST("/:id/submit",
						middleware.RequireRoles(models.RoleAdmin),
						approvalHandler.SubmitForApproval)
					approval.POST("/:id/approve",
						middleware.RequireRoles(models.RoleChecker),
						approvalHandler.ApproveCampaign)
					approval.POST("/:id/reject",
						middleware.RequireRoles(models.RoleChecker),
						approvalHandler.RejectCampaign)
					approval.GET("/pending",
						middleware.RequireRoles(models.RoleAdmin, models.RoleChecker),
						approvalHandler.GetPendingApprovals)
					approval.GET("/export",
						middleware.RequireRoles(models.RoleAdmin, models.RoleChecker),
						approvalHandler.ExportPendingApprovals)
					approval.GET("/:id/review",
						middleware.RequireRoles(models.RoleAdmin, models.RoleChecker),
						approvalHandler.GetCampaignReview)
					approval.GET("/:id/history",
						middleware.RequireRoles(models.RoleAdmin, models.RoleChecker),
						approvalHandler.GetApprovalHistory)
				}

				campaigns.POST("", campaignHandler.CreateCampaign)
				campaigns.GET("", campaignHandler.ListCampaigns)
				campaigns.GET("/:id", campaignHandler.GetCampaign)
				campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
				campaigns.DELETE("/:id", campaignHandler.DeleteCampaign)
				campaigns.GET("/:id/metrics", campaignHandler.GetCampaignMetrics)
				campaigns.POST("/:id/assign", assignmentHandler.AssignCampaign)
			}

			targeting := protected.Group("/targeting")
			{
				targeting.POST("/match", targetingHandler.FindMatchingCampaigns)
				targeting.GET("/suggestions", targetingHandler.GetTargetingSuggestions)
				targeting.GET("/campaigns/:id/performance", targetingHandler.AnalyzeCampaignPerformance)
			}
		}
	}

	return r
}
