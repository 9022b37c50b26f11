package api

import (
	"net/http"

	authDelivery "bidbuddy-backend/internal/auth/delivery"
	projectDelivery "bidbuddy-backend/internal/project/delivery"
	proposalDelivery "bidbuddy-backend/internal/proposal/delivery"
	webhookDelivery "bidbuddy-backend/internal/webhook/delivery"
	"bidbuddy-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, projectHandler *projectDelivery.ProjectHandler, proposalHandler *proposalDelivery.ProposalHandler, webhookHandler *webhookDelivery.WebhookHandler) {
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "bidbuddy-backend"})
	}
	r.GET("/", health)
	r.GET("/health", health)

	// AgentMail delivers events here, no user auth involved
	r.POST("/webhooks/agentmail", webhookHandler.HandleAgentMail)

	api := r.Group("/api")
	api.Use(authDelivery.AuthMiddleware(cfg.SupabaseJWTSecret))
	{
		// Project routes (protected)
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.PATCH("/:id/toggle", projectHandler.ToggleProject)
			projects.GET("/:id/trades", projectHandler.GetProjectTrades)
			projects.GET("/:id/stats", proposalHandler.GetProjectStats)
			projects.GET("/:id/proposals", proposalHandler.GetProposals)
			projects.POST("/:id/proposals", proposalHandler.CreateProposal)
			projects.POST("/:id/sync-drive", proposalHandler.SyncProjectFolder)
			projects.GET("/:id/sync-status", proposalHandler.GetSyncStatus)
		}

		// Trade routes (protected)
		trades := api.Group("/trades")
		{
			trades.GET("", proposalHandler.GetTrades)
			trades.POST("", proposalHandler.CreateTrade)
			trades.PUT("/:id", proposalHandler.UpdateTrade)
			trades.DELETE("/:id", proposalHandler.DeleteTrade)
		}

		// Drive routes (protected)
		driveGroup := api.Group("/drive")
		{
			driveGroup.GET("/root-folder", projectHandler.GetRootFolder)
			driveGroup.POST("/root-folder", projectHandler.SetRootFolder)
			driveGroup.POST("/sync", projectHandler.SyncDriveFolders)
			driveGroup.GET("/folders", projectHandler.ListDriveFolders)
			driveGroup.GET("/folders/search", projectHandler.SearchDriveFolders)
		}
	}
}
