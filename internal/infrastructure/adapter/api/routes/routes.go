package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/handler"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/middleware"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/metrics"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	ledgerHandler *handler.LedgerHandler,
	referralHandler *handler.ReferralHandler,
	campaignHandler *handler.CampaignHandler,
	settingsHandler *handler.SettingsHandler,
) {
	// Ledger routes
	ledgerRoutes := router.Group("/ledger")
	{
		ledgerRoutes.POST("", ledgerHandler.CreateEntry)
		ledgerRoutes.GET("", ledgerHandler.ListEntries)
		ledgerRoutes.GET("/statistics", ledgerHandler.Statistics)
		ledgerRoutes.GET("/:id", ledgerHandler.GetEntry)
		ledgerRoutes.POST("/:id/confirm", ledgerHandler.ConfirmEntry)
		ledgerRoutes.POST("/:id/cancel", ledgerHandler.CancelEntry)
		ledgerRoutes.POST("/:id/fail", ledgerHandler.FailEntry)
	}

	// Per-user routes
	userRoutes := router.Group("/users/:userId")
	{
		userRoutes.POST("/withdrawals", ledgerHandler.RequestWithdrawal)
		userRoutes.GET("/referrals/earnings", referralHandler.GetEarnings)
		userRoutes.POST("/payouts", referralHandler.RequestPayout)
		userRoutes.GET("/payouts", referralHandler.ListPayouts)
		userRoutes.GET("/campaigns", campaignHandler.ListByAdvertiser)
	}

	// Deal settlement
	router.POST("/deals/settle", ledgerHandler.SettleDeal)

	// Referral commission crediting
	router.POST("/referrals/commission", referralHandler.ProcessCommission)

	// Payout resolution
	router.POST("/payouts/:id/resolve", referralHandler.ResolvePayout)

	// Campaign routes
	campaignRoutes := router.Group("/campaigns")
	{
		campaignRoutes.POST("", campaignHandler.Create)
		campaignRoutes.GET("/:id", campaignHandler.Get)
		campaignRoutes.POST("/:id/start", campaignHandler.Start)
		campaignRoutes.POST("/:id/pause", campaignHandler.Pause)
		campaignRoutes.POST("/:id/cancel", campaignHandler.Cancel)
		campaignRoutes.POST("/:id/clicks", campaignHandler.RecordClick)
	}

	// Settings routes
	router.GET("/settings", settingsHandler.Get)
	router.PUT("/settings", settingsHandler.Update)

	// Operational endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())
}
