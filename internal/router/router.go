package router

import (
	"net/http"
	"time"

	"github.com/blues/rfs/internal/handler"
	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/logic"
	"github.com/gin-gonic/gin"
)

func Setup(services *logic.Services, mode string) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	r := gin.New()

	// 中间件
	r.Use(requestLogger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(handler.CallerMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "research-funding-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		platformHandler := handler.NewPlatformHandler(services.Platform)
		platform := v1.Group("/platform")
		{
			platform.GET("", platformHandler.GetPlatform)
			platform.POST("/initialize", platformHandler.Initialize)
			platform.POST("/pause", platformHandler.Pause)
			platform.POST("/unpause", platformHandler.Unpause)
		}

		validatorHandler := handler.NewValidatorHandler(services.Validator)
		validators := v1.Group("/validators")
		{
			validators.POST("", validatorHandler.RegisterValidator)
			validators.GET("", validatorHandler.GetValidators)
			validators.GET("/:address", validatorHandler.GetValidator)
			validators.DELETE("/:address", validatorHandler.RevokeValidator)
		}

		ledgerHandler := handler.NewLedgerHandler(services.Ledger)
		accounts := v1.Group("/ledger/accounts")
		{
			accounts.GET("/:address", ledgerHandler.GetAccount)
			accounts.POST("/:address/deposit", ledgerHandler.Deposit)
			accounts.GET("/:address/transfers", ledgerHandler.GetTransfers)
		}

		projectHandler := handler.NewProjectHandler(services.Project)
		milestoneHandler := handler.NewMilestoneHandler(services.Milestone)
		nftHandler := handler.NewNFTHandler(services.NFT)
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("/:id/fund", projectHandler.FundProject)
			projects.POST("/:id/cancel", projectHandler.CancelProject)
			projects.GET("/:id/contributors", projectHandler.GetContributors)
			projects.POST("/:id/milestones/:index/submit", milestoneHandler.SubmitMilestone)
			projects.POST("/:id/milestones/:index/validate", milestoneHandler.ValidateMilestone)
			projects.POST("/:id/nfts", nftHandler.MintContributionNFT)
			projects.GET("/:id/nfts/:address", nftHandler.GetContributionNFT)
		}

		eventHandler := handler.NewEventHandler(services.Event)
		v1.GET("/events", eventHandler.GetEvents)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, "+handler.CallerHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestLogger 请求日志
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
