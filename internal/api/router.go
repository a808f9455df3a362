package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-costing/internal/api/handlers/health"
	ingredientHandler "recipe-costing/internal/api/handlers/ingredient"
	recipeHandler "recipe-costing/internal/api/handlers/recipe"
	"recipe-costing/internal/api/middleware"
	"recipe-costing/internal/core/catalog"
	"recipe-costing/internal/core/draft"
	"recipe-costing/internal/core/draft/cache"
	recipeService "recipe-costing/internal/core/recipe"
	"recipe-costing/internal/core/storage"
	"recipe-costing/internal/infrastructure/config"
	"recipe-costing/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store storage.Store, draftCache cache.Cache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求去重與限流
	router.Use(middleware.Deduplication(cfg))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("draft_enabled", cfg.OpenRouter.Enabled),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化倉儲
	ingredientRepo, err := catalog.NewRepository(store)
	if err != nil {
		common.LogError("Failed to initialize ingredient repository", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize ingredient repository: %w", err)
	}
	recipeRepo, err := recipeService.NewRepository(store)
	if err != nil {
		common.LogError("Failed to initialize recipe repository", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize recipe repository: %w", err)
	}

	// 初始化服務
	recipeSvc := recipeService.NewService(recipeRepo, cfg.Costing)
	catalogSvc := catalog.NewService(ingredientRepo, recipeSvc)
	draftSvc := draft.NewService(cfg, draft.NewOpenRouterClient(cfg), draftCache)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 設置配置
		c.Set("config", cfg)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		ingredientHandlerInstance := ingredientHandler.NewHandler(catalogSvc)
		recipeHandlerInstance := recipeHandler.NewHandler(recipeSvc, catalogSvc, draftSvc)

		// 食材目錄路由
		ingredientGroup := api.Group("/ingredients")
		{
			ingredientGroup.GET("", ingredientHandlerInstance.HandleList)
			ingredientGroup.POST("", ingredientHandlerInstance.HandleCreate)
			ingredientGroup.GET("/:id", ingredientHandlerInstance.HandleGet)
			ingredientGroup.PUT("/:id", ingredientHandlerInstance.HandleUpdate)
			ingredientGroup.DELETE("/:id", ingredientHandlerInstance.HandleDelete)
			ingredientGroup.POST("/import", ingredientHandlerInstance.HandleImport)
		}

		// 食譜路由
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipeHandlerInstance.HandleList)
			recipeGroup.POST("", recipeHandlerInstance.HandleCreate)
			recipeGroup.GET("/:id", recipeHandlerInstance.HandleGet)
			recipeGroup.PUT("/:id", recipeHandlerInstance.HandleUpdate)
			recipeGroup.DELETE("/:id", recipeHandlerInstance.HandleDelete)
			recipeGroup.GET("/:id/cost", recipeHandlerInstance.HandleCost)
			recipeGroup.POST("/:id/draft", recipeHandlerInstance.HandleDraft)
			recipeGroup.POST("/:id/reconcile", recipeHandlerInstance.HandleReconcile)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
