package routes

import (
	"backend/cache"
	"backend/client"
	"backend/config"
	"backend/controller"
	"backend/limiter"
	"backend/middleware"
	"backend/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.SystemConfigs, secClient *client.SECClient, directory *service.DirectoryService) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.RequestID())
	r.Use(middleware.ZerologMiddleware())
	r.Use(middleware.CORS(cfg.Config))

	// --- 1. Clients ---
	yahooClient := client.NewYahooClient(cfg.Config)

	// --- 2. Caches & limiters ---
	dataCache := cache.New(cfg.Config.CacheCapacity)
	envelopeCache := cache.New(cfg.Config.CacheCapacity)
	lookupLimiter := limiter.New(limiter.Limits{
		PerMinute: cfg.Config.RateLimitPerMinute,
		PerHour:   cfg.Config.RateLimitPerHour,
	})
	batchLimiter := limiter.New(limiter.Limits{
		PerMinute: cfg.Config.BatchRateLimitPerMinute,
		PerHour:   cfg.Config.BatchRateLimitPerHour,
	})

	// --- 3. Services (Dependency Injection) ---
	companySvc := service.NewCompanyService(directory, cfg.Config)
	stockSvc := service.NewStockService(yahooClient, dataCache, cfg.Config)
	filingsSvc := service.NewFilingsService(secClient, dataCache, cfg.Config)
	aggregatorSvc := service.NewAggregatorService(
		companySvc, stockSvc, filingsSvc,
		envelopeCache, lookupLimiter, batchLimiter,
		cfg.Config,
	)

	// --- 4. Routes & Controllers ---
	api := r.Group("/api/v1")
	{
		controller.NewHealthController(directory).RegisterRoutes(api)
		controller.NewCompanyController(aggregatorSvc).RegisterRoutes(api)
	}

	return r
}
