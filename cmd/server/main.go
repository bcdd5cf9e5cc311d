package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/gomu/backend/internal/application/catalog"
	chatapp "github.com/gomu/backend/internal/application/chat"
	identityapp "github.com/gomu/backend/internal/application/identity"
	paymentapp "github.com/gomu/backend/internal/application/payment"
	shippingapp "github.com/gomu/backend/internal/application/shipping"
	sitecontentapp "github.com/gomu/backend/internal/application/sitecontent"
	tradeapp "github.com/gomu/backend/internal/application/trade"
	"github.com/gomu/backend/internal/infrastructure/auth"
	"github.com/gomu/backend/internal/infrastructure/cache"
	"github.com/gomu/backend/internal/infrastructure/config"
	"github.com/gomu/backend/internal/infrastructure/logger"
	"github.com/gomu/backend/internal/infrastructure/payment"
	"github.com/gomu/backend/internal/infrastructure/persistence"
	"github.com/gomu/backend/internal/infrastructure/shipping"
	"github.com/gomu/backend/internal/interfaces/http/handler"
	"github.com/gomu/backend/internal/interfaces/http/middleware"
	"github.com/gomu/backend/internal/interfaces/http/router"
	"github.com/gomu/backend/internal/interfaces/realtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting store backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs the token blacklist and the page config cache. The server
	// still works without it: logout stops revoking tokens early and reads
	// hit the database.
	var (
		blacklist        auth.TokenBlacklist
		siteContentCache sitecontentapp.SiteContentCache
	)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		siteContentCache = cache.NewRedisSiteContentCache(redisClient, cfg.Cache.PageConfigTTL, log)
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
		log.Info("Redis connected")
	}
	cancelPing()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	subcategoryRepo := persistence.NewGormSubcategoryRepository(db.DB)
	materialRepo := persistence.NewGormMaterialRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	discountRepo := persistence.NewGormDiscountRepository(db.DB)
	wholesaleTierRepo := persistence.NewGormWholesaleTierRepository(db.DB)
	favoriteRepo := persistence.NewGormFavoriteRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	conversationRepo := persistence.NewGormConversationRepository(db.DB)
	pageConfigRepo := persistence.NewGormPageConfigRepository(db.DB)
	storeSettingsRepo := persistence.NewGormStoreSettingsRepository(db.DB)

	// External gateways
	skydropx := shipping.NewClient(&cfg.Shipping, log)
	stripeGateway := payment.NewStripeGateway(&cfg.Stripe, log)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, subcategoryRepo, log)
	taxonomyService := catalogapp.NewTaxonomyService(materialRepo, tagRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, subcategoryRepo, materialRepo, tagRepo, log)
	discountService := catalogapp.NewDiscountService(discountRepo, categoryRepo, productRepo, log)
	wholesaleService := catalogapp.NewWholesaleService(wholesaleTierRepo, productRepo, log)
	favoriteService := catalogapp.NewFavoriteService(favoriteRepo, productRepo, log)
	saleService := tradeapp.NewSaleService(saleRepo, log)
	siteContentService := sitecontentapp.NewSiteContentService(pageConfigRepo, storeSettingsRepo, siteContentCache, log)
	quoteService := shippingapp.NewQuoteService(skydropx, log)
	paymentService := paymentapp.NewPaymentService(stripeGateway, log)
	conversationService := chatapp.NewConversationService(conversationRepo, saleRepo, log)

	// Realtime hub. The hub broadcasts for the conversation service and the
	// service persists for the hub, so the broadcaster is attached after
	// both exist.
	hub := realtime.NewHub(conversationService, log)
	conversationService.SetBroadcaster(hub)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", healthHandler(db))

	authMiddleware := middleware.NewAuthMiddleware(jwtService, blacklist, log)
	r := router.New(engine, authMiddleware, router.Handlers{
		System:      handler.NewSystemHandler(),
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Category:    handler.NewCategoryHandler(categoryService),
		Taxonomy:    handler.NewTaxonomyHandler(taxonomyService),
		Product:     handler.NewProductHandler(productService),
		Discount:    handler.NewDiscountHandler(discountService),
		Wholesale:   handler.NewWholesaleHandler(wholesaleService),
		Favorite:    handler.NewFavoriteHandler(favoriteService),
		Sale:        handler.NewSaleHandler(saleService),
		SiteContent: handler.NewSiteContentHandler(siteContentService),
		Shipping:    handler.NewShippingHandler(quoteService),
		Payment:     handler.NewPaymentHandler(paymentService),
		Chat:        handler.NewChatHandler(conversationService),
		Realtime:    realtime.NewHandler(hub, jwtService, blacklist, log),
	})
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports readiness, including database connectivity
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
