package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"stylefeed-backend/config"
	"stylefeed-backend/internal/delivery/http/middleware"
	v1 "stylefeed-backend/internal/delivery/http/v1"
	memcache "stylefeed-backend/internal/infrastructure/cache"
	"stylefeed-backend/internal/infrastructure/mailer"
	"stylefeed-backend/internal/infrastructure/shopify"
	"stylefeed-backend/internal/repository/postgres"
	"stylefeed-backend/internal/usecase"
	"stylefeed-backend/pkg/logger"
	"stylefeed-backend/pkg/storage"
	"stylefeed-backend/pkg/utils"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Successfully connected to PostgreSQL")

	// Initialize Repositories
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	likeRepo := postgres.NewLikeRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txManager := postgres.NewTransactionManager(pool)

	// Initialize Cache (In-Memory)
	memCache := memcache.NewMemoryCache(cfg.CacheDefaultTTL, cfg.CacheCleanupPeriod)

	// Set up Router
	mux := http.NewServeMux()

	// --- Modules Initialization ---

	// Auth Module
	smtpMailer := mailer.NewSMTPMailer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.FrontendURL,
	)
	authUC := usecase.NewAuthUsecase(userRepo, smtpMailer, cfg.TokenExpiry)
	authHandler := v1.NewAuthHandler(authUC)

	// --- Storage Module (R2) ---
	r2Storage, err := storage.NewR2Storage(
		context.Background(),
		cfg.R2AccountID,
		cfg.R2AccessKeyID,
		cfg.R2AccessKeySecret,
		cfg.R2BucketName,
		cfg.R2PublicURL,
		cfg.R2UploadTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage, cfg.MaxUploadSizeMB)

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo, brandRepo)
	engagementUC := usecase.NewEngagementUsecase(productRepo, likeRepo)
	productHandler := v1.NewProductHandler(catalogUC, engagementUC)
	categoryHandler := v1.NewCategoryHandler(catalogUC)
	brandHandler := v1.NewBrandHandler(catalogUC)

	// Stats Module (Analytics)
	statsUC := usecase.NewStatsUsecase(statsRepo, productRepo, memCache)
	statsHandler := v1.NewStatsHandler(statsUC)

	// Export Module
	exportUC := usecase.NewExportUsecase(productRepo, reportRepo)
	exportHandler := v1.NewExportHandler(exportUC)

	// Scraper Module (Shopify)
	shopifyClient := shopify.NewClient(cfg.ScraperTimeout)
	scraperUC := usecase.NewScraperUsecase(shopifyClient, productRepo, brandRepo, txManager, memCache)
	scraperHandler := v1.NewScraperHandler(scraperUC)

	// Admin (Protected)
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("POST /api/v1/auth/reset-password", authHandler.ResetPassword)
	mux.Handle("GET /api/v1/auth/verify", middleware.AuthMiddleware(http.HandlerFunc(authHandler.Verify)))

	// Products (Public)
	mux.HandleFunc("GET /api/v1/products", productHandler.List)
	mux.HandleFunc("GET /api/v1/products/search", productHandler.Search)
	mux.HandleFunc("GET /api/v1/products/editors-pick", productHandler.EditorsPick)
	mux.HandleFunc("GET /api/v1/products/trending", productHandler.Trending)
	mux.HandleFunc("GET /api/v1/products/{id}", productHandler.Get)
	mux.HandleFunc("POST /api/v1/products/{id}/click", productHandler.Click)
	mux.HandleFunc("GET /api/v1/products/{id}/recommendations", productHandler.Recommendations)

	// Likes (Protected)
	mux.Handle("GET /api/v1/products/liked", middleware.AuthMiddleware(http.HandlerFunc(productHandler.ListLiked)))
	mux.Handle("GET /api/v1/products/{id}/like", middleware.AuthMiddleware(http.HandlerFunc(productHandler.CheckLiked)))
	mux.Handle("GET /api/v1/products/{id}/liked", middleware.AuthMiddleware(http.HandlerFunc(productHandler.CheckLiked)))
	mux.Handle("POST /api/v1/products/{id}/like", middleware.AuthMiddleware(http.HandlerFunc(productHandler.ToggleLike)))

	// Categories (Public)
	mux.HandleFunc("GET /api/v1/categories", categoryHandler.List)
	mux.HandleFunc("GET /api/v1/categories/{id}", categoryHandler.Get)
	mux.HandleFunc("GET /api/v1/categories/{id}/subcategories", categoryHandler.SubCategories)
	mux.HandleFunc("GET /api/v1/subcategories", categoryHandler.ListSubCategories)

	// Brands (Public)
	mux.HandleFunc("GET /api/v1/brands", brandHandler.List)
	mux.HandleFunc("GET /api/v1/brands/trending", brandHandler.Trending)
	mux.HandleFunc("GET /api/v1/brands/search", brandHandler.Search)
	mux.HandleFunc("GET /api/v1/brands/{id}", brandHandler.Get)
	mux.HandleFunc("GET /api/v1/brands/{id}/products", brandHandler.Products)

	// Stats (Public)
	mux.HandleFunc("GET /api/v1/stats/trending/categories", statsHandler.TrendingCategories)
	mux.HandleFunc("GET /api/v1/stats/trending/products", statsHandler.TrendingProducts)
	mux.HandleFunc("GET /api/v1/stats/trending/colors", statsHandler.TrendingColors)
	mux.HandleFunc("GET /api/v1/stats/trending/sizes", statsHandler.TrendingSizes)
	mux.HandleFunc("GET /api/v1/stats/summary", statsHandler.Summary)

	// Admin Product Management
	mux.Handle("POST /api/v1/admin/products", adminOnly(productHandler.Create))
	mux.Handle("PUT /api/v1/admin/products/{id}", adminOnly(productHandler.Update))
	mux.Handle("DELETE /api/v1/admin/products/{id}", adminOnly(productHandler.Delete))

	// Admin Exports
	mux.Handle("GET /api/v1/admin/export/products", adminOnly(exportHandler.Products))
	mux.Handle("GET /api/v1/admin/export/brands/summary", adminOnly(exportHandler.BrandSummary))
	mux.Handle("GET /api/v1/admin/export/brands/{id}/products", adminOnly(exportHandler.BrandProducts))

	// Admin Scraper
	mux.Handle("POST /api/v1/admin/scraper/shopify/direct", adminOnly(scraperHandler.ScrapeDirect))
	mux.Handle("POST /api/v1/admin/scraper/shopify/api", adminOnly(scraperHandler.ScrapeAdminAPI))
	mux.Handle("POST /api/v1/admin/scraper/save", adminOnly(scraperHandler.Save))

	// Uploads
	mux.Handle("POST /api/v1/admin/upload", adminOnly(uploadHandler.UploadFile))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitPerSecond),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // visitor TTL
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
