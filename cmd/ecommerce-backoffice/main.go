package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecommerce-admin/backend/internal/api/handlers"
	"github.com/ecommerce-admin/backend/internal/api/middleware"
	"github.com/ecommerce-admin/backend/internal/cache"
	"github.com/ecommerce-admin/backend/internal/config"
	"github.com/ecommerce-admin/backend/internal/health"
	"github.com/ecommerce-admin/backend/internal/metrics"
	repository "github.com/ecommerce-admin/backend/internal/repositories"
	service "github.com/ecommerce-admin/backend/internal/services"
	"github.com/ecommerce-admin/backend/pkg/objectstore"
	"github.com/redis/go-redis/v9"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer startupCancel()

	// Database setup
	repos, err := repository.New(startupCtx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := repos.Close(shutdownCtx); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis-backed report cache, optional
	var reportCache cache.Cache

	if cfg.Cache.Enabled {
		opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
		if err != nil {
			slog.Error("❌ Invalid redis configuration", "error", err.Error())
			os.Exit(1)
		}

		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			slog.Warn("⚠️ Redis unreachable, dashboard caching disabled", slog.String("error", err.Error()))
		} else {
			reportCache = cache.NewRedisCache(redisClient, &cfg.Cache)
		}
	}

	// Object storage for product images
	store, err := objectstore.NewClient(&cfg.Storage)
	if err != nil {
		slog.Error("❌ Error creating object storage client", "error", err.Error())
		os.Exit(1)
	}

	categoryService := service.NewCategoryService(repos.Category)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productService := service.NewProductService(repos.Product, repos.Category)
	productHandler := handlers.NewProductHandler(productService)
	orderService := service.NewOrderService(repos.Order, repos.Product, reportCache)
	orderHandler := handlers.NewOrderHandler(orderService)
	dashboardService := service.NewDashboardService(repos.Order, repos.Product, repos.Category, reportCache, cfg.Cache.DefaultTTL)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	uploadHandler := handlers.NewUploadHandler(store)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		MongoClient: repos.Client(),
		ObjectStore: store,
	})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /categories", categoryHandler.CreateCategory())
	routerMux.HandleFunc("GET /categories", categoryHandler.ListCategories())
	routerMux.HandleFunc("GET /categories/{id}", categoryHandler.GetCategory())
	routerMux.HandleFunc("PUT /categories/{id}", categoryHandler.UpdateCategory())
	routerMux.HandleFunc("DELETE /categories/{id}", categoryHandler.DeleteCategory())
	routerMux.HandleFunc("POST /products", productHandler.CreateProduct())
	routerMux.HandleFunc("GET /products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PUT /products/{id}", productHandler.UpdateProduct())
	routerMux.HandleFunc("DELETE /products/{id}", productHandler.DeleteProduct())
	routerMux.HandleFunc("POST /orders", orderHandler.CreateOrder())
	routerMux.HandleFunc("GET /orders", orderHandler.ListOrders())
	routerMux.HandleFunc("GET /orders/stats/by-date", dashboardHandler.OrderStatistics())
	routerMux.HandleFunc("GET /orders/{id}", orderHandler.GetOrder())
	routerMux.HandleFunc("PUT /orders/{id}", orderHandler.UpdateOrder())
	routerMux.HandleFunc("DELETE /orders/{id}", orderHandler.DeleteOrder())
	routerMux.HandleFunc("GET /dashboard/statistics", dashboardHandler.OrderStatistics())
	routerMux.HandleFunc("GET /dashboard/orders-by-period", dashboardHandler.OrdersByPeriod())
	routerMux.HandleFunc("GET /dashboard/orders-by-category", dashboardHandler.OrdersByCategory())
	routerMux.HandleFunc("GET /dashboard/top-selling-products", dashboardHandler.TopSellingProducts())
	routerMux.HandleFunc("POST /files/upload", uploadHandler.UploadFile())
	routerMux.HandleFunc("DELETE /files/delete", uploadHandler.DeleteFile())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
