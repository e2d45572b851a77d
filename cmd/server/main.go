package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"kisan_unnati/internal/config"
	"kisan_unnati/internal/handler"
	"kisan_unnati/internal/middleware"
	"kisan_unnati/internal/pkg/response"
	"kisan_unnati/internal/repository"
	"kisan_unnati/internal/service"
	"kisan_unnati/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET_KEY not set in environment")
	}
	jwtExpHours, err := strconv.ParseInt(os.Getenv("JWT_EXPIRATION_HOURS"), 10, 64)
	if err != nil || jwtExpHours <= 0 {
		log.Printf("Invalid JWT_EXPIRATION_HOURS, defaulting to 168: %v", err)
		jwtExpHours = 168
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "5001"
	}

	aiServiceURL := os.Getenv("AI_SERVICE_URL")
	if aiServiceURL == "" {
		aiServiceURL = "http://localhost:5000"
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(context.Background(), dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(context.Background(), dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(jwtSecret, jwtExpHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	shopkeeperRepo := repository.NewShopkeeperRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	stockRepo := repository.NewStockRepository(dbPool)
	statsRepo := repository.NewStatsRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, shopkeeperRepo, jwtUtil, os.Getenv("INITIAL_ADMIN_EMAIL"))
	productService := service.NewProductService(productRepo)
	stockService := service.NewStockService(stockRepo)
	dashboardService := service.NewDashboardService(statsRepo)
	predictor := service.NewFallbackPredictor(service.NewRemotePredictor(aiServiceURL), service.MockPredictor{})
	priceService := service.NewPriceService(predictor)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(productService, dashboardService)
	stockHandler := handler.NewStockHandler(stockService)
	aiHandler := handler.NewAIHandler(priceService)

	// --- Setup Gin Router ---
	if os.Getenv("GIN_MODE") == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(os.Getenv("FRONTEND_URL")))

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminRoleMW := middleware.AdminMiddleware()
	shopkeeperRoleMW := middleware.ShopkeeperMiddleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	authHandler.RegisterAuthRoutes(apiGroup, jwtAuthMW, shopkeeperRoleMW)
	adminHandler.RegisterAdminRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	stockHandler.RegisterStockRoutes(apiGroup, jwtAuthMW, shopkeeperRoleMW)
	aiHandler.RegisterAIRoutes(apiGroup, jwtAuthMW)

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			response.Send(c, http.StatusServiceUnavailable, false, "Database unhealthy", gin.H{"db": "unhealthy"})
			return
		}
		response.OK(c, "Kisan Unnati API is running", gin.H{"db": "healthy"})
	})

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found")
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + serverPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("INFO: Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
