package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AYATON2/shoes-sub000/controllers"
	"github.com/AYATON2/shoes-sub000/database"
	"github.com/AYATON2/shoes-sub000/logger"
	"github.com/AYATON2/shoes-sub000/middleware"
	"github.com/AYATON2/shoes-sub000/models"
	aws_pkg "github.com/AYATON2/shoes-sub000/pkg/aws"
	"github.com/AYATON2/shoes-sub000/repository"
	"github.com/AYATON2/shoes-sub000/routes"
	"github.com/AYATON2/shoes-sub000/services"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer zapLogger.Sync()

	// --- Database ---
	db, err := database.Connect(zapLogger, database.Options{
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		DBName:   cfg.PostgresDB,
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		SSLMode:  cfg.PostgresSSLMode,
		TimeZone: cfg.PostgresTimeZone,
	},
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.SKU{},
		&models.Sale{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Notification{},
	)
	if err != nil {
		zapLogger.Fatal("DB connection failed", zap.Error(err))
	}

	// --- Redis (cart storage) ---
	redisClient, err := repository.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("Redis connection failed", zap.Error(err))
	}

	// --- AWS setup (non-fatal; events and metrics degrade to no-ops) ---
	var snsClient aws_pkg.SNSPublisher
	awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
	if err != nil {
		zapLogger.Warn("AWS config load failed (non-fatal)", zap.Error(err))
	} else {
		snsClient = aws_pkg.NewSNSClient(awsCfg)
	}

	metricsClient, err := aws_pkg.NewMetricsClient(context.Background())
	if err != nil {
		zapLogger.Warn("CloudWatch metrics client init failed (non-fatal)", zap.Error(err))
	}

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(zapLogger))
	r.Use(middleware.RateLimitMiddleware())

	// CloudWatch HTTP metrics middleware
	r.Use(func(c *gin.Context) {
		if !metricsClient.IsEnabled() {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		go func(path, method string, status int, dur time.Duration) {
			mctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			dims := map[string]string{"Service": "marketplace-api", "Method": method, "Path": path}
			_ = metricsClient.RecordCount(mctx, aws_pkg.MetricHTTPRequests, dims)
			_ = metricsClient.RecordLatency(mctx, aws_pkg.MetricHTTPLatency, dur, dims)
			if status >= 400 {
				_ = metricsClient.RecordCount(mctx, aws_pkg.MetricHTTPErrors, dims)
			}
		}(c.Request.URL.Path, c.Request.Method, c.Writer.Status(), time.Since(start))
	})

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- Dependency injection ---
	orderRepo := repository.NewGormOrderRepository(db)
	skuRepo := repository.NewGormSKURepository(db)
	productRepo := repository.NewGormProductRepository(db)
	saleRepo := repository.NewGormSaleRepository(db)
	addressRepo := repository.NewGormAddressRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	paymentRepo := repository.NewGormPaymentRepository(db)
	cartStore := repository.NewRedisCartRepository(redisClient, time.Duration(cfg.CartTTLHours)*time.Hour)

	notificationService := services.NewNotificationService(notificationRepo, userRepo, zapLogger)
	orderService := services.NewOrderService(orderRepo, skuRepo, addressRepo, saleRepo, notificationService, snsClient, cfg.OrderSNSTopicARN, zapLogger)
	productService := services.NewProductService(productRepo, skuRepo, zapLogger)
	saleService := services.NewSaleService(saleRepo, productRepo, notificationService, snsClient, cfg.SaleSNSTopicARN, zapLogger)
	addressService := services.NewAddressService(addressRepo, zapLogger)
	cartService := services.NewCartService(cartStore, skuRepo, zapLogger)
	userService := services.NewUserService(userRepo, zapLogger)
	paymentService := services.NewPaymentService(paymentRepo, orderService, zapLogger)

	routes.Register(r, routes.Controllers{
		Order:        controllers.NewOrderController(orderService),
		Product:      controllers.NewProductController(productService),
		Sale:         controllers.NewSaleController(saleService),
		Notification: controllers.NewNotificationController(notificationService),
		Address:      controllers.NewAddressController(addressService),
		Cart:         controllers.NewCartController(cartService),
		User:         controllers.NewUserController(userService),
		Payment:      controllers.NewPaymentController(paymentService),
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "marketplace-api"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		zapLogger.Info("Marketplace API started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server shutdown error", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		zapLogger.Error("Redis close error", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		zapLogger.Error("Database close error", zap.Error(err))
	}

	log.Println("Marketplace API stopped gracefully")
}
