package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rezoom/feedback-api/internal/config"
	"rezoom/feedback-api/internal/handlers"
	"rezoom/feedback-api/internal/metrics"
	"rezoom/feedback-api/internal/repositories"
	"rezoom/feedback-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	log.Println("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}
	pdfParser := services.NewPDFParserService()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry)

	// Initialize Gemini AI
	breaker := services.NewModelBreaker("gemini", services.BreakerSettings{
		Enabled:          cfg.CircuitBreaker.Enabled,
		MaxRequests:      cfg.CircuitBreaker.MaxRequests,
		Interval:         cfg.CircuitBreaker.Interval,
		Timeout:          cfg.CircuitBreaker.Timeout,
		MinRequests:      cfg.CircuitBreaker.MinRequests,
		FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
	})
	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
		breaker,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Printf("✅ Gemini AI initialized successfully (breaker: %s)\n", breaker.State())

	// Initialize Qdrant
	index, err := services.NewFeedbackIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var worker services.Worker
	if index.Enabled() {
		if err := index.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")

		indexer := services.NewIndexer(feedbackRepo, geminiService, index)
		worker = services.NewWorker(feedbackRepo, indexer, cfg.Worker.Concurrency, cfg.Worker.PollInterval)
		worker.Start(ctx)
	} else {
		log.Println("⚠️  QDRANT_URL not set, similar feedback search disabled")
	}

	feedbackCfg := services.FeedbackServiceConfig{
		PromptBuilder: services.NewPromptBuilder(cfg.Feedback.WordLimit, cfg.Feedback.ScoreEnabled),
		Splitter:      services.NewReplySplitter(cfg.Feedback.Splitter, cfg.Feedback.ScoreEnabled),
		Index:         index,
		Recorder:      recorder,
		SummaryLength: cfg.Feedback.SummaryLength,
	}
	if worker != nil {
		feedbackCfg.Queue = worker
	}
	feedbackService := services.NewFeedbackService(feedbackRepo, geminiService, pdfParser, feedbackCfg)
	chatService := services.NewChatService(geminiService, recorder)
	authService := services.NewAuthService(userRepo)
	log.Println("✅ Services initialized successfully")

	var limiter *services.LimiterManager
	if cfg.RateLimit.Enabled {
		limiter = services.NewLimiterManager(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		defer limiter.Close()
	}

	store := session.New(session.Config{
		Expiration:     cfg.Server.SessionTTL,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Server.Env == "production",
		CookieSameSite: "Lax",
	})

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService, store)
	profileHandler := handlers.NewProfileHandler(authService, feedbackService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, storageService)
	chatHandler := handlers.NewChatHandler(chatService)
	log.Println("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "Rezoom Feedback API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.HandleSignup)
	auth.Post("/login", authHandler.HandleLogin)
	auth.Post("/logout", authHandler.HandleLogout)

	protected := api.Group("", handlers.RequireAuth(store))
	protected.Get("/profile", profileHandler.HandleGetProfile)
	protected.Put("/profile", profileHandler.HandleUpdateProfile)

	protected.Post("/feedback", handlers.RateLimit(limiter), feedbackHandler.HandleSubmit)
	protected.Get("/feedback/history", feedbackHandler.HandleHistory)
	protected.Get("/feedback/:id", feedbackHandler.HandleGet)
	protected.Get("/feedback/:id/similar", feedbackHandler.HandleSimilar)
	protected.Get("/todo", feedbackHandler.HandleTodo)
	protected.Post("/chat/message", handlers.RateLimit(limiter), chatHandler.HandleMessage)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Rezoom Feedback API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/signup",
				"POST /api/v1/auth/login",
				"POST /api/v1/auth/logout",
				"GET|PUT /api/v1/profile",
				"POST /api/v1/feedback",
				"GET /api/v1/feedback/history",
				"GET /api/v1/feedback/:id",
				"GET /api/v1/feedback/:id/similar",
				"GET /api/v1/todo",
				"POST /api/v1/chat/message",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if worker != nil {
			worker.Stop()
		}
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
