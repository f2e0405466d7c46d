package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"interview-ease/internal/adapter/classifier"
	"interview-ease/internal/adapter/embedding"
	"interview-ease/internal/adapter/extractor"
	"interview-ease/internal/adapter/frameanalyzer"
	"interview-ease/internal/adapter/rediscache"
	"interview-ease/internal/adapter/reportsink"
	"interview-ease/internal/config"
	"interview-ease/internal/domain"
	"interview-ease/internal/handler"
	"interview-ease/internal/logger"
	"interview-ease/internal/middleware"
	"interview-ease/internal/repository/questionbank"
	"interview-ease/internal/scorer"
	facialsvc "interview-ease/internal/service/facial"
	"interview-ease/internal/service/interview"
	"interview-ease/internal/service/metrics"
	"interview-ease/internal/service/selector"
	"interview-ease/internal/store"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Question bank
	bank, err := questionbank.Load(cfg.Data.QuestionBankPath)
	if err != nil {
		appLogger.Fatal("Failed to load question bank",
			zap.String("path", cfg.Data.QuestionBankPath), zap.Error(err))
	}
	appLogger.Info("Question bank loaded",
		zap.Int("questions", len(bank.All())),
		zap.Strings("categories", bank.Categories()),
	)

	// Redis is required for the redis store backend and the OpenAI
	// embedding cache; otherwise the service runs without it.
	var cache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := rediscache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cache = rediscache.NewAdapter(redisClient)
		appLogger.Info("Redis connected", zap.String("address", cfg.Redis.Address))
	}

	// Embedding backend
	var embeddingService domain.EmbeddingService
	switch cfg.Embedding.Source {
	case "local":
		embeddingService, err = embedding.NewLocalEmbeddingService(bank.ReferenceCorpus())
		if err != nil {
			appLogger.Fatal("Failed to create local embedding service", zap.Error(err))
		}
		appLogger.Info("Local embedding service initialized")
	case "ollama":
		appLogger.Info("Initializing Ollama embedding service",
			zap.String("server_url", cfg.Embedding.Ollama.ServerURL),
			zap.String("model", cfg.Embedding.Ollama.Model))
		embeddingService, err = embedding.NewOllamaEmbeddingService(cfg.Embedding.Ollama.ServerURL, cfg.Embedding.Ollama.Model)
		if err != nil {
			appLogger.Fatal("Failed to create Ollama embedding service", zap.Error(err))
		}
	case "openai":
		appLogger.Info("Initializing OpenAI embedding service",
			zap.String("model", cfg.Embedding.OpenAI.Model))
		embeddingService, err = embedding.NewOpenAIEmbeddingService(cfg.Embedding.OpenAI.APIKey, cfg.Embedding.OpenAI.Model, cache, cfg)
		if err != nil {
			appLogger.Fatal("Failed to create OpenAI embedding service", zap.Error(err))
		}
	default:
		appLogger.Fatal("Unsupported embedding source", zap.String("source", cfg.Embedding.Source))
	}

	// Session stores
	var sessionStore domain.SessionStore
	var facialStore domain.FacialStore
	switch cfg.Store.Backend {
	case "redis":
		if cache == nil {
			appLogger.Fatal("Store backend is redis but redis.address is not configured")
		}
		sessionStore = store.NewRedisSessionStore(cache, cfg.Store.SessionTTL)
		facialStore = store.NewRedisFacialStore(cache, cfg.Store.SessionTTL)
	case "memory":
		memSessions := store.NewMemorySessionStore(cfg.Store.SessionTTL)
		defer memSessions.Close()
		memFacial := store.NewMemoryFacialStore(cfg.Store.SessionTTL)
		defer memFacial.Close()
		sessionStore = memSessions
		facialStore = memFacial
	default:
		appLogger.Fatal("Unsupported store backend", zap.String("backend", cfg.Store.Backend))
	}

	// Resume intake
	textExtractor := extractor.New(cfg.Extractor)
	skillClassifier, err := classifier.Load(cfg.Data.TaxonomyPath)
	if err != nil {
		appLogger.Fatal("Failed to load skill taxonomy",
			zap.String("path", cfg.Data.TaxonomyPath), zap.Error(err))
	}

	// Report sink
	sink, err := reportsink.NewFileSink(cfg.Data.ReportDir)
	if err != nil {
		appLogger.Fatal("Failed to create report sink", zap.Error(err))
	}

	// Services
	appMetrics := metrics.New()
	answerScorer := scorer.New(embeddingService, cfg.Scoring)
	questionSelector := selector.New(cfg.Interview.SelectionSeed)
	interviewService := interview.NewService(bank, questionSelector, answerScorer, sessionStore, facialStore, cfg.Interview, appMetrics)
	facialService := facialsvc.NewService(facialStore, frameanalyzer.New(), cfg.Facial, appMetrics)

	// Handlers
	interviewHandler := handler.NewInterviewHandler(interviewService, sink)
	facialHandler := handler.NewFacialHandler(facialService)
	resumeHandler := handler.NewResumeHandler(textExtractor, skillClassifier, cfg.Data.ResumeDir)
	healthHandler := handler.NewHealthHandler(appMetrics)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/", healthHandler.Health)

	apiGroup := app.Group("/api")
	apiGroup.Get("/health", healthHandler.Health)

	interviewGroup := apiGroup.Group("/interviews")
	interviewGroup.Post("/", interviewHandler.Start)
	interviewGroup.Get("/:id/questions/:index", interviewHandler.GetQuestion)
	interviewGroup.Post("/:id/answers", interviewHandler.SubmitAnswer)
	interviewGroup.Get("/:id/results", interviewHandler.GetResults)
	interviewGroup.Post("/:id/report", interviewHandler.WriteReport)

	facialGroup := apiGroup.Group("/facial")
	facialGroup.Post("/:id/start", facialHandler.Start)
	facialGroup.Post("/:id/frames", facialHandler.ProcessFrame)
	facialGroup.Get("/:id", facialHandler.Data)
	facialGroup.Post("/:id/stop", facialHandler.Stop)

	apiGroup.Post("/resume", resumeHandler.Upload)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
